package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
)

func TestSendError(t *testing.T) {
	controller := BaseAPIController{}
	app := fiber.New()
	app.Get("/:kind", func(ctx *fiber.Ctx) error {
		var err error
		switch ctx.Params("kind") {
		case "precondition":
			err = errors.Wrap(models.ErrNotAnApprover, "approve")
		case "unauthorized":
			err = models.ErrUnauthorized
		case "notfound":
			err = models.ErrRequestNotFound
		case "conflict":
			err = models.ErrRequestBusy
		default:
			err = errors.New("connection refused")
		}
		return controller.SendError(ctx, controller.GetLogger(ctx), err, "Ошибка обработки заявки")
	})
	cases := map[string]struct {
		status  int
		message string
	}{
		"precondition": {fiber.StatusBadRequest, models.ErrNotAnApprover.Msg},
		"unauthorized": {fiber.StatusForbidden, models.ErrUnauthorized.Msg},
		"notfound":     {fiber.StatusNotFound, models.ErrRequestNotFound.Msg},
		"conflict":     {fiber.StatusConflict, models.ErrRequestBusy.Msg},
		"internal":     {fiber.StatusInternalServerError, "Ошибка обработки заявки"},
	}
	for kind, expected := range cases {
		t.Run(kind, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/"+kind, nil))
			require.NoError(t, err)
			require.Equal(t, expected.status, resp.StatusCode)
			var body apimodels.Response
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, "fail", body.Status)
			require.Equal(t, expected.message, body.Message)
		})
	}
}
