package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/middleware"
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

// ParseAndValidate разбор тела запроса и проверка через Validate()
func (c *BaseAPIController) ParseAndValidate(ctx *fiber.Ctx, out interface{ Validate() error }) error {
	if err := c.BodyParser(ctx, out); err != nil {
		return err
	}
	return out.Validate()
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("не указан параметр %v", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("path", ctx.Path()).
		WithField("trace_id", ctx.GetRespHeader("X-Request-Id"))
}

// SendError доменные ошибки отдаются с их сообщением, остальные логируются и скрываются за msg
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return ctx.Status(statusByKind(appErr.Kind)).JSON(apimodels.NewError(appErr.Msg))
	}
	logger.WithError(err).Error(msg)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(msg))
}

func (c *BaseAPIController) BadRequest(ctx *fiber.Ctx, err error) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
}

func statusByKind(kind models.ErrorKind) int {
	switch kind {
	case models.KindUnauthorized:
		return fiber.StatusForbidden
	case models.KindNotFound:
		return fiber.StatusNotFound
	case models.KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusBadRequest
}
