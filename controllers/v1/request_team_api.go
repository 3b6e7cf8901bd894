package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	requesthandler "request-flow-backend/lib/request"
	"request-flow-backend/middleware"
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
	requestapimodels "request-flow-backend/models/api/request"
)

type requestTeamApiController struct {
	controllers.BaseAPIController
}

func InitRequestTeamApiRouters(app *fiber.App) {
	controller := requestTeamApiController{}
	app.Route(":id", func(idRoute fiber.Router) {
		idRoute.Post("approvers", controller.addApprover)
		idRoute.Delete("approvers/:approverId", controller.removeApprover)
		idRoute.Post("participants", controller.addParticipant)
		idRoute.Delete("participants/:userId", controller.removeParticipant)
		idRoute.Post("recruiters", controller.addRecruiter)
		idRoute.Delete("recruiters/:userId", controller.removeRecruiter)
	})
}

// @Summary Добавить согласующего
// @Tags Заявка. Участники
// @Description Добавление согласующего на этап заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param	body body	 requestapimodels.ApproverAddData	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.StageApproverView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/approvers [post]
func (c *requestTeamApiController) addApprover(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload requestapimodels.ApproverAddData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := requesthandler.Instance.AddApprover(middleware.GetPrincipal(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления согласующего")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удалить согласующего
// @Tags Заявка. Участники
// @Description Удаление согласующего, последнего согласующего этапа удалить нельзя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param   approverId     		path    string  				    	true         "ИД записи согласующего заявки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/approvers/{approverId} [delete]
func (c *requestTeamApiController) removeApprover(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	approverID, err := c.GetIDByKey(ctx, "approverId")
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = requesthandler.Instance.RemoveApprover(middleware.GetPrincipal(ctx), id, approverID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления согласующего")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

type memberFunc func(actor models.Principal, id, userID string) (*requestapimodels.RequestView, error)

func (c *requestTeamApiController) addMember(ctx *fiber.Ctx, action memberFunc, errMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload requestapimodels.MemberData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := action(middleware.GetPrincipal(ctx), id, payload.UserID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, errMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

func (c *requestTeamApiController) removeMember(ctx *fiber.Ctx, action memberFunc, errMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	userID, err := c.GetIDByKey(ctx, "userId")
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := action(middleware.GetPrincipal(ctx), id, userID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, errMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Добавить участника
// @Tags Заявка. Участники
// @Description Добавление участника заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param	body body	 requestapimodels.MemberData	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/participants [post]
func (c *requestTeamApiController) addParticipant(ctx *fiber.Ctx) error {
	return c.addMember(ctx, requesthandler.Instance.AddParticipant, "Ошибка добавления участника")
}

// @Summary Удалить участника
// @Tags Заявка. Участники
// @Description Удаление участника заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param   userId        		path    string  				    	true         "user ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/participants/{userId} [delete]
func (c *requestTeamApiController) removeParticipant(ctx *fiber.Ctx) error {
	return c.removeMember(ctx, requesthandler.Instance.RemoveParticipant, "Ошибка удаления участника")
}

// @Summary Добавить рекрутера
// @Tags Заявка. Участники
// @Description Добавление рекрутера заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param	body body	 requestapimodels.MemberData	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/recruiters [post]
func (c *requestTeamApiController) addRecruiter(ctx *fiber.Ctx) error {
	return c.addMember(ctx, requesthandler.Instance.AddRecruiter, "Ошибка добавления рекрутера")
}

// @Summary Удалить рекрутера
// @Tags Заявка. Участники
// @Description Удаление рекрутера заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param   userId        		path    string  				    	true         "user ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/recruiters/{userId} [delete]
func (c *requestTeamApiController) removeRecruiter(ctx *fiber.Ctx) error {
	return c.removeMember(ctx, requesthandler.Instance.RemoveRecruiter, "Ошибка удаления рекрутера")
}
