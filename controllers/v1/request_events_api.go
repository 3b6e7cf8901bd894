package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	requestcommentshandler "request-flow-backend/lib/request-comments"
	requesteventshandler "request-flow-backend/lib/request-events"
	"request-flow-backend/middleware"
	apimodels "request-flow-backend/models/api"
	requestapimodels "request-flow-backend/models/api/request"
)

type requestEventsApiController struct {
	controllers.BaseAPIController
}

func InitRequestEventsApiRouters(app *fiber.App) {
	controller := requestEventsApiController{}
	app.Route(":id", func(idRoute fiber.Router) {
		idRoute.Get("events", controller.events)
		idRoute.Get("timeline", controller.timeline)
		idRoute.Get("comments", controller.comments)
		idRoute.Post("comments", controller.createComment)
		idRoute.Put("comments/:commentId", controller.updateComment)
		idRoute.Delete("comments/:commentId", controller.deleteComment)
	})
}

// @Summary События
// @Tags Заявка. История
// @Description События заявки с описанием действия
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.EventView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/events [get]
func (c *requestEventsApiController) events(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	list, err := requesteventshandler.Instance.List(middleware.GetPrincipal(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения событий заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Лента
// @Tags Заявка. История
// @Description События и комментарии заявки в порядке времени
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.TimelineItem}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/timeline [get]
func (c *requestEventsApiController) timeline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	list, err := requesteventshandler.Instance.Timeline(middleware.GetPrincipal(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения ленты заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Комментарии
// @Tags Заявка. Комментарии
// @Description Список комментариев заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.CommentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/comments [get]
func (c *requestEventsApiController) comments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	list, err := requestcommentshandler.Instance.List(middleware.GetPrincipal(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения комментариев")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Добавить комментарий
// @Tags Заявка. Комментарии
// @Description Добавление комментария, участники заявки получают уведомление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param	body body	 requestapimodels.CommentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.CommentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/comments [post]
func (c *requestEventsApiController) createComment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload requestapimodels.CommentData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := requestcommentshandler.Instance.Create(middleware.GetPrincipal(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления комментария")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Изменить комментарий
// @Tags Заявка. Комментарии
// @Description Изменение комментария автором
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param   commentId      		path    string  				    	true         "comment ID"
// @Param	body body	 requestapimodels.CommentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.CommentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/comments/{commentId} [put]
func (c *requestEventsApiController) updateComment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	commentID, err := c.GetIDByKey(ctx, "commentId")
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload requestapimodels.CommentData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := requestcommentshandler.Instance.Update(middleware.GetPrincipal(ctx), id, commentID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения комментария")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удалить комментарий
// @Tags Заявка. Комментарии
// @Description Удаление комментария автором или администратором
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param   commentId      		path    string  				    	true         "comment ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/comments/{commentId} [delete]
func (c *requestEventsApiController) deleteComment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	commentID, err := c.GetIDByKey(ctx, "commentId")
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = requestcommentshandler.Instance.Delete(middleware.GetPrincipal(ctx), id, commentID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления комментария")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
