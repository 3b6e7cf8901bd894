package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	requesthandler "request-flow-backend/lib/request"
	"request-flow-backend/middleware"
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
	requestapimodels "request-flow-backend/models/api/request"
)

type requestApiController struct {
	controllers.BaseAPIController
}

func InitRequestApiRouters(app *fiber.App) {
	controller := requestApiController{}
	app.Post("", controller.create)
	app.Post("list", controller.list)
	app.Post("export", controller.export)
	app.Route(":id", func(idRoute fiber.Router) {
		idRoute.Get("", controller.get)
		idRoute.Get("pdf", controller.card)
		idRoute.Put("fields", controller.updateFields)
		idRoute.Post("approve", controller.approve) // согласовать текущий этап
		idRoute.Post("reject", controller.reject)   // отклонить
		idRoute.Post("reopen", controller.reopen)   // вернуть на первый этап
	})
}

// @Summary Создание
// @Tags Заявка
// @Description Создание заявки, согласующие копируются из настроек подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.RequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request [post]
func (c *requestApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestCreateData
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := requesthandler.Instance.Create(middleware.GetPrincipal(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Заявка
// @Description Список заявок, доступных пользователю
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.ListFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]requestapimodels.RequestListItem}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/list [post]
func (c *requestApiController) list(ctx *fiber.Ctx) error {
	var payload requestapimodels.ListFilter
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	list, rowCount, err := requesthandler.Instance.List(middleware.GetPrincipal(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузка списка
// @Tags Заявка
// @Description Выгрузка списка заявок в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 requestapimodels.ListFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/export [post]
func (c *requestApiController) export(ctx *fiber.Ctx) error {
	var payload requestapimodels.ListFilter
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	body, err := requesthandler.Instance.Export(middleware.GetPrincipal(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки заявок")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="requests.xlsx"`)
	return ctx.Send(body)
}

// @Summary Получение по ИД
// @Tags Заявка
// @Description Заявка с полями, этапами и решениями согласующих
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id} [get]
func (c *requestApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := requesthandler.Instance.GetByID(middleware.GetPrincipal(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Карточка заявки
// @Tags Заявка
// @Description Карточка заявки для печати в pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/pdf [get]
func (c *requestApiController) card(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	body, err := requesthandler.Instance.Card(middleware.GetPrincipal(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования карточки заявки")
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="request-%v.pdf"`, id))
	return ctx.Send(body)
}

// @Summary Изменение полей
// @Tags Заявка
// @Description Изменение значений полей, по каждому изменению пишется событие
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Param	body body	 requestapimodels.RequestFieldsData	true	"request body"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/fields [put]
func (c *requestApiController) updateFields(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload requestapimodels.RequestFieldsData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := requesthandler.Instance.UpdateFields(middleware.GetPrincipal(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения полей заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Согласовать
// @Tags Заявка
// @Description Согласование текущего этапа, на последнем этапе заявка согласована
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/approve [post]
func (c *requestApiController) approve(ctx *fiber.Ctx) error {
	return c.transition(ctx, requesthandler.Instance.Approve, "Ошибка согласования заявки")
}

// @Summary Отклонить
// @Tags Заявка
// @Description Отклонение заявки любым согласующим заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/reject [post]
func (c *requestApiController) reject(ctx *fiber.Ctx) error {
	return c.transition(ctx, requesthandler.Instance.Reject, "Ошибка отклонения заявки")
}

// @Summary Открыть повторно
// @Tags Заявка
// @Description Возврат отклонённой или согласованной заявки на первый этап
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request ID"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/reopen [post]
func (c *requestApiController) reopen(ctx *fiber.Ctx) error {
	return c.transition(ctx, requesthandler.Instance.Reopen, "Ошибка повторного открытия заявки")
}

type transitionFunc func(actor models.Principal, id string) (*requestapimodels.RequestView, error)

func (c *requestApiController) transition(ctx *fiber.Ctx, action transitionFunc, errMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := action(middleware.GetPrincipal(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx).WithField("request_id", id), err, errMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
