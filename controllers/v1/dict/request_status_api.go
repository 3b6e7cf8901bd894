package dict

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	requeststatusprovider "request-flow-backend/lib/dicts/request-status"
	"request-flow-backend/middleware"
	apimodels "request-flow-backend/models/api"
	dictapimodels "request-flow-backend/models/api/dict"
)

type requestStatusDictApiController struct {
	controllers.BaseAPIController
}

func InitRequestStatusDictApiRouters(app *fiber.App) {
	controller := requestStatusDictApiController{}
	app.Route("request_status", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Use(middleware.AdminRequired())
		router.Post("", controller.create)
		router.Put(":id", controller.update)
	})
}

// @Summary Создание
// @Tags Справочник. Статус заявки
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.RequestStatusData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_status [post]
func (c *requestStatusDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.RequestStatusData
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	id, err := requeststatusprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания статуса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Справочник. Статус заявки
// @Description Переименование, системные статусы Pending, Approved, Rejected не переименовываются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.RequestStatusData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_status/{id} [put]
func (c *requestStatusDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.RequestStatusData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = requeststatusprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления статуса")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список
// @Tags Справочник. Статус заявки
// @Description Список
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.RequestStatusView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_status [get]
func (c *requestStatusDictApiController) list(ctx *fiber.Ctx) error {
	list, err := requeststatusprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка статусов")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
