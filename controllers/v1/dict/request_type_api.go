package dict

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	requesttypeprovider "request-flow-backend/lib/dicts/request-type"
	"request-flow-backend/middleware"
	apimodels "request-flow-backend/models/api"
	dictapimodels "request-flow-backend/models/api/dict"
)

type requestTypeDictApiController struct {
	controllers.BaseAPIController
}

func InitRequestTypeDictApiRouters(app *fiber.App) {
	controller := requestTypeDictApiController{}
	app.Route("request_type", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Use(middleware.AdminRequired())
		router.Post("", controller.create)
		router.Put(":id", controller.update)
	})
}

// @Summary Создание
// @Tags Справочник. Тип заявки
// @Description Создание, процесс согласования должен существовать
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.RequestTypeData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_type [post]
func (c *requestTypeDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.RequestTypeData
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	id, err := requesttypeprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания типа заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Справочник. Тип заявки
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.RequestTypeData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_type/{id} [put]
func (c *requestTypeDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.RequestTypeData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = requesttypeprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления типа заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Справочник. Тип заявки
// @Description Тип заявки с полями по порядку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.RequestTypeView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_type/{id} [get]
func (c *requestTypeDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := requesttypeprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения типа заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Справочник. Тип заявки
// @Description Список
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.RequestTypeView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_type [get]
func (c *requestTypeDictApiController) list(ctx *fiber.Ctx) error {
	list, err := requesttypeprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка типов заявок")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
