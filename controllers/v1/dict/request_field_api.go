package dict

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	requestfieldprovider "request-flow-backend/lib/dicts/request-field"
	"request-flow-backend/middleware"
	apimodels "request-flow-backend/models/api"
	dictapimodels "request-flow-backend/models/api/dict"
)

type requestFieldDictApiController struct {
	controllers.BaseAPIController
}

func InitRequestFieldDictApiRouters(app *fiber.App) {
	controller := requestFieldDictApiController{}
	app.Route("request_field", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Get("by_type/:id", controller.listByRequestType)
		router.Use(middleware.AdminRequired())
		router.Post("", controller.create)
		router.Put(":id", controller.update)
		router.Post(":id/option", controller.addOption)
		router.Put(":id/option/:optionId", controller.updateOption)
		router.Delete(":id/option/:optionId", controller.deleteOption)
		router.Post(":id/link", controller.link)
		router.Delete(":id/link/:typeId", controller.unlink)
	})
}

// @Summary Создание
// @Tags Справочник. Поле заявки
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.RequestFieldData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field [post]
func (c *requestFieldDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.RequestFieldData
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	id, err := requestfieldprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания поля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Справочник. Поле заявки
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.RequestFieldData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field/{id} [put]
func (c *requestFieldDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.RequestFieldData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = requestfieldprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления поля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Справочник. Поле заявки
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.RequestFieldView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field/{id} [get]
func (c *requestFieldDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := requestfieldprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения поля")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Справочник. Поле заявки
// @Description Список
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.RequestFieldView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field [get]
func (c *requestFieldDictApiController) list(ctx *fiber.Ctx) error {
	list, err := requestfieldprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка полей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Поля типа заявки
// @Tags Справочник. Поле заявки
// @Description Поля типа заявки по порядку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "request type ID"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.RequestTypeFieldView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field/by_type/{id} [get]
func (c *requestFieldDictApiController) listByRequestType(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	list, err := requestfieldprovider.Instance.ListByRequestType(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения полей типа заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Добавить вариант
// @Tags Справочник. Поле заявки
// @Description Добавление варианта значения, только для поля с выбором
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "field ID"
// @Param	body body	 dictapimodels.RequestFieldOptionData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field/{id}/option [post]
func (c *requestFieldDictApiController) addOption(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.RequestFieldOptionData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	optionID, err := requestfieldprovider.Instance.AddOption(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления варианта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(optionID))
}

// @Summary Изменить вариант
// @Tags Справочник. Поле заявки
// @Description Изменение варианта значения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "field ID"
// @Param   optionId       		path    string  				    	true         "option ID"
// @Param	body body	 dictapimodels.RequestFieldOptionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field/{id}/option/{optionId} [put]
func (c *requestFieldDictApiController) updateOption(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	optionID, err := c.GetIDByKey(ctx, "optionId")
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.RequestFieldOptionData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = requestfieldprovider.Instance.UpdateOption(id, optionID, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения варианта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удалить вариант
// @Tags Справочник. Поле заявки
// @Description Удаление варианта значения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "field ID"
// @Param   optionId       		path    string  				    	true         "option ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field/{id}/option/{optionId} [delete]
func (c *requestFieldDictApiController) deleteOption(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	optionID, err := c.GetIDByKey(ctx, "optionId")
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = requestfieldprovider.Instance.DeleteOption(id, optionID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления варианта")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Привязать к типу заявки
// @Tags Справочник. Поле заявки
// @Description Добавление поля в тип заявки с порядком, повторная привязка меняет порядок
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "field ID"
// @Param	body body	 dictapimodels.RequestFieldLinkData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field/{id}/link [post]
func (c *requestFieldDictApiController) link(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.RequestFieldLinkData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = requestfieldprovider.Instance.Link(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка привязки поля к типу заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отвязать от типа заявки
// @Tags Справочник. Поле заявки
// @Description Исключение поля из типа заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "field ID"
// @Param   typeId        		path    string  				    	true         "request type ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/request_field/{id}/link/{typeId} [delete]
func (c *requestFieldDictApiController) unlink(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	typeID, err := c.GetIDByKey(ctx, "typeId")
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = requestfieldprovider.Instance.Unlink(id, typeID); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка исключения поля из типа заявки")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
