package dict

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	departmentprovider "request-flow-backend/lib/dicts/department"
	"request-flow-backend/middleware"
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
	dictapimodels "request-flow-backend/models/api/dict"
)

type departmentDictApiController struct {
	controllers.BaseAPIController
}

func InitDepartmentDictApiRouters(app *fiber.App) {
	controller := departmentDictApiController{}
	app.Route("department", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Use(middleware.AdminRequired())
		router.Post("", controller.create)
		router.Put(":id", controller.update)
		router.Put(":id/participants", controller.setParticipants) // полная замена участников
		router.Put(":id/recruiters", controller.setRecruiters)     // полная замена рекрутеров
	})
}

// @Summary Создание
// @Tags Справочник. Подразделение
// @Description Создание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department [post]
func (c *departmentDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.DepartmentData
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	id, err := departmentprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Справочник. Подразделение
// @Description Обновление
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{id} [put]
func (c *departmentDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.DepartmentData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = departmentprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Справочник. Подразделение
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DepartmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{id} [get]
func (c *departmentDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := departmentprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Справочник. Подразделение
// @Description Список
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DepartmentView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department [get]
func (c *departmentDictApiController) list(ctx *fiber.Ctx) error {
	list, err := departmentprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка подразделений")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Участники
// @Tags Справочник. Подразделение
// @Description Замена списка участников подразделения, они добавляются в новые заявки подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentMembersData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DepartmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{id}/participants [put]
func (c *departmentDictApiController) setParticipants(ctx *fiber.Ctx) error {
	return c.setMembers(ctx, models.MemberRoleParticipant)
}

// @Summary Рекрутеры
// @Tags Справочник. Подразделение
// @Description Замена списка рекрутеров подразделения, они добавляются в новые заявки подразделения
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentMembersData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DepartmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department/{id}/recruiters [put]
func (c *departmentDictApiController) setRecruiters(ctx *fiber.Ctx) error {
	return c.setMembers(ctx, models.MemberRoleRecruiter)
}

func (c *departmentDictApiController) setMembers(ctx *fiber.Ctx, role models.MemberRole) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.DepartmentMembersData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := departmentprovider.Instance.SetMembers(id, role, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка изменения состава подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
