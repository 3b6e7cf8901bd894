package dict

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	departmentapproverprovider "request-flow-backend/lib/dicts/department-approver"
	"request-flow-backend/middleware"
	apimodels "request-flow-backend/models/api"
	dictapimodels "request-flow-backend/models/api/dict"
)

type departmentApproverDictApiController struct {
	controllers.BaseAPIController
}

func InitDepartmentApproverDictApiRouters(app *fiber.App) {
	controller := departmentApproverDictApiController{}
	app.Route("department_approver", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("list", controller.listByDepartment)
		router.Use(middleware.AdminRequired())
		router.Put("", controller.upsert)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Сохранение
// @Tags Справочник. Согласующие подразделения
// @Description Назначение согласующего на этап для подразделения, повторное назначение ничего не меняет
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentApproverData	true	"request body"
// @Success 200 {object} apimodels.Response{data=dictapimodels.DepartmentApproverView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department_approver [put]
func (c *departmentApproverDictApiController) upsert(ctx *fiber.Ctx) error {
	var payload dictapimodels.DepartmentApproverData
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := departmentapproverprovider.Instance.Upsert(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка сохранения согласующего подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Справочник. Согласующие подразделения
// @Description Удаление, на уже созданные заявки не влияет
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department_approver/{id} [delete]
func (c *departmentApproverDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = departmentapproverprovider.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления согласующего подразделения")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Список
// @Tags Справочник. Согласующие подразделения
// @Description Список
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DepartmentApproverView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department_approver [get]
func (c *departmentApproverDictApiController) list(ctx *fiber.Ctx) error {
	list, err := departmentapproverprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка согласующих")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Список по подразделению
// @Tags Справочник. Согласующие подразделения
// @Description Согласующие подразделения, с отбором по этапам
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.DepartmentApproverFilter	true	"request body"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.DepartmentApproverView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/department_approver/list [post]
func (c *departmentApproverDictApiController) listByDepartment(ctx *fiber.Ctx) error {
	var payload dictapimodels.DepartmentApproverFilter
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	list, err := departmentapproverprovider.Instance.ListByDepartment(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка согласующих")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
