package dict

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	workflowprovider "request-flow-backend/lib/dicts/workflow"
	"request-flow-backend/middleware"
	apimodels "request-flow-backend/models/api"
	dictapimodels "request-flow-backend/models/api/dict"
)

type workflowDictApiController struct {
	controllers.BaseAPIController
}

func InitWorkflowDictApiRouters(app *fiber.App) {
	controller := workflowDictApiController{}
	app.Route("workflow", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Use(middleware.AdminRequired())
		router.Post("", controller.create)
		router.Put(":id", controller.update)
	})
}

// @Summary Создание
// @Tags Справочник. Процесс согласования
// @Description Создание, порядок этапов равен позиции в списке stage_ids
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.WorkflowData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/workflow [post]
func (c *workflowDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.WorkflowData
	if err := c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	id, err := workflowprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания процесса согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Справочник. Процесс согласования
// @Description Обновление с полной заменой списка этапов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.WorkflowData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/workflow/{id} [put]
func (c *workflowDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	var payload dictapimodels.WorkflowData
	if err = c.ParseAndValidate(ctx, &payload); err != nil {
		return c.BadRequest(ctx, err)
	}
	if err = workflowprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления процесса согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Справочник. Процесс согласования
// @Description Процесс с этапами по порядку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.WorkflowView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/workflow/{id} [get]
func (c *workflowDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.BadRequest(ctx, err)
	}
	resp, err := workflowprovider.Instance.Get(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения процесса согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Справочник. Процесс согласования
// @Description Список
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.WorkflowView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/workflow [get]
func (c *workflowDictApiController) list(ctx *fiber.Ctx) error {
	list, err := workflowprovider.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка процессов согласования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
