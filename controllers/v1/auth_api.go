package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/controllers"
	"request-flow-backend/lib/rbac"
	"request-flow-backend/middleware"
	apimodels "request-flow-backend/models/api"
	authapimodels "request-flow-backend/models/api/auth"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Get("me", controller.me)
	app.Get("permissions", controller.permissions)
}

// @Summary Текущий пользователь
// @Tags Аутентификация пользователей
// @Description Данные пользователя из токена
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=authapimodels.MeView}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/auth/me [get]
func (c *authApiController) me(ctx *fiber.Ctx) error {
	principal := middleware.GetPrincipal(ctx)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(authapimodels.MeConvert(principal)))
}

// @Summary Права
// @Tags Аутентификация пользователей
// @Description Права роли текущего пользователя по модулям
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=authapimodels.PermissionsView}
// @Failure 401 {object} apimodels.Response
// @router /api/v1/auth/permissions [get]
func (c *authApiController) permissions(ctx *fiber.Ctx) error {
	role := middleware.GetUserRole(ctx)
	resp := authapimodels.PermissionsView{
		Role:        role,
		RoleName:    role.ToHuman(),
		Permissions: rbac.Instance.GetPermissions(role),
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
