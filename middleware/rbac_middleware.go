package middleware

import (
	"github.com/gofiber/fiber/v2"
	"request-flow-backend/lib/rbac"
	apimodels "request-flow-backend/models/api"
)

// RbacMiddleware проверка доступа к маршруту по роли, маршруты без правил пропускаются
func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		if userID == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("RBAC_FORBIDDEN"))
		}
		handler, found := rbac.Instance.GetRuleFunc(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}
		if !handler(userID, GetUserRole(ctx), ctx.Path()) {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("RBAC_FORBIDDEN"))
		}
		return ctx.Next()
	}
}
