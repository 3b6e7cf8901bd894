package middleware

import (
	"github.com/gofiber/fiber/v2"
	authutils "request-flow-backend/lib/utils/auth-utils"
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
)

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

func GetPrincipal(ctx *fiber.Ctx) models.Principal {
	claims := authutils.GetClaims(ctx)
	principal := models.Principal{UserID: GetUserID(ctx)}
	if name, ok := claims["name"].(string); ok {
		principal.Name = name
	}
	if isAdmin, ok := claims["admin"].(bool); ok {
		principal.IsAdmin = isAdmin
	}
	return principal
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return GetPrincipal(ctx).Role()
}

func AdminRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetPrincipal(ctx).IsAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция доступна только администратору"))
		}
		return ctx.Next()
	}
}
