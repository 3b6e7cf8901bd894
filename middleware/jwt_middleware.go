package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"request-flow-backend/config"
	apimodels "request-flow-backend/models/api"
)

// AuthorizationRequired токен берётся из заголовка "Authorization: Bearer <jwt>", для websocket из параметра token
func AuthorizationRequired() fiber.Handler {
	return authorization(config.Conf.Auth.JWTSecret)
}

func authorization(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims:      jwt.MapClaims{},
		TokenLookup: "header:Authorization,query:token",
		AuthScheme:  "Bearer",
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(secret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}
