package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"request-flow-backend/config"
)

func GetToken(userID, name string, isAdmin bool) (tokenString string, err error) {
	return SignToken(config.Conf.Auth.JWTSecret, time.Second*time.Duration(config.Conf.Auth.JWTExpireInSec), userID, name, isAdmin)
}

// SignToken токен в формате провайдера аутентификации: sub, name, admin
func SignToken(secret string, ttl time.Duration, userID, name string, isAdmin bool) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name":  name,
		"sub":   userID,
		"admin": isAdmin,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}
