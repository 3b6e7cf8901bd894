package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	wsclient "request-flow-backend/lib/ws/client"
	connectionhub "request-flow-backend/lib/ws/hub/connection-hub"
	"request-flow-backend/middleware"
	apimodels "request-flow-backend/models/api"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Status(fiber.StatusUpgradeRequired).JSON(apimodels.NewError("ожидается websocket соединение"))
		}
		ctx.Locals("userID", middleware.GetUserID(ctx))
		return ctx.Next()
	})
	app.Get("/", websocket.New(pushHandler))
}

// @Summary Пуши по заявкам
// @Tags Websocket
// @Description Сообщения о переходах заявок, в которых участвует пользователь
// @Param   token		query		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401
// @Failure 426
// @router /api/v1/ws [get]
func pushHandler(c *websocket.Conn) {
	userID, _ := c.Locals("userID").(string)
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer connectionhub.Instance.DeleteClient(userID, c)
	client.Dispatch()
}
