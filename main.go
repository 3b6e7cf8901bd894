package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/config"
	apiv1 "request-flow-backend/controllers/v1"
	"request-flow-backend/controllers/v1/dict"
	"request-flow-backend/db"
	"request-flow-backend/fiberlog"
	"request-flow-backend/initializers"
	"request-flow-backend/lib/metrics"
	"request-flow-backend/lib/ws"
	"request-flow-backend/middleware"
	apimodels "request-flow-backend/models/api"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // limit of 10MB
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	app.Get("/metrics", metrics.Handler())
	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := db.PingDB(); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(apimodels.NewError("БД недоступна"))
		}
		return ctx.JSON(apimodels.NewResponse(nil))
	})

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	app.Mount("/api/v1", apiV1)

	auth := secured()
	apiV1.Mount("/auth", auth)
	apiv1.InitAuthApiRouters(auth)

	users := secured()
	apiV1.Mount("/user", users)
	apiv1.InitUserApiRouters(users)

	//заявки
	requests := secured()
	apiV1.Mount("/request", requests)
	apiv1.InitRequestApiRouters(requests)
	apiv1.InitRequestTeamApiRouters(requests)
	apiv1.InitRequestEventsApiRouters(requests)

	//dict
	dicts := secured()
	apiV1.Mount("/dict", dicts)
	dict.InitStageDictApiRouters(dicts)
	dict.InitWorkflowDictApiRouters(dicts)
	dict.InitDepartmentDictApiRouters(dicts)
	dict.InitDepartmentApproverDictApiRouters(dicts)
	dict.InitRequestFieldDictApiRouters(dicts)
	dict.InitRequestTypeDictApiRouters(dicts)
	dict.InitRequestStatusDictApiRouters(dicts)

	//пуши
	wsApp := fiber.New()
	apiV1.Mount("/ws", wsApp)
	wsApp.Use(middleware.AuthorizationRequired())
	ws.InitWs(wsApp)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}

// secured группа маршрутов с проверкой токена и прав роли
func secured() *fiber.App {
	group := fiber.New()
	group.Use(middleware.AuthorizationRequired(), middleware.RbacMiddleware())
	return group
}
