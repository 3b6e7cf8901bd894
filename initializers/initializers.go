package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"request-flow-backend/config"
	"request-flow-backend/fiberlog"
	departmentprovider "request-flow-backend/lib/dicts/department"
	departmentapproverprovider "request-flow-backend/lib/dicts/department-approver"
	requestfieldprovider "request-flow-backend/lib/dicts/request-field"
	requeststatusprovider "request-flow-backend/lib/dicts/request-status"
	requesttypeprovider "request-flow-backend/lib/dicts/request-type"
	stageprovider "request-flow-backend/lib/dicts/stage"
	workflowprovider "request-flow-backend/lib/dicts/workflow"
	xlsexport "request-flow-backend/lib/export/xls"
	"request-flow-backend/lib/notify"
	"request-flow-backend/lib/rbac"
	requesthandler "request-flow-backend/lib/request"
	requestcommentshandler "request-flow-backend/lib/request-comments"
	requesteventshandler "request-flow-backend/lib/request-events"
	statsworker "request-flow-backend/lib/request/stats-worker"
	usershandler "request-flow-backend/lib/users"
	connectionhub "request-flow-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	InitRedis(ctx)
	InitNats(ctx)
	connectionhub.Init()
	notify.NewHandler()
	xlsexport.NewHandler()
	rbac.NewHandler()
	usershandler.NewHandler()
	stageprovider.NewHandler()
	workflowprovider.NewHandler()
	departmentprovider.NewHandler()
	departmentapproverprovider.NewHandler()
	requestfieldprovider.NewHandler()
	requesttypeprovider.NewHandler()
	requeststatusprovider.NewHandler()
	requesthandler.NewHandler()
	requesteventshandler.NewHandler()
	requestcommentshandler.NewHandler()
	initPreload()
	statsworker.StartWorker(ctx)
}

// initPreload системные статусы и администратор из настроек
func initPreload() {
	if err := requeststatusprovider.Instance.EnsureCanonical(); err != nil {
		panic(err.Error())
	}
	if config.Conf.Admin.Email == "" {
		log.Warn("администратор не добавлен, отсутствует настройка ADMIN_EMAIL")
		return
	}
	if err := usershandler.Instance.EnsureAdmin(config.Conf.Admin.Email, config.Conf.Admin.Name); err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
	}
}
