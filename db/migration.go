package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "request-flow-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	// порядок важен: справочники раньше заявок, ссылающихся на них
	steps := []struct {
		name  string
		model interface{}
	}{
		{"User", &dbmodels.User{}},
		{"Stage", &dbmodels.Stage{}},
		{"Workflow", &dbmodels.Workflow{}},
		{"StageInWorkflow", &dbmodels.StageInWorkflow{}},
		{"Department", &dbmodels.Department{}},
		{"DepartmentMember", &dbmodels.DepartmentMember{}},
		{"DepartmentStageApprover", &dbmodels.DepartmentStageApprover{}},
		{"RequestField", &dbmodels.RequestField{}},
		{"RequestFieldOption", &dbmodels.RequestFieldOption{}},
		{"RequestType", &dbmodels.RequestType{}},
		{"RequestFieldInRequestType", &dbmodels.RequestFieldInRequestType{}},
		{"RequestStatus", &dbmodels.RequestStatus{}},
		{"Request", &dbmodels.Request{}},
		{"RequestMember", &dbmodels.RequestMember{}},
		{"RequestStageApprover", &dbmodels.RequestStageApprover{}},
		{"RequestFieldInRequest", &dbmodels.RequestFieldInRequest{}},
		{"RequestEvent", &dbmodels.RequestEvent{}},
		{"RequestComment", &dbmodels.RequestComment{}},
	}
	for _, step := range steps {
		if err := DB.AutoMigrate(step.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %v", step.name)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
