package departmentapproverprovider

import (
	"slices"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/db"
	departmentapproverstore "request-flow-backend/lib/dicts/department-approver/store"
	departmentstore "request-flow-backend/lib/dicts/department/store"
	stagestore "request-flow-backend/lib/dicts/stage/store"
	userstore "request-flow-backend/lib/users/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	dictapimodels "request-flow-backend/models/api/dict"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Upsert(request dictapimodels.DepartmentApproverData) (item dictapimodels.DepartmentApproverView, err error)
	Delete(id string) error
	List() (list []dictapimodels.DepartmentApproverView, err error)
	ListByDepartment(filter dictapimodels.DepartmentApproverFilter) (list []dictapimodels.DepartmentApproverView, err error)
	ResolveApprovers(departmentID, stageID string) (userIDs []string, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:           departmentapproverstore.NewInstance(db.DB),
		departmentStore: departmentstore.NewInstance(db.DB),
		stageStore:      stagestore.NewInstance(db.DB),
		userStore:       userstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"departmentStore", instance.departmentStore,
		"stageStore", instance.stageStore,
		"userStore", instance.userStore,
	)
	Instance = instance
}

type impl struct {
	store           departmentapproverstore.Provider
	departmentStore departmentstore.Provider
	stageStore      stagestore.Provider
	userStore       userstore.Provider
}

// Upsert повторное добавление той же тройки возвращает существующую запись
func (i impl) Upsert(request dictapimodels.DepartmentApproverData) (item dictapimodels.DepartmentApproverView, err error) {
	logger := log.
		WithField("department_id", request.DepartmentID).
		WithField("stage_id", request.StageID).
		WithField("approver_id", request.UserID)
	if err = i.checkRefs(request); err != nil {
		return dictapimodels.DepartmentApproverView{}, err
	}
	rec, err := i.store.Find(request.DepartmentID, request.StageID, request.UserID)
	if err != nil {
		return dictapimodels.DepartmentApproverView{}, errors.Wrap(err, "ошибка поиска согласующего подразделения")
	}
	id := ""
	if rec != nil {
		id = rec.ID
	} else {
		id, err = i.store.Create(dbmodels.DepartmentStageApprover{
			DepartmentID: request.DepartmentID,
			StageID:      request.StageID,
			UserID:       request.UserID,
		})
		if err != nil {
			return dictapimodels.DepartmentApproverView{}, errors.Wrap(err, "ошибка добавления согласующего подразделения")
		}
		logger.WithField("rec_id", id).Info("добавлен согласующий подразделения")
	}
	rec, err = i.store.GetByID(id)
	if err != nil {
		return dictapimodels.DepartmentApproverView{}, errors.Wrap(err, "ошибка получения согласующего подразделения")
	}
	if rec == nil {
		return dictapimodels.DepartmentApproverView{}, models.ErrApproverNotFound
	}
	return dictapimodels.DepartmentApproverConvert(*rec), nil
}

// Delete копии согласующих в созданных заявках не меняются
func (i impl) Delete(id string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения согласующего подразделения")
	}
	if rec == nil {
		return models.ErrApproverNotFound
	}
	if err = i.store.Delete(id); err != nil {
		return errors.Wrap(err, "ошибка удаления согласующего подразделения")
	}
	log.
		WithField("rec_id", id).
		WithField("department_id", rec.DepartmentID).
		WithField("stage_id", rec.StageID).
		Info("удален согласующий подразделения")
	return nil
}

func (i impl) List() (list []dictapimodels.DepartmentApproverView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения согласующих подразделений")
	}
	return convertList(recList), nil
}

func (i impl) ListByDepartment(filter dictapimodels.DepartmentApproverFilter) (list []dictapimodels.DepartmentApproverView, err error) {
	recList, err := i.store.ListByDepartment(filter.DepartmentID, filter.StageIDs)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения согласующих подразделения")
	}
	return convertList(recList), nil
}

// ResolveApprovers пользователи, согласующие этап для подразделения, без повторов
func (i impl) ResolveApprovers(departmentID, stageID string) (userIDs []string, err error) {
	recList, err := i.store.ListByDepartment(departmentID, []string{stageID})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения согласующих подразделения")
	}
	userIDs = []string{}
	for _, rec := range recList {
		if !slices.Contains(userIDs, rec.UserID) {
			userIDs = append(userIDs, rec.UserID)
		}
	}
	return userIDs, nil
}

func (i impl) checkRefs(request dictapimodels.DepartmentApproverData) error {
	department, err := i.departmentStore.GetByID(request.DepartmentID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения подразделения")
	}
	if department == nil {
		return models.ErrDepartmentNotFound
	}
	stage, err := i.stageStore.GetByID(request.StageID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения этапа")
	}
	if stage == nil {
		return models.ErrStageNotFound
	}
	user, err := i.userStore.GetByID(request.UserID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения пользователя")
	}
	if user == nil {
		return models.ErrUserNotFound
	}
	return nil
}

func convertList(recList []dbmodels.DepartmentStageApprover) []dictapimodels.DepartmentApproverView {
	result := make([]dictapimodels.DepartmentApproverView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.DepartmentApproverConvert(rec))
	}
	return result
}
