package requesttypeprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/db"
	requesttypestore "request-flow-backend/lib/dicts/request-type/store"
	workflowstore "request-flow-backend/lib/dicts/workflow/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	dictapimodels "request-flow-backend/models/api/dict"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.RequestTypeData) (id string, err error)
	Update(id string, request dictapimodels.RequestTypeData) error
	Get(id string) (item dictapimodels.RequestTypeView, err error)
	List() (list []dictapimodels.RequestTypeView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         requesttypestore.NewInstance(db.DB),
		workflowStore: workflowstore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"workflowStore", instance.workflowStore,
	)
	Instance = instance
}

type impl struct {
	store         requesttypestore.Provider
	workflowStore workflowstore.Provider
}

func (i impl) Create(request dictapimodels.RequestTypeData) (id string, err error) {
	if err = i.checkWorkflow(request.WorkflowID); err != nil {
		return "", err
	}
	id, err = i.store.Create(dbmodels.RequestType{
		Name:        request.Name,
		Description: request.Description,
		WorkflowID:  request.WorkflowID,
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания типа заявки")
	}
	log.
		WithField("rec_id", id).
		WithField("workflow_id", request.WorkflowID).
		Info("создан тип заявки")
	return id, nil
}

// Update смена процесса согласования не затрагивает уже созданные заявки
func (i impl) Update(id string, request dictapimodels.RequestTypeData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения типа заявки")
	}
	if rec == nil {
		return models.ErrRequestTypeNotFound
	}
	if err = i.checkWorkflow(request.WorkflowID); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name":        request.Name,
		"description": request.Description,
		"workflow_id": request.WorkflowID,
	}
	if err = i.store.Update(id, updMap); err != nil {
		return errors.Wrap(err, "ошибка обновления типа заявки")
	}
	log.WithField("rec_id", id).Info("обновлен тип заявки")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.RequestTypeView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.RequestTypeView{}, errors.Wrap(err, "ошибка получения типа заявки")
	}
	if rec == nil {
		return dictapimodels.RequestTypeView{}, models.ErrRequestTypeNotFound
	}
	return dictapimodels.RequestTypeConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.RequestTypeView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка типов заявок")
	}
	list = make([]dictapimodels.RequestTypeView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.RequestTypeConvert(rec))
	}
	return list, nil
}

func (i impl) checkWorkflow(workflowID string) error {
	rec, err := i.workflowStore.GetByID(workflowID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения процесса согласования")
	}
	if rec == nil {
		return models.ErrWorkflowNotFound
	}
	return nil
}
