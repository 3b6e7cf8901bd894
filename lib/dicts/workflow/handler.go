package workflowprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"request-flow-backend/db"
	stagestore "request-flow-backend/lib/dicts/stage/store"
	workflowstore "request-flow-backend/lib/dicts/workflow/store"
	requestflow "request-flow-backend/lib/request/flow"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	dictapimodels "request-flow-backend/models/api/dict"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.WorkflowData) (id string, err error)
	Update(id string, request dictapimodels.WorkflowData) error
	Get(id string) (item dictapimodels.WorkflowView, err error)
	List() (list []dictapimodels.WorkflowView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithTx(db.DB)
}

func NewHandlerWithTx(tx *gorm.DB) Provider {
	instance := impl{
		store:      workflowstore.NewInstance(tx),
		stageStore: stagestore.NewInstance(tx),
		tx:         tx,
	}
	initchecker.CheckInit(
		"store", instance.store,
		"stageStore", instance.stageStore,
	)
	return instance
}

type impl struct {
	store      workflowstore.Provider
	stageStore stagestore.Provider
	tx         *gorm.DB
}

func (i impl) Create(request dictapimodels.WorkflowData) (id string, err error) {
	err = i.tx.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		if err := txHandler.checkStages(request.StageIDs); err != nil {
			return err
		}
		id, err = txHandler.store.Create(dbmodels.Workflow{Name: request.Name})
		if err != nil {
			return errors.Wrap(err, "ошибка создания процесса согласования")
		}
		return txHandler.replaceStages(id, request.StageIDs)
	})
	if err != nil {
		return "", err
	}
	log.
		WithField("workflow_name", request.Name).
		WithField("rec_id", id).
		WithField("stages", len(request.StageIDs)).
		Info("создан процесс согласования")
	return id, nil
}

// Update заменяет список этапов целиком
func (i impl) Update(id string, request dictapimodels.WorkflowData) error {
	err := i.tx.Transaction(func(tx *gorm.DB) error {
		txHandler := NewHandlerWithTx(tx).(impl)
		rec, err := txHandler.store.GetByID(id)
		if err != nil {
			return errors.Wrap(err, "ошибка получения процесса согласования")
		}
		if rec == nil {
			return models.ErrWorkflowNotFound
		}
		if err = txHandler.checkStages(request.StageIDs); err != nil {
			return err
		}
		if err = txHandler.store.Update(id, map[string]interface{}{"name": request.Name}); err != nil {
			return errors.Wrap(err, "ошибка обновления процесса согласования")
		}
		return txHandler.replaceStages(id, request.StageIDs)
	})
	if err != nil {
		return err
	}
	log.
		WithField("rec_id", id).
		WithField("stages", len(request.StageIDs)).
		Info("обновлен процесс согласования")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.WorkflowView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.WorkflowView{}, errors.Wrap(err, "ошибка получения процесса согласования")
	}
	if rec == nil {
		return dictapimodels.WorkflowView{}, models.ErrWorkflowNotFound
	}
	return dictapimodels.WorkflowConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.WorkflowView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка процессов согласования")
	}
	list = make([]dictapimodels.WorkflowView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.WorkflowConvert(rec))
	}
	return list, nil
}

func (i impl) checkStages(stageIDs []string) error {
	if _, err := requestflow.BuildStageLinks("", stageIDs); err != nil {
		return err
	}
	stages, err := i.stageStore.GetByIDs(stageIDs)
	if err != nil {
		return errors.Wrap(err, "ошибка получения этапов")
	}
	if len(stages) != len(stageIDs) {
		return models.ErrStageNotFound
	}
	return nil
}

func (i impl) replaceStages(workflowID string, stageIDs []string) error {
	links, err := requestflow.BuildStageLinks(workflowID, stageIDs)
	if err != nil {
		return err
	}
	if err = i.store.ReplaceStages(workflowID, links); err != nil {
		return errors.Wrap(err, "ошибка сохранения этапов процесса согласования")
	}
	return nil
}
