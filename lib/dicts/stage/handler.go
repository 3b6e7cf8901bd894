package stageprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/db"
	stagestore "request-flow-backend/lib/dicts/stage/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	dictapimodels "request-flow-backend/models/api/dict"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.StageData) (id string, err error)
	Update(id string, request dictapimodels.StageData) error
	Get(id string) (item dictapimodels.StageView, err error)
	List() (list []dictapimodels.StageView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: stagestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store stagestore.Provider
}

func (i impl) Create(request dictapimodels.StageData) (id string, err error) {
	id, err = i.store.Create(dbmodels.Stage{Name: request.Name})
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания этапа")
	}
	log.
		WithField("stage_name", request.Name).
		WithField("rec_id", id).
		Info("создан этап согласования")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.StageData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения этапа")
	}
	if rec == nil {
		return models.ErrStageNotFound
	}
	err = i.store.Update(id, map[string]interface{}{"name": request.Name})
	if err != nil {
		return errors.Wrap(err, "ошибка обновления этапа")
	}
	log.WithField("rec_id", id).Info("обновлен этап согласования")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.StageView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.StageView{}, errors.Wrap(err, "ошибка получения этапа")
	}
	if rec == nil {
		return dictapimodels.StageView{}, models.ErrStageNotFound
	}
	return dictapimodels.StageConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.StageView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка этапов")
	}
	list = make([]dictapimodels.StageView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.StageConvert(rec))
	}
	return list, nil
}
