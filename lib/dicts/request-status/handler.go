package requeststatusprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/db"
	requeststatusstore "request-flow-backend/lib/dicts/request-status/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	dictapimodels "request-flow-backend/models/api/dict"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.RequestStatusData) (id string, err error)
	Update(id string, request dictapimodels.RequestStatusData) error
	List() (list []dictapimodels.RequestStatusView, err error)
	EnsureCanonical() error
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithStore(requeststatusstore.NewInstance(db.DB))
}

func NewHandlerWithStore(store requeststatusstore.Provider) Provider {
	instance := impl{
		store: store,
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	return instance
}

type impl struct {
	store requeststatusstore.Provider
}

func (i impl) Create(request dictapimodels.RequestStatusData) (id string, err error) {
	id, err = i.store.Create(dbmodels.RequestStatus{Name: request.Name})
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания статуса заявки")
	}
	log.
		WithField("rec_id", id).
		WithField("status_name", request.Name).
		Info("создан статус заявки")
	return id, nil
}

// Update системные статусы ищутся по имени, поэтому их имя не меняется
func (i impl) Update(id string, request dictapimodels.RequestStatusData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения статуса заявки")
	}
	if rec == nil {
		return models.ErrStatusNotFound
	}
	if rec.Name == request.Name {
		return nil
	}
	if models.IsCanonicalRequestStatus(rec.Name) {
		return models.ErrCanonicalStatusRename
	}
	if err = i.store.Update(id, map[string]interface{}{"name": request.Name}); err != nil {
		return errors.Wrap(err, "ошибка обновления статуса заявки")
	}
	log.
		WithField("rec_id", id).
		WithField("status_name", request.Name).
		Info("обновлен статус заявки")
	return nil
}

func (i impl) List() (list []dictapimodels.RequestStatusView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка статусов заявок")
	}
	list = make([]dictapimodels.RequestStatusView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.RequestStatusConvert(rec))
	}
	return list, nil
}

// EnsureCanonical создает отсутствующие системные статусы
func (i impl) EnsureCanonical() error {
	for _, name := range models.CanonicalRequestStatuses {
		rec, err := i.store.GetByName(name)
		if err != nil {
			return errors.Wrapf(err, "ошибка получения статуса %v", name)
		}
		if rec != nil {
			continue
		}
		if _, err = i.Create(dictapimodels.RequestStatusData{Name: name}); err != nil {
			return err
		}
	}
	return nil
}
