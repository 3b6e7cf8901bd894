package requestfieldprovider

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/db"
	requestfieldstore "request-flow-backend/lib/dicts/request-field/store"
	requesttypestore "request-flow-backend/lib/dicts/request-type/store"
	initchecker "request-flow-backend/lib/utils/init-checker"
	"request-flow-backend/models"
	dictapimodels "request-flow-backend/models/api/dict"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(request dictapimodels.RequestFieldData) (id string, err error)
	Update(id string, request dictapimodels.RequestFieldData) error
	Get(id string) (item dictapimodels.RequestFieldView, err error)
	List() (list []dictapimodels.RequestFieldView, err error)
	AddOption(fieldID string, request dictapimodels.RequestFieldOptionData) (id string, err error)
	UpdateOption(fieldID, optionID string, request dictapimodels.RequestFieldOptionData) error
	DeleteOption(fieldID, optionID string) error
	Link(fieldID string, request dictapimodels.RequestFieldLinkData) error
	Unlink(fieldID, requestTypeID string) error
	ListByRequestType(requestTypeID string) (list []dictapimodels.RequestTypeFieldView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:            requestfieldstore.NewInstance(db.DB),
		requestTypeStore: requesttypestore.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
		"requestTypeStore", instance.requestTypeStore,
	)
	Instance = instance
}

type impl struct {
	store            requestfieldstore.Provider
	requestTypeStore requesttypestore.Provider
}

func (i impl) Create(request dictapimodels.RequestFieldData) (id string, err error) {
	id, err = i.store.Create(dbmodels.RequestField{
		Name: request.Name,
		Type: request.Type,
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка создания поля заявки")
	}
	log.
		WithField("rec_id", id).
		WithField("field_type", request.Type).
		Info("создано поле заявки")
	return id, nil
}

func (i impl) Update(id string, request dictapimodels.RequestFieldData) error {
	if _, err := i.getField(id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name": request.Name,
		"type": request.Type,
	}
	if err := i.store.Update(id, updMap); err != nil {
		return errors.Wrap(err, "ошибка обновления поля заявки")
	}
	log.WithField("rec_id", id).Info("обновлено поле заявки")
	return nil
}

func (i impl) Get(id string) (item dictapimodels.RequestFieldView, err error) {
	rec, err := i.getField(id)
	if err != nil {
		return dictapimodels.RequestFieldView{}, err
	}
	return dictapimodels.RequestFieldConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.RequestFieldView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка полей заявки")
	}
	list = make([]dictapimodels.RequestFieldView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.RequestFieldConvert(rec))
	}
	return list, nil
}

func (i impl) AddOption(fieldID string, request dictapimodels.RequestFieldOptionData) (id string, err error) {
	rec, err := i.getField(fieldID)
	if err != nil {
		return "", err
	}
	if rec.Type != models.FieldTypeSelect {
		return "", models.ErrOptionsNotSupported
	}
	id, err = i.store.CreateOption(dbmodels.RequestFieldOption{
		RequestFieldID: fieldID,
		Name:           request.Name,
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка добавления варианта значения")
	}
	log.
		WithField("field_id", fieldID).
		WithField("rec_id", id).
		Info("добавлен вариант значения поля")
	return id, nil
}

func (i impl) UpdateOption(fieldID, optionID string, request dictapimodels.RequestFieldOptionData) error {
	if _, err := i.getOption(fieldID, optionID); err != nil {
		return err
	}
	if err := i.store.UpdateOption(optionID, map[string]interface{}{"name": request.Name}); err != nil {
		return errors.Wrap(err, "ошибка обновления варианта значения")
	}
	log.
		WithField("field_id", fieldID).
		WithField("rec_id", optionID).
		Info("обновлен вариант значения поля")
	return nil
}

func (i impl) DeleteOption(fieldID, optionID string) error {
	if _, err := i.getOption(fieldID, optionID); err != nil {
		return err
	}
	if err := i.store.DeleteOption(optionID); err != nil {
		return errors.Wrap(err, "ошибка удаления варианта значения")
	}
	log.
		WithField("field_id", fieldID).
		WithField("rec_id", optionID).
		Info("удален вариант значения поля")
	return nil
}

// Link добавляет поле в тип заявки, для уже привязанного поля меняется порядок
func (i impl) Link(fieldID string, request dictapimodels.RequestFieldLinkData) error {
	if _, err := i.getField(fieldID); err != nil {
		return err
	}
	requestType, err := i.requestTypeStore.GetByID(request.RequestTypeID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения типа заявки")
	}
	if requestType == nil {
		return models.ErrRequestTypeNotFound
	}
	err = i.store.LinkToRequestType(dbmodels.RequestFieldInRequestType{
		RequestTypeID:  request.RequestTypeID,
		RequestFieldID: fieldID,
		Order:          request.Order,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка привязки поля к типу заявки")
	}
	log.
		WithField("field_id", fieldID).
		WithField("request_type_id", request.RequestTypeID).
		WithField("order", request.Order).
		Info("поле привязано к типу заявки")
	return nil
}

func (i impl) Unlink(fieldID, requestTypeID string) error {
	if err := i.store.UnlinkFromRequestType(requestTypeID, fieldID); err != nil {
		return errors.Wrap(err, "ошибка отвязки поля от типа заявки")
	}
	log.
		WithField("field_id", fieldID).
		WithField("request_type_id", requestTypeID).
		Info("поле отвязано от типа заявки")
	return nil
}

func (i impl) ListByRequestType(requestTypeID string) (list []dictapimodels.RequestTypeFieldView, err error) {
	recList, err := i.store.ListByRequestType(requestTypeID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения полей типа заявки")
	}
	list = make([]dictapimodels.RequestTypeFieldView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, dictapimodels.RequestTypeFieldConvert(rec))
	}
	return list, nil
}

func (i impl) getField(id string) (*dbmodels.RequestField, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения поля заявки")
	}
	if rec == nil {
		return nil, models.ErrFieldNotFound
	}
	return rec, nil
}

func (i impl) getOption(fieldID, optionID string) (*dbmodels.RequestFieldOption, error) {
	rec, err := i.store.GetOption(optionID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения варианта значения")
	}
	if rec == nil || rec.RequestFieldID != fieldID {
		return nil, models.ErrFieldOptionNotFound
	}
	return rec, nil
}
