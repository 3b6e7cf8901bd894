package requestfieldstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RequestField) (id string, err error)
	GetByID(id string) (rec *dbmodels.RequestField, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.RequestField, err error)
	CreateOption(rec dbmodels.RequestFieldOption) (id string, err error)
	GetOption(id string) (rec *dbmodels.RequestFieldOption, err error)
	UpdateOption(id string, updMap map[string]interface{}) error
	DeleteOption(id string) error
	LinkToRequestType(rec dbmodels.RequestFieldInRequestType) error
	UnlinkFromRequestType(requestTypeID, fieldID string) error
	ListByRequestType(requestTypeID string) (list []dbmodels.RequestFieldInRequestType, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RequestField) (id string, err error) {
	err = i.db.
		Omit("Options").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.RequestField, error) {
	rec := dbmodels.RequestField{}
	err := i.db.
		Where("id = ?", id).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.RequestField{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) List() (list []dbmodels.RequestField, err error) {
	list = []dbmodels.RequestField{}
	err = i.db.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CreateOption(rec dbmodels.RequestFieldOption) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetOption(id string) (*dbmodels.RequestFieldOption, error) {
	rec := dbmodels.RequestFieldOption{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) UpdateOption(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.RequestFieldOption{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) DeleteOption(id string) error {
	rec := dbmodels.RequestFieldOption{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

// LinkToRequestType добавляет поле в тип заявки или меняет его порядок
func (i impl) LinkToRequestType(rec dbmodels.RequestFieldInRequestType) error {
	existing := dbmodels.RequestFieldInRequestType{}
	err := i.db.
		Where("request_type_id = ?", rec.RequestTypeID).
		Where("request_field_id = ?", rec.RequestFieldID).
		First(&existing).
		Error
	if err == nil {
		return i.db.
			Model(&dbmodels.RequestFieldInRequestType{}).
			Where("id = ?", existing.ID).
			Update("order", rec.Order).
			Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return i.db.
		Omit("RequestField").
		Create(&rec).
		Error
}

func (i impl) UnlinkFromRequestType(requestTypeID, fieldID string) error {
	return i.db.
		Where("request_type_id = ?", requestTypeID).
		Where("request_field_id = ?", fieldID).
		Delete(&dbmodels.RequestFieldInRequestType{}).
		Error
}

func (i impl) ListByRequestType(requestTypeID string) (list []dbmodels.RequestFieldInRequestType, err error) {
	list = []dbmodels.RequestFieldInRequestType{}
	err = i.db.
		Where("request_type_id = ?", requestTypeID).
		Preload("RequestField.Options").
		Order(`"order" ASC`).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
