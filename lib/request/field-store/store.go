package fieldvaluestore

import (
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	CreateMany(list []dbmodels.RequestFieldInRequest) error
	UpdateValue(id, value string) error
	List(requestID string) (list []dbmodels.RequestFieldInRequest, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateMany(list []dbmodels.RequestFieldInRequest) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Omit("RequestField").
		Create(&list).
		Error
}

func (i impl) UpdateValue(id, value string) error {
	return i.db.
		Model(&dbmodels.RequestFieldInRequest{}).
		Where("id = ?", id).
		Update("value", value).
		Error
}

func (i impl) List(requestID string) (list []dbmodels.RequestFieldInRequest, err error) {
	list = []dbmodels.RequestFieldInRequest{}
	err = i.db.
		Where("request_id = ?", requestID).
		Preload("RequestField.Options").
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
