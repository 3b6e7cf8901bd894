package requesteventstore

import (
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

// Provider журнал действий по заявке, только добавление и чтение
type Provider interface {
	Create(rec dbmodels.RequestEvent) (id string, err error)
	List(requestID string) (list []dbmodels.RequestEvent, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RequestEvent) (id string, err error) {
	err = i.db.
		Omit("User").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(requestID string) (list []dbmodels.RequestEvent, err error) {
	list = []dbmodels.RequestEvent{}
	err = i.db.
		Where("request_id = ?", requestID).
		Preload("User").
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
