package stageapproverstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RequestStageApprover) (id string, err error)
	CreateMany(list []dbmodels.RequestStageApprover) error
	GetByID(requestID, id string) (rec *dbmodels.RequestStageApprover, err error)
	Delete(requestID, id string) error
	List(requestID string) (list []dbmodels.RequestStageApprover, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RequestStageApprover) (id string, err error) {
	err = i.db.
		Omit("User", "Stage").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) CreateMany(list []dbmodels.RequestStageApprover) error {
	if len(list) == 0 {
		return nil
	}
	return i.db.
		Omit("User", "Stage").
		Create(&list).
		Error
}

func (i impl) GetByID(requestID, id string) (*dbmodels.RequestStageApprover, error) {
	rec := dbmodels.RequestStageApprover{}
	err := i.db.
		Where("id = ?", id).
		Where("request_id = ?", requestID).
		Preload("User").
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

func (i impl) Delete(requestID, id string) error {
	return i.db.
		Where("id = ?", id).
		Where("request_id = ?", requestID).
		Delete(&dbmodels.RequestStageApprover{}).
		Error
}

func (i impl) List(requestID string) (list []dbmodels.RequestStageApprover, err error) {
	list = []dbmodels.RequestStageApprover{}
	err = i.db.
		Where("request_id = ?", requestID).
		Preload("User").
		Preload("Stage").
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
