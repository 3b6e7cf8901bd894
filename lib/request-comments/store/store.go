package requestcommentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RequestComment) (id string, err error)
	GetByID(requestID, id string) (rec *dbmodels.RequestComment, err error)
	Update(requestID, id string, updMap map[string]interface{}) error
	Delete(requestID, id string) error
	List(requestID string) (list []dbmodels.RequestComment, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RequestComment) (id string, err error) {
	err = i.db.
		Omit("User").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(requestID, id string) (*dbmodels.RequestComment, error) {
	rec := dbmodels.RequestComment{}
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

func (i impl) Update(requestID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.RequestComment{}).
		Where("id = ?", id).
		Where("request_id = ?", requestID).
		Updates(updMap).
		Error
}

func (i impl) Delete(requestID, id string) error {
	return i.db.
		Where("id = ?", id).
		Where("request_id = ?", requestID).
		Delete(&dbmodels.RequestComment{}).
		Error
}

func (i impl) List(requestID string) (list []dbmodels.RequestComment, err error) {
	list = []dbmodels.RequestComment{}
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
