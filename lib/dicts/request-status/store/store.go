package requeststatusstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RequestStatus) (id string, err error)
	GetByID(id string) (rec *dbmodels.RequestStatus, err error)
	GetByName(name string) (rec *dbmodels.RequestStatus, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.RequestStatus, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RequestStatus) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.RequestStatus, error) {
	rec := dbmodels.RequestStatus{}
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

func (i impl) GetByName(name string) (*dbmodels.RequestStatus, error) {
	rec := dbmodels.RequestStatus{}
	err := i.db.
		Where("name = ?", name).
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
		Model(&dbmodels.RequestStatus{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) List() (list []dbmodels.RequestStatus, err error) {
	list = []dbmodels.RequestStatus{}
	err = i.db.
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
