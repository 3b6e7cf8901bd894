package requesttypestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.RequestType) (id string, err error)
	GetByID(id string) (rec *dbmodels.RequestType, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.RequestType, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RequestType) (id string, err error) {
	err = i.db.
		Omit("Workflow", "Fields").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.RequestType, error) {
	rec := dbmodels.RequestType{}
	err := i.db.
		Where("id = ?", id).
		Preload("Workflow").
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Preload("Fields.RequestField.Options").
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
		Model(&dbmodels.RequestType{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) List() (list []dbmodels.RequestType, err error) {
	list = []dbmodels.RequestType{}
	err = i.db.
		Preload("Workflow").
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
