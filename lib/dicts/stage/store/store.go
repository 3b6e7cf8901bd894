package stagestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Stage) (id string, err error)
	GetByID(id string) (rec *dbmodels.Stage, err error)
	GetByIDs(ids []string) (list []dbmodels.Stage, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.Stage, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Stage) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Stage, error) {
	rec := dbmodels.Stage{}
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

func (i impl) GetByIDs(ids []string) (list []dbmodels.Stage, err error) {
	list = []dbmodels.Stage{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id in (?)", ids).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	return i.db.
		Model(&dbmodels.Stage{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) List() (list []dbmodels.Stage, err error) {
	list = []dbmodels.Stage{}
	err = i.db.
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
