package workflowstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Workflow) (id string, err error)
	GetByID(id string) (rec *dbmodels.Workflow, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.Workflow, err error)
	ListStages(workflowID string) (list []dbmodels.StageInWorkflow, err error)
	ReplaceStages(workflowID string, links []dbmodels.StageInWorkflow) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Workflow) (id string, err error) {
	err = i.db.
		Omit("Stages").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Workflow, error) {
	rec := dbmodels.Workflow{}
	err := i.db.
		Where("id = ?", id).
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Preload("Stages.Stage").
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
		Model(&dbmodels.Workflow{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
}

func (i impl) List() (list []dbmodels.Workflow, err error) {
	list = []dbmodels.Workflow{}
	err = i.db.
		Preload("Stages", func(db *gorm.DB) *gorm.DB {
			return db.Order(`"order" ASC`)
		}).
		Preload("Stages.Stage").
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListStages(workflowID string) (list []dbmodels.StageInWorkflow, err error) {
	list = []dbmodels.StageInWorkflow{}
	err = i.db.
		Where("workflow_id = ?", workflowID).
		Preload("Stage").
		Order(`"order" ASC`).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ReplaceStages удаляет все связи процесса и создаёт переданные заново
func (i impl) ReplaceStages(workflowID string, links []dbmodels.StageInWorkflow) error {
	err := i.db.
		Where("workflow_id = ?", workflowID).
		Delete(&dbmodels.StageInWorkflow{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка удаления этапов процесса")
	}
	if len(links) == 0 {
		return nil
	}
	err = i.db.
		Omit("Stage").
		Create(&links).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения этапов процесса")
	}
	return nil
}
