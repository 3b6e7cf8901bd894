package deptapproverstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.DepartmentStageApprover) (id string, err error)
	GetByID(id string) (rec *dbmodels.DepartmentStageApprover, err error)
	Find(departmentID, stageID, userID string) (rec *dbmodels.DepartmentStageApprover, err error)
	Delete(id string) error
	List() (list []dbmodels.DepartmentStageApprover, err error)
	ListByDepartment(departmentID string, stageIDs []string) (list []dbmodels.DepartmentStageApprover, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DepartmentStageApprover) (id string, err error) {
	err = i.db.
		Omit("User", "Stage").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.DepartmentStageApprover, error) {
	rec := dbmodels.DepartmentStageApprover{}
	err := i.db.
		Where("id = ?", id).
		Preload("User").
		Preload("Stage").
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

func (i impl) Find(departmentID, stageID, userID string) (*dbmodels.DepartmentStageApprover, error) {
	rec := dbmodels.DepartmentStageApprover{}
	err := i.db.
		Where("department_id = ?", departmentID).
		Where("stage_id = ?", stageID).
		Where("user_id = ?", userID).
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

func (i impl) Delete(id string) error {
	rec := dbmodels.DepartmentStageApprover{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Delete(&rec).
		Error
}

func (i impl) List() (list []dbmodels.DepartmentStageApprover, err error) {
	list = []dbmodels.DepartmentStageApprover{}
	err = i.db.
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

// ListByDepartment настройка согласующих подразделения, при пустом stageIDs по всем этапам
func (i impl) ListByDepartment(departmentID string, stageIDs []string) (list []dbmodels.DepartmentStageApprover, err error) {
	list = []dbmodels.DepartmentStageApprover{}
	tx := i.db.
		Where("department_id = ?", departmentID)
	if len(stageIDs) != 0 {
		tx = tx.Where("stage_id in (?)", stageIDs)
	}
	err = tx.
		Preload("User").
		Order("created_at ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
