package departmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"request-flow-backend/models"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Department) (id string, err error)
	GetByID(id string) (rec *dbmodels.Department, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.Department, err error)
	ListMembers(departmentID string) (list []dbmodels.DepartmentMember, err error)
	ReplaceMembers(departmentID string, role models.MemberRole, userIDs []string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Department) (id string, err error) {
	err = i.isUnique("", rec.Name)
	if err != nil {
		return "", err
	}
	err = i.db.
		Omit("Members").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Department, error) {
	rec := dbmodels.Department{}
	err := i.db.
		Where("id = ?", id).
		Preload("Members.User").
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
	if name, ok := updMap["name"]; ok {
		err := i.isUnique(id, name.(string))
		if err != nil {
			return err
		}
	}
	err := i.db.
		Model(&dbmodels.Department{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List() (list []dbmodels.Department, err error) {
	list = []dbmodels.Department{}
	err = i.db.
		Preload("Members.User").
		Order("name ASC").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListMembers(departmentID string) (list []dbmodels.DepartmentMember, err error) {
	list = []dbmodels.DepartmentMember{}
	err = i.db.
		Where("department_id = ?", departmentID).
		Preload("User").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ReplaceMembers полностью заменяет участников или рекрутеров подразделения
func (i impl) ReplaceMembers(departmentID string, role models.MemberRole, userIDs []string) error {
	err := i.db.
		Where("department_id = ?", departmentID).
		Where("role = ?", role).
		Delete(&dbmodels.DepartmentMember{}).
		Error
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	list := make([]dbmodels.DepartmentMember, 0, len(userIDs))
	for _, userID := range userIDs {
		list = append(list, dbmodels.DepartmentMember{
			DepartmentID: departmentID,
			UserID:       userID,
			Role:         role,
		})
	}
	return i.db.
		Omit("User").
		Create(&list).
		Error
}

func (i impl) isUnique(selfID, name string) error {
	var rowCount int64
	tx := i.db.Model(dbmodels.Department{})
	tx.Where("name = ?", name)
	if selfID != "" {
		tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return errors.Wrap(err, "ошибка проверки уникальности подразделения")
	}
	if rowCount != 0 {
		return models.ErrDepartmentExists
	}
	return nil
}
