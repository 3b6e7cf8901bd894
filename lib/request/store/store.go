package requeststore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"request-flow-backend/models"
	dbmodels "request-flow-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Request) (id string, err error)
	GetByID(id string) (rec *dbmodels.Request, err error)
	GetForUpdate(id string) (rec *dbmodels.Request, err error)
	Update(id string, updMap map[string]interface{}) error
	List(userID string, isAdmin bool, filter dbmodels.RequestFilter) (list []dbmodels.Request, rowCount int64, err error)
	AddMember(requestID, userID string, role models.MemberRole) error
	RemoveMember(requestID, userID string, role models.MemberRole) error
	SetMembers(requestID string, role models.MemberRole, userIDs []string) error
	CountByStatus() (counts map[string]int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Request) (id string, err error) {
	err = i.db.
		Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Request, error) {
	rec := dbmodels.Request{}
	err := i.withPreload(i.db).
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

// GetForUpdate блокирует строку заявки до конца транзакции
func (i impl) GetForUpdate(id string) (*dbmodels.Request, error) {
	locked := dbmodels.Request{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&locked).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return i.GetByID(id)
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Request{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(userID string, isAdmin bool, filter dbmodels.RequestFilter) (list []dbmodels.Request, rowCount int64, err error) {
	list = []dbmodels.Request{}
	tx := i.db.Model(&dbmodels.Request{})
	i.addFilter(tx, userID, isAdmin, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения количества заявок")
	}

	tx = i.withPreload(i.db.Model(&dbmodels.Request{}))
	i.addFilter(tx, userID, isAdmin, filter)
	if filter.Limit > 0 {
		i.setPage(tx, filter.Page, filter.Limit)
	}
	err = tx.
		Order("created_at DESC").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) CountByStatus() (map[string]int64, error) {
	rows := []struct {
		Name  string
		Count int64
	}{}
	err := i.db.
		Model(&dbmodels.Request{}).
		Select("request_statuses.name as name, count(*) as count").
		Joins("join request_statuses on request_statuses.id = requests.request_status_id").
		Group("request_statuses.name").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Name] = row.Count
	}
	return result, nil
}

func (i impl) AddMember(requestID, userID string, role models.MemberRole) error {
	rec := dbmodels.RequestMember{
		RequestID: requestID,
		UserID:    userID,
		Role:      role,
	}
	return i.db.
		Omit("User").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec).
		Error
}

func (i impl) RemoveMember(requestID, userID string, role models.MemberRole) error {
	return i.db.
		Where("request_id = ?", requestID).
		Where("user_id = ?", userID).
		Where("role = ?", role).
		Delete(&dbmodels.RequestMember{}).
		Error
}

// SetMembers записывает набор пользователей роли целиком
func (i impl) SetMembers(requestID string, role models.MemberRole, userIDs []string) error {
	err := i.db.
		Where("request_id = ?", requestID).
		Where("role = ?", role).
		Delete(&dbmodels.RequestMember{}).
		Error
	if err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return nil
	}
	list := make([]dbmodels.RequestMember, 0, len(userIDs))
	for _, userID := range userIDs {
		list = append(list, dbmodels.RequestMember{
			RequestID: requestID,
			UserID:    userID,
			Role:      role,
		})
	}
	return i.db.
		Omit("User").
		Create(&list).
		Error
}

func (i impl) withPreload(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Department").
		Preload("RequestType").
		Preload("Creator").
		Preload("Stage").
		Preload("Status").
		Preload("Members.User").
		Preload("StageApprovers", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("StageApprovers.User").
		Preload("StageApprovers.Stage").
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Fields.RequestField.Options")
}

func (i impl) addFilter(tx *gorm.DB, userID string, isAdmin bool, filter dbmodels.RequestFilter) {
	if !isAdmin {
		approverQuery := i.db.Model(&dbmodels.RequestStageApprover{}).Select("request_id").Where("user_id = ?", userID)
		memberQuery := i.db.Model(&dbmodels.RequestMember{}).Select("request_id").Where("user_id = ?", userID)
		tx.Where(i.db.
			Where("creator_id = ?", userID).
			Or("id in (?)", approverQuery).
			Or("id in (?)", memberQuery))
	}
	if filter.DepartmentID != "" {
		tx.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.StatusName != "" {
		statusQuery := i.db.Model(&dbmodels.RequestStatus{}).Select("id").Where("name = ?", filter.StatusName)
		tx.Where("request_status_id in (?)", statusQuery)
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
