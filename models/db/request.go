package dbmodels

import (
	"slices"

	"request-flow-backend/models"
)

type Request struct {
	BaseModel
	DepartmentID    string                  `gorm:"type:varchar(36);index"`
	RequestTypeID   string                  `gorm:"type:varchar(36);index"`
	CreatorID       string                  `gorm:"type:varchar(36);index"`
	StageID         string                  `gorm:"type:varchar(36)"`
	RequestStatusID string                  `gorm:"type:varchar(36);index"`
	Department      *Department             `gorm:"foreignKey:DepartmentID"`
	RequestType     *RequestType            `gorm:"foreignKey:RequestTypeID"`
	Creator         *User                   `gorm:"foreignKey:CreatorID"`
	Stage           *Stage                  `gorm:"foreignKey:StageID"`
	Status          *RequestStatus          `gorm:"foreignKey:RequestStatusID"`
	Members         []RequestMember         `gorm:"foreignKey:RequestID"`
	StageApprovers  []RequestStageApprover  `gorm:"foreignKey:RequestID"`
	Fields          []RequestFieldInRequest `gorm:"foreignKey:RequestID"`
}

func (r Request) GetStatusName() string {
	if r.Status == nil {
		return ""
	}
	return r.Status.Name
}

func (r Request) IsPending() bool {
	return r.GetStatusName() == models.RequestStatusPending
}

func (r Request) GetWorkflowID() string {
	if r.RequestType == nil {
		return ""
	}
	return r.RequestType.WorkflowID
}

// MemberIDs пользователи заявки с указанной ролью в порядке добавления
func (r Request) MemberIDs(role models.MemberRole) []string {
	result := []string{}
	for _, member := range r.Members {
		if member.Role == role && !slices.Contains(result, member.UserID) {
			result = append(result, member.UserID)
		}
	}
	return result
}

func (r Request) HasMember(role models.MemberRole, userID string) bool {
	for _, member := range r.Members {
		if member.Role == role && member.UserID == userID {
			return true
		}
	}
	return false
}

// RequestMember текущий согласующий, участник или рекрутер заявки
type RequestMember struct {
	RequestID string            `gorm:"type:varchar(36);primaryKey"`
	UserID    string            `gorm:"type:varchar(36);primaryKey"`
	Role      models.MemberRole `gorm:"type:varchar(30);primaryKey"`
	User      *User             `gorm:"foreignKey:UserID"`
}

// RequestStageApprover копия настройки согласующих подразделения, сделанная при создании заявки
type RequestStageApprover struct {
	BaseModel
	RequestRef
	StageID string `gorm:"type:varchar(36)"`
	UserID  string `gorm:"type:varchar(36)"`
	User    *User  `gorm:"foreignKey:UserID"`
	Stage   *Stage `gorm:"foreignKey:StageID"`
}

type RequestFieldInRequest struct {
	BaseModel
	RequestRef
	RequestFieldID string        `gorm:"type:varchar(36)"`
	Value          string        `gorm:"type:text"`
	RequestField   *RequestField `gorm:"foreignKey:RequestFieldID"`
}

type RequestStatus struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex"`
}

type RequestEvent struct {
	BaseModel
	RequestRef
	UserID string             `gorm:"type:varchar(36)"`
	Action models.EventAction `gorm:"type:varchar(20)"`
	Value  string             `gorm:"type:text"`
	User   *User              `gorm:"foreignKey:UserID"`
}

type RequestComment struct {
	BaseModel
	RequestRef
	UserID  string `gorm:"type:varchar(36)"`
	Comment string `gorm:"type:text"`
	User    *User  `gorm:"foreignKey:UserID"`
}

type RequestFilter struct {
	StatusName   string
	DepartmentID string
	Page         int
	Limit        int
}
