package dbmodels

import "request-flow-backend/models"

type Department struct {
	BaseModel
	Name    string             `gorm:"type:varchar(255)"`
	Members []DepartmentMember `gorm:"foreignKey:DepartmentID"`
}

// DepartmentMember участник или рекрутер подразделения, подставляется в новые заявки
type DepartmentMember struct {
	DepartmentID string            `gorm:"type:varchar(36);primaryKey"`
	UserID       string            `gorm:"type:varchar(36);primaryKey"`
	Role         models.MemberRole `gorm:"type:varchar(30);primaryKey"`
	User         *User             `gorm:"foreignKey:UserID"`
}

// DepartmentStageApprover настройка согласующего этапа для подразделения
type DepartmentStageApprover struct {
	BaseModel
	DepartmentID string `gorm:"type:varchar(36);uniqueIndex:idx_department_stage_user"`
	StageID      string `gorm:"type:varchar(36);uniqueIndex:idx_department_stage_user"`
	UserID       string `gorm:"type:varchar(36);uniqueIndex:idx_department_stage_user"`
	User         *User  `gorm:"foreignKey:UserID"`
	Stage        *Stage `gorm:"foreignKey:StageID"`
}
