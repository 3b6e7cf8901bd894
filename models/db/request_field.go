package dbmodels

import "request-flow-backend/models"

type RequestField struct {
	BaseModel
	Name    string                  `gorm:"type:varchar(255)"`
	Type    models.RequestFieldType `gorm:"type:varchar(20)"`
	Options []RequestFieldOption    `gorm:"foreignKey:RequestFieldID"`
}

type RequestFieldOption struct {
	BaseModel
	RequestFieldID string `gorm:"type:varchar(36);index"`
	Name           string `gorm:"type:varchar(255)"`
}

type RequestType struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	WorkflowID  string                      `gorm:"type:varchar(36)"`
	Workflow    *Workflow                   `gorm:"foreignKey:WorkflowID"`
	Fields      []RequestFieldInRequestType `gorm:"foreignKey:RequestTypeID"`
}

type RequestFieldInRequestType struct {
	BaseModel
	RequestTypeID  string `gorm:"type:varchar(36);uniqueIndex:idx_request_type_field"`
	RequestFieldID string `gorm:"type:varchar(36);uniqueIndex:idx_request_type_field"`
	Order          int
	RequestField   *RequestField `gorm:"foreignKey:RequestFieldID"`
}
