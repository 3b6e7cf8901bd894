package dictapimodels

import (
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

type RequestFieldData struct {
	Name string                  `json:"name" validate:"required"`
	Type models.RequestFieldType `json:"type" validate:"required,oneof=TEXT PARAGRAPH NUMBER DATE BOOLEAN SELECT"`
}

func (r RequestFieldData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RequestFieldOptionData struct {
	Name string `json:"name" validate:"required"`
}

func (r RequestFieldOptionData) Validate() error {
	return apimodels.ValidateStruct(r)
}

// RequestFieldLinkData привязка поля к типу заявки
type RequestFieldLinkData struct {
	RequestTypeID string `json:"request_type_id" validate:"required"`
	Order         int    `json:"order"`
}

func (r RequestFieldLinkData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RequestFieldOptionView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RequestFieldView struct {
	ID       string                   `json:"id"`
	Name     string                   `json:"name"`
	Type     models.RequestFieldType  `json:"type"`
	TypeName string                   `json:"type_name"`
	Options  []RequestFieldOptionView `json:"options"`
}

func RequestFieldConvert(rec dbmodels.RequestField) RequestFieldView {
	result := RequestFieldView{
		ID:       rec.ID,
		Name:     rec.Name,
		Type:     rec.Type,
		TypeName: rec.Type.ToHuman(),
		Options:  make([]RequestFieldOptionView, 0, len(rec.Options)),
	}
	for _, option := range rec.Options {
		result.Options = append(result.Options, RequestFieldOptionView{ID: option.ID, Name: option.Name})
	}
	return result
}

// RequestTypeFieldView поле в составе типа заявки
type RequestTypeFieldView struct {
	RequestFieldView
	Order int `json:"order"`
}

func RequestTypeFieldConvert(rec dbmodels.RequestFieldInRequestType) RequestTypeFieldView {
	result := RequestTypeFieldView{Order: rec.Order}
	if rec.RequestField != nil {
		result.RequestFieldView = RequestFieldConvert(*rec.RequestField)
	} else {
		result.ID = rec.RequestFieldID
	}
	return result
}
