package dictapimodels

import (
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

type RequestTypeData struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	WorkflowID  string `json:"workflow_id" validate:"required"`
}

func (r RequestTypeData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RequestTypeView struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	WorkflowID   string                 `json:"workflow_id"`
	WorkflowName string                 `json:"workflow_name"`
	Fields       []RequestTypeFieldView `json:"fields"`
}

func RequestTypeConvert(rec dbmodels.RequestType) RequestTypeView {
	result := RequestTypeView{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		WorkflowID:  rec.WorkflowID,
		Fields:      make([]RequestTypeFieldView, 0, len(rec.Fields)),
	}
	if rec.Workflow != nil {
		result.WorkflowName = rec.Workflow.Name
	}
	for _, field := range rec.Fields {
		result.Fields = append(result.Fields, RequestTypeFieldConvert(field))
	}
	return result
}
