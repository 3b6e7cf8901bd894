package dictapimodels

import (
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

type DepartmentApproverData struct {
	DepartmentID string `json:"department_id" validate:"required"`
	StageID      string `json:"stage_id" validate:"required"`
	UserID       string `json:"user_id" validate:"required"`
}

func (d DepartmentApproverData) Validate() error {
	return apimodels.ValidateStruct(d)
}

// DepartmentApproverFilter пустой список этапов означает все этапы
type DepartmentApproverFilter struct {
	DepartmentID string   `json:"department_id" validate:"required"`
	StageIDs     []string `json:"stage_ids"`
}

func (d DepartmentApproverFilter) Validate() error {
	return apimodels.ValidateStruct(d)
}

type DepartmentApproverView struct {
	ID           string `json:"id"`
	DepartmentID string `json:"department_id"`
	StageID      string `json:"stage_id"`
	StageName    string `json:"stage_name"`
	UserID       string `json:"user_id"`
	UserName     string `json:"user_name"`
}

func DepartmentApproverConvert(rec dbmodels.DepartmentStageApprover) DepartmentApproverView {
	result := DepartmentApproverView{
		ID:           rec.ID,
		DepartmentID: rec.DepartmentID,
		StageID:      rec.StageID,
		UserID:       rec.UserID,
	}
	if rec.Stage != nil {
		result.StageName = rec.Stage.Name
	}
	if rec.User != nil {
		result.UserName = rec.User.GetName()
	}
	return result
}
