package dictapimodels

import (
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

// WorkflowData этапы процесса в порядке согласования, порядок этапа равен индексу в списке
type WorkflowData struct {
	Name     string   `json:"name" validate:"required"`
	StageIDs []string `json:"stage_ids" validate:"min=1,dive,required"`
}

func (w WorkflowData) Validate() error {
	return apimodels.ValidateStruct(w)
}

type WorkflowStageView struct {
	StageID string `json:"stage_id"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
}

type WorkflowView struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Stages []WorkflowStageView `json:"stages"`
}

func WorkflowConvert(rec dbmodels.Workflow) WorkflowView {
	result := WorkflowView{
		ID:     rec.ID,
		Name:   rec.Name,
		Stages: make([]WorkflowStageView, 0, len(rec.Stages)),
	}
	for _, link := range rec.Stages {
		result.Stages = append(result.Stages, WorkflowStageView{
			StageID: link.StageID,
			Name:    link.GetStageName(),
			Order:   link.Order,
		})
	}
	return result
}
