package dictapimodels

import (
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

type StageData struct {
	Name string `json:"name" validate:"required"` // название этапа
}

func (s StageData) Validate() error {
	return apimodels.ValidateStruct(s)
}

type StageView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func StageConvert(rec dbmodels.Stage) StageView {
	return StageView{
		ID:   rec.ID,
		Name: rec.Name,
	}
}
