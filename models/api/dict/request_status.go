package dictapimodels

import (
	"request-flow-backend/models"
	apimodels "request-flow-backend/models/api"
	dbmodels "request-flow-backend/models/db"
)

type RequestStatusData struct {
	Name string `json:"name" validate:"required"`
}

func (r RequestStatusData) Validate() error {
	return apimodels.ValidateStruct(r)
}

type RequestStatusView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	HumanName string `json:"human_name"`
	Canonical bool   `json:"canonical"` // системный статус, переименование запрещено
}

func RequestStatusConvert(rec dbmodels.RequestStatus) RequestStatusView {
	return RequestStatusView{
		ID:        rec.ID,
		Name:      rec.Name,
		HumanName: models.RequestStatusToHuman(rec.Name),
		Canonical: models.IsCanonicalRequestStatus(rec.Name),
	}
}
