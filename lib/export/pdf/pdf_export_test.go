package pdfexport

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
)

func TestRequestCard(t *testing.T) {
	view := requestapimodels.RequestView{
		ID:              "r1",
		CreatedAt:       time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		RequestTypeName: "Hiring",
		DepartmentName:  "IT",
		Creator:         requestapimodels.UserShort{ID: "u1", Name: "Ivan"},
		StageName:       "Manager",
		StatusName:      models.RequestStatusPending,
		Fields: []requestapimodels.FieldView{
			{Name: "Budget", Type: models.FieldTypeNumber, Value: "10", Formatted: float64(10)},
			{Name: "Remote", Type: models.FieldTypeBoolean, Value: "1", Formatted: true},
		},
		Progress: []requestapimodels.StageProgressView{
			{StageID: "a", StageName: "Manager", Order: 0, State: "CURRENT"},
		},
		StageApprovers: []requestapimodels.StageApproverView{
			{StageID: "a", User: requestapimodels.UserShort{Name: "Petr"}, Decision: models.EventActionApprove},
		},
	}
	data, err := RequestCard(t.TempDir(), view)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFieldText(t *testing.T) {
	field := requestapimodels.FieldView{
		Type:    models.FieldTypeSelect,
		Value:   "o2",
		Options: []requestapimodels.OptionView{{ID: "o1", Name: "Один"}, {ID: "o2", Name: "Два"}},
	}
	require.Equal(t, "Два", fieldText(field))
	require.Equal(t, "Да", fieldText(requestapimodels.FieldView{Type: models.FieldTypeBoolean, Value: "1", Formatted: true}))
	require.Equal(t, "x", fieldText(requestapimodels.FieldView{Type: models.FieldTypeText, Value: "x"}))
}
