package xlsexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"request-flow-backend/models"
	requestapimodels "request-flow-backend/models/api/request"
)

func TestExportRequestList(t *testing.T) {
	list := []requestapimodels.RequestListItem{
		{
			ID:              "r1",
			CreatedAt:       time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
			RequestTypeName: "Найм",
			DepartmentName:  "ИТ",
			CreatorName:     "Иван",
			StageName:       "Руководитель",
			StatusName:      models.RequestStatusPending,
		},
	}
	buf, err := impl{}.ExportRequestList(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(requestSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, requestHeaders, rows[0])
	require.Equal(t, "REQ-r1", rows[1][0])
	require.Equal(t, "01.03.2024 10:30", rows[1][1])
	require.Equal(t, "Руководитель", rows[1][5])

	panes, err := f.GetPanes(requestSheet)
	require.NoError(t, err)
	require.True(t, panes.Freeze)
	require.Equal(t, 1, panes.YSplit)
}

func TestExportEmptyList(t *testing.T) {
	buf, err := impl{}.ExportRequestList(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(requestSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
