package departmentapproverprovider

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"request-flow-backend/models"
	dictapimodels "request-flow-backend/models/api/dict"
	dbmodels "request-flow-backend/models/db"
)

type memApprovers struct {
	list []dbmodels.DepartmentStageApprover
}

func (m *memApprovers) Create(rec dbmodels.DepartmentStageApprover) (string, error) {
	rec.ID = "rec-" + strconv.Itoa(len(m.list)+1)
	m.list = append(m.list, rec)
	return rec.ID, nil
}

func (m *memApprovers) GetByID(id string) (*dbmodels.DepartmentStageApprover, error) {
	for _, rec := range m.list {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *memApprovers) Find(departmentID, stageID, userID string) (*dbmodels.DepartmentStageApprover, error) {
	for _, rec := range m.list {
		if rec.DepartmentID == departmentID && rec.StageID == stageID && rec.UserID == userID {
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *memApprovers) Delete(id string) error {
	result := []dbmodels.DepartmentStageApprover{}
	for _, rec := range m.list {
		if rec.ID != id {
			result = append(result, rec)
		}
	}
	m.list = result
	return nil
}

func (m *memApprovers) List() ([]dbmodels.DepartmentStageApprover, error) {
	return m.list, nil
}

func (m *memApprovers) ListByDepartment(departmentID string, stageIDs []string) ([]dbmodels.DepartmentStageApprover, error) {
	result := []dbmodels.DepartmentStageApprover{}
	for _, rec := range m.list {
		if rec.DepartmentID != departmentID {
			continue
		}
		for _, stageID := range stageIDs {
			if rec.StageID == stageID {
				result = append(result, rec)
			}
		}
	}
	return result, nil
}

type memDepartments struct{}

func (memDepartments) Create(rec dbmodels.Department) (string, error) { return "", nil }
func (memDepartments) GetByID(id string) (*dbmodels.Department, error) {
	if id != "d" {
		return nil, nil
	}
	return &dbmodels.Department{BaseModel: dbmodels.BaseModel{ID: id}}, nil
}
func (memDepartments) Update(id string, updMap map[string]interface{}) error { return nil }
func (memDepartments) List() ([]dbmodels.Department, error) { return nil, nil }
func (memDepartments) ListMembers(departmentID string) ([]dbmodels.DepartmentMember, error) {
	return nil, nil
}
func (memDepartments) ReplaceMembers(departmentID string, role models.MemberRole, userIDs []string) error {
	return nil
}

type memStages struct{}

func (memStages) Create(rec dbmodels.Stage) (string, error) { return "", nil }
func (memStages) GetByID(id string) (*dbmodels.Stage, error) {
	if id != "a" && id != "b" {
		return nil, nil
	}
	return &dbmodels.Stage{BaseModel: dbmodels.BaseModel{ID: id}}, nil
}
func (memStages) GetByIDs(ids []string) ([]dbmodels.Stage, error) { return nil, nil }
func (memStages) Update(id string, updMap map[string]interface{}) error { return nil }
func (memStages) List() ([]dbmodels.Stage, error) { return nil, nil }

type memUsers struct{}

func (memUsers) Create(rec dbmodels.User) (string, error) { return "", nil }
func (memUsers) GetByID(id string) (*dbmodels.User, error) {
	if id == "ghost" {
		return nil, nil
	}
	return &dbmodels.User{BaseModel: dbmodels.BaseModel{ID: id}}, nil
}
func (memUsers) GetByIDs(ids []string) ([]dbmodels.User, error) { return nil, nil }
func (memUsers) GetByEmail(email string) (*dbmodels.User, error) { return nil, nil }
func (memUsers) Update(id string, updMap map[string]interface{}) error { return nil }
func (memUsers) Delete(id string) error { return nil }
func (memUsers) List() ([]dbmodels.User, error) { return nil, nil }

func newTestHandler() (impl, *memApprovers) {
	store := &memApprovers{}
	return impl{
		store:           store,
		departmentStore: memDepartments{},
		stageStore:      memStages{},
		userStore:       memUsers{},
	}, store
}

func TestUpsert(t *testing.T) {
	handler, store := newTestHandler()
	data := dictapimodels.DepartmentApproverData{DepartmentID: "d", StageID: "a", UserID: "u1"}

	first, err := handler.Upsert(data)
	require.NoError(t, err)
	second, err := handler.Upsert(data)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, store.list, 1)

	t.Run("references are checked", func(t *testing.T) {
		_, err := handler.Upsert(dictapimodels.DepartmentApproverData{DepartmentID: "x", StageID: "a", UserID: "u1"})
		require.ErrorIs(t, err, models.ErrDepartmentNotFound)
		_, err = handler.Upsert(dictapimodels.DepartmentApproverData{DepartmentID: "d", StageID: "x", UserID: "u1"})
		require.ErrorIs(t, err, models.ErrStageNotFound)
		_, err = handler.Upsert(dictapimodels.DepartmentApproverData{DepartmentID: "d", StageID: "a", UserID: "ghost"})
		require.ErrorIs(t, err, models.ErrUserNotFound)
		require.Len(t, store.list, 1)
	})
}

func TestResolveApprovers(t *testing.T) {
	handler, _ := newTestHandler()
	for _, item := range []dictapimodels.DepartmentApproverData{
		{DepartmentID: "d", StageID: "a", UserID: "u1"},
		{DepartmentID: "d", StageID: "a", UserID: "u2"},
		{DepartmentID: "d", StageID: "b", UserID: "u3"},
	} {
		_, err := handler.Upsert(item)
		require.NoError(t, err)
	}
	userIDs, err := handler.ResolveApprovers("d", "a")
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u2"}, userIDs)

	userIDs, err = handler.ResolveApprovers("other", "a")
	require.NoError(t, err)
	require.Empty(t, userIDs)

	list, err := handler.ListByDepartment(dictapimodels.DepartmentApproverFilter{DepartmentID: "d", StageIDs: []string{"b"}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, handler.Delete(list[0].ID))
	require.ErrorIs(t, handler.Delete(list[0].ID), models.ErrApproverNotFound)
}
