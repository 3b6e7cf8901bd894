package requeststatusprovider

import (
	"testing"

	"github.com/stretchr/testify/require"
	"request-flow-backend/models"
	dictapimodels "request-flow-backend/models/api/dict"
	dbmodels "request-flow-backend/models/db"
)

type memStore struct {
	list []dbmodels.RequestStatus
}

func (m *memStore) Create(rec dbmodels.RequestStatus) (string, error) {
	rec.ID = "status-" + rec.Name
	m.list = append(m.list, rec)
	return rec.ID, nil
}

func (m *memStore) GetByID(id string) (*dbmodels.RequestStatus, error) {
	for _, rec := range m.list {
		if rec.ID == id {
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *memStore) GetByName(name string) (*dbmodels.RequestStatus, error) {
	for _, rec := range m.list {
		if rec.Name == name {
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *memStore) Update(id string, updMap map[string]interface{}) error {
	for idx := range m.list {
		if m.list[idx].ID == id {
			m.list[idx].Name = updMap["name"].(string)
		}
	}
	return nil
}

func (m *memStore) List() ([]dbmodels.RequestStatus, error) {
	return m.list, nil
}

func TestEnsureCanonical(t *testing.T) {
	store := &memStore{list: []dbmodels.RequestStatus{{BaseModel: dbmodels.BaseModel{ID: "p"}, Name: models.RequestStatusPending}}}
	handler := NewHandlerWithStore(store)
	require.NoError(t, handler.EnsureCanonical())
	require.NoError(t, handler.EnsureCanonical())

	list, err := handler.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, item := range list {
		require.True(t, item.Canonical)
	}
	require.Equal(t, "На согласовании", list[0].HumanName)
}

func TestUpdate(t *testing.T) {
	store := &memStore{}
	handler := NewHandlerWithStore(store)
	require.NoError(t, handler.EnsureCanonical())
	id, err := handler.Create(dictapimodels.RequestStatusData{Name: "OnHold"})
	require.NoError(t, err)

	t.Run("canonical status keeps its name", func(t *testing.T) {
		err := handler.Update("status-Approved", dictapimodels.RequestStatusData{Name: "Done"})
		require.ErrorIs(t, err, models.ErrCanonicalStatusRename)
		require.NoError(t, handler.Update("status-Approved", dictapimodels.RequestStatusData{Name: models.RequestStatusApproved}))
	})
	t.Run("custom status renamed", func(t *testing.T) {
		require.NoError(t, handler.Update(id, dictapimodels.RequestStatusData{Name: "Paused"}))
		rec, err := store.GetByID(id)
		require.NoError(t, err)
		require.Equal(t, "Paused", rec.Name)
	})
	t.Run("unknown status", func(t *testing.T) {
		require.ErrorIs(t, handler.Update("missing", dictapimodels.RequestStatusData{Name: "x"}), models.ErrStatusNotFound)
	})
}
