package requeststatusstore

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStore(t *testing.T) (Provider, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return NewInstance(gormDB), mock
}

func TestGetByName(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"id", "name"}).
			AddRow("status-1", "Pending")
		mock.ExpectQuery(`SELECT \* FROM "request_statuses" WHERE name = \$1`).WillReturnRows(rows)

		rec, err := store.GetByName("Pending")
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "status-1", rec.ID)
		require.Equal(t, "Pending", rec.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("not found is nil without error", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT \* FROM "request_statuses" WHERE name = \$1`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		rec, err := store.GetByName("Unknown")
		require.NoError(t, err)
		require.Nil(t, rec)
		require.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("db error", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT \* FROM "request_statuses"`).WillReturnError(errors.New("connection refused"))

		rec, err := store.GetByName("Pending")
		require.Error(t, err)
		require.Nil(t, rec)
	})
}

func TestUpdateWithoutChanges(t *testing.T) {
	store, mock := newMockStore(t)
	require.NoError(t, store.Update("status-1", map[string]interface{}{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	store, mock := newMockStore(t)
	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow("status-1", "Pending").
		AddRow("status-2", "Approved")
	mock.ExpectQuery(`SELECT \* FROM "request_statuses" ORDER BY created_at ASC`).WillReturnRows(rows)

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Approved", list[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}
