package statsworker

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	requeststore "request-flow-backend/lib/request/store"
	baseworker "request-flow-backend/lib/utils/base-worker"
)

type countingStore struct {
	requeststore.Provider
	counts map[string]int64
	err    error
}

func (s countingStore) CountByStatus() (map[string]int64, error) {
	return s.counts, s.err
}

func TestHandle(t *testing.T) {
	newWorker := func(store requeststore.Provider, published *map[string]int64) impl {
		return impl{
			BaseImpl: *baseworker.NewInstance("test", 0, 0),
			store:    store,
			publish: func(counts map[string]int64) {
				*published = counts
			},
		}
	}
	t.Run("counts are published", func(t *testing.T) {
		var published map[string]int64
		worker := newWorker(countingStore{counts: map[string]int64{"Pending": 2}}, &published)
		require.NoError(t, worker.handle(context.Background()))
		require.Equal(t, map[string]int64{"Pending": 2}, published)
	})
	t.Run("store error keeps previous value", func(t *testing.T) {
		published := map[string]int64{"Approved": 1}
		worker := newWorker(countingStore{err: errors.New("db down")}, &published)
		require.Error(t, worker.handle(context.Background()))
		require.Equal(t, map[string]int64{"Approved": 1}, published)
	})
}
