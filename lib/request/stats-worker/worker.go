package statsworker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"request-flow-backend/db"
	"request-flow-backend/lib/metrics"
	requeststore "request-flow-backend/lib/request/store"
	baseworker "request-flow-backend/lib/utils/base-worker"
)

const (
	firstRunDelay = 10 * time.Second
	runInterval   = time.Minute
)

type impl struct {
	baseworker.BaseImpl
	store   requeststore.Provider
	publish func(counts map[string]int64)
}

// StartWorker обновляет метрику количества заявок по статусам
func StartWorker(ctx context.Context) {
	i := impl{
		BaseImpl: *baseworker.NewInstance("RequestStatsWorker", firstRunDelay, runInterval),
		store:    requeststore.NewInstance(db.DB),
		publish:  metrics.SetRequestsByStatus,
	}
	go i.Run(ctx, i.handle)
}

func (i impl) handle(ctx context.Context) error {
	counts, err := i.store.CountByStatus()
	if err != nil {
		return errors.Wrap(err, "ошибка подсчета заявок по статусам")
	}
	i.publish(counts)
	i.GetLogger().WithField("statuses", len(counts)).Debug("метрика заявок обновлена")
	return nil
}
