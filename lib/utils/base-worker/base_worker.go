package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(workerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    workerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run запускает jobFunc по расписанию до завершения ctx. Паника в задаче не останавливает цикл.
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context) error) {
	period := i.firstRunDelay
	logger := i.GetLogger()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Задача остановлена")
			return
		case <-time.After(period):
			if err := i.runOnce(ctx, jobFunc); err != nil {
				logger.WithError(err).Error("ошибка выполнения задачи")
			}
		}
		period = i.runInterval
	}
}

func (i BaseImpl) runOnce(ctx context.Context, jobFunc func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	return jobFunc(ctx)
}
