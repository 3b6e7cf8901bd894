package initializers

import (
	"context"

	"request-flow-backend/config"
	"request-flow-backend/lib/eventbus"
)

func InitNats(ctx context.Context) {
	if err := eventbus.Connect(config.Conf.Nats.URL, config.Conf.Nats.SubjectPrefix); err != nil {
		panic(err.Error())
	}
	go func() {
		<-ctx.Done()
		eventbus.Instance.Close()
	}()
}
