package initializers

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"request-flow-backend/config"
	"request-flow-backend/lib/utils/lock"
)

// InitRedis без адреса блокировки заявок работают только внутри процесса
func InitRedis(ctx context.Context) {
	if config.Conf.Redis.Addr == "" {
		log.Warn("Redis не настроен, блокировки заявок только внутри процесса")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.Conf.Redis.Addr,
		Password: config.Conf.Redis.Password,
		DB:       config.Conf.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		panic("ошибка подключения к Redis: " + err.Error())
	}
	lock.InitRedis(client, time.Duration(config.Conf.Redis.LockTTLSec)*time.Second)
	go func() {
		<-ctx.Done()
		if err := client.Close(); err != nil {
			log.WithError(err).Warn("ошибка закрытия соединения с Redis")
		}
	}()
	log.Info("Redis подключен")
}
