package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	pollInterval = 50 * time.Millisecond
	keyPrefix    = "lock:"
)

var (
	lockMap     sync.Map
	redisClient redis.UniversalClient
	redisTTL    = 30 * time.Second
)

// снимаем блокировку только своим токеном, чтобы не освободить чужую после истечения TTL
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// InitRedis включает межпроцессную блокировку, nil оставляет только локальную
func InitRedis(client redis.UniversalClient, ttl time.Duration) {
	redisClient = client
	if ttl > 0 {
		redisTTL = ttl
	}
}

// WithDelay выполняет safeCode под блокировкой key, ожидая её не дольше wait.
// success=false без ошибки означает, что блокировку получить не удалось.
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	deadline := time.Now().Add(wait)
	isLocked := false
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			isLocked = true
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		default:
			time.Sleep(pollInterval)
		}
	}
	if !isLocked {
		return false, nil
	}
	defer lockMap.Delete(key)

	client := redisClient
	if client != nil {
		token := uuid.NewString()
		acquired, redisErr := acquireRedis(ctx, client, key, token, deadline)
		if redisErr != nil {
			log.WithError(redisErr).WithField("lock_key", key).Warn("redis недоступен, используется локальная блокировка")
		} else {
			if !acquired {
				return false, nil
			}
			defer releaseRedis(client, key, token)
		}
	}
	return true, safeCode()
}

func acquireRedis(ctx context.Context, client redis.UniversalClient, key, token string, deadline time.Time) (bool, error) {
	for {
		ok, err := client.SetNX(ctx, keyPrefix+key, token, redisTTL).Result()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if time.Now().After(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, nil
		case <-time.After(pollInterval):
		}
	}
}

func releaseRedis(client redis.UniversalClient, key, token string) {
	err := releaseScript.Run(context.Background(), client, []string{keyPrefix + key}, token).Err()
	if err != nil && err != redis.Nil {
		log.WithError(err).WithField("lock_key", key).Error("ошибка снятия блокировки в redis")
	}
}
