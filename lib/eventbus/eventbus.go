package eventbus

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var Instance Provider

type Provider interface {
	// Publish публикует событие в тему <prefix>.<subject>
	Publish(subject string, payload any) error
	Close()
}

// Connect пустой url оставляет шину выключенной, публикация при этом ничего не делает
func Connect(url, subjectPrefix string) error {
	if url == "" {
		log.Warn("NATS не настроен, события заявок не публикуются")
		Instance = &impl{prefix: subjectPrefix}
		return nil
	}
	opts := []nats.Option{
		nats.Name("request-flow-backend"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("NATS отключен")
				return
			}
			log.Warn("NATS отключен")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("nats_url", nc.ConnectedUrl()).Info("NATS переподключен")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("соединение с NATS закрыто")
		}),
	}
	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return errors.Wrapf(err, "ошибка подключения к NATS %v", url)
	}
	log.WithField("nats_url", conn.ConnectedUrl()).Info("подключение к NATS установлено")
	Instance = &impl{conn: conn, prefix: subjectPrefix}
	return nil
}

type impl struct {
	conn   *nats.Conn
	prefix string
}

func (i *impl) Publish(subject string, payload any) error {
	if i.conn == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации события")
	}
	fullSubject := i.FullSubject(subject)
	if !i.conn.IsConnected() {
		return errors.Errorf("NATS не подключен, событие %v не опубликовано", fullSubject)
	}
	if err = i.conn.Publish(fullSubject, data); err != nil {
		return errors.Wrapf(err, "ошибка публикации события %v", fullSubject)
	}
	return nil
}

func (i *impl) FullSubject(subject string) string {
	if i.prefix == "" {
		return subject
	}
	return i.prefix + "." + subject
}

func (i *impl) Close() {
	if i.conn == nil {
		return
	}
	if err := i.conn.Drain(); err != nil {
		log.WithError(err).Warn("ошибка завершения соединения с NATS")
		i.conn.Close()
	}
}
