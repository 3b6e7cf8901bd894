package db

import (
	"context"
	"fmt"
	"time"

	gorm_logrus "github.com/onrik/gorm-logrus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const (
	maxOpenConns    = 20
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 2 * time.Second
)

type ConnectParams struct {
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
	DebugMode bool
	Migrate   bool
}

func (p ConnectParams) dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s", p.Host, p.Port, p.User, p.Database, p.Password)
}

func Connect(params ConnectParams) error {
	if DB != nil {
		return nil
	}
	conn, err := gorm.Open(postgres.Open(params.dsn()), &gorm.Config{
		Logger: gorm_logrus.New(),
	})
	if err != nil {
		return errors.Wrap(err, "Ошибка подключения к БД")
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return errors.Wrap(err, "Ошибка получения пула соединений")
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	DB = conn
	if params.DebugMode {
		DB = conn.Session(&gorm.Session{Logger: conn.Logger.LogMode(logger.Info)}).Debug()
	}
	log.WithField("db_host", params.Host).Info("Сервис успешно подключен к БД")
	if params.Migrate {
		return AutoMigrateDB()
	}
	return nil
}

// PingDB проверка доступности БД для /health
func PingDB() error {
	if DB == nil {
		return errors.New("БД не подключена")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
