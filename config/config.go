package config

import (
	"github.com/gotify/configor"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		PublicURL  string `default:"http://localhost:3000" env:"APP_PUBLIC_URL"` // адрес фронта для ссылок в письмах
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"request-flow" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret      string `default:"" env:"JWT_SECRET"`
		JWTExpireInSec int64  `default:"86400" env:"JWT_EXPIRE_IN_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
		SenderName string `default:"Request Flow" env:"SMTP_SENDER_NAME"`
	}
	Redis struct {
		Addr       string `default:"" env:"REDIS_ADDR"` // пустой адрес - блокировки только внутри процесса
		Password   string `default:"" env:"REDIS_PASSWORD"`
		DB         int    `default:"0" env:"REDIS_DB"`
		LockTTLSec int    `default:"30" env:"REDIS_LOCK_TTL_SEC"`
	}
	Nats struct {
		URL           string `default:"" env:"NATS_URL"`
		SubjectPrefix string `default:"request-flow" env:"NATS_SUBJECT_PREFIX"`
	}
	Lock struct {
		WaitSec int `default:"5" env:"LOCK_WAIT_SEC"`
	}
	Export struct {
		FontDir string `default:"static/font/" env:"EXPORT_FONT_DIR"`
	}
	Admin struct {
		Email string `default:"" env:"ADMIN_EMAIL"`
		Name  string `default:"Администратор" env:"ADMIN_NAME"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
