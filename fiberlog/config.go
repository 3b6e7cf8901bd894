package fiberlog

import "github.com/sirupsen/logrus"

// Config is config for middleware
type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// MaxBodyLen тела длиннее обрезаются в логе
	MaxBodyLen int
}

// ConfigDefault is the default config
var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagRequestID,
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		TagUserID,
	},
	MaxBodyLen: 2048,
}
