package logger

import (
	"time"

	"go.uber.org/zap"
)

type Logger interface {
	Info(mes string)
	Infof(str string, arg ...any)
	Warnf(str string, arg ...any)
	Error(mes string)
	Errorf(str string, arg ...any)
	Debug(mes string)
	Debugf(str string, arg ...any)
}

// AccessLogger is a Logger that also records HTTP traffic.
type AccessLogger interface {
	Logger
	RequestLog(method string, path string)
	ResponseLog(status int, size int, duration time.Duration)
}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return &zapLogger{logZap: zap.NewNop().Sugar(), logger: zap.NewNop()}
}
