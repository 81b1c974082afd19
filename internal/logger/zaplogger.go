package logger

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the zap logger. Empty paths log to stderr.
type Options struct {
	Level      string
	Path       string
	ErrorPath  string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

type zapLogger struct {
	logZap *zap.SugaredLogger
	logger *zap.Logger
}

func NewZapLogger(opts Options) (*zapLogger, error) {
	level := opts.Level
	if level == "" {
		level = "info"
	}
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	encoder := zapcore.NewConsoleEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, opts.sink(opts.Path), logLevel),
	}
	if opts.ErrorPath != "" {
		cores = append(cores, zapcore.NewCore(encoder, opts.sink(opts.ErrorPath), zap.ErrorLevel))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))

	return &zapLogger{
		logZap: logger.Sugar(),
		logger: logger,
	}, nil
}

func (o Options) sink(path string) zapcore.WriteSyncer {
	if path == "" {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    o.MaxSize,
		MaxBackups: o.MaxBackups,
		MaxAge:     o.MaxAge,
		Compress:   o.Compress,
	})
}

// RequestLog makes request log
func (logger *zapLogger) RequestLog(method string, path string) {
	logger.logZap.Infow("incoming request",
		"method", method,
		"path", path,
	)
}

// ResponseLog makes response log
func (logger *zapLogger) ResponseLog(status int, size int, duration time.Duration) {
	logger.logZap.Infow("send response with",
		"status", status,
		"size", size,
		"time", duration.String(),
	)
}

func (logger *zapLogger) Info(mes string) {
	logger.logZap.Info(mes)
}

func (logger *zapLogger) Infof(str string, arg ...any) {
	logger.logZap.Infof(str, arg...)
}

func (logger *zapLogger) Warnf(str string, arg ...any) {
	logger.logZap.Warnf(str, arg...)
}

func (logger *zapLogger) Error(mes string) {
	logger.logZap.Error(mes)
}

func (logger *zapLogger) Errorf(str string, arg ...any) {
	logger.logZap.Errorf(str, arg...)
}

func (logger *zapLogger) Debug(mes string) {
	logger.logZap.Debug(mes)
}

func (logger *zapLogger) Debugf(str string, arg ...any) {
	logger.logZap.Debugf(str, arg...)
}

// Close flushes buffered entries.
func (logger *zapLogger) Close() error {
	return logger.logger.Sync()
}
