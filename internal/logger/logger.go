package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu  sync.RWMutex
	log = zap.NewNop()
)

type Options struct {
	// File включает запись в файл с ротацией, пустое значение — только stdout.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init configures the global logger: console output in development, JSON otherwise.
func Init(isDev bool) error {
	return InitWithOptions(isDev, Options{File: os.Getenv("LOG_FILE")})
}

func InitWithOptions(isDev bool, opt Options) error {
	var (
		encCfg zapcore.EncoderConfig
		enc    zapcore.Encoder
		level  zapcore.Level
	)
	if isDev {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
		level = zapcore.DebugLevel
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
		level = zapcore.InfoLevel
	}

	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level)}
	if opt.File != "" {
		rot := &lumberjack.Logger{
			Filename:   opt.File,
			MaxSize:    orDefault(opt.MaxSizeMB, 50),
			MaxBackups: orDefault(opt.MaxBackups, 3),
			MaxAge:     orDefault(opt.MaxAgeDays, 7),
		}
		fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEnc, zapcore.AddSync(rot), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	if isDev {
		l = l.WithOptions(zap.Development())
	}

	mu.Lock()
	log = l
	mu.Unlock()
	return nil
}

func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

func Sync() {
	_ = L().Sync()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
