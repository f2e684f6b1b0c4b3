package utils

import (
	"log"
	"sync"

	"bizhub/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger, also installed as zap's global.
var Logger *zap.Logger

var loggerOnce sync.Once

// NewLogger builds a JSON production logger or a coloured development one.
// level overrides the environment default when it parses.
func NewLogger(env, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if level != "" {
		if lvl, err := zapcore.ParseLevel(level); err == nil {
			cfg.Level = zap.NewAtomicLevelAt(lvl)
		}
	}
	cfg.InitialFields = map[string]interface{}{"service": "bizhub"}
	return cfg.Build()
}

// GetLogger returns the process logger, building it from AppConfig on first use.
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		l, err := NewLogger(config.GetEnv(), config.AppConfig.LogLevel)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		Logger = l
		zap.ReplaceGlobals(Logger)
	})
	return Logger
}
