package utils

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log  = zap.NewNop()
	SLog = Log.Sugar()
)

// InitLogger replaces the no-op loggers. Release mode gets the JSON production
// encoder, anything else the colored development console.
func InitLogger(ginMode string) error {
	var cfg zap.Config
	if ginMode == "release" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = logger
	SLog = logger.Sugar()
	return nil
}

// SyncLogger flushes buffered entries, call it on shutdown.
func SyncLogger() {
	_ = Log.Sync()
}
