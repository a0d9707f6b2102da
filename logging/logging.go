package logging

import (
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// New builds a JSON zap logger. Unknown levels fall back to info.
func New(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(strings.ToLower(strings.TrimSpace(level))); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(lvl),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    encoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return cfg.Build()
}

// encoderConfig is zap's production layout with UTC RFC 3339 timestamps and
// millisecond durations, matching what the API returns.
func encoderConfig() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.MessageKey = "message"
	enc.EncodeTime = utcRFC3339
	enc.EncodeDuration = zapcore.MillisDurationEncoder
	return enc
}

func utcRFC3339(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	zapcore.RFC3339NanoTimeEncoder(t.UTC(), enc)
}

// GormLogger routes gorm's SQL logging through zap at warn level.
func GormLogger(log *zap.Logger, level string, slow time.Duration) gormlogger.Interface {
	std := zap.NewStdLog(log.Named("gorm").WithOptions(zap.AddCallerSkip(1)))
	return gormlogger.New(std, gormlogger.Config{
		SlowThreshold:             slow,
		LogLevel:                  GormLevel(level),
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// GormLevel maps a textual level onto gorm's log levels.
func GormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
