package xzap

import (
	"context"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// LogConf mirrors the log section of the service config.
type LogConf struct {
	ServiceName string `toml:"service_name" mapstructure:"service_name" json:"service_name"`
	Mode        string `toml:"mode" mapstructure:"mode" json:"mode"` // console or file
	Path        string `toml:"path" mapstructure:"path" json:"path"`
	Level       string `toml:"level" mapstructure:"level" json:"level"`
	Compress    bool   `toml:"compress" mapstructure:"compress" json:"compress"`
	KeepDays    int    `toml:"keep_days" mapstructure:"keep_days" json:"keep_days"`
}

var setupOnce sync.Once

// SetUp builds the global zap logger from conf. Safe to call more than once;
// only the first call takes effect.
func SetUp(c LogConf) (*zap.Logger, error) {
	var err error
	setupOnce.Do(func() {
		var logger *zap.Logger
		logger, err = build(c)
		if err != nil {
			return
		}
		zap.ReplaceGlobals(logger)
	})
	if err != nil {
		return nil, err
	}
	return zap.L(), nil
}

func build(c LogConf) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var core zapcore.Core
	if c.Mode == "file" && c.Path != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename: c.Path,
			MaxAge:   c.KeepDays,
			Compress: c.Compress,
		})
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level)
	} else {
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level)
	}

	opts := []zap.Option{zap.AddCaller()}
	logger := zap.New(core, opts...)
	if c.ServiceName != "" {
		logger = logger.With(zap.String("service", c.ServiceName))
	}
	return logger, nil
}

type ctxKey struct{}

// WithFields returns a context carrying extra log fields.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, ctxKey{}, fields)
}

// WithContext returns the global logger enriched with any fields stored on ctx.
func WithContext(ctx context.Context) *zap.Logger {
	logger := zap.L()
	if ctx == nil {
		return logger
	}
	if fields, ok := ctx.Value(ctxKey{}).([]zap.Field); ok {
		logger = logger.With(fields...)
	}
	return logger
}
