package config

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// NewLogger returns a JSON production logger for "prod" and a colored
// console logger for every other environment.
func NewLogger(env string) (*zap.Logger, error) {
    if env == "prod" || env == "production" {
        cfg := zap.NewProductionConfig()
        cfg.EncoderConfig.TimeKey = "ts"
        cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
        return cfg.Build()
    }
    cfg := zap.NewDevelopmentConfig()
    cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
    return cfg.Build()
}
