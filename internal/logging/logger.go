package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger instantiates the snowq console logger. The level string comes
// from configuration; unknown values fall back to info.
func NewLogger(level string) *zap.SugaredLogger {
	consoleEncoderCfg := zap.NewProductionEncoderConfig()
	consoleEncoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("01/02/2006 15:04:05")
	consoleEncoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderCfg)
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, os.Stderr, zapcore.ErrorLevel),
		zapcore.NewCore(consoleEncoder, os.Stdout, ParseLevel(level)),
	)
	l := zap.New(core)
	return l.Sugar()
}

// ParseLevel maps a configuration string to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Nop returns a logger that discards everything, for tests and for
// callers that have not been wired with a real logger yet.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
