// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger of the cli commands.
// It discards everything until a logger is set with SetLogger or created with NewCliLogger.
var Log = logr.Discard()

// Config configures the zap logger that backs the logr interface.
type Config struct {
	Development       bool
	Verbosity         int
	DisableStacktrace bool
	DisableCaller     bool
}

var configFromFlags = Config{}

var cliConfig = zap.Config{
	Level:             zap.NewAtomicLevelAt(zap.InfoLevel),
	Development:       false,
	Encoding:          "console",
	DisableStacktrace: true,
	DisableCaller:     true,
	EncoderConfig: zapcore.EncoderConfig{
		TimeKey:        "",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	},
	OutputPaths:      []string{"stderr"},
	ErrorOutputPaths: []string{"stderr"},
}

var developmentConfig = zap.Config{
	Level:             zap.NewAtomicLevelAt(zap.InfoLevel),
	Development:       true,
	Encoding:          "console",
	DisableStacktrace: false,
	DisableCaller:     false,
	EncoderConfig:     zap.NewProductionEncoderConfig(),
	OutputPaths:       []string{"stderr"},
	ErrorOutputPaths:  []string{"stderr"},
}

var productionConfig = zap.Config{
	Level:             zap.NewAtomicLevelAt(zap.InfoLevel),
	Development:       false,
	DisableStacktrace: true,
	DisableCaller:     true,
	Encoding:          "json",
	EncoderConfig:     zap.NewProductionEncoderConfig(),
	OutputPaths:       []string{"stderr"},
	ErrorOutputPaths:  []string{"stderr"},
}

// New creates a logr logger backed by zap.
// The configuration of the command line flags is used if config is nil.
func New(config *Config) (logr.Logger, error) {
	if config == nil {
		config = &configFromFlags
	}
	zapCfg := determineZapConfig(config)

	zapLog, err := zapCfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zapLog), nil
}

// NewCliLogger creates a human readable console logger from the command line flags and sets it as global logger.
func NewCliLogger() (logr.Logger, error) {
	cfg := cliConfig
	if configFromFlags.Development {
		cfg = developmentConfig
	}
	cfg.Level = zap.NewAtomicLevelAt(levelFromVerbosity(configFromFlags.Verbosity))

	zapLog, err := cfg.Build()
	if err != nil {
		return logr.Discard(), err
	}
	log := zapr.NewLogger(zapLog)
	SetLogger(log)
	return log, nil
}

// SetLogger sets the global logger.
func SetLogger(log logr.Logger) {
	Log = log
}

func determineZapConfig(config *Config) zap.Config {
	var cfg zap.Config
	if config.Development {
		cfg = developmentConfig
	} else {
		cfg = productionConfig
	}

	cfg.DisableStacktrace = config.DisableStacktrace
	cfg.DisableCaller = config.DisableCaller
	cfg.Level = zap.NewAtomicLevelAt(levelFromVerbosity(config.Verbosity))

	return cfg
}

// levelFromVerbosity maps a logr verbosity to the negative zap level that enables it.
func levelFromVerbosity(v int) zapcore.Level {
	if v < 0 {
		v = 0
	}
	return zapcore.Level(int8(0 - v))
}

// InitFlags adds the logger flags to the given flagset.
func InitFlags(flagset *flag.FlagSet) {
	if flagset == nil {
		flagset = flag.CommandLine
	}

	flagset.BoolVar(&configFromFlags.Development, "dev", false, "enable development logging which result in console encoding, enabled stacktrace and enabled caller")
	flagset.IntVarP(&configFromFlags.Verbosity, "verbosity", "v", 0, "number for the log level verbosity")
	flagset.BoolVar(&configFromFlags.DisableStacktrace, "disable-stacktrace", true, "disable the stacktrace of error logs")
	flagset.BoolVar(&configFromFlags.DisableCaller, "disable-caller", true, "disable the caller of logs")
}

// Logf logs a formatted message with the given log function.
func Logf(logFunc func(msg string, keysAndValues ...interface{}), format string, a ...interface{}) {
	message := fmt.Sprintf(format, a...)
	logFunc(message)
}
