package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// WorkDir is the harvester's per-user state directory, holding logs and the
// default sink database.
const WorkDir = ".workload-harvester"

var DefaultZapConfig = Zap{
	Directory:    "logs",
	File:         "harvester.log",
	MaxSize:      10,
	MaxAge:       30,
	MaxBackups:   10,
	Compress:     true,
	Level:        "info",
	EncodeLevel:  "CapitalColorLevelEncoder",
	LogInConsole: true,
}

// Zap configures the run's structured logging: a rotated JSON log file for
// the nightly batch plus an optional colourised console core, split so
// error-level entries additionally land in their own file for the on-call
// morning scan.
type Zap struct {
	Directory     string `mapstructure:"directory"`
	File          string `mapstructure:"file"`
	MaxSize       int    `mapstructure:"max_size"`
	MaxAge        int    `mapstructure:"max_age"`
	MaxBackups    int    `mapstructure:"max_backups"`
	Compress      bool   `mapstructure:"compress"`
	Level         string `mapstructure:"level"` // debug  info  warn  error
	EncodeLevel   string `mapstructure:"encode_level"`
	StacktraceKey string `mapstructure:"stacktrace_key"`
	LogInConsole  bool   `mapstructure:"log_in_console"`
	ShowLine      bool   `mapstructure:"show_line"`
}

func (z *Zap) ZapEncodeLevel() zapcore.LevelEncoder {
	switch z.EncodeLevel {
	case "LowercaseLevelEncoder":
		return zapcore.LowercaseLevelEncoder
	case "LowercaseColorLevelEncoder":
		return zapcore.LowercaseColorLevelEncoder
	case "CapitalLevelEncoder":
		return zapcore.CapitalLevelEncoder
	case "CapitalColorLevelEncoder":
		return zapcore.CapitalColorLevelEncoder
	default:
		return zapcore.LowercaseLevelEncoder
	}
}

func (z *Zap) encoderConfig(encodeLevel zapcore.LevelEncoder) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  z.StacktraceKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    encodeLevel,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func (z *Zap) rotatedWriter(dir, name string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    z.MaxSize,
		MaxBackups: z.MaxBackups,
		MaxAge:     z.MaxAge,
		Compress:   z.Compress,
	})
}

// InitLogger builds the run logger: the main rotated file takes everything
// at or above the configured level, a sibling ".err" file takes only
// error-level entries, and the console core mirrors the main file when
// enabled.
func (z *Zap) InitLogger() (*zap.Logger, error) {
	homeDir, _ := os.UserHomeDir()
	logDir := filepath.Join(homeDir, WorkDir, z.Directory)
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(z.Level)); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	logFile := z.File
	if logFile == "" {
		logFile = DefaultZapConfig.File
	}
	errFile := strings.TrimSuffix(logFile, filepath.Ext(logFile)) + ".err" + filepath.Ext(logFile)

	fileEncoder := zapcore.NewJSONEncoder(z.encoderConfig(zapcore.LowercaseLevelEncoder))
	mainEnabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool { return lvl >= level })
	errorEnabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel && lvl >= level
	})

	cores := []zapcore.Core{
		zapcore.NewCore(fileEncoder, z.rotatedWriter(logDir, logFile), mainEnabler),
		zapcore.NewCore(fileEncoder, z.rotatedWriter(logDir, errFile), errorEnabler),
	}
	if z.LogInConsole {
		consoleEncoder := zapcore.NewConsoleEncoder(z.encoderConfig(z.ZapEncodeLevel()))
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), mainEnabler))
	}

	options := []zap.Option{}
	if z.ShowLine {
		options = append(options, zap.AddCaller())
	}
	if z.StacktraceKey != "" {
		options = append(options, zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return zap.New(zapcore.NewTee(cores...), options...), nil
}
