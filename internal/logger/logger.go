// Package logger настраивает глобальный zerolog-логгер и прокидывает его через context.
package logger

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type loggerKey struct{}

var globalLogger zerolog.Logger

func init() {
	hostname, _ := os.Hostname()
	pname, _ := os.Executable()

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return filepath.Base(file) + ":" + strconv.Itoa(line)
	}

	globalLogger = log.With().
		Str("hostname", hostname).
		Str("executable", filepath.Base(pname)).
		Caller().
		Logger().
		Level(level)

	log.Logger = globalLogger
}

// Ctx возвращает логгер запроса, а если его нет: глобальный.
func Ctx(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return &globalLogger
	}
	if l, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok && l != nil {
		return l
	}
	return &globalLogger
}

// WithLogger кладёт логгер в контекст.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// Global возвращает копию глобального логгера для построения дочерних.
func Global() zerolog.Logger {
	return globalLogger
}

// SetLevel updates the global log level
func SetLevel(level zerolog.Level) {
	globalLogger = globalLogger.Level(level)
	log.Logger = globalLogger
}

// SetLevelString разбирает уровень из строки; пустая строка ничего не меняет.
func SetLevelString(s string) error {
	if s == "" {
		return nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return err
	}
	SetLevel(level)
	return nil
}

func Fatal() *zerolog.Event { return globalLogger.Fatal() }
func Error() *zerolog.Event { return globalLogger.Error() }
func Warn() *zerolog.Event  { return globalLogger.Warn() }
func Info() *zerolog.Event  { return globalLogger.Info() }
func Debug() *zerolog.Event { return globalLogger.Debug() }
