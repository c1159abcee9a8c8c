package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	log *slog.Logger
	mu  sync.RWMutex
)

// Init инициализирует глобальный логгер.
// env: "development" даёт текстовый вывод, всё остальное - JSON.
func Init(env, level string) {
	InitWithWriter(os.Stdout, env, level)
}

// InitWithWriter is Init with an explicit destination.
func InitWithWriter(w io.Writer, env, level string) {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(level, env),
		AddSource: true,
	}

	var handler slog.Handler
	if env == "development" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	mu.Lock()
	log = l
	mu.Unlock()
	slog.SetDefault(l)
}

func parseLevel(level, env string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// GetLogger возвращает глобальный логгер
func GetLogger() *slog.Logger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		Init("development", "")
		mu.RLock()
		l = log
		mu.RUnlock()
	}
	return l
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal логирует ошибку и завершает программу
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With создает логгер с дополнительными полями
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}

// WithError создает логгер с полем error
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}

// WorkerLog логирует операцию фонового воркера
func WorkerLog(worker, operation string, err error, args ...any) {
	fields := append([]any{"worker", worker, "operation", operation}, args...)

	if err != nil {
		fields = append(fields, "error", err.Error())
		GetLogger().Error("worker operation failed", fields...)
		return
	}
	GetLogger().Debug("worker operation completed", fields...)
}
