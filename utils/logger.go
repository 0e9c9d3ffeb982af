package utils

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	InfoLog  = slog.Default()
	ErrorLog = slog.Default()
)

// InicializarLogger configura los loggers globales
func InicializarLogger(logLevel string, moduleName string) {
	InicializarLoggerEn(os.Stdout, logLevel, moduleName)
}

// InicializarLoggerEn configura los loggers globales escribiendo en w
func InicializarLoggerEn(w io.Writer, logLevel string, moduleName string) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: nivelSlog(logLevel),
	})

	logger := slog.New(handler).With("modulo", moduleName)

	InfoLog = logger
	ErrorLog = logger
}

func nivelSlog(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NuevaTraza crea el logger de traza de la máquina simulada.
// Un nivel inválido deja la traza en warn.
func NuevaTraza(nivel string) *logrus.Logger {
	traza := logrus.New()
	traza.SetOutput(os.Stdout)
	traza.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(strings.ToLower(nivel))
	if err != nil {
		lvl = logrus.WarnLevel
	}
	traza.SetLevel(lvl)
	return traza
}
