package utils

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNivelSlog(t *testing.T) {
	tests := []struct {
		nivel string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"cualquiera", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := nivelSlog(tt.nivel); got != tt.want {
			t.Errorf("nivelSlog(%q) = %v, want %v", tt.nivel, got, tt.want)
		}
	}
}

func TestInicializarLoggerEn(t *testing.T) {
	anteriorInfo, anteriorError := InfoLog, ErrorLog
	defer func() { InfoLog, ErrorLog = anteriorInfo, anteriorError }()

	var buf bytes.Buffer
	InicializarLoggerEn(&buf, "warn", "prueba")

	InfoLog.Info("no deberia aparecer")
	ErrorLog.Error("aparece", "pid", 3)

	salida := buf.String()
	if strings.Contains(salida, "no deberia aparecer") {
		t.Fatal("un Info no debería escribirse con nivel warn")
	}
	if !strings.Contains(salida, "modulo=prueba") || !strings.Contains(salida, "pid=3") {
		t.Fatalf("salida inesperada: %q", salida)
	}
}

func TestNuevaTraza(t *testing.T) {
	if got := NuevaTraza("DEBUG").GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("nivel = %v, se esperaba debug", got)
	}
	if got := NuevaTraza("nada").GetLevel(); got != logrus.WarnLevel {
		t.Fatalf("nivel = %v, se esperaba warn", got)
	}
}
