package utils

import (
	"os"
	"path/filepath"
	"testing"
)

type configPrueba struct {
	LogLevel string `json:"LOG_LEVEL"`
	Puerto   int    `json:"PUERTO"`
}

func TestCargarConfiguracion(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name      string
		contenido string
		wantErr   bool
		want      configPrueba
	}{
		{"valida", `{"LOG_LEVEL":"debug","PUERTO":8001}`, false, configPrueba{"debug", 8001}},
		{"campo desconocido", `{"LOG_LEVEL":"debug","OTRO":1}`, true, configPrueba{}},
		{"json roto", `{"LOG_LEVEL":`, true, configPrueba{}},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ruta := filepath.Join(dir, "config"+string(rune('a'+i))+".json")
			if err := os.WriteFile(ruta, []byte(tt.contenido), 0644); err != nil {
				t.Fatal(err)
			}

			got, err := CargarConfiguracion[configPrueba](ruta)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && *got != tt.want {
				t.Fatalf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestCargarConfiguracionArchivoInexistente(t *testing.T) {
	if _, err := CargarConfiguracion[configPrueba](filepath.Join(t.TempDir(), "no.json")); err == nil {
		t.Fatal("se esperaba error para un archivo inexistente")
	}
}
