package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CargarConfiguracion decodifica el archivo JSON de ruta en un *T
func CargarConfiguracion[T any](ruta string) (*T, error) {
	InfoLog.Info("Cargando configuración", "ruta", ruta)

	absPath, err := filepath.Abs(ruta)
	if err != nil {
		return nil, fmt.Errorf("error obteniendo ruta absoluta de %s: %v", ruta, err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("error abriendo archivo de configuración %s: %v", absPath, err)
	}
	defer file.Close()

	var config T
	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("error decodificando configuración %s: %v", absPath, err)
	}

	InfoLog.Info("Configuración cargada correctamente", "archivo", absPath)
	return &config, nil
}
