package utils

import (
	"time"
)

// AplicarRetardo duerme duracionMs milisegundos reales
func AplicarRetardo(operacion string, duracionMs int) {
	if duracionMs <= 0 {
		return
	}
	InfoLog.Debug("Aplicando retardo", "operacion", operacion, "duracion_ms", duracionMs)
	time.Sleep(time.Duration(duracionMs) * time.Millisecond)
}

// ExtraerEntero obtiene un campo numérico de los datos del mensaje
func ExtraerEntero(msg *Mensaje, clave string, valorPorDefecto int) int {
	if datosMap, ok := msg.Datos.(map[string]interface{}); ok {
		if valor, ok := datosMap[clave].(float64); ok {
			return int(valor)
		}
	}
	return valorPorDefecto
}

// ExtraerTexto obtiene un campo de texto de los datos del mensaje
func ExtraerTexto(msg *Mensaje, clave string, valorPorDefecto string) string {
	if datosMap, ok := msg.Datos.(map[string]interface{}); ok {
		if valor, ok := datosMap[clave].(string); ok {
			return valor
		}
	}
	return valorPorDefecto
}
