package main

import (
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/kernel"
)

// Os502Config define la configuración de la máquina, el kernel y el monitor
type Os502Config struct {
	Hardware         hardware.Config `json:"HARDWARE"`
	Kernel           kernel.Config   `json:"KERNEL"`
	LogLevel         string          `json:"LOG_LEVEL"`
	PrioridadInicial int             `json:"PRIORIDAD_INICIAL"`
	IPMonitor        string          `json:"IP_MONITOR"`
	PuertoMonitor    int             `json:"PUERTO_MONITOR"`
}
