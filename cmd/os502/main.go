package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/kernel"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/programas"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

var errInterrumpido = errors.New("interrumpido por señal")

func main() {
	utils.InicializarLogger("INFO", "os502")

	if len(os.Args) < 3 {
		fmt.Fprintf(os.Stderr, "Uso: %s <archivo_configuracion> <programa>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Ejemplo: %s configs/os502.json ping_pong\n\nProgramas:\n", os.Args[0])
		for _, e := range programas.Listar() {
			fmt.Fprintf(os.Stderr, "  %-12s %s\n", e.Nombre, e.Descripcion)
		}
		os.Exit(1)
	}
	rutaConfig := os.Args[1]
	nombrePrograma := os.Args[2]

	cfg, err := utils.CargarConfiguracion[Os502Config](rutaConfig)
	if err != nil {
		utils.ErrorLog.Error("No se pudo cargar la configuración", "error", err)
		os.Exit(1)
	}
	utils.InicializarLogger(cfg.LogLevel, "os502")

	programa, err := programas.Buscar(nombrePrograma)
	if err != nil {
		utils.ErrorLog.Error("Programa inválido", "error", err)
		os.Exit(1)
	}

	maquina, err := hardware.NuevaMaquina(cfg.Hardware)
	if err != nil {
		utils.ErrorLog.Error("No se pudo crear la máquina", "error", err)
		os.Exit(1)
	}
	defer maquina.Apagar()

	k := kernel.New(cfg.Kernel, maquina)
	if cfg.PuertoMonitor > 0 {
		iniciarMonitor(cfg.IPMonitor, cfg.PuertoMonitor, k)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		utils.InfoLog.Info("Señal recibida, se detiene la máquina")
		maquina.Detener(errInterrumpido)
	}()

	utils.InfoLog.Info("Arrancando", "programa", nombrePrograma, "prioridad", cfg.PrioridadInicial)
	err = k.Arrancar(programa, nombrePrograma, cfg.PrioridadInicial)
	estado := k.Instantanea()
	switch {
	case errors.Is(err, errInterrumpido):
		utils.InfoLog.Info("Ejecución interrumpida", "reloj", estado.Reloj)
		return
	case err != nil:
		utils.ErrorLog.Error("La máquina se detuvo con error", "error", err, "reloj", estado.Reloj)
		os.Exit(1)
	}
	utils.InfoLog.Info("Todos los procesos terminaron", "reloj", estado.Reloj, "sectores_ocupados", estado.SectoresOcupados)

	if cfg.PuertoMonitor > 0 {
		fmt.Println("Máquina detenida. El monitor sigue disponible, Ctrl+C para salir...")
		<-sigChan
	}
}
