package kernel

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

// Kernel contiene todo el estado del sistema operativo. Los manejadores que
// instala en el hardware son sus únicos puntos de entrada.
//
// Orden de locks: temporizador, lista de procesos, cola del temporizador,
// tabla de marcos, mapa de disco. Eventos y pedidos de disco son hojas.
// Ningún lock se mantiene durante una operación de hardware que cobre tiempo
// ni durante un cambio de contexto.
type Kernel struct {
	cfg Config
	hw  Hardware
	geo hardware.Config

	procesos *tablaProcesos
	marcos   *tablaMarcos
	mapa     *MapaDisco
	eventos  *colaEventos
	pedidos  *pedidosDisco

	temporizador sync.Mutex
	cupo         *utils.Semaforo

	muPID      sync.Mutex
	proximoPID int
}

// Programa es el cuerpo de un proceso de usuario
type Programa func(s *Sistema)

func New(cfg Config, hw Hardware) *Kernel {
	cfg = cfg.ConDefaults()
	geo := hw.Config()
	k := &Kernel{
		cfg:        cfg,
		hw:         hw,
		geo:        geo,
		procesos:   nuevaTablaProcesos(),
		marcos:     nuevaTablaMarcos(geo.MarcosFisicos),
		mapa:       NuevoMapaDisco(geo.CantidadDiscos, geo.SectoresPorDisco),
		eventos:    &colaEventos{},
		pedidos:    nuevosPedidosDisco(),
		cupo:       utils.NewSemaforo(cfg.MaxProcesos),
		proximoPID: 1,
	}
	hw.InstalarManejadores(k.manejarInterrupcion, k.manejarFallo, k.manejarLlamada)
	return k
}

// Arrancar crea el proceso inicial y bloquea hasta que la máquina se detiene.
// Devuelve nil si el último proceso terminó y el error fatal si no.
func (k *Kernel) Arrancar(programa Programa, nombre string, prioridad int) error {
	utils.InfoLog.Info("Iniciando kernel",
		"marcos", k.geo.MarcosFisicos,
		"paginas", k.geo.PaginasVirtuales,
		"discos", k.geo.CantidadDiscos,
		"max_procesos", k.cfg.MaxProcesos)

	if _, err := k.crearProceso(nombre, programa, prioridad, hardware.ModoUsuario); err != nil {
		return fmt.Errorf("no se pudo crear el proceso inicial: %w", err)
	}
	return k.hw.Esperar()
}

func (k *Kernel) nuevoPID() int {
	k.muPID.Lock()
	defer k.muPID.Unlock()
	id := k.proximoPID
	k.proximoPID++
	return id
}

// entrada envuelve el programa para que volver de él termine el proceso
func (k *Kernel) entrada(programa Programa) func() {
	return func() {
		s := &Sistema{k: k}
		programa(s)
		s.TerminarProceso(-1)
	}
}

// fatal detiene la máquina. No debe llamarse con locks tomados.
func (k *Kernel) fatal(err error) {
	estado := k.Instantanea()
	utils.ErrorLog.Error("Error fatal del kernel",
		"error", err,
		"reloj", estado.Reloj,
		"actual", estado.Actual,
		"procesos", len(estado.Procesos),
		"eventos_pendientes", estado.EventosPendientes)
	for _, p := range estado.Procesos {
		utils.ErrorLog.Error(fmt.Sprintf("(%d) %s - Estado: %s - Motivo: %s - Mensaje: %s", p.ID, p.Nombre, p.Estado, p.Motivo, p.EstadoMensaje))
	}
	k.hw.Detener(err)
	runtime.Goexit()
}
