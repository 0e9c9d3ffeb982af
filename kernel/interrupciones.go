package kernel

import (
	"fmt"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

// manejarInterrupcion corre en el hilo de interrupciones: solo registra los
// eventos para que el kernel los procese en su propio hilo.
func (k *Kernel) manejarInterrupcion() {
	for {
		intr, ok := k.hw.InterrupcionPendiente()
		if !ok {
			return
		}
		k.eventos.agregar(Evento{Dispositivo: intr.Dispositivo, Estado: intr.Estado})
		k.hw.LimpiarInterrupcion()
	}
}

// manejarEventos procesa la cola de eventos y devuelve cuántos procesó
func (k *Kernel) manejarEventos() int {
	procesados := 0
	for {
		ev, ok := k.eventos.sacar()
		if !ok {
			return procesados
		}
		procesados++
		switch d := ev.Dispositivo.(type) {
		case hardware.Temporizador:
			k.despertarYRearmar(k.hw.LeerReloj())
		case hardware.Disco:
			k.atenderDisco(d.Numero, ev.Estado)
		default:
			k.fatal(errInterno("evento de un dispositivo desconocido %v", ev.Dispositivo))
		}
	}
}

func (k *Kernel) manejarFallo(f hardware.Fallo) {
	yo := k.procesos.idActual()
	switch f := f.(type) {
	case hardware.MemoriaInvalida:
		k.manejarFalloPagina(f.Pagina)
	case hardware.ErrorCPU:
		utils.ErrorLog.Error(fmt.Sprintf("(%d) - Error de CPU en la dirección %d", yo, f.Direccion))
		k.terminarProceso(-2)
	case hardware.InstruccionPrivilegiada:
		utils.ErrorLog.Error(fmt.Sprintf("(%d) - Instrucción privilegiada en modo usuario", yo))
		k.terminarProceso(-2)
	default:
		k.fatal(errInterno("fallo desconocido %T", f))
	}
}
