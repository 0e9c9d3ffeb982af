package kernel

import (
	"fmt"
	"runtime"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

func (k *Kernel) crearProceso(nombre string, programa Programa, prioridad int, modo hardware.Modo) (int, error) {
	switch {
	case nombre == "":
		return 0, errParametro("nombre vacío")
	case len(nombre) > k.cfg.LongitudNombre:
		return 0, errParametro("nombre de %d caracteres, máximo %d", len(nombre), k.cfg.LongitudNombre)
	case prioridad < 0 || prioridad > k.cfg.PrioridadMaxima:
		return 0, errParametro("prioridad %d fuera de [0, %d]", prioridad, k.cfg.PrioridadMaxima)
	case programa == nil:
		return 0, errParametro("programa nulo")
	case k.procesos.porNombre(nombre) >= 0:
		return 0, errParametro("ya existe un proceso llamado %s", nombre)
	}
	if !k.cupo.TryWait() {
		return 0, fmt.Errorf("%w: %w: límite de %d procesos alcanzado", ErrInterno, ErrRecursosAgotados, k.cfg.MaxProcesos)
	}

	id := k.nuevoPID()
	padre := k.procesos.idActual()
	pcb := nuevoPCB(id, nombre, padre, prioridad, modo, k.geo.PaginasVirtuales)
	pcb.Contexto = k.hw.CrearContexto(k.entrada(programa), modo)
	k.procesos.agregar(pcb)
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Se crea el proceso %s - Prioridad: %d", id, nombre, prioridad), "padre", padre)

	corriendo, prioridadActual := false, 0
	k.procesos.conLista(func() {
		if p, ok := k.procesos.pcbs[padre]; ok && p.Estado == Ejecutando {
			corriendo, prioridadActual = true, p.Prioridad
		}
	})
	if !corriendo || prioridad < prioridadActual {
		k.cambiarProceso(id, hardware.Guardar)
	}
	return id, nil
}

// cambiarProceso le da la CPU a id. Con Guardar el llamador vuelve cuando lo
// replanifiquen.
func (k *Kernel) cambiarProceso(id int, modo hardware.ModoCambio) {
	var destino *PCB
	k.procesos.conLista(func() {
		t := k.procesos
		destino = t.pcbs[id]
		if destino == nil {
			return
		}
		if anterior, ok := t.pcbs[t.actual]; ok && anterior != destino && anterior.Estado == Ejecutando {
			anterior.cambiarEstado(Listo, SinEspera)
		}
		destino.cambiarEstado(Ejecutando, SinEspera)
		t.actual = id
	})
	if destino == nil {
		k.fatal(errInterno("cambio a un proceso inexistente %d", id))
	}
	k.hw.FijarTablaPaginas(destino.TablaPaginas)
	k.hw.CambiarContexto(modo, destino.Contexto)
}

// cederCPU corre al proceso de mayor prioridad o espera a que haya uno
func (k *Kernel) cederCPU(modo hardware.ModoCambio) {
	if id := k.procesos.mayorPrioridad(); id >= 0 {
		k.cambiarProceso(id, modo)
		return
	}
	k.inactivo(modo)
}

// replanificar cambia al proceso de mayor prioridad si no es el que corre.
// Devuelve false si no hay ninguno que pueda correr.
func (k *Kernel) replanificar(modo hardware.ModoCambio) bool {
	id := k.procesos.mayorPrioridad()
	if id < 0 {
		return false
	}
	corriendo := false
	k.procesos.con(id, func(p *PCB) { corriendo = p.Estado == Ejecutando })
	if !corriendo {
		k.cambiarProceso(id, modo)
	}
	return true
}

// inactivo es el bucle ocioso: procesa eventos mientras haya, y si ninguno
// dejó un proceso listo deja correr al hardware hasta el próximo.
func (k *Kernel) inactivo(modo hardware.ModoCambio) {
	for {
		if k.eventos.total() > 0 {
			if k.manejarEventos() > 0 && k.replanificar(modo) {
				return
			}
			continue
		}
		if !k.hw.Inactivo() {
			k.fatal(errInterno("ningún proceso puede correr y no hay operaciones pendientes"))
		}
	}
}

func (k *Kernel) terminarProceso(id int) error {
	actual := k.procesos.idActual()
	switch {
	case id == -2:
		k.terminarConDescendientes(actual, actual)
		return nil
	case id == -1:
		id = actual
	case id <= 0:
		return errParametro("id de proceso %d", id)
	}
	return k.terminarUno(id, id == actual)
}

// terminarConDescendientes termina primero a los hijos, recursivamente
func (k *Kernel) terminarConDescendientes(id, actual int) {
	for _, hijo := range k.procesos.hijos(id) {
		k.terminarConDescendientes(hijo, actual)
	}
	if err := k.terminarUno(id, id == actual); err != nil {
		utils.ErrorLog.Warn("No se pudo terminar descendiente", "pid", id, "error", err)
	}
}

// terminarUno libera al proceso. Si es el que corre no vuelve.
func (k *Kernel) terminarUno(id int, propio bool) error {
	p := k.procesos.quitar(id)
	if p == nil {
		return errParametro("no existe el proceso %d", id)
	}
	liberados := k.marcos.liberarProceso(id)
	k.cupo.Signal()
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Finaliza el proceso", id), "nombre", p.Nombre, "marcos_liberados", liberados)
	p.informarMetricas()

	if k.procesos.total() == 0 {
		utils.InfoLog.Info("No quedan procesos, se detiene la máquina", "reloj", k.hw.LeerReloj())
		k.hw.Detener(nil)
		if propio {
			runtime.Goexit()
		}
		return nil
	}
	if !propio {
		k.hw.DestruirContexto(p.Contexto)
		return nil
	}
	k.cederCPU(hardware.Matar)
	runtime.Goexit()
	return nil
}

func (k *Kernel) suspenderProceso(id int) error {
	actual := k.procesos.idActual()
	if id == -1 {
		id = actual
	}
	var err error
	k.procesos.conTodo(func() {
		p, ok := k.procesos.pcbs[id]
		switch {
		case !ok:
			err = errParametro("no existe el proceso %d", id)
			return
		case p.Estado == Detenido:
			err = errParametro("el proceso %d ya está suspendido", id)
			return
		}
		if p.enCola {
			k.procesos.sacarDeCola(id)
		}
		motivo := SinEspera
		if p.DiscoEnUso != 0 {
			motivo = EsperaDisco
		}
		p.cambiarEstado(Detenido, motivo)
	})
	if err != nil {
		return err
	}
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Proceso suspendido", id))
	if id == actual {
		k.cederCPU(hardware.Guardar)
	}
	return nil
}

func (k *Kernel) reanudarProceso(id int) error {
	if id == -1 {
		id = k.procesos.idActual()
	}
	var err error
	existe := k.procesos.con(id, func(p *PCB) {
		if p.Estado != Detenido {
			err = errParametro("el proceso %d no está suspendido", id)
			return
		}
		if p.DiscoEnUso != 0 {
			p.cambiarEstado(Esperando, EsperaDisco)
		} else {
			p.cambiarEstado(Listo, SinEspera)
		}
	})
	if !existe {
		return errParametro("no existe el proceso %d", id)
	}
	if err != nil {
		return err
	}
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Proceso reanudado", id))
	k.revisarBuzonSalida(id)
	k.replanificar(hardware.Guardar)
	return nil
}

func (k *Kernel) cambiarPrioridad(id, prioridad int) error {
	if prioridad < 0 || prioridad > k.cfg.PrioridadMaxima {
		return errParametro("prioridad %d fuera de [0, %d]", prioridad, k.cfg.PrioridadMaxima)
	}
	if id == -1 {
		id = k.procesos.idActual()
	}
	anterior := 0
	if !k.procesos.con(id, func(p *PCB) { anterior, p.Prioridad = p.Prioridad, prioridad }) {
		return errParametro("no existe el proceso %d", id)
	}
	k.procesos.reordenar()
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Cambio de prioridad %d -> %d", id, anterior, prioridad))
	k.replanificar(hardware.Guardar)
	return nil
}

func (k *Kernel) dormir(duracion int64) error {
	if duracion < 0 {
		return errParametro("duración negativa %d", duracion)
	}
	id := k.procesos.idActual()
	ahora := k.hw.LeerReloj()
	if !k.procesos.dormir(id, ahora+duracion) {
		return errInterno("el proceso %d no está en la lista", id)
	}
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Duerme %d unidades", id, duracion), "despierta", ahora+duracion)
	k.despertarYRearmar(ahora)

	dormido := false
	k.procesos.con(id, func(p *PCB) { dormido = p.enCola })
	if dormido {
		k.cederCPU(hardware.Guardar)
		return nil
	}
	k.replanificar(hardware.Guardar)
	return nil
}

// despertarYRearmar pasa a listos a los dormidos vencidos y arma el
// temporizador para la nueva cabeza de la cola.
func (k *Kernel) despertarYRearmar(ahora int64) {
	var despiertos []int
	k.temporizador.Lock()
	for {
		despiertos = append(despiertos, k.procesos.despertarVencidos(ahora)...)
		proximo, ok := k.procesos.proximoDespertar()
		if !ok {
			break
		}
		if demora := proximo - ahora; demora > 0 {
			k.hw.IniciarTemporizador(demora)
			break
		}
	}
	k.temporizador.Unlock()

	for _, id := range despiertos {
		utils.InfoLog.Info(fmt.Sprintf("(%d) - Despierta", id), "reloj", ahora)
		k.revisarBuzonSalida(id)
	}
}
