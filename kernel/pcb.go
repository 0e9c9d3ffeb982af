package kernel

import (
	"fmt"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

type EstadoProceso int

const (
	Listo EstadoProceso = iota
	Ejecutando
	Esperando
	Detenido
)

func (e EstadoProceso) String() string {
	switch e {
	case Listo:
		return "LISTO"
	case Ejecutando:
		return "EJECUTANDO"
	case Esperando:
		return "ESPERANDO"
	case Detenido:
		return "DETENIDO"
	}
	return fmt.Sprintf("ESTADO_%d", int(e))
}

// MotivoEspera dice por qué un proceso no está listo
type MotivoEspera int

const (
	SinEspera MotivoEspera = iota
	EsperaDormir
	EsperaDisco
	EsperaMensaje
)

func (m MotivoEspera) String() string {
	switch m {
	case SinEspera:
		return "-"
	case EsperaDormir:
		return "DORMIR"
	case EsperaDisco:
		return "DISCO"
	case EsperaMensaje:
		return "MENSAJE"
	}
	return fmt.Sprintf("MOTIVO_%d", int(m))
}

type EstadoMensaje int

const (
	MensajeListo EstadoMensaje = iota
	MensajeEnviar
	MensajeEnviarTodos
	MensajeRecibir
	MensajeRecibirTodos
)

func (e EstadoMensaje) String() string {
	switch e {
	case MensajeListo:
		return "LISTO"
	case MensajeEnviar:
		return "ENVIAR"
	case MensajeEnviarTodos:
		return "ENVIAR_TODOS"
	case MensajeRecibir:
		return "RECIBIR"
	case MensajeRecibirTodos:
		return "RECIBIR_TODOS"
	}
	return fmt.Sprintf("MENSAJE_%d", int(e))
}

// Difusion es el destino de un envío a todos y el origen de una recepción
// de cualquiera.
const Difusion = -1

// Mensaje vive en exactamente un buzón
type Mensaje struct {
	Origen  int
	Destino int
	Datos   []byte
}

// Ubicacion de una página en disco; Disco 0 es "sin respaldo"
type Ubicacion struct {
	Disco  int
	Sector int
}

type PCB struct {
	ID        int
	Nombre    string
	Padre     int
	Prioridad int
	Modo      hardware.Modo
	Estado    EstadoProceso
	Motivo    MotivoEspera
	Contexto  *hardware.Contexto

	Despertar int64

	EstadoMensaje     EstadoMensaje
	LongitudRecepcion int
	RecibirDe         int
	BuzonSalida       []Mensaje
	BuzonEntrada      []Mensaje
	Entregas          int

	TablaPaginas *hardware.TablaPaginas
	Sombra       []Ubicacion

	DiscoEnUso     int
	SectorEnUso    int
	ResultadoDisco hardware.Estado

	Metricas Metricas

	enCola bool
}

func nuevoPCB(id int, nombre string, padre, prioridad int, modo hardware.Modo, paginas int) *PCB {
	return &PCB{
		ID:           id,
		Nombre:       nombre,
		Padre:        padre,
		Prioridad:    prioridad,
		Modo:         modo,
		Estado:       Listo,
		TablaPaginas: hardware.NuevaTablaPaginas(paginas),
		Sombra:       make([]Ubicacion, paginas),
	}
}

// cambiarEstado se llama con la lista de procesos tomada
func (p *PCB) cambiarEstado(nuevo EstadoProceso, motivo MotivoEspera) {
	anterior := p.Estado
	p.Motivo = motivo
	if anterior == nuevo {
		return
	}
	p.Estado = nuevo
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Pasa del estado %s al estado %s", p.ID, anterior, nuevo), "motivo", motivo)
}

// disponible indica si el proceso puede ser pareja de un mensaje
func (p *PCB) disponible() bool {
	if p.enCola {
		return false
	}
	return p.Estado == Listo || p.Estado == Ejecutando || p.Estado == Detenido
}

// esperaMensajeDe indica si el proceso está bloqueado en una recepción que
// acepta mensajes de origen
func (p *PCB) esperaMensajeDe(origen int) bool {
	if p.EstadoMensaje != MensajeRecibir && p.EstadoMensaje != MensajeRecibirTodos {
		return false
	}
	return p.RecibirDe == origen || p.RecibirDe == Difusion
}

func (p *PCB) String() string {
	return fmt.Sprintf("PCB{ID: %d, Nombre: %s, Prioridad: %d, Estado: %s}", p.ID, p.Nombre, p.Prioridad, p.Estado)
}
