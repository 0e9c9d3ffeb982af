package hardware

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// Contexto es un hilo de ejecución simulado. Cada uno corre en su propia
// goroutine y sólo avanza mientras es el contexto actual de la máquina.
type Contexto struct {
	m       *Maquina
	id      int
	modo    Modo
	entrada func()

	turno       chan struct{}
	destruido   chan struct{}
	destruirUna sync.Once
	iniciado    bool
}

func (c *Contexto) ID() int {
	return c.id
}

func (c *Contexto) Modo() Modo {
	return c.modo
}

// CrearContexto prepara un contexto que ejecutará entrada la primera vez
// que se cambie a él.
func (m *Maquina) CrearContexto(entrada func(), modo Modo) *Contexto {
	m.mu.Lock()
	m.contextos++
	id := m.contextos
	m.mu.Unlock()

	return &Contexto{
		m:         m,
		id:        id,
		modo:      modo,
		entrada:   entrada,
		turno:     make(chan struct{}, 1),
		destruido: make(chan struct{}),
	}
}

// DestruirContexto libera la goroutine de un contexto que no volverá a correr
func (m *Maquina) DestruirContexto(c *Contexto) {
	c.destruirUna.Do(func() {
		close(c.destruido)
	})
}

// CambiarContexto entrega la CPU a destino. Con Guardar el llamador queda
// estacionado hasta que alguien vuelva a cambiar a su contexto; con Matar su
// goroutine termina. Llamado desde fuera de todo contexto (arranque), bloquea
// hasta el halt.
func (m *Maquina) CambiarContexto(modo ModoCambio, destino *Contexto) {
	m.mu.Lock()
	origen := m.actual
	if destino == origen {
		m.mu.Unlock()
		return
	}
	m.actual = destino
	arrancar := !destino.iniciado
	destino.iniciado = true
	m.mu.Unlock()

	campos := logrus.Fields{"destino": destino.id}
	if origen != nil {
		campos["origen"] = origen.id
	}
	m.traza.WithFields(campos).Debug("cambio de contexto")

	if arrancar {
		go destino.correr()
	} else {
		destino.turno <- struct{}{}
	}

	if origen == nil {
		<-m.detenida
		return
	}
	if modo == Matar {
		m.DestruirContexto(origen)
		runtime.Goexit()
	}
	origen.esperarTurno()
}

// ContextoActual devuelve el contexto que tiene la CPU
func (m *Maquina) ContextoActual() *Contexto {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actual
}

func (c *Contexto) correr() {
	select {
	case <-c.m.detenida:
		return
	case <-c.destruido:
		return
	default:
	}

	c.entrada()

	select {
	case <-c.m.detenida:
	default:
		c.m.Detener(fmt.Errorf("el contexto %d terminó sin ceder la CPU", c.id))
	}
}

func (c *Contexto) esperarTurno() {
	select {
	case <-c.turno:
	case <-c.m.detenida:
		runtime.Goexit()
	case <-c.destruido:
		runtime.Goexit()
	}
}
