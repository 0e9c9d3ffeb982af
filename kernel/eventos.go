package kernel

import (
	"sync"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
)

// Evento es una interrupción registrada por el hilo de interrupciones y
// todavía no procesada por el kernel.
type Evento struct {
	Dispositivo hardware.Dispositivo
	Estado      hardware.Estado
}

type colaEventos struct {
	mu      sync.Mutex
	eventos []Evento
}

func (c *colaEventos) agregar(ev Evento) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.eventos = append(c.eventos, ev)
}

func (c *colaEventos) sacar() (Evento, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.eventos) == 0 {
		return Evento{}, false
	}
	ev := c.eventos[0]
	c.eventos = c.eventos[1:]
	return ev, true
}

func (c *colaEventos) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.eventos)
}

// pedidosDisco recuerda, por disco, qué proceso inició cada operación en
// curso. El hardware completa en orden de llegada.
type pedidosDisco struct {
	mu       sync.Mutex
	porDisco map[int][]int
}

func nuevosPedidosDisco() *pedidosDisco {
	return &pedidosDisco{porDisco: make(map[int][]int)}
}

func (p *pedidosDisco) encolar(disco, pid int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.porDisco[disco] = append(p.porDisco[disco], pid)
}

func (p *pedidosDisco) desencolar(disco int) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cola := p.porDisco[disco]
	if len(cola) == 0 {
		return 0, false
	}
	p.porDisco[disco] = cola[1:]
	return cola[0], true
}

// descartarUltimo deshace un encolar cuyo pedido no llegó al hardware
func (p *pedidosDisco) descartarUltimo(disco int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cola := p.porDisco[disco]; len(cola) > 0 {
		p.porDisco[disco] = cola[:len(cola)-1]
	}
}
