package hardware

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type pedidoDisco struct {
	sector    int
	buffer    []byte
	escritura bool
}

type disco struct {
	numero  int
	ocupado bool
	cola    []pedidoDisco
}

// IniciarDisco programa una lectura o escritura de un sector completo. Los
// datos se copian cuando el pedido empieza a atenderse; la interrupción del
// disco llega COSTO_DISCO ticks después. Un disco ocupado encola el pedido.
func (m *Maquina) IniciarDisco(numero, sector int, buffer []byte, escritura bool) error {
	if numero < 1 || numero > m.cfg.CantidadDiscos {
		return fmt.Errorf("disco inexistente: %d", numero)
	}
	if sector < 0 || sector >= m.cfg.SectoresPorDisco {
		return fmt.Errorf("sector fuera de rango en disco %d: %d", numero, sector)
	}
	if len(buffer) < m.cfg.TamPagina {
		return fmt.Errorf("buffer de %d bytes, se necesitan %d", len(buffer), m.cfg.TamPagina)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d := m.discos[numero-1]
	pedido := pedidoDisco{sector: sector, buffer: buffer, escritura: escritura}
	if d.ocupado {
		d.cola = append(d.cola, pedido)
		m.traza.WithFields(logrus.Fields{"disco": numero, "sector": sector, "en_cola": len(d.cola)}).
			Debug("disco ocupado, pedido encolado")
		return nil
	}
	m.iniciarPedido(d, pedido)
	return nil
}

// DiscoLibre lee el registro de estado del disco; cada lectura cuesta tiempo
func (m *Maquina) DiscoLibre(numero int) bool {
	m.CobrarTiempo(m.cfg.CostoRegistro)

	if numero < 1 || numero > m.cfg.CantidadDiscos {
		return true
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.discos[numero-1].ocupado
}

// iniciarPedido requiere m.mu tomado
func (m *Maquina) iniciarPedido(d *disco, p pedidoDisco) {
	d.ocupado = true
	estado := EstadoOK
	tam := m.cfg.TamPagina

	if p.escritura {
		if err := m.almacen.escribir(d.numero, p.sector, p.buffer[:tam]); err != nil {
			m.traza.WithError(err).Error("falla del almacenamiento de discos")
			estado = EstadoErrorAlmacen
		}
	} else {
		leido, err := m.almacen.leer(d.numero, p.sector, p.buffer[:tam])
		switch {
		case err != nil:
			m.traza.WithError(err).Error("falla del almacenamiento de discos")
			estado = EstadoErrorAlmacen
		case !leido:
			for i := range p.buffer[:tam] {
				p.buffer[i] = 0
			}
			estado = EstadoSinEscrituraPrevia
		}
	}

	m.programar(m.reloj+m.cfg.CostoDisco, Disco{Numero: d.numero}, estado)
	m.traza.WithFields(logrus.Fields{
		"reloj":     m.reloj,
		"disco":     d.numero,
		"sector":    p.sector,
		"escritura": p.escritura,
	}).Debug("pedido de disco iniciado")
}

// completarPedido libera el disco y arranca el siguiente pedido encolado.
// Requiere m.mu tomado.
func (m *Maquina) completarPedido(d *disco) {
	d.ocupado = false
	if len(d.cola) == 0 {
		return
	}
	siguiente := d.cola[0]
	d.cola = d.cola[1:]
	m.iniciarPedido(d, siguiente)
}
