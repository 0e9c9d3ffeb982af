package kernel

import (
	"fmt"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

func (k *Kernel) enviarMensaje(destino int, datos []byte) error {
	if len(datos) > k.cfg.LongitudMaxMensaje {
		return errParametro("mensaje de %d bytes, máximo %d", len(datos), k.cfg.LongitudMaxMensaje)
	}
	if destino < Difusion || destino == 0 {
		return errParametro("destino %d", destino)
	}
	yo := k.procesos.idActual()

	var err error
	k.procesos.conLista(func() {
		t := k.procesos
		if destino != Difusion {
			d, ok := t.pcbs[destino]
			if !ok {
				err = errParametro("no existe el proceso %d", destino)
				return
			}
			if d.EstadoMensaje == MensajeRecibir && d.RecibirDe != yo {
				err = errParametro("el proceso %d espera un mensaje de %d", destino, d.RecibirDe)
				return
			}
		}
		p := t.pcbs[yo]
		if len(p.BuzonSalida) >= k.cfg.MaxBuzonSalida {
			err = errRecursos("buzón de salida lleno (%d mensajes)", len(p.BuzonSalida))
			return
		}
		p.BuzonSalida = append(p.BuzonSalida, Mensaje{
			Origen:  yo,
			Destino: destino,
			Datos:   append([]byte(nil), datos...),
		})
		if destino == Difusion {
			p.EstadoMensaje = MensajeEnviarTodos
		} else {
			p.EstadoMensaje = MensajeEnviar
		}
		p.Metricas.MensajesEnviados++
	})
	if err != nil {
		return err
	}
	utils.InfoLog.Debug(fmt.Sprintf("(%d) - Envía mensaje a %d", yo, destino), "longitud", len(datos))
	k.revisarBuzonSalida(yo)
	return nil
}

// revisarBuzonSalida entrega todo lo que se pueda del buzón de id a
// receptores bloqueados esperándolo.
func (k *Kernel) revisarBuzonSalida(id int) {
	k.procesos.conLista(func() {
		t := k.procesos
		p, ok := t.pcbs[id]
		if !ok {
			return
		}
		for i := 0; i < len(p.BuzonSalida); {
			receptor := p.BuzonSalida[i].Destino
			if receptor == Difusion {
				receptor = t.receptorDifusion(id)
			}
			if r, ok := t.pcbs[receptor]; ok && r.esperaMensajeDe(id) && t.transferir(p, r, r.LongitudRecepcion) {
				i = 0
				continue
			}
			i++
		}
	})
}

// receptorDifusion devuelve el primer proceso, en orden de lista, bloqueado
// en una recepción que acepta mensajes de emisor. Requiere muLista.
func (t *tablaProcesos) receptorDifusion(emisor int) int {
	for _, id := range t.lista {
		r := t.pcbs[id]
		if id != emisor && r.disponible() && r.esperaMensajeDe(emisor) {
			return id
		}
	}
	return -1
}

// remitenteDifusion devuelve el primer proceso, en orden de lista, con un
// mensaje para receptor o para todos. Requiere muLista.
func (t *tablaProcesos) remitenteDifusion(receptor int) int {
	for _, id := range t.lista {
		s := t.pcbs[id]
		if id == receptor || !s.disponible() {
			continue
		}
		for _, m := range s.BuzonSalida {
			if m.Destino == receptor || m.Destino == Difusion {
				return id
			}
		}
	}
	return -1
}

// transferir mueve el primer mensaje de emisor dirigido a receptor (o a
// todos) que entre en maximo. Requiere muLista.
func (t *tablaProcesos) transferir(emisor, receptor *PCB, maximo int) bool {
	for i, m := range emisor.BuzonSalida {
		if m.Destino != receptor.ID && (m.Destino != Difusion || emisor == receptor) {
			continue
		}
		if len(m.Datos) > maximo {
			continue
		}
		emisor.BuzonSalida = append(emisor.BuzonSalida[:i], emisor.BuzonSalida[i+1:]...)
		// si el emisor ya entró a recibir conserva ese estado
		if len(emisor.BuzonSalida) == 0 && (emisor.EstadoMensaje == MensajeEnviar || emisor.EstadoMensaje == MensajeEnviarTodos) {
			emisor.EstadoMensaje = MensajeListo
		}

		m.Destino = receptor.ID
		receptor.BuzonEntrada = append(receptor.BuzonEntrada, m)
		receptor.Entregas++
		receptor.Metricas.MensajesRecibidos++
		receptor.EstadoMensaje = MensajeListo
		receptor.RecibirDe = 0
		receptor.LongitudRecepcion = 0
		if receptor.Estado == Detenido && receptor.Motivo == EsperaMensaje {
			receptor.cambiarEstado(Listo, SinEspera)
		}
		utils.InfoLog.Info(fmt.Sprintf("(%d) - Mensaje entregado a %d", emisor.ID, receptor.ID), "longitud", len(m.Datos))
		return true
	}
	return false
}

// recibirMensaje devuelve los datos y el origen. Si no hay mensaje el
// proceso queda suspendido hasta que alguien se lo entregue o lo reanude.
func (k *Kernel) recibirMensaje(origen, maximo int) ([]byte, int, error) {
	if maximo < 0 || maximo > k.cfg.LongitudMaxMensaje {
		return nil, 0, errParametro("longitud de recepción %d, máximo %d", maximo, k.cfg.LongitudMaxMensaje)
	}
	if origen < Difusion || origen == 0 {
		return nil, 0, errParametro("origen %d", origen)
	}
	yo := k.procesos.idActual()

	var err error
	bloquear := false
	entregas := 0
	k.procesos.conLista(func() {
		t := k.procesos
		if origen != Difusion {
			if _, ok := t.pcbs[origen]; !ok {
				err = errParametro("no existe el proceso %d", origen)
				return
			}
		}
		p := t.pcbs[yo]
		p.LongitudRecepcion = maximo
		p.RecibirDe = origen
		entregas = p.Entregas

		var emisor *PCB
		if origen == Difusion {
			p.EstadoMensaje = MensajeRecibirTodos
			if id := t.remitenteDifusion(yo); id >= 0 {
				emisor = t.pcbs[id]
			}
		} else if origen == yo {
			// nadie más puede enviar en nombre del proceso
			if !t.transferir(p, p, maximo) {
				p.RecibirDe, p.LongitudRecepcion = 0, 0
				err = errParametro("el proceso %d no tiene mensajes propios para recibir", yo)
			}
			return
		} else {
			p.EstadoMensaje = MensajeRecibir
			// el estado de mensaje del emisor se pisa si él mismo entra a
			// recibir; lo que cuenta es su buzón de salida
			if s := t.pcbs[origen]; s.disponible() {
				emisor = s
			}
		}
		if emisor == nil || !t.transferir(emisor, p, maximo) {
			bloquear = true
			p.cambiarEstado(Detenido, EsperaMensaje)
		}
	})
	if err != nil {
		return nil, 0, err
	}
	if bloquear {
		utils.InfoLog.Debug(fmt.Sprintf("(%d) - Espera mensaje de %d", yo, origen))
		k.cederCPU(hardware.Guardar)
	}
	return k.leerUltimoMensaje(yo, entregas)
}

// leerUltimoMensaje consume el último mensaje entregado. Si no hubo entrega
// desde que empezó la recepción, el proceso fue reanudado a mano.
func (k *Kernel) leerUltimoMensaje(id, entregasAntes int) ([]byte, int, error) {
	var (
		datos  []byte
		origen int
		err    error
	)
	k.procesos.con(id, func(p *PCB) {
		if p.Entregas == entregasAntes || len(p.BuzonEntrada) == 0 {
			p.EstadoMensaje = MensajeListo
			p.RecibirDe = 0
			p.LongitudRecepcion = 0
			err = errParametro("el proceso %d fue reanudado sin recibir mensaje", id)
			return
		}
		ultimo := p.BuzonEntrada[len(p.BuzonEntrada)-1]
		p.BuzonEntrada = p.BuzonEntrada[:len(p.BuzonEntrada)-1]
		datos, origen = ultimo.Datos, ultimo.Origen
	})
	return datos, origen, err
}
