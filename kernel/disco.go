package kernel

import (
	"fmt"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

func (k *Kernel) validarSector(disco, sector int, buffer []byte) error {
	if disco < 1 || disco > k.geo.CantidadDiscos {
		return errParametro("disco %d fuera de [1, %d]", disco, k.geo.CantidadDiscos)
	}
	if sector < 0 || sector >= k.geo.SectoresPorDisco {
		return errParametro("sector %d fuera de [0, %d)", sector, k.geo.SectoresPorDisco)
	}
	if len(buffer) != k.geo.TamPagina {
		return errParametro("buffer de %d bytes, el sector tiene %d", len(buffer), k.geo.TamPagina)
	}
	return nil
}

// leerDiscoUsuario y escribirDiscoUsuario atienden las llamadas al sistema:
// los sectores de paginación no son accesibles para los procesos.
func (k *Kernel) leerDiscoUsuario(disco, sector int) ([]byte, error) {
	if k.mapa.Reservado(disco, sector) {
		return nil, errParametro("el sector %d del disco %d respalda memoria virtual", sector, disco)
	}
	datos := make([]byte, k.geo.TamPagina)
	if err := k.leerDisco(disco, sector, datos); err != nil {
		return nil, err
	}
	return datos, nil
}

func (k *Kernel) escribirDiscoUsuario(disco, sector int, datos []byte) error {
	if k.mapa.Reservado(disco, sector) {
		return errParametro("el sector %d del disco %d respalda memoria virtual", sector, disco)
	}
	return k.escribirDisco(disco, sector, datos)
}

// leerDisco espera a que el disco quede libre y suspende al proceso hasta
// que la lectura termina.
func (k *Kernel) leerDisco(disco, sector int, destino []byte) error {
	if err := k.validarSector(disco, sector, destino); err != nil {
		return err
	}
	for !k.hw.DiscoLibre(disco) {
	}
	return k.operarDisco(disco, sector, destino, false)
}

// escribirDisco no espera: si el disco está ocupado el hardware encola el
// pedido.
func (k *Kernel) escribirDisco(disco, sector int, datos []byte) error {
	if err := k.validarSector(disco, sector, datos); err != nil {
		return err
	}
	if !k.hw.DiscoLibre(disco) {
		utils.InfoLog.Warn("Escritura sobre un disco ocupado, queda encolada", "disco", disco, "sector", sector)
	}
	if err := k.mapa.Marcar(disco, sector); err != nil {
		return err
	}
	return k.operarDisco(disco, sector, datos, true)
}

func (k *Kernel) operarDisco(disco, sector int, buffer []byte, escritura bool) error {
	yo := k.procesos.idActual()
	k.procesos.con(yo, func(p *PCB) {
		p.DiscoEnUso, p.SectorEnUso = disco, sector
		p.ResultadoDisco = hardware.EstadoOK
		if escritura {
			p.Metricas.EscriturasDisco++
		} else {
			p.Metricas.LecturasDisco++
		}
		p.cambiarEstado(Esperando, EsperaDisco)
	})
	k.pedidos.encolar(disco, yo)

	if err := k.hw.IniciarDisco(disco, sector, buffer, escritura); err != nil {
		k.pedidos.descartarUltimo(disco)
		k.procesos.con(yo, func(p *PCB) {
			p.DiscoEnUso, p.SectorEnUso = 0, 0
			p.cambiarEstado(Ejecutando, SinEspera)
		})
		return errParametro("operación de disco rechazada: %v", err)
	}
	operacion := "lectura"
	if escritura {
		operacion = "escritura"
	}
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Solicita %s de disco %d sector %d", yo, operacion, disco, sector))

	k.cederCPU(hardware.Guardar)

	estado := hardware.EstadoOK
	k.procesos.con(yo, func(p *PCB) { estado = p.ResultadoDisco })
	switch estado {
	case hardware.EstadoOK:
		return nil
	case hardware.EstadoSinEscrituraPrevia:
		return errParametro("el sector %d del disco %d nunca fue escrito", sector, disco)
	default:
		return errInterno("disco %d: %s", disco, estado)
	}
}

// atenderDisco atribuye la finalización al proceso que inició el pedido
func (k *Kernel) atenderDisco(disco int, estado hardware.Estado) {
	pid, ok := k.pedidos.desencolar(disco)
	if !ok {
		utils.ErrorLog.Warn("Interrupción de disco sin pedido", "disco", disco)
		return
	}
	existe := k.procesos.con(pid, func(p *PCB) {
		p.DiscoEnUso, p.SectorEnUso = 0, 0
		p.ResultadoDisco = estado
		switch {
		case p.Estado == Esperando && p.Motivo == EsperaDisco:
			p.cambiarEstado(Listo, SinEspera)
		case p.Estado == Detenido:
			p.Motivo = SinEspera
		}
	})
	if !existe {
		utils.InfoLog.Debug("Finaliza pedido de disco de un proceso terminado", "disco", disco, "pid", pid)
		return
	}
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Finaliza operación en disco %d", pid, disco), "estado", estado)
}
