package kernel

import (
	"fmt"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

// manejarFalloPagina trae la página del proceso actual. Al volver la página
// es residente y el hardware reintenta el acceso.
func (k *Kernel) manejarFalloPagina(pagina int) {
	yo := k.procesos.idActual()
	if pagina < 0 || pagina >= k.geo.PaginasVirtuales {
		utils.ErrorLog.Error(fmt.Sprintf("(%d) - Acceso fuera del espacio virtual, página %d", yo, pagina))
		k.terminarProceso(-2)
		return
	}
	k.procesos.con(yo, func(p *PCB) { p.Metricas.FallosPagina++ })
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Fallo de página %d", yo, pagina))

	// mientras espera al disco otro proceso puede desalojarla de nuevo
	for !k.residente(yo, pagina) {
		if err := k.traerPagina(yo, pagina); err != nil {
			utils.ErrorLog.Error(fmt.Sprintf("(%d) - No se pudo traer la página %d", yo, pagina), "error", err)
			k.terminarProceso(-2)
			return
		}
	}
}

func (k *Kernel) residente(pid, pagina int) bool {
	valida := false
	k.procesos.con(pid, func(p *PCB) {
		valida = p.TablaPaginas.Entrada(pagina)&hardware.PTEValido != 0
	})
	return valida
}

// traerPagina lee la página de su sector de respaldo, o la llena con ceros
// si nunca salió de memoria, y la instala.
func (k *Kernel) traerPagina(pid, pagina int) error {
	var ubicacion Ubicacion
	k.procesos.con(pid, func(p *PCB) { ubicacion = p.Sombra[pagina] })

	contenido := make([]byte, k.geo.TamPagina)
	if ubicacion.Disco != 0 {
		if err := k.leerDisco(ubicacion.Disco, ubicacion.Sector, contenido); err != nil {
			return err
		}
	}
	return k.instalarPagina(pid, pagina, contenido)
}

// instalarPagina ubica la página en un marco vacío o desalojando al menos
// usado. La página desalojada se escribe en su sector de respaldo, salvo que
// ya esté respaldada y no haya sido modificada.
func (k *Kernel) instalarPagina(pid, pagina int, contenido []byte) error {
	ahora := k.hw.LeerReloj()
	eleccion, err := k.marcos.elegir()
	if err != nil {
		return err
	}

	var (
		respaldo Ubicacion
		limpia   bool
		copia    []byte
	)
	if eleccion.desalojo {
		v := eleccion.victima
		k.procesos.con(v.PID, func(p *PCB) {
			respaldo = p.Sombra[v.Pagina]
			limpia = p.TablaPaginas.Entrada(v.Pagina)&hardware.PTEModificado == 0
		})
		if respaldo.Disco == 0 {
			disco, sector, err := k.mapa.Asignar()
			if err != nil {
				return err
			}
			respaldo = Ubicacion{Disco: disco, Sector: sector}
			limpia = false
		}
		if copia, err = k.hw.LeerMarco(eleccion.marco); err != nil {
			return errInterno("lectura del marco %d: %v", eleccion.marco, err)
		}
		k.procesos.con(v.PID, func(p *PCB) {
			p.Sombra[v.Pagina] = respaldo
			p.TablaPaginas.Fijar(v.Pagina, 0)
			p.Metricas.Desalojos++
		})
		utils.InfoLog.Info(fmt.Sprintf("(%d) - Desalojo de página %d del marco %d", v.PID, v.Pagina, eleccion.marco),
			"disco", respaldo.Disco, "sector", respaldo.Sector, "limpia", limpia)
	}

	k.marcos.asignar(eleccion.marco, pid, pagina, ahora)
	k.procesos.con(pid, func(p *PCB) {
		p.TablaPaginas.Fijar(pagina, hardware.EntradaValida(eleccion.marco))
	})
	if err := k.hw.EscribirMarco(eleccion.marco, contenido); err != nil {
		return errInterno("escritura del marco %d: %v", eleccion.marco, err)
	}
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Página %d cargada en marco %d", pid, pagina, eleccion.marco))

	if eleccion.desalojo && !limpia {
		return k.escribirDisco(respaldo.Disco, respaldo.Sector, copia)
	}
	return nil
}

// tocarDireccion registra el uso del marco que contiene dir
func (k *Kernel) tocarDireccion(dir int) {
	pagina := dir / k.geo.TamPagina
	yo := k.procesos.idActual()
	if marco := k.marcos.marcoDe(yo, pagina); marco >= 0 {
		k.marcos.tocar(marco, yo, k.hw.LeerReloj())
	}
}

func (k *Kernel) definirAreaCompartida(dir, paginas int, etiqueta string) (int, error) {
	switch {
	case dir < 0 || dir >= k.geo.PaginasVirtuales*k.geo.TamPagina:
		return 0, errParametro("dirección %d fuera del espacio virtual", dir)
	case paginas <= 0:
		return 0, errParametro("cantidad de páginas %d", paginas)
	case etiqueta == "" || len(etiqueta) > k.cfg.LongitudEtiqueta:
		return 0, errParametro("etiqueta de %d caracteres, máximo %d", len(etiqueta), k.cfg.LongitudEtiqueta)
	}
	primera := dir / k.geo.TamPagina
	if primera+paginas > k.geo.PaginasVirtuales {
		return 0, errParametro("el área excede el espacio virtual (%d páginas desde %d)", paginas, primera)
	}

	yo := k.procesos.idActual()
	marcos, previos, err := k.marcos.compartir(yo, primera, paginas, etiqueta, k.hw.LeerReloj())
	if err != nil {
		return 0, err
	}
	k.procesos.con(yo, func(p *PCB) {
		for i, marco := range marcos {
			p.TablaPaginas.Fijar(primera+i, hardware.EntradaValida(marco))
		}
	})
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Área compartida %s: páginas %d..%d", yo, etiqueta, primera, primera+paginas-1),
		"marcos", marcos, "compartida_por", previos)
	return previos, nil
}
