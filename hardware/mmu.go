package hardware

import (
	"encoding/binary"
	"fmt"
)

const maxReintentosFallo = 8

// FijarTablaPaginas cambia la tabla que usa la MMU
func (m *Maquina) FijarTablaPaginas(t *TablaPaginas) {
	m.mu.Lock()
	m.tabla = t
	m.mu.Unlock()
}

// LeerMemoria lee la palabra de 32 bits en la dirección virtual dir
func (m *Maquina) LeerMemoria(dir int) int32 {
	return m.accederMemoria(dir, false, 0)
}

// EscribirMemoria escribe la palabra de 32 bits en la dirección virtual dir
func (m *Maquina) EscribirMemoria(dir int, valor int32) {
	m.accederMemoria(dir, true, valor)
}

// accederMemoria traduce con la tabla actual. Una entrada inválida entrega
// MemoriaInvalida al kernel y reintenta el acceso cuando éste vuelve.
func (m *Maquina) accederMemoria(dir int, escritura bool, valor int32) int32 {
	m.CobrarTiempo(m.cfg.CostoMemoria)
	tam := m.cfg.TamPagina

	for intento := 0; intento < maxReintentosFallo; intento++ {
		if dir < 0 {
			m.fallo(MemoriaInvalida{Pagina: -1})
			continue
		}
		pagina, desplazamiento := dir/tam, dir%tam
		if dir%4 != 0 || desplazamiento+4 > tam {
			m.fallo(ErrorCPU{Direccion: dir})
			return 0
		}

		m.mu.Lock()
		tabla := m.tabla
		m.mu.Unlock()
		if tabla == nil || pagina >= tabla.Longitud() {
			m.fallo(MemoriaInvalida{Pagina: pagina})
			continue
		}

		entrada := tabla.Entrada(pagina)
		if entrada&PTEValido == 0 {
			m.fallo(MemoriaInvalida{Pagina: pagina})
			continue
		}

		fisica := int(entrada&PTEMarco)*tam + desplazamiento
		m.mu.Lock()
		if escritura {
			binary.LittleEndian.PutUint32(m.memoria[fisica:], uint32(valor))
		} else {
			valor = int32(binary.LittleEndian.Uint32(m.memoria[fisica:]))
		}
		m.mu.Unlock()

		tabla.marcarAcceso(pagina, escritura)
		return valor
	}

	m.fallo(ErrorCPU{Direccion: dir})
	return 0
}

// LeerMarco copia el contenido físico de un marco
func (m *Maquina) LeerMarco(marco int) ([]byte, error) {
	if marco < 0 || marco >= m.cfg.MarcosFisicos {
		return nil, fmt.Errorf("marco fuera de rango: %d", marco)
	}
	tam := m.cfg.TamPagina
	datos := make([]byte, tam)
	m.mu.Lock()
	copy(datos, m.memoria[marco*tam:(marco+1)*tam])
	m.mu.Unlock()
	return datos, nil
}

// EscribirMarco reemplaza el contenido físico de un marco
func (m *Maquina) EscribirMarco(marco int, datos []byte) error {
	if marco < 0 || marco >= m.cfg.MarcosFisicos {
		return fmt.Errorf("marco fuera de rango: %d", marco)
	}
	tam := m.cfg.TamPagina
	m.mu.Lock()
	n := copy(m.memoria[marco*tam:(marco+1)*tam], datos)
	for i := marco*tam + n; i < (marco+1)*tam; i++ {
		m.memoria[i] = 0
	}
	m.mu.Unlock()
	return nil
}

// EjecutarPrivilegiada simula una instrucción reservada al kernel
func (m *Maquina) EjecutarPrivilegiada() {
	m.mu.Lock()
	actual := m.actual
	m.mu.Unlock()
	if actual != nil && actual.modo == ModoUsuario {
		m.fallo(InstruccionPrivilegiada{})
	}
}

func (m *Maquina) fallo(f Fallo) {
	m.mu.Lock()
	manejador := m.manejadorFallo
	m.mu.Unlock()
	if manejador == nil {
		m.traza.WithField("fallo", fmt.Sprintf("%#v", f)).Warn("fallo sin manejador instalado")
		return
	}
	manejador(f)
}
