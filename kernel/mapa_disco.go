package kernel

import (
	"sync"

	"github.com/Workiva/go-datastructures/bitarray"
)

// MapaDisco lleva un bit por sector de cada disco. Los sectores se marcan al
// asignarse o al escribirse y nunca se liberan. Los que entrega Asignar
// quedan además reservados para la paginación.
type MapaDisco struct {
	mu         sync.Mutex
	discos     []bitarray.BitArray
	paginacion []bitarray.BitArray
	siguiente  []uint64
	sectores   uint64
}

func NuevoMapaDisco(discos, sectores int) *MapaDisco {
	m := &MapaDisco{
		discos:     make([]bitarray.BitArray, discos),
		paginacion: make([]bitarray.BitArray, discos),
		siguiente:  make([]uint64, discos),
		sectores:   uint64(sectores),
	}
	for i := range m.discos {
		m.discos[i] = bitarray.NewBitArray(uint64(sectores))
		m.paginacion[i] = bitarray.NewBitArray(uint64(sectores))
	}
	return m
}

func (m *MapaDisco) valido(disco, sector int) bool {
	return disco >= 1 && disco <= len(m.discos) && sector >= 0 && uint64(sector) < m.sectores
}

// Asignar marca y devuelve el primer sector libre recorriendo los discos en
// orden.
func (m *MapaDisco) Asignar() (int, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for d, bits := range m.discos {
		for s := m.siguiente[d]; s < m.sectores; s++ {
			ocupado, err := bits.GetBit(s)
			if err != nil {
				return 0, 0, errInterno("mapa del disco %d: %v", d+1, err)
			}
			if ocupado {
				continue
			}
			if err := bits.SetBit(s); err != nil {
				return 0, 0, errInterno("mapa del disco %d: %v", d+1, err)
			}
			if err := m.paginacion[d].SetBit(s); err != nil {
				return 0, 0, errInterno("mapa de paginación del disco %d: %v", d+1, err)
			}
			m.siguiente[d] = s + 1
			return d + 1, int(s), nil
		}
		m.siguiente[d] = m.sectores
	}
	return 0, 0, errRecursos("no quedan sectores libres en ningún disco")
}

// Marcar registra un sector escrito por fuera de Asignar
func (m *MapaDisco) Marcar(disco, sector int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valido(disco, sector) {
		return errParametro("sector %d del disco %d fuera de rango", sector, disco)
	}
	return m.discos[disco-1].SetBit(uint64(sector))
}

func (m *MapaDisco) Ocupado(disco, sector int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valido(disco, sector) {
		return false
	}
	ocupado, err := m.discos[disco-1].GetBit(uint64(sector))
	return err == nil && ocupado
}

// Reservado indica si el sector respalda páginas de memoria virtual
func (m *MapaDisco) Reservado(disco, sector int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valido(disco, sector) {
		return false
	}
	reservado, err := m.paginacion[disco-1].GetBit(uint64(sector))
	return err == nil && reservado
}

// Ocupados devuelve la cantidad de sectores marcados por disco
func (m *MapaDisco) Ocupados() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	cuentas := make([]int, len(m.discos))
	for i, bits := range m.discos {
		cuentas[i] = len(bits.ToNums())
	}
	return cuentas
}
