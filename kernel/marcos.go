package kernel

import "sync"

// Dueno es un par (proceso, página) que mapea un marco
type Dueno struct {
	PID    int `json:"pid"`
	Pagina int `json:"pagina"`
}

// Marco es una entrada de la tabla de marcos. Sin dueños está vacío; con
// etiqueta pertenece a un área compartida y no se desaloja.
type Marco struct {
	Numero      int     `json:"numero"`
	UltimoToque int64   `json:"ultimo_toque"`
	Etiqueta    string  `json:"etiqueta,omitempty"`
	Duenos      []Dueno `json:"duenos"`
}

type tablaMarcos struct {
	mu     sync.Mutex
	marcos []Marco
}

func nuevaTablaMarcos(cantidad int) *tablaMarcos {
	t := &tablaMarcos{marcos: make([]Marco, cantidad)}
	for i := range t.marcos {
		t.marcos[i].Numero = i
	}
	return t
}

// eleccion es el marco que recibirá una página; si estaba ocupado trae el
// dueño que hay que desalojar.
type eleccion struct {
	marco    int
	victima  Dueno
	desalojo bool
}

// elegir devuelve el primer marco vacío o, si no hay, el de toque más viejo
// entre los no compartidos. A igual toque gana el de menor número.
func (t *tablaMarcos) elegir() (eleccion, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range t.marcos {
		if len(t.marcos[i].Duenos) == 0 {
			return eleccion{marco: i}, nil
		}
	}

	victima := -1
	for i := range t.marcos {
		m := &t.marcos[i]
		if m.Etiqueta != "" {
			continue
		}
		if victima < 0 || m.UltimoToque < t.marcos[victima].UltimoToque {
			victima = i
		}
	}
	if victima < 0 {
		return eleccion{}, errRecursos("todos los marcos pertenecen a áreas compartidas")
	}
	return eleccion{marco: victima, victima: t.marcos[victima].Duenos[0], desalojo: true}, nil
}

// asignar deja al marco con un único dueño privado
func (t *tablaMarcos) asignar(marco, pid, pagina int, ahora int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m := &t.marcos[marco]
	m.Duenos = []Dueno{{PID: pid, Pagina: pagina}}
	m.Etiqueta = ""
	m.UltimoToque = ahora
}

// tocar marca el uso del marco por pid
func (t *tablaMarcos) tocar(marco, pid int, ahora int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if marco < 0 || marco >= len(t.marcos) {
		return
	}
	for _, d := range t.marcos[marco].Duenos {
		if d.PID == pid {
			t.marcos[marco].UltimoToque = ahora
			return
		}
	}
}

// marcoDe devuelve el marco donde pid tiene mapeada pagina, o -1
func (t *tablaMarcos) marcoDe(pid, pagina int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range t.marcos {
		for _, d := range t.marcos[i].Duenos {
			if d.PID == pid && d.Pagina == pagina {
				return i
			}
		}
	}
	return -1
}

// compartir mapea paginas páginas de pid, desde primera, sobre los marcos de
// la etiqueta. Si la etiqueta no existe toma marcos vacíos. Devuelve los
// marcos, en orden, y cuántos procesos compartían el primero antes.
func (t *tablaMarcos) compartir(pid, primera, paginas int, etiqueta string, ahora int64) ([]int, int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var marcos []int
	for i := range t.marcos {
		if t.marcos[i].Etiqueta == etiqueta {
			marcos = append(marcos, i)
		}
	}
	switch {
	case len(marcos) > 0 && len(marcos) < paginas:
		return nil, 0, errParametro("el área %s tiene %d páginas, se pidieron %d", etiqueta, len(marcos), paginas)
	case len(marcos) == 0:
		for i := range t.marcos {
			if len(marcos) == paginas {
				break
			}
			if len(t.marcos[i].Duenos) == 0 {
				marcos = append(marcos, i)
			}
		}
		if len(marcos) < paginas {
			return nil, 0, errRecursos("no hay %d marcos libres para el área %s", paginas, etiqueta)
		}
	}
	marcos = marcos[:paginas]

	// un mapeo privado previo de esas páginas se pierde
	for i := 0; i < paginas; i++ {
		t.quitarDueno(pid, primera+i)
	}

	previos := -1
	for i, n := range marcos {
		m := &t.marcos[n]
		if previos < 0 {
			previos = len(m.Duenos)
		}
		m.Etiqueta = etiqueta
		m.Duenos = append(m.Duenos, Dueno{PID: pid, Pagina: primera + i})
		m.UltimoToque = ahora
	}
	return marcos, previos, nil
}

// quitarDueno requiere mu
func (t *tablaMarcos) quitarDueno(pid, pagina int) {
	for i := range t.marcos {
		m := &t.marcos[i]
		for j, d := range m.Duenos {
			if d.PID == pid && d.Pagina == pagina {
				m.Duenos = append(m.Duenos[:j], m.Duenos[j+1:]...)
				t.vaciarSiHuerfano(i)
				break
			}
		}
	}
}

// liberarProceso quita a pid de todos los marcos y devuelve cuántos quedaron
// vacíos.
func (t *tablaMarcos) liberarProceso(pid int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	liberados := 0
	for i := range t.marcos {
		m := &t.marcos[i]
		restantes := m.Duenos[:0]
		for _, d := range m.Duenos {
			if d.PID != pid {
				restantes = append(restantes, d)
			}
		}
		if len(restantes) == len(m.Duenos) {
			continue
		}
		m.Duenos = restantes
		if t.vaciarSiHuerfano(i) {
			liberados++
		}
	}
	return liberados
}

func (t *tablaMarcos) vaciarSiHuerfano(i int) bool {
	m := &t.marcos[i]
	if len(m.Duenos) > 0 {
		return false
	}
	m.Duenos = nil
	m.Etiqueta = ""
	m.UltimoToque = 0
	return true
}

func (t *tablaMarcos) instantanea() []Marco {
	t.mu.Lock()
	defer t.mu.Unlock()
	copia := make([]Marco, len(t.marcos))
	for i, m := range t.marcos {
		copia[i] = m
		copia[i].Duenos = append([]Dueno(nil), m.Duenos...)
	}
	return copia
}
