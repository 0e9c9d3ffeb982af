package kernel

import (
	"sort"
	"sync"
)

// tablaProcesos es el arena de PCBs más las dos estructuras de planificación:
// la lista de procesos ordenada por prioridad y la cola del temporizador
// ordenada por hora de despertar. Un proceso está en exactamente una de las dos.
//
// muLista protege el arena, la lista, el id actual y los campos de los PCB.
// muCola protege el orden de la cola y se toma siempre después de muLista.
type tablaProcesos struct {
	muLista sync.Mutex
	pcbs    map[int]*PCB
	lista   []int
	actual  int

	muCola sync.Mutex
	cola   []int
}

func nuevaTablaProcesos() *tablaProcesos {
	return &tablaProcesos{pcbs: make(map[int]*PCB)}
}

// conLista ejecuta f con la lista de procesos tomada
func (t *tablaProcesos) conLista(f func()) {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	f()
}

// conTodo ejecuta f con la lista y la cola tomadas, en ese orden
func (t *tablaProcesos) conTodo(f func()) {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	t.muCola.Lock()
	defer t.muCola.Unlock()
	f()
}

// con ejecuta f sobre el PCB id. Devuelve false si no existe.
func (t *tablaProcesos) con(id int, f func(p *PCB)) bool {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	p, ok := t.pcbs[id]
	if !ok {
		return false
	}
	f(p)
	return true
}

func (t *tablaProcesos) idActual() int {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	return t.actual
}

func (t *tablaProcesos) total() int {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	return len(t.pcbs)
}

func (t *tablaProcesos) agregar(p *PCB) {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	t.pcbs[p.ID] = p
	t.insertarEnLista(p.ID)
}

// insertarEnLista ubica id después de todos los de prioridad menor o igual.
// Requiere muLista.
func (t *tablaProcesos) insertarEnLista(id int) {
	prioridad := t.pcbs[id].Prioridad
	pos := sort.Search(len(t.lista), func(i int) bool {
		return t.pcbs[t.lista[i]].Prioridad > prioridad
	})
	t.lista = append(t.lista, 0)
	copy(t.lista[pos+1:], t.lista[pos:])
	t.lista[pos] = id
}

// insertarEnCola ubica id después de todos los que despiertan antes o a la
// misma hora. Requiere muLista y muCola.
func (t *tablaProcesos) insertarEnCola(id int) {
	despertar := t.pcbs[id].Despertar
	pos := sort.Search(len(t.cola), func(i int) bool {
		return t.pcbs[t.cola[i]].Despertar > despertar
	})
	t.cola = append(t.cola, 0)
	copy(t.cola[pos+1:], t.cola[pos:])
	t.cola[pos] = id
	t.pcbs[id].enCola = true
}

func quitarID(ids []int, id int) ([]int, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}

// quitar saca el proceso del arena y de la estructura en la que esté
func (t *tablaProcesos) quitar(id int) *PCB {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	t.muCola.Lock()
	defer t.muCola.Unlock()

	p, ok := t.pcbs[id]
	if !ok {
		return nil
	}
	if p.enCola {
		t.cola, _ = quitarID(t.cola, id)
		p.enCola = false
	} else {
		t.lista, _ = quitarID(t.lista, id)
	}
	delete(t.pcbs, id)
	return p
}

// reordenar restablece el orden por prioridad después de un cambio.
// El orden relativo entre iguales se conserva.
func (t *tablaProcesos) reordenar() {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	sort.SliceStable(t.lista, func(i, j int) bool {
		return t.pcbs[t.lista[i]].Prioridad < t.pcbs[t.lista[j]].Prioridad
	})
}

// mayorPrioridad devuelve el primer proceso de la lista listo o ejecutando,
// o -1.
func (t *tablaProcesos) mayorPrioridad() int {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	for _, id := range t.lista {
		if e := t.pcbs[id].Estado; e == Listo || e == Ejecutando {
			return id
		}
	}
	return -1
}

func (t *tablaProcesos) porNombre(nombre string) int {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	for id, p := range t.pcbs {
		if p.Nombre == nombre {
			return id
		}
	}
	return -1
}

// hijos devuelve los hijos directos de padre ordenados por id
func (t *tablaProcesos) hijos(padre int) []int {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	var ids []int
	for id, p := range t.pcbs {
		if p.Padre == padre && id != padre {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// dormir pasa el proceso de la lista a la cola del temporizador
func (t *tablaProcesos) dormir(id int, despertar int64) bool {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	t.muCola.Lock()
	defer t.muCola.Unlock()

	p, ok := t.pcbs[id]
	if !ok || p.enCola {
		return false
	}
	t.lista, _ = quitarID(t.lista, id)
	p.Despertar = despertar
	p.cambiarEstado(Esperando, EsperaDormir)
	t.insertarEnCola(id)
	return true
}

// sacarDeCola devuelve a la lista un proceso dormido sin cambiar su estado.
// Requiere muLista y muCola.
func (t *tablaProcesos) sacarDeCola(id int) {
	var ok bool
	if t.cola, ok = quitarID(t.cola, id); !ok {
		return
	}
	t.pcbs[id].enCola = false
	t.insertarEnLista(id)
}

// despertarVencidos pasa a listos todos los procesos con hora de despertar
// <= ahora, en orden de cola, y devuelve sus ids.
func (t *tablaProcesos) despertarVencidos(ahora int64) []int {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	t.muCola.Lock()
	defer t.muCola.Unlock()

	var despiertos []int
	for len(t.cola) > 0 {
		id := t.cola[0]
		p := t.pcbs[id]
		if p.Despertar > ahora {
			break
		}
		t.cola = t.cola[1:]
		p.enCola = false
		t.insertarEnLista(id)
		p.cambiarEstado(Listo, SinEspera)
		despiertos = append(despiertos, id)
	}
	return despiertos
}

// proximoDespertar devuelve la hora de despertar de la cabeza de la cola
func (t *tablaProcesos) proximoDespertar() (int64, bool) {
	t.muLista.Lock()
	defer t.muLista.Unlock()
	t.muCola.Lock()
	defer t.muCola.Unlock()
	if len(t.cola) == 0 {
		return 0, false
	}
	return t.pcbs[t.cola[0]].Despertar, true
}
