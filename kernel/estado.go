package kernel

// InstantaneaProceso es la vista de un PCB para el monitor
type InstantaneaProceso struct {
	ID             int      `json:"id"`
	Nombre         string   `json:"nombre"`
	Padre          int      `json:"padre"`
	Prioridad      int      `json:"prioridad"`
	Estado         string   `json:"estado"`
	Motivo         string   `json:"motivo"`
	EstadoMensaje  string   `json:"estado_mensaje"`
	Dormido        bool     `json:"dormido"`
	Despertar      int64    `json:"despertar,omitempty"`
	BuzonSalida    int      `json:"buzon_salida"`
	BuzonEntrada   int      `json:"buzon_entrada"`
	PaginasValidas int      `json:"paginas_validas"`
	Disco          int      `json:"disco,omitempty"`
	Metricas       Metricas `json:"metricas"`
}

type Instantanea struct {
	Reloj             int64                `json:"reloj"`
	Actual            int                  `json:"actual"`
	Procesos          []InstantaneaProceso `json:"procesos"`
	Marcos            []Marco              `json:"marcos"`
	SectoresOcupados  []int                `json:"sectores_ocupados"`
	EventosPendientes int                  `json:"eventos_pendientes"`
}

func instantaneaDe(p *PCB) InstantaneaProceso {
	return InstantaneaProceso{
		ID:             p.ID,
		Nombre:         p.Nombre,
		Padre:          p.Padre,
		Prioridad:      p.Prioridad,
		Estado:         p.Estado.String(),
		Motivo:         p.Motivo.String(),
		EstadoMensaje:  p.EstadoMensaje.String(),
		Dormido:        p.enCola,
		Despertar:      p.Despertar,
		BuzonSalida:    len(p.BuzonSalida),
		BuzonEntrada:   len(p.BuzonEntrada),
		PaginasValidas: len(p.TablaPaginas.Validas()),
		Disco:          p.DiscoEnUso,
		Metricas:       p.Metricas,
	}
}

// Instantanea copia el estado del kernel: procesos en orden de lista y luego
// de cola del temporizador.
func (k *Kernel) Instantanea() Instantanea {
	var est Instantanea
	k.procesos.conTodo(func() {
		t := k.procesos
		est.Actual = t.actual
		for _, id := range t.lista {
			est.Procesos = append(est.Procesos, instantaneaDe(t.pcbs[id]))
		}
		for _, id := range t.cola {
			est.Procesos = append(est.Procesos, instantaneaDe(t.pcbs[id]))
		}
	})
	est.Marcos = k.marcos.instantanea()
	est.SectoresOcupados = k.mapa.Ocupados()
	est.EventosPendientes = k.eventos.total()
	est.Reloj = k.hw.LeerReloj()
	return est
}

// Proceso devuelve la vista de un proceso vivo
func (k *Kernel) Proceso(id int) (InstantaneaProceso, bool) {
	var (
		vista InstantaneaProceso
		ok    bool
	)
	k.procesos.con(id, func(p *PCB) {
		vista, ok = instantaneaDe(p), true
	})
	return vista, ok
}
