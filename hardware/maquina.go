package hardware

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

type eventoHW struct {
	tiempo      int64
	dispositivo Dispositivo
	estado      Estado
}

// Maquina es el hardware simulado: reloj, temporizador, discos, memoria
// física con MMU, contextos de ejecución y el hilo de interrupciones.
type Maquina struct {
	cfg   Config
	traza *logrus.Logger

	mu         sync.Mutex
	reloj      int64
	pendientes []eventoHW
	latcheadas []Interrupcion
	discos     []*disco
	almacen    almacen
	memoria    []byte
	tabla      *TablaPaginas
	actual     *Contexto
	contextos  int

	manejadorInterrupcion func()
	manejadorFallo        func(Fallo)
	manejadorSVC          func(any)

	pedido       chan struct{}
	listo        chan struct{}
	detenida     chan struct{}
	detenerUna   sync.Once
	errDetencion error
}

// NuevaMaquina arma la máquina y arranca su hilo de interrupciones
func NuevaMaquina(cfg Config) (*Maquina, error) {
	cfg = cfg.ConDefaults()
	if cfg.TamPagina < 4 || cfg.TamPagina%4 != 0 {
		return nil, fmt.Errorf("TAM_PAGINA debe ser múltiplo de 4: %d", cfg.TamPagina)
	}
	if cfg.MarcosFisicos > int(PTEMarco)+1 {
		return nil, fmt.Errorf("MARCOS_FISICOS no entra en una entrada de tabla: %d", cfg.MarcosFisicos)
	}

	var alm almacen = nuevoAlmacenMemoria()
	if cfg.ArchivoDiscos != "" {
		archivo, err := nuevoAlmacenArchivo(cfg.ArchivoDiscos, cfg.TamPagina, cfg.SectoresPorDisco)
		if err != nil {
			return nil, err
		}
		alm = archivo
	}

	m := &Maquina{
		cfg:      cfg,
		traza:    utils.NuevaTraza(cfg.NivelTraza),
		almacen:  alm,
		memoria:  make([]byte, cfg.MarcosFisicos*cfg.TamPagina),
		pedido:   make(chan struct{}),
		listo:    make(chan struct{}),
		detenida: make(chan struct{}),
	}
	for i := 1; i <= cfg.CantidadDiscos; i++ {
		m.discos = append(m.discos, &disco{numero: i})
	}

	go m.hiloInterrupciones()
	return m, nil
}

func (m *Maquina) Config() Config {
	return m.cfg
}

// InstalarManejadores registra los tres puntos de entrada del kernel
func (m *Maquina) InstalarManejadores(interrupcion func(), fallo func(Fallo), svc func(any)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manejadorInterrupcion = interrupcion
	m.manejadorFallo = fallo
	m.manejadorSVC = svc
}

// LeerReloj devuelve el tiempo simulado sin cobrar
func (m *Maquina) LeerReloj() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reloj
}

// CobrarTiempo avanza el reloj y entrega las interrupciones vencidas
func (m *Maquina) CobrarTiempo(costo int64) {
	if costo <= 0 {
		return
	}
	m.mu.Lock()
	m.reloj += costo
	hay := m.vencerEventos()
	m.mu.Unlock()

	if hay {
		m.entregarInterrupciones()
	}
}

// Inactivo salta el reloj al próximo evento de dispositivo y lo entrega.
// Devuelve false si no hay nada pendiente en ningún dispositivo.
func (m *Maquina) Inactivo() bool {
	m.mu.Lock()
	if len(m.latcheadas) == 0 {
		if len(m.pendientes) == 0 {
			m.mu.Unlock()
			return false
		}
		if proximo := m.pendientes[0].tiempo; proximo > m.reloj {
			m.reloj = proximo
		}
		m.vencerEventos()
	}
	retardo := m.cfg.RetardoRealMs
	reloj := m.reloj
	m.mu.Unlock()

	m.traza.WithField("reloj", reloj).Debug("máquina inactiva, avanza al próximo evento")
	utils.AplicarRetardo("inactivo", retardo)
	m.entregarInterrupciones()
	return true
}

// IniciarTemporizador arma el único temporizador para dentro de demora
func (m *Maquina) IniciarTemporizador(demora int64) {
	if demora < 0 {
		demora = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	restantes := m.pendientes[:0]
	for _, ev := range m.pendientes {
		if _, esTemporizador := ev.dispositivo.(Temporizador); !esTemporizador {
			restantes = append(restantes, ev)
		}
	}
	m.pendientes = restantes
	m.programar(m.reloj+demora, Temporizador{}, EstadoOK)

	m.traza.WithFields(logrus.Fields{"reloj": m.reloj, "demora": demora}).Debug("temporizador armado")
}

// InterrupcionPendiente consulta el registro de dispositivo interrumpido
func (m *Maquina) InterrupcionPendiente() (Interrupcion, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.latcheadas) == 0 {
		return Interrupcion{}, false
	}
	return m.latcheadas[0], true
}

// LimpiarInterrupcion borra la interrupción que devolvió InterrupcionPendiente
func (m *Maquina) LimpiarInterrupcion() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.latcheadas) > 0 {
		m.latcheadas = m.latcheadas[1:]
	}
}

// Trap entra al kernel por el manejador de llamadas al sistema
func (m *Maquina) Trap(llamada any) {
	m.CobrarTiempo(m.cfg.CostoLlamada)

	m.mu.Lock()
	svc := m.manejadorSVC
	m.mu.Unlock()
	if svc == nil {
		m.traza.WithField("llamada", fmt.Sprintf("%T", llamada)).Warn("llamada sin manejador instalado")
		return
	}
	svc(llamada)
}

// Detener es el halt de la máquina. Los contextos estacionados terminan.
func (m *Maquina) Detener(err error) {
	m.detenerUna.Do(func() {
		m.mu.Lock()
		m.errDetencion = err
		reloj := m.reloj
		m.mu.Unlock()

		campos := logrus.Fields{"reloj": reloj}
		if err != nil {
			m.traza.WithFields(campos).WithError(err).Error("máquina detenida")
		} else {
			m.traza.WithFields(campos).Info("máquina detenida")
		}
		close(m.detenida)
	})
}

// Detenida se cierra cuando la máquina se detiene
func (m *Maquina) Detenida() <-chan struct{} {
	return m.detenida
}

// Esperar bloquea hasta el halt y devuelve su causa
func (m *Maquina) Esperar() error {
	<-m.detenida
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errDetencion
}

// Apagar libera el almacenamiento de los discos
func (m *Maquina) Apagar() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.almacen.cerrar()
}

// programar requiere m.mu tomado
func (m *Maquina) programar(tiempo int64, dispositivo Dispositivo, estado Estado) {
	ev := eventoHW{tiempo: tiempo, dispositivo: dispositivo, estado: estado}
	i := sort.Search(len(m.pendientes), func(i int) bool {
		return m.pendientes[i].tiempo > tiempo
	})
	m.pendientes = append(m.pendientes, eventoHW{})
	copy(m.pendientes[i+1:], m.pendientes[i:])
	m.pendientes[i] = ev
}

// vencerEventos pasa al registro de interrupciones todo evento con tiempo
// menor o igual al reloj. Requiere m.mu tomado.
func (m *Maquina) vencerEventos() bool {
	for len(m.pendientes) > 0 && m.pendientes[0].tiempo <= m.reloj {
		ev := m.pendientes[0]
		m.pendientes = m.pendientes[1:]

		if d, ok := ev.dispositivo.(Disco); ok {
			m.completarPedido(m.discos[d.Numero-1])
		}
		m.latcheadas = append(m.latcheadas, Interrupcion{Dispositivo: ev.dispositivo, Estado: ev.estado})
		m.traza.WithFields(logrus.Fields{
			"reloj":       m.reloj,
			"dispositivo": ev.dispositivo,
			"estado":      ev.estado,
		}).Debug("interrupción de dispositivo")
	}
	return len(m.latcheadas) > 0
}

func (m *Maquina) entregarInterrupciones() {
	select {
	case m.pedido <- struct{}{}:
	case <-m.detenida:
		return
	}
	select {
	case <-m.listo:
	case <-m.detenida:
	}
}

func (m *Maquina) hiloInterrupciones() {
	for {
		select {
		case <-m.pedido:
		case <-m.detenida:
			return
		}

		m.mu.Lock()
		manejador := m.manejadorInterrupcion
		if manejador == nil {
			m.latcheadas = nil
		}
		m.mu.Unlock()

		if manejador != nil {
			manejador()
		}

		select {
		case m.listo <- struct{}{}:
		case <-m.detenida:
			return
		}
	}
}
