package kernel

import (
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
)

// Llamada es una llamada al sistema. Cada tipo lleva sus argumentos y el
// kernel completa sus resultados antes de volver del trap.
type Llamada interface {
	llamada()
}

type LlamadaHora struct {
	Hora int64
}

type LlamadaDormir struct {
	Duracion int64
	Err      error
}

type LlamadaObtenerPID struct {
	Nombre string
	PID    int
	Err    error
}

type LlamadaCrear struct {
	Nombre    string
	Programa  Programa
	Prioridad int
	PID       int
	Err       error
}

type LlamadaTerminar struct {
	PID int
	Err error
}

type LlamadaSuspender struct {
	PID int
	Err error
}

type LlamadaReanudar struct {
	PID int
	Err error
}

type LlamadaCambiarPrioridad struct {
	PID       int
	Prioridad int
	Err       error
}

type LlamadaEnviar struct {
	Destino int
	Datos   []byte
	Err     error
}

type LlamadaRecibir struct {
	Origen int
	Maximo int
	Datos  []byte
	Emisor int
	Err    error
}

type LlamadaLeerMemoria struct {
	Direccion int
	Valor     int32
}

type LlamadaEscribirMemoria struct {
	Direccion int
	Valor     int32
}

type LlamadaLeerDisco struct {
	Disco  int
	Sector int
	Datos  []byte
	Err    error
}

type LlamadaEscribirDisco struct {
	Disco  int
	Sector int
	Datos  []byte
	Err    error
}

type LlamadaAreaCompartida struct {
	Direccion  int
	Paginas    int
	Etiqueta   string
	Compartida int
	Err        error
}

func (*LlamadaHora) llamada()             {}
func (*LlamadaDormir) llamada()           {}
func (*LlamadaObtenerPID) llamada()       {}
func (*LlamadaCrear) llamada()            {}
func (*LlamadaTerminar) llamada()         {}
func (*LlamadaSuspender) llamada()        {}
func (*LlamadaReanudar) llamada()         {}
func (*LlamadaCambiarPrioridad) llamada() {}
func (*LlamadaEnviar) llamada()           {}
func (*LlamadaRecibir) llamada()          {}
func (*LlamadaLeerMemoria) llamada()      {}
func (*LlamadaEscribirMemoria) llamada()  {}
func (*LlamadaLeerDisco) llamada()        {}
func (*LlamadaEscribirDisco) llamada()    {}
func (*LlamadaAreaCompartida) llamada()   {}

// manejarLlamada es el manejador de traps. Después de cada llamada, salvo la
// terminación, procesa los eventos pendientes y vuelve a planificar.
func (k *Kernel) manejarLlamada(llamada any) {
	ll, ok := llamada.(Llamada)
	if !ok {
		k.fatal(errInterno("llamada al sistema desconocida %T", llamada))
	}

	switch ll := ll.(type) {
	case *LlamadaHora:
		ll.Hora = k.hw.LeerReloj()
	case *LlamadaDormir:
		ll.Err = k.dormir(ll.Duracion)
	case *LlamadaObtenerPID:
		ll.PID, ll.Err = k.obtenerPID(ll.Nombre)
	case *LlamadaCrear:
		ll.PID, ll.Err = k.crearProceso(ll.Nombre, ll.Programa, ll.Prioridad, hardware.ModoUsuario)
	case *LlamadaTerminar:
		ll.Err = k.terminarProceso(ll.PID)
		return
	case *LlamadaSuspender:
		ll.Err = k.suspenderProceso(ll.PID)
	case *LlamadaReanudar:
		ll.Err = k.reanudarProceso(ll.PID)
	case *LlamadaCambiarPrioridad:
		ll.Err = k.cambiarPrioridad(ll.PID, ll.Prioridad)
	case *LlamadaEnviar:
		ll.Err = k.enviarMensaje(ll.Destino, ll.Datos)
	case *LlamadaRecibir:
		ll.Datos, ll.Emisor, ll.Err = k.recibirMensaje(ll.Origen, ll.Maximo)
	case *LlamadaLeerMemoria:
		ll.Valor = k.hw.LeerMemoria(ll.Direccion)
		k.tocarDireccion(ll.Direccion)
	case *LlamadaEscribirMemoria:
		k.hw.EscribirMemoria(ll.Direccion, ll.Valor)
		k.tocarDireccion(ll.Direccion)
	case *LlamadaLeerDisco:
		ll.Datos, ll.Err = k.leerDiscoUsuario(ll.Disco, ll.Sector)
	case *LlamadaEscribirDisco:
		ll.Err = k.escribirDiscoUsuario(ll.Disco, ll.Sector, ll.Datos)
	case *LlamadaAreaCompartida:
		ll.Compartida, ll.Err = k.definirAreaCompartida(ll.Direccion, ll.Paginas, ll.Etiqueta)
	}

	if k.eventos.total() > 0 {
		k.manejarEventos()
	}
	k.replanificar(hardware.Guardar)
}

func (k *Kernel) obtenerPID(nombre string) (int, error) {
	if nombre == "" {
		return k.procesos.idActual(), nil
	}
	if id := k.procesos.porNombre(nombre); id >= 0 {
		return id, nil
	}
	return 0, errParametro("no existe un proceso llamado %s", nombre)
}
