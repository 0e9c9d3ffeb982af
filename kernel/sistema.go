package kernel

// Sistema es la interfaz que ve un programa de usuario. Cada método entra al
// kernel por un trap.
type Sistema struct {
	k *Kernel
}

func (s *Sistema) trap(ll Llamada) {
	s.k.hw.Trap(ll)
}

// Hora devuelve el reloj simulado
func (s *Sistema) Hora() int64 {
	ll := &LlamadaHora{}
	s.trap(ll)
	return ll.Hora
}

func (s *Sistema) Dormir(duracion int64) error {
	ll := &LlamadaDormir{Duracion: duracion}
	s.trap(ll)
	return ll.Err
}

// ObtenerPID con nombre vacío devuelve el id propio
func (s *Sistema) ObtenerPID(nombre string) (int, error) {
	ll := &LlamadaObtenerPID{Nombre: nombre}
	s.trap(ll)
	return ll.PID, ll.Err
}

func (s *Sistema) CrearProceso(nombre string, programa Programa, prioridad int) (int, error) {
	ll := &LlamadaCrear{Nombre: nombre, Programa: programa, Prioridad: prioridad}
	s.trap(ll)
	return ll.PID, ll.Err
}

// TerminarProceso acepta -1 (el propio) y -2 (el propio y sus descendientes).
// Terminar al propio no vuelve.
func (s *Sistema) TerminarProceso(pid int) error {
	ll := &LlamadaTerminar{PID: pid}
	s.trap(ll)
	return ll.Err
}

func (s *Sistema) SuspenderProceso(pid int) error {
	ll := &LlamadaSuspender{PID: pid}
	s.trap(ll)
	return ll.Err
}

func (s *Sistema) ReanudarProceso(pid int) error {
	ll := &LlamadaReanudar{PID: pid}
	s.trap(ll)
	return ll.Err
}

func (s *Sistema) CambiarPrioridad(pid, prioridad int) error {
	ll := &LlamadaCambiarPrioridad{PID: pid, Prioridad: prioridad}
	s.trap(ll)
	return ll.Err
}

// EnviarMensaje con destino Difusion lo entrega al primero que lo reciba
func (s *Sistema) EnviarMensaje(destino int, datos []byte) error {
	ll := &LlamadaEnviar{Destino: destino, Datos: datos}
	s.trap(ll)
	return ll.Err
}

// RecibirMensaje bloquea hasta que llegue un mensaje de origen (o de
// cualquiera, con Difusion) de a lo sumo maximo bytes.
func (s *Sistema) RecibirMensaje(origen, maximo int) ([]byte, int, error) {
	ll := &LlamadaRecibir{Origen: origen, Maximo: maximo}
	s.trap(ll)
	return ll.Datos, ll.Emisor, ll.Err
}

func (s *Sistema) LeerMemoria(dir int) int32 {
	ll := &LlamadaLeerMemoria{Direccion: dir}
	s.trap(ll)
	return ll.Valor
}

func (s *Sistema) EscribirMemoria(dir int, valor int32) {
	s.trap(&LlamadaEscribirMemoria{Direccion: dir, Valor: valor})
}

func (s *Sistema) LeerDisco(disco, sector int) ([]byte, error) {
	ll := &LlamadaLeerDisco{Disco: disco, Sector: sector}
	s.trap(ll)
	return ll.Datos, ll.Err
}

func (s *Sistema) EscribirDisco(disco, sector int, datos []byte) error {
	ll := &LlamadaEscribirDisco{Disco: disco, Sector: sector, Datos: datos}
	s.trap(ll)
	return ll.Err
}

// DefinirAreaCompartida devuelve cuántos procesos ya compartían el área
func (s *Sistema) DefinirAreaCompartida(dir, paginas int, etiqueta string) (int, error) {
	ll := &LlamadaAreaCompartida{Direccion: dir, Paginas: paginas, Etiqueta: etiqueta}
	s.trap(ll)
	return ll.Compartida, ll.Err
}

// EjecutarPrivilegiada intenta una instrucción de modo kernel. En modo
// usuario el proceso termina.
func (s *Sistema) EjecutarPrivilegiada() {
	s.k.hw.EjecutarPrivilegiada()
}

// TamPagina es el tamaño de página de la máquina
func (s *Sistema) TamPagina() int {
	return s.k.geo.TamPagina
}
