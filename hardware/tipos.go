package hardware

import (
	"fmt"
	"sync"
)

// Modo de ejecución de un contexto
type Modo int

const (
	ModoUsuario Modo = iota
	ModoKernel
)

func (m Modo) String() string {
	if m == ModoKernel {
		return "KERNEL"
	}
	return "USUARIO"
}

// ModoCambio indica qué pasa con el contexto saliente
type ModoCambio int

const (
	Guardar ModoCambio = iota
	Matar
)

// Bits de una entrada de tabla de páginas (16 bits)
const (
	PTEValido       uint16 = 0x8000
	PTEModificado   uint16 = 0x4000
	PTEReferenciado uint16 = 0x2000
	PTEMarco        uint16 = 0x0FFF
)

// Identificadores numéricos de dispositivo
const (
	IDTemporizador = 4
	IDPrimerDisco  = 5
)

// Dispositivo es la unión de los dispositivos que interrumpen:
// Temporizador o Disco.
type Dispositivo interface {
	ID() int
	dispositivo()
}

type Temporizador struct{}

func (Temporizador) ID() int        { return IDTemporizador }
func (Temporizador) dispositivo()   {}
func (Temporizador) String() string { return "TEMPORIZADOR" }

type Disco struct {
	Numero int
}

func (d Disco) ID() int        { return IDPrimerDisco + d.Numero - 1 }
func (Disco) dispositivo()     {}
func (d Disco) String() string { return fmt.Sprintf("DISCO_%d", d.Numero) }

// DispositivoPorID traduce un id numérico al dispositivo
func DispositivoPorID(id int, cantidadDiscos int) (Dispositivo, bool) {
	switch {
	case id == IDTemporizador:
		return Temporizador{}, true
	case id >= IDPrimerDisco && id < IDPrimerDisco+cantidadDiscos:
		return Disco{Numero: id - IDPrimerDisco + 1}, true
	}
	return nil, false
}

// Estado de finalización informado por un dispositivo
type Estado int

const (
	EstadoOK Estado = iota
	EstadoSinEscrituraPrevia
	EstadoErrorAlmacen
)

func (e Estado) String() string {
	switch e {
	case EstadoOK:
		return "OK"
	case EstadoSinEscrituraPrevia:
		return "SIN_ESCRITURA_PREVIA"
	case EstadoErrorAlmacen:
		return "ERROR_ALMACEN"
	}
	return fmt.Sprintf("ESTADO_%d", int(e))
}

// Interrupcion es lo que expone el registro de interrupciones
type Interrupcion struct {
	Dispositivo Dispositivo
	Estado      Estado
}

// Fallo es la unión de los fallos que la máquina entrega al kernel
type Fallo interface {
	fallo()
}

// ErrorCPU: acceso desalineado o que cruza páginas
type ErrorCPU struct {
	Direccion int
}

// MemoriaInvalida: la entrada de la página no es válida o está fuera de rango
type MemoriaInvalida struct {
	Pagina int
}

// InstruccionPrivilegiada: instrucción de kernel en modo usuario
type InstruccionPrivilegiada struct{}

func (ErrorCPU) fallo()                {}
func (MemoriaInvalida) fallo()         {}
func (InstruccionPrivilegiada) fallo() {}

// TablaPaginas es la tabla que recorre la MMU
type TablaPaginas struct {
	mu       sync.Mutex
	entradas []uint16
}

func NuevaTablaPaginas(paginas int) *TablaPaginas {
	return &TablaPaginas{entradas: make([]uint16, paginas)}
}

func (t *TablaPaginas) Longitud() int {
	return len(t.entradas)
}

func (t *TablaPaginas) Entrada(pagina int) uint16 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entradas[pagina]
}

func (t *TablaPaginas) Fijar(pagina int, valor uint16) {
	t.mu.Lock()
	t.entradas[pagina] = valor
	t.mu.Unlock()
}

// Validas devuelve las páginas con entrada válida
func (t *TablaPaginas) Validas() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	var paginas []int
	for p, e := range t.entradas {
		if e&PTEValido != 0 {
			paginas = append(paginas, p)
		}
	}
	return paginas
}

func (t *TablaPaginas) marcarAcceso(pagina int, escritura bool) {
	t.mu.Lock()
	t.entradas[pagina] |= PTEReferenciado
	if escritura {
		t.entradas[pagina] |= PTEModificado
	}
	t.mu.Unlock()
}

// EntradaValida arma una entrada válida hacia marco
func EntradaValida(marco int) uint16 {
	return PTEValido | (uint16(marco) & PTEMarco)
}
