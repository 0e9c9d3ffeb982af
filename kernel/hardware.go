package kernel

import "github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"

// Hardware es lo que el kernel usa de la máquina
type Hardware interface {
	Config() hardware.Config
	InstalarManejadores(interrupcion func(), fallo func(hardware.Fallo), svc func(any))

	LeerReloj() int64
	Inactivo() bool
	IniciarTemporizador(demora int64)
	InterrupcionPendiente() (hardware.Interrupcion, bool)
	LimpiarInterrupcion()
	Trap(llamada any)

	IniciarDisco(numero, sector int, buffer []byte, escritura bool) error
	DiscoLibre(numero int) bool

	FijarTablaPaginas(t *hardware.TablaPaginas)
	LeerMemoria(dir int) int32
	EscribirMemoria(dir int, valor int32)
	LeerMarco(marco int) ([]byte, error)
	EscribirMarco(marco int, datos []byte) error
	EjecutarPrivilegiada()

	CrearContexto(entrada func(), modo hardware.Modo) *hardware.Contexto
	DestruirContexto(c *hardware.Contexto)
	CambiarContexto(modo hardware.ModoCambio, destino *hardware.Contexto)

	Detener(err error)
	Esperar() error
}
