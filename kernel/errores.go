package kernel

import (
	"errors"
	"fmt"
)

var (
	// ErrParametroInvalido: id, nombre, prioridad o longitud fuera de contrato
	ErrParametroInvalido = errors.New("parámetro inválido")
	// ErrRecursosAgotados: procesos, buzón de salida, marcos o sectores
	ErrRecursosAgotados = errors.New("recursos agotados")
	// ErrInterno: invariante del kernel violado; detiene la máquina
	ErrInterno = errors.New("error interno del kernel")
)

func errParametro(formato string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParametroInvalido, fmt.Sprintf(formato, args...))
}

func errRecursos(formato string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRecursosAgotados, fmt.Sprintf(formato, args...))
}

func errInterno(formato string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInterno, fmt.Sprintf(formato, args...))
}
