// Package programas reúne los programas de usuario que se pueden arrancar
// por nombre.
package programas

import (
	"fmt"
	"sort"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/kernel"
)

// Entrada del registro de programas
type Entrada struct {
	Nombre      string
	Descripcion string
	Programa    kernel.Programa
}

var registro = map[string]Entrada{}

func registrar(nombre, descripcion string, programa kernel.Programa) {
	registro[nombre] = Entrada{Nombre: nombre, Descripcion: descripcion, Programa: programa}
}

func init() {
	registrar("dormilones", "tres procesos duermen plazos distintos y despiertan en orden", dormilones)
	registrar("ping_pong", "dos procesos intercambian mensajes dirigidos", pingPong)
	registrar("difusion", "un emisor difunde y cada mensaje lo toma el primer receptor en espera", difusion)
	registrar("paginado", "escribe más páginas que marcos y verifica los valores", paginado)
	registrar("compartida", "dos procesos se comunican por un área de memoria compartida", compartida)
	registrar("disco", "escribe y relee sectores de varios discos", disco)
	registrar("suspension", "suspende, reanuda y cambia la prioridad de un proceso", suspension)
}

// Buscar devuelve el programa registrado con ese nombre
func Buscar(nombre string) (kernel.Programa, error) {
	e, ok := registro[nombre]
	if !ok {
		return nil, fmt.Errorf("programa desconocido: %s", nombre)
	}
	return e.Programa, nil
}

// Listar devuelve las entradas ordenadas por nombre
func Listar() []Entrada {
	entradas := make([]Entrada, 0, len(registro))
	for _, e := range registro {
		entradas = append(entradas, e)
	}
	sort.Slice(entradas, func(i, j int) bool { return entradas[i].Nombre < entradas[j].Nombre })
	return entradas
}
