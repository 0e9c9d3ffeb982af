package kernel

import (
	"errors"
	"reflect"
	"testing"
)

func TestElegirMarco(t *testing.T) {
	marcos := nuevaTablaMarcos(3)

	e, err := marcos.elegir()
	if err != nil || e.desalojo || e.marco != 0 {
		t.Fatalf("tabla vacía: elegir = %+v, %v", e, err)
	}

	marcos.asignar(0, 1, 10, 5)
	marcos.asignar(1, 1, 11, 5)
	marcos.asignar(2, 2, 12, 5)

	// todos con el mismo toque: gana el de menor número
	e, err = marcos.elegir()
	if err != nil || !e.desalojo || e.marco != 0 || e.victima != (Dueno{PID: 1, Pagina: 10}) {
		t.Fatalf("toques iguales: elegir = %+v, %v", e, err)
	}

	marcos.tocar(0, 1, 20)
	marcos.tocar(2, 2, 30)
	e, _ = marcos.elegir()
	if e.marco != 1 {
		t.Errorf("elegir = marco %d, want 1", e.marco)
	}

	// tocar con un proceso que no es dueño no cambia nada
	marcos.tocar(1, 9, 100)
	e, _ = marcos.elegir()
	if e.marco != 1 {
		t.Errorf("toque ajeno: elegir = marco %d, want 1", e.marco)
	}
}

func TestMarcosCompartidosNoSeDesalojan(t *testing.T) {
	marcos := nuevaTablaMarcos(2)
	if _, _, err := marcos.compartir(1, 0, 2, "SEGA", 0); err != nil {
		t.Fatalf("compartir: %v", err)
	}
	if _, err := marcos.elegir(); !errors.Is(err, ErrRecursosAgotados) {
		t.Fatalf("elegir con todo compartido: err = %v", err)
	}
}

func TestCompartir(t *testing.T) {
	marcos := nuevaTablaMarcos(4)
	marcos.asignar(0, 1, 7, 0)

	got, previos, err := marcos.compartir(1, 8, 2, "SEGA", 1)
	if err != nil || previos != 0 || !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("primer compartir = %v, %d, %v", got, previos, err)
	}

	got, previos, err = marcos.compartir(2, 40, 2, "SEGA", 2)
	if err != nil || previos != 1 || !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("segundo compartir = %v, %d, %v", got, previos, err)
	}
	if m := marcos.marcoDe(2, 41); m != 2 {
		t.Errorf("marcoDe(2, 41) = %d, want 2", m)
	}

	tests := []struct {
		nombre   string
		pid      int
		paginas  int
		etiqueta string
		want     error
	}{
		{nombre: "área existente más chica", pid: 3, paginas: 3, etiqueta: "SEGA", want: ErrParametroInvalido},
		{nombre: "sin marcos libres", pid: 3, paginas: 2, etiqueta: "OTRA", want: ErrRecursosAgotados},
	}
	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			if _, _, err := marcos.compartir(tt.pid, 0, tt.paginas, tt.etiqueta, 3); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if liberados := marcos.liberarProceso(1); liberados != 1 {
		t.Errorf("liberarProceso(1) = %d, want 1 (el privado)", liberados)
	}
	if liberados := marcos.liberarProceso(2); liberados != 2 {
		t.Errorf("liberarProceso(2) = %d, want 2", liberados)
	}
	for _, m := range marcos.instantanea() {
		if len(m.Duenos) != 0 || m.Etiqueta != "" {
			t.Errorf("marco %d quedó ocupado: %+v", m.Numero, m)
		}
	}
}

func TestCompartirReemplazaMapeoPrivado(t *testing.T) {
	marcos := nuevaTablaMarcos(3)
	marcos.asignar(0, 1, 5, 0)

	got, _, err := marcos.compartir(1, 5, 1, "X", 1)
	if err != nil || !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("compartir = %v, %v", got, err)
	}
	if d := marcos.instantanea()[0].Duenos; len(d) != 0 {
		t.Errorf("el marco privado sigue con dueños: %v", d)
	}
}
