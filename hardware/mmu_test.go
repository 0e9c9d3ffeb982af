package hardware

import (
	"encoding/binary"
	"testing"
)

type fallos struct {
	vistos []Fallo
	alFallar func(Fallo)
}

func (f *fallos) manejar(fl Fallo) {
	f.vistos = append(f.vistos, fl)
	if f.alFallar != nil {
		f.alFallar(fl)
	}
}

func TestMMUTraduceYMarcaBits(t *testing.T) {
	m := nuevaMaquinaPrueba(t, Config{TamPagina: 16, PaginasVirtuales: 8, MarcosFisicos: 8})
	tabla := NuevaTablaPaginas(8)
	tabla.Fijar(2, EntradaValida(5))
	m.FijarTablaPaginas(tabla)

	m.EscribirMemoria(2*16+4, 77)
	if got := m.LeerMemoria(2*16 + 4); got != 77 {
		t.Fatalf("LeerMemoria = %d, se esperaba 77", got)
	}

	entrada := tabla.Entrada(2)
	if entrada&PTEReferenciado == 0 || entrada&PTEModificado == 0 {
		t.Fatalf("bits no marcados: %#x", entrada)
	}
	if int(entrada&PTEMarco) != 5 {
		t.Fatalf("marco = %d", entrada&PTEMarco)
	}

	fisico, err := m.LeerMarco(5)
	if err != nil {
		t.Fatal(err)
	}
	if got := binary.LittleEndian.Uint32(fisico[4:]); got != 77 {
		t.Fatalf("memoria física = %d", got)
	}
}

func TestMMUFalloDePaginaReintenta(t *testing.T) {
	m := nuevaMaquinaPrueba(t, Config{TamPagina: 16, PaginasVirtuales: 8, MarcosFisicos: 8})
	tabla := NuevaTablaPaginas(8)
	m.FijarTablaPaginas(tabla)

	f := &fallos{}
	f.alFallar = func(fl Fallo) {
		if mi, ok := fl.(MemoriaInvalida); ok {
			tabla.Fijar(mi.Pagina, EntradaValida(1))
		}
	}
	m.InstalarManejadores(nil, f.manejar, nil)

	m.EscribirMemoria(3*16, -9)
	if len(f.vistos) != 1 || f.vistos[0] != (MemoriaInvalida{Pagina: 3}) {
		t.Fatalf("fallos = %#v", f.vistos)
	}
	if got := m.LeerMemoria(3 * 16); got != -9 {
		t.Fatalf("LeerMemoria = %d", got)
	}
}

func TestMMUFallos(t *testing.T) {
	tests := []struct {
		name string
		dir  int
		want Fallo
	}{
		{"desalineada", 2, ErrorCPU{Direccion: 2}},
		{"fuera de rango", 8 * 16, MemoriaInvalida{Pagina: 8}},
		{"negativa", -4, MemoriaInvalida{Pagina: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := nuevaMaquinaPrueba(t, Config{TamPagina: 16, PaginasVirtuales: 8, MarcosFisicos: 8})
			m.FijarTablaPaginas(NuevaTablaPaginas(8))
			f := &fallos{}
			m.InstalarManejadores(nil, f.manejar, nil)

			if got := m.LeerMemoria(tt.dir); got != 0 {
				t.Fatalf("LeerMemoria = %d", got)
			}
			if len(f.vistos) == 0 || f.vistos[0] != tt.want {
				t.Fatalf("fallos = %#v, se esperaba %#v primero", f.vistos, tt.want)
			}
		})
	}
}

func TestEscribirMarcoCompletaConCeros(t *testing.T) {
	m := nuevaMaquinaPrueba(t, Config{TamPagina: 8, MarcosFisicos: 2})
	if err := m.EscribirMarco(1, []byte{1, 2, 3, 4, 5, 6, 7, 8}); err != nil {
		t.Fatal(err)
	}
	if err := m.EscribirMarco(1, []byte{9}); err != nil {
		t.Fatal(err)
	}
	datos, _ := m.LeerMarco(1)
	if datos[0] != 9 || datos[1] != 0 || datos[7] != 0 {
		t.Fatalf("marco = %v", datos)
	}
	if _, err := m.LeerMarco(2); err == nil {
		t.Fatal("se esperaba error fuera de rango")
	}
}
