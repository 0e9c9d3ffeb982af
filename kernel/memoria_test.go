package kernel

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
)

func TestPaginacionConDesalojo(t *testing.T) {
	hw := hardware.Config{MarcosFisicos: 4, PaginasVirtuales: 64}
	err := arrancarPrueba(t, hw, Config{}, func(s *Sistema) {
		tam := s.TamPagina()
		for p := 0; p < 12; p++ {
			s.EscribirMemoria(p*tam+4, int32(1000+p))
		}
		for p := 0; p < 12; p++ {
			if v := s.LeerMemoria(p*tam + 4); v != int32(1000+p) {
				t.Errorf("página %d: leído %d, want %d", p, v, 1000+p)
			}
		}
		if v := s.LeerMemoria(40 * tam); v != 0 {
			t.Errorf("página sin escribir: leído %d, want 0", v)
		}

		vista, _ := s.k.Proceso(1)
		m := vista.Metricas
		if m.FallosPagina < 12 || m.Desalojos < 8 || m.EscriturasDisco < 8 || m.LecturasDisco == 0 {
			t.Errorf("métricas inesperadas: %+v", m)
		}
		if vista.PaginasValidas > 4 {
			t.Errorf("%d páginas válidas con 4 marcos", vista.PaginasValidas)
		}
		sectores := 0
		for _, n := range s.k.Instantanea().SectoresOcupados {
			sectores += n
		}
		if sectores < 8 {
			t.Errorf("%d sectores ocupados, want >= 8", sectores)
		}
	})
	if err != nil {
		t.Fatalf("Arrancar: %v", err)
	}
}

func TestDesalojoEntreProcesos(t *testing.T) {
	hw := hardware.Config{MarcosFisicos: 2, PaginasVirtuales: 16}
	err := arrancarPrueba(t, hw, Config{}, func(s *Sistema) {
		tam := s.TamPagina()
		s.EscribirMemoria(0, 11)
		s.EscribirMemoria(tam, 12)

		s.CrearProceso("vecino", func(s *Sistema) {
			for p := 0; p < 4; p++ {
				s.EscribirMemoria(p*tam, int32(20+p))
			}
			for p := 0; p < 4; p++ {
				if v := s.LeerMemoria(p * tam); v != int32(20+p) {
					t.Errorf("vecino página %d: leído %d", p, v)
				}
			}
		}, 5)

		if v := s.LeerMemoria(0); v != 11 {
			t.Errorf("raiz página 0: leído %d, want 11", v)
		}
		if v := s.LeerMemoria(tam); v != 12 {
			t.Errorf("raiz página 1: leído %d, want 12", v)
		}
	})
	if err != nil {
		t.Fatalf("Arrancar: %v", err)
	}
}

func TestFallosTerminanAlProcesoYSusHijos(t *testing.T) {
	tests := []struct {
		nombre string
		acceso func(s *Sistema)
	}{
		{nombre: "fuera de rango", acceso: func(s *Sistema) { s.LeerMemoria(1024 * s.TamPagina()) }},
		{nombre: "dirección negativa", acceso: func(s *Sistema) { s.LeerMemoria(-4) }},
		{nombre: "desalineada", acceso: func(s *Sistema) { s.EscribirMemoria(2, 1) }},
		{nombre: "instrucción privilegiada", acceso: func(s *Sistema) { s.EjecutarPrivilegiada() }},
	}
	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			b := &bitacora{}
			err := arrancarPrueba(t, hardware.Config{}, Config{}, func(s *Sistema) {
				s.CrearProceso("malo", func(s *Sistema) {
					s.CrearProceso("hijo", nada, 30)
					tt.acceso(s)
					b.anotar("malo sigue")
				}, 5)
				var nombres []string
				for _, p := range s.k.Instantanea().Procesos {
					nombres = append(nombres, p.Nombre)
				}
				b.anotar("quedan %v", nombres)
			})
			if err != nil {
				t.Fatalf("Arrancar: %v", err)
			}
			comprobarBitacora(t, b, []string{"quedan [inicial]"})
		})
	}
}

func TestAreaCompartida(t *testing.T) {
	b := &bitacora{}
	err := arrancarPrueba(t, hardware.Config{}, Config{}, func(s *Sistema) {
		tam := s.TamPagina()
		s.CrearProceso("p1", func(s *Sistema) {
			n, err := s.DefinirAreaCompartida(32*tam, 2, "SEGA")
			b.anotar("p1 previos %d %v", n, err)
			s.EscribirMemoria(33*tam+8, 77)
			s.Dormir(1000)
		}, 5)
		s.CrearProceso("p2", func(s *Sistema) {
			n, err := s.DefinirAreaCompartida(64*tam, 2, "SEGA")
			b.anotar("p2 previos %d %v", n, err)
			b.anotar("p2 lee %d", s.LeerMemoria(65*tam+8))
			compartidos := 0
			for _, m := range s.k.Instantanea().Marcos {
				if m.Etiqueta == "SEGA" && len(m.Duenos) == 2 {
					compartidos++
				}
			}
			b.anotar("marcos compartidos %d", compartidos)
		}, 5)

		tests := []struct {
			dir, paginas int
			etiqueta     string
		}{
			{dir: 0, paginas: 3, etiqueta: "SEGA"},
			{dir: 0, paginas: 1, etiqueta: ""},
			{dir: 0, paginas: 0, etiqueta: "X"},
			{dir: -tam, paginas: 1, etiqueta: "X"},
			{dir: 1023 * tam, paginas: 2, etiqueta: "X"},
			{dir: 0, paginas: 1, etiqueta: string(bytes.Repeat([]byte("e"), 33))},
		}
		for _, tt := range tests {
			if _, err := s.DefinirAreaCompartida(tt.dir, tt.paginas, tt.etiqueta); !errors.Is(err, ErrParametroInvalido) {
				t.Errorf("DefinirAreaCompartida(%d, %d, %q): err = %v", tt.dir, tt.paginas, tt.etiqueta, err)
			}
		}
		s.Dormir(2000)
	})
	if err != nil {
		t.Fatalf("Arrancar: %v", err)
	}
	comprobarBitacora(t, b, []string{
		"p1 previos 0 <nil>",
		"p2 previos 1 <nil>",
		"p2 lee 77",
		"marcos compartidos 2",
	})
}

func TestDiscoLecturaEscritura(t *testing.T) {
	err := arrancarPrueba(t, hardware.Config{}, Config{}, func(s *Sistema) {
		datos := bytes.Repeat([]byte{7}, s.TamPagina())
		if err := s.EscribirDisco(2, 10, datos); err != nil {
			t.Errorf("EscribirDisco: %v", err)
		}
		leido, err := s.LeerDisco(2, 10)
		if err != nil || !bytes.Equal(leido, datos) {
			t.Errorf("LeerDisco = %v, %v", leido, err)
		}
		if _, err := s.LeerDisco(2, 11); !errors.Is(err, ErrParametroInvalido) {
			t.Errorf("LeerDisco de un sector sin escribir: err = %v", err)
		}

		invalidos := []struct {
			disco, sector int
			datos         []byte
		}{
			{0, 1, datos},
			{13, 1, datos},
			{1, -1, datos},
			{1, 1600, datos},
			{1, 1, datos[:4]},
		}
		for _, c := range invalidos {
			nombre := fmt.Sprintf("disco %d sector %d (%d bytes)", c.disco, c.sector, len(c.datos))
			if err := s.EscribirDisco(c.disco, c.sector, c.datos); !errors.Is(err, ErrParametroInvalido) {
				t.Errorf("EscribirDisco %s: err = %v", nombre, err)
			}
		}

		if !s.k.mapa.Ocupado(2, 10) {
			t.Error("el sector escrito no quedó marcado")
		}
		vista, _ := s.k.Proceso(1)
		if vista.Metricas.EscriturasDisco != 1 || vista.Metricas.LecturasDisco != 2 {
			t.Errorf("métricas de disco: %+v", vista.Metricas)
		}
	})
	if err != nil {
		t.Fatalf("Arrancar: %v", err)
	}
}

func TestDiscoNoExponeSectoresDePaginacion(t *testing.T) {
	hw := hardware.Config{MarcosFisicos: 2, PaginasVirtuales: 16}
	err := arrancarPrueba(t, hw, Config{}, func(s *Sistema) {
		tam := s.TamPagina()
		for p := 0; p < 3; p++ {
			s.EscribirMemoria(p*tam, int32(50+p))
		}

		var respaldo Ubicacion
		s.k.procesos.con(1, func(p *PCB) { respaldo = p.Sombra[0] })
		if respaldo.Disco == 0 {
			t.Fatal("la página 0 no tiene sector de respaldo")
		}

		ajenos := bytes.Repeat([]byte{0xFF}, tam)
		if err := s.EscribirDisco(respaldo.Disco, respaldo.Sector, ajenos); !errors.Is(err, ErrParametroInvalido) {
			t.Errorf("EscribirDisco sobre el respaldo: err = %v", err)
		}
		if _, err := s.LeerDisco(respaldo.Disco, respaldo.Sector); !errors.Is(err, ErrParametroInvalido) {
			t.Errorf("LeerDisco del respaldo: err = %v", err)
		}
		if err := s.EscribirDisco(respaldo.Disco, respaldo.Sector+5, ajenos); err != nil {
			t.Errorf("EscribirDisco en un sector libre: %v", err)
		}

		for p := 0; p < 3; p++ {
			if v := s.LeerMemoria(p * tam); v != int32(50+p) {
				t.Errorf("página %d: leído %d, want %d", p, v, 50+p)
			}
		}
	})
	if err != nil {
		t.Fatalf("Arrancar: %v", err)
	}
}
