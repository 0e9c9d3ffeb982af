package hardware

import (
	"errors"
	"testing"
	"time"
)

func esperarHalt(t *testing.T, m *Maquina) error {
	t.Helper()
	select {
	case <-m.Detenida():
		return m.Esperar()
	case <-time.After(5 * time.Second):
		t.Fatal("la máquina no se detuvo")
		return nil
	}
}

func TestCambioDeContextoGuardarYMatar(t *testing.T) {
	m := nuevaMaquinaPrueba(t, Config{})
	var orden []string
	var a, b *Contexto

	a = m.CrearContexto(func() {
		orden = append(orden, "a1")
		m.CambiarContexto(Guardar, b)
		orden = append(orden, "a2")
		m.Detener(nil)
	}, ModoUsuario)
	b = m.CrearContexto(func() {
		orden = append(orden, "b1")
		m.CambiarContexto(Matar, a)
		orden = append(orden, "nunca")
	}, ModoUsuario)

	go m.CambiarContexto(Guardar, a)
	if err := esperarHalt(t, m); err != nil {
		t.Fatalf("Esperar = %v", err)
	}

	want := []string{"a1", "b1", "a2"}
	if len(orden) != len(want) {
		t.Fatalf("orden = %v, se esperaba %v", orden, want)
	}
	for i := range want {
		if orden[i] != want[i] {
			t.Fatalf("orden = %v, se esperaba %v", orden, want)
		}
	}
}

func TestContextoQueTerminaSinCederDetieneLaMaquina(t *testing.T) {
	m := nuevaMaquinaPrueba(t, Config{})
	c := m.CrearContexto(func() {}, ModoKernel)

	go m.CambiarContexto(Guardar, c)
	if err := esperarHalt(t, m); err == nil {
		t.Fatal("se esperaba un error de halt")
	}
}

func TestInstruccionPrivilegiadaEnModoUsuario(t *testing.T) {
	m := nuevaMaquinaPrueba(t, Config{})
	f := &fallos{}
	m.InstalarManejadores(nil, f.manejar, nil)

	errListo := errors.New("listo")
	usuario := m.CrearContexto(func() {
		m.EjecutarPrivilegiada()
		m.Detener(errListo)
	}, ModoUsuario)

	go m.CambiarContexto(Guardar, usuario)
	if err := esperarHalt(t, m); !errors.Is(err, errListo) {
		t.Fatalf("Esperar = %v", err)
	}
	if len(f.vistos) != 1 || f.vistos[0] != (InstruccionPrivilegiada{}) {
		t.Fatalf("fallos = %#v", f.vistos)
	}
}

func TestTrapCobraLaLlamada(t *testing.T) {
	m := nuevaMaquinaPrueba(t, Config{CostoLlamada: 3})
	var recibida any
	m.InstalarManejadores(nil, nil, func(ll any) { recibida = ll })

	m.Trap("dormir")
	if recibida != "dormir" {
		t.Fatalf("llamada = %v", recibida)
	}
	if m.LeerReloj() != 3 {
		t.Fatalf("reloj = %d", m.LeerReloj())
	}
}
