package utils

import "testing"

func TestSemaforoTryWait(t *testing.T) {
	s := NewSemaforo(2)

	if !s.TryWait() || !s.TryWait() {
		t.Fatal("los dos primeros TryWait deberían tener lugar")
	}
	if s.TryWait() {
		t.Fatal("el tercer TryWait no debería tener lugar")
	}
	if s.Tomados() != 2 {
		t.Fatalf("Tomados() = %d, se esperaba 2", s.Tomados())
	}

	s.Signal()
	if !s.TryWait() {
		t.Fatal("después de Signal debería haber lugar")
	}
}

func TestSemaforoSignalSinTomados(t *testing.T) {
	s := NewSemaforo(1)
	s.Signal()
	s.Signal()
	if s.Tomados() != 0 {
		t.Fatalf("Tomados() = %d, se esperaba 0", s.Tomados())
	}
	if s.Capacidad() != 1 {
		t.Fatalf("Capacidad() = %d, se esperaba 1", s.Capacidad())
	}
}

func TestSemaforoCapacidadInvalida(t *testing.T) {
	if NewSemaforo(0).Capacidad() != 1 {
		t.Fatal("una capacidad no positiva debería quedar en 1")
	}
}
