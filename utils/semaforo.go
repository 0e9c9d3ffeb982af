package utils

// Semaforo implementa un semáforo contador con canales
type Semaforo struct {
	c chan struct{}
}

// NewSemaforo crea un semáforo con capacidad inicial
func NewSemaforo(capacidad int) *Semaforo {
	if capacidad <= 0 {
		capacidad = 1
	}
	return &Semaforo{
		c: make(chan struct{}, capacidad),
	}
}

// Wait (P) toma un lugar, bloquea si no quedan
func (s *Semaforo) Wait() {
	s.c <- struct{}{}
}

// Signal (V) devuelve un lugar; sin lugares tomados no hace nada
func (s *Semaforo) Signal() {
	select {
	case <-s.c:
	default:
	}
}

// TryWait intenta tomar un lugar sin bloquear
func (s *Semaforo) TryWait() bool {
	select {
	case s.c <- struct{}{}:
		return true
	default:
		return false
	}
}

// Tomados devuelve cuántos lugares están ocupados
func (s *Semaforo) Tomados() int {
	return len(s.c)
}

// Capacidad devuelve el total de lugares
func (s *Semaforo) Capacidad() int {
	return cap(s.c)
}
