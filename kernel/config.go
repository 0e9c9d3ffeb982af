package kernel

// Config define los límites del kernel
type Config struct {
	MaxProcesos        int `json:"MAX_PROCESOS"`
	LongitudNombre     int `json:"LONGITUD_NOMBRE"`
	PrioridadMaxima    int `json:"PRIORIDAD_MAXIMA"`
	LongitudMaxMensaje int `json:"LONGITUD_MAX_MENSAJE"`
	MaxBuzonSalida     int `json:"MAX_BUZON_SALIDA"`
	LongitudEtiqueta   int `json:"LONGITUD_ETIQUETA"`
}

// ConDefaults completa los campos en cero
func (c Config) ConDefaults() Config {
	if c.MaxProcesos <= 0 {
		c.MaxProcesos = 20
	}
	if c.LongitudNombre <= 0 {
		c.LongitudNombre = 32
	}
	if c.PrioridadMaxima <= 0 {
		c.PrioridadMaxima = 100
	}
	if c.LongitudMaxMensaje <= 0 {
		c.LongitudMaxMensaje = 64
	}
	if c.MaxBuzonSalida <= 0 {
		c.MaxBuzonSalida = 10
	}
	if c.LongitudEtiqueta <= 0 {
		c.LongitudEtiqueta = 32
	}
	return c
}
