package hardware

// Config describe la máquina simulada
type Config struct {
	PaginasVirtuales int    `json:"PAGINAS_VIRTUALES"`
	MarcosFisicos    int    `json:"MARCOS_FISICOS"`
	TamPagina        int    `json:"TAM_PAGINA"`
	CantidadDiscos   int    `json:"CANTIDAD_DISCOS"`
	SectoresPorDisco int    `json:"SECTORES_POR_DISCO"`
	CostoLlamada     int64  `json:"COSTO_LLAMADA"`
	CostoMemoria     int64  `json:"COSTO_MEMORIA"`
	CostoRegistro    int64  `json:"COSTO_REGISTRO"`
	CostoDisco       int64  `json:"COSTO_DISCO"`
	RetardoRealMs    int    `json:"RETARDO_REAL_MS"`
	ArchivoDiscos    string `json:"ARCHIVO_DISCOS"`
	NivelTraza       string `json:"NIVEL_TRAZA"`
}

// ConDefaults completa los campos en cero
func (c Config) ConDefaults() Config {
	if c.PaginasVirtuales <= 0 {
		c.PaginasVirtuales = 1024
	}
	if c.MarcosFisicos <= 0 {
		c.MarcosFisicos = 64
	}
	if c.TamPagina <= 0 {
		c.TamPagina = 16
	}
	if c.CantidadDiscos <= 0 {
		c.CantidadDiscos = 12
	}
	if c.SectoresPorDisco <= 0 {
		c.SectoresPorDisco = 1600
	}
	if c.CostoLlamada <= 0 {
		c.CostoLlamada = 2
	}
	if c.CostoMemoria <= 0 {
		c.CostoMemoria = 1
	}
	if c.CostoRegistro <= 0 {
		c.CostoRegistro = 1
	}
	if c.CostoDisco <= 0 {
		c.CostoDisco = 100
	}
	if c.NivelTraza == "" {
		c.NivelTraza = "warn"
	}
	return c
}
