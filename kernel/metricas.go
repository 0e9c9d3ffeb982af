package kernel

import (
	"fmt"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

// Metricas por proceso
type Metricas struct {
	FallosPagina      int `json:"fallos_pagina"`
	Desalojos         int `json:"desalojos"`
	LecturasDisco     int `json:"lecturas_disco"`
	EscriturasDisco   int `json:"escrituras_disco"`
	MensajesEnviados  int `json:"mensajes_enviados"`
	MensajesRecibidos int `json:"mensajes_recibidos"`
}

func (p *PCB) informarMetricas() {
	m := p.Metricas
	utils.InfoLog.Info(fmt.Sprintf("(%d) - Métricas: fallos de página %d, desalojos %d, lecturas de disco %d, escrituras de disco %d, mensajes enviados %d, mensajes recibidos %d",
		p.ID, m.FallosPagina, m.Desalojos, m.LecturasDisco, m.EscriturasDisco, m.MensajesEnviados, m.MensajesRecibidos))
}
