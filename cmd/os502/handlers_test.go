package main

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/hardware"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/kernel"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

func TestMonitorResponde(t *testing.T) {
	utils.InicializarLoggerEn(io.Discard, "error", "os502")

	maquina, err := hardware.NuevaMaquina(hardware.Config{MarcosFisicos: 4, CantidadDiscos: 2})
	if err != nil {
		t.Fatalf("NuevaMaquina: %v", err)
	}
	t.Cleanup(func() {
		maquina.Detener(nil)
		maquina.Apagar()
	})
	k := kernel.New(kernel.Config{}, maquina)

	modulo := utils.NuevoModulo("Monitor")
	registrarHandlers(modulo, k)
	ts := httptest.NewServer(modulo.PrepararServidor("127.0.0.1", 0).Handler())
	defer ts.Close()

	cliente := utils.NewHTTPClientURL(ts.URL, "prueba")
	if err := cliente.VerificarConexion(); err != nil {
		t.Fatalf("VerificarConexion: %v", err)
	}

	var estado kernel.Instantanea
	if err := cliente.Consultar(utils.ConsultaEstado, nil, &estado); err != nil {
		t.Fatalf("Consultar(ESTADO): %v", err)
	}
	if len(estado.Marcos) != 4 || len(estado.SectoresOcupados) != 2 || len(estado.Procesos) != 0 {
		t.Errorf("estado inesperado: %+v", estado)
	}

	var discos map[string]interface{}
	if err := cliente.Consultar(utils.ConsultaDiscos, nil, &discos); err != nil {
		t.Fatalf("Consultar(DISCOS): %v", err)
	}
	if _, ok := discos["sectores_ocupados"]; !ok {
		t.Errorf("respuesta de discos sin sectores_ocupados: %v", discos)
	}

	err = cliente.Consultar(utils.ConsultaProceso, map[string]interface{}{"pid": 7}, nil)
	if err == nil {
		t.Error("consulta de un proceso inexistente no devolvió error")
	}
}
