package main

import (
	"fmt"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/kernel"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

var monitorModulo *utils.Modulo

// iniciarMonitor expone el estado del kernel por HTTP
func iniciarMonitor(ip string, puerto int, k *kernel.Kernel) {
	monitorModulo = utils.NuevoModulo("Monitor")
	registrarHandlers(monitorModulo, k)
	monitorModulo.IniciarServidor(ip, puerto)
}

func registrarHandlers(m *utils.Modulo, k *kernel.Kernel) {
	m.RegistrarHandler(utils.MensajeHandshake, "default", HandlerHandshake)
	m.RegistrarHandler(utils.MensajeConsulta, utils.ConsultaEstado, handlerEstado(k))
	m.RegistrarHandler(utils.MensajeConsulta, utils.ConsultaProcesos, handlerProcesos(k))
	m.RegistrarHandler(utils.MensajeConsulta, utils.ConsultaProceso, handlerProceso(k))
	m.RegistrarHandler(utils.MensajeConsulta, utils.ConsultaMarcos, handlerMarcos(k))
	m.RegistrarHandler(utils.MensajeConsulta, utils.ConsultaDiscos, handlerDiscos(k))

	utils.InfoLog.Info("Handlers registrados correctamente")
}

func HandlerHandshake(msg *utils.Mensaje) (interface{}, error) {
	utils.InfoLog.Info("Handshake recibido", "origen", msg.Origen)
	return map[string]interface{}{"status": "OK", "message": "Handshake recibido"}, nil
}

func handlerEstado(k *kernel.Kernel) utils.HTTPHandlerFunc {
	return func(msg *utils.Mensaje) (interface{}, error) {
		utils.InfoLog.Debug("Consulta de estado", "origen", msg.Origen)
		return k.Instantanea(), nil
	}
}

func handlerProcesos(k *kernel.Kernel) utils.HTTPHandlerFunc {
	return func(msg *utils.Mensaje) (interface{}, error) {
		return k.Instantanea().Procesos, nil
	}
}

func handlerProceso(k *kernel.Kernel) utils.HTTPHandlerFunc {
	return func(msg *utils.Mensaje) (interface{}, error) {
		pid := utils.ExtraerEntero(msg, "pid", -1)
		vista, ok := k.Proceso(pid)
		if !ok {
			return nil, fmt.Errorf("no existe el proceso %d", pid)
		}
		return vista, nil
	}
}

func handlerMarcos(k *kernel.Kernel) utils.HTTPHandlerFunc {
	return func(msg *utils.Mensaje) (interface{}, error) {
		return k.Instantanea().Marcos, nil
	}
}

func handlerDiscos(k *kernel.Kernel) utils.HTTPHandlerFunc {
	return func(msg *utils.Mensaje) (interface{}, error) {
		estado := k.Instantanea()
		return map[string]interface{}{
			"reloj":             estado.Reloj,
			"sectores_ocupados": estado.SectoresOcupados,
		}, nil
	}
}
