package utils

import (
	"fmt"
	"strconv"
)

// Modulo representa un módulo del sistema expuesto por HTTP
type Modulo struct {
	Nombre      string
	Server      *HTTPServer
	HandlerFunc map[string]map[string]HTTPHandlerFunc
}

// NuevoModulo crea una nueva instancia de un módulo
func NuevoModulo(nombre string) *Modulo {
	return &Modulo{
		Nombre:      nombre,
		HandlerFunc: make(map[string]map[string]HTTPHandlerFunc),
	}
}

// RegistrarHandler registra un handler para un tipo de mensaje y operación específicos
func (m *Modulo) RegistrarHandler(tipo int, operacion string, handler HTTPHandlerFunc) {
	clave := strconv.Itoa(tipo)
	if _, existe := m.HandlerFunc[clave]; !existe {
		m.HandlerFunc[clave] = make(map[string]HTTPHandlerFunc)
	}
	m.HandlerFunc[clave][operacion] = handler
}

// PrepararServidor crea el servidor HTTP del módulo con los handlers registrados
func (m *Modulo) PrepararServidor(ip string, puerto int) *HTTPServer {
	m.Server = NewHTTPServer(ip, puerto, m.Nombre)

	for tipoStr, handlersPorOperacion := range m.HandlerFunc {
		tipo, err := strconv.Atoi(tipoStr)
		if err != nil {
			ErrorLog.Error("Error al convertir tipo de mensaje a entero", "tipo", tipoStr, "error", err)
			continue
		}

		handlers := handlersPorOperacion
		m.Server.RegisterHTTPHandler(tipo, func(msg *Mensaje) (interface{}, error) {
			operacion := msg.Operacion
			if operacion == "" {
				operacion = "default"
			}

			handler, existe := handlers[operacion]
			if !existe {
				handler, existe = handlers["default"]
				if !existe {
					ErrorLog.Error("No hay handler para operación", "tipo", tipo, "operacion", operacion)
					return nil, fmt.Errorf("no hay handler para operación %s", operacion)
				}
			}

			return handler(msg)
		})
	}
	return m.Server
}

// IniciarServidor arranca el servidor HTTP del módulo en segundo plano
func (m *Modulo) IniciarServidor(ip string, puerto int) {
	servidor := m.PrepararServidor(ip, puerto)

	go func() {
		if err := servidor.Start(); err != nil {
			ErrorLog.Error("Servidor HTTP detenido", "modulo", m.Nombre, "error", err)
		}
	}()

	InfoLog.Info("Servidor HTTP iniciado", "modulo", m.Nombre, "direccion", fmt.Sprintf("%s:%d", ip, puerto))
}

// ============================================================================
// Tipos de mensajes del monitor
// ============================================================================
const (
	MensajeHandshake = 1  // Conexión inicial
	MensajeConsulta  = 10 // Consultas sobre el estado del sistema
)

// Operaciones de MensajeConsulta
const (
	ConsultaEstado   = "ESTADO"
	ConsultaProcesos = "PROCESOS"
	ConsultaProceso  = "PROCESO"
	ConsultaMarcos   = "MARCOS"
	ConsultaDiscos   = "DISCOS"
)
