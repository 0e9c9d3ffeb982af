package programas

import (
	"bytes"
	"fmt"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/kernel"
	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

func dormilones(s *kernel.Sistema) {
	for i, duracion := range []int64{300, 100, 200} {
		nombre := fmt.Sprintf("dormilon_%d", i)
		plazo := duracion
		_, err := s.CrearProceso(nombre, func(s *kernel.Sistema) {
			inicio := s.Hora()
			if err := s.Dormir(plazo); err != nil {
				utils.ErrorLog.Error("Dormir falló", "proceso", nombre, "error", err)
				return
			}
			utils.InfoLog.Info("Despierta", "proceso", nombre, "plazo", plazo, "dormido", s.Hora()-inicio)
		}, 20+i)
		if err != nil {
			utils.ErrorLog.Error("No se pudo crear el proceso", "proceso", nombre, "error", err)
		}
	}
	s.Dormir(500)
}

const rondasPingPong = 5

func pingPong(s *kernel.Sistema) {
	yo, _ := s.ObtenerPID("")
	pong, err := s.CrearProceso("pong", func(s *kernel.Sistema) {
		for i := 0; i < rondasPingPong; i++ {
			datos, origen, err := s.RecibirMensaje(yo, 32)
			if err != nil {
				utils.ErrorLog.Error("pong no recibió", "ronda", i, "error", err)
				return
			}
			respuesta := append([]byte("pong "), datos...)
			if err := s.EnviarMensaje(origen, respuesta); err != nil {
				utils.ErrorLog.Error("pong no pudo responder", "ronda", i, "error", err)
				return
			}
		}
	}, 20)
	if err != nil {
		utils.ErrorLog.Error("No se pudo crear pong", "error", err)
		return
	}

	for i := 0; i < rondasPingPong; i++ {
		if err := s.EnviarMensaje(pong, []byte(fmt.Sprintf("ping %d", i))); err != nil {
			utils.ErrorLog.Error("ping no pudo enviar", "ronda", i, "error", err)
			return
		}
		datos, _, err := s.RecibirMensaje(pong, 64)
		if err != nil {
			utils.ErrorLog.Error("ping no recibió", "ronda", i, "error", err)
			return
		}
		utils.InfoLog.Info("Respuesta", "ronda", i, "mensaje", string(datos))
	}
}

func difusion(s *kernel.Sistema) {
	for i := 0; i < 3; i++ {
		nombre := fmt.Sprintf("receptor_%d", i)
		s.CrearProceso(nombre, func(s *kernel.Sistema) {
			datos, origen, err := s.RecibirMensaje(kernel.Difusion, 32)
			if err != nil {
				utils.ErrorLog.Error("Recepción fallida", "proceso", nombre, "error", err)
				return
			}
			utils.InfoLog.Info("Recibe difusión", "proceso", nombre, "origen", origen, "mensaje", string(datos))
		}, 5+i)
	}
	for i := 0; i < 3; i++ {
		if err := s.EnviarMensaje(kernel.Difusion, []byte(fmt.Sprintf("aviso %d", i))); err != nil {
			utils.ErrorLog.Error("Difusión fallida", "aviso", i, "error", err)
		}
	}
}

const paginasPaginado = 96

func paginado(s *kernel.Sistema) {
	tam := s.TamPagina()
	for p := 0; p < paginasPaginado; p++ {
		s.EscribirMemoria(p*tam, int32(p*7+1))
	}
	errores := 0
	for p := paginasPaginado - 1; p >= 0; p-- {
		if v := s.LeerMemoria(p * tam); v != int32(p*7+1) {
			errores++
			utils.ErrorLog.Error("Valor inesperado", "pagina", p, "leido", v, "esperado", p*7+1)
		}
	}
	utils.InfoLog.Info("Paginado verificado", "paginas", paginasPaginado, "errores", errores)
}

func compartida(s *kernel.Sistema) {
	tam := s.TamPagina()
	s.CrearProceso("escritor", func(s *kernel.Sistema) {
		if _, err := s.DefinirAreaCompartida(100*tam, 1, "BUZON"); err != nil {
			utils.ErrorLog.Error("escritor sin área", "error", err)
			return
		}
		s.EscribirMemoria(100*tam, 42)
		s.Dormir(200)
	}, 5)
	s.CrearProceso("lector", func(s *kernel.Sistema) {
		previos, err := s.DefinirAreaCompartida(300*tam, 1, "BUZON")
		if err != nil {
			utils.ErrorLog.Error("lector sin área", "error", err)
			return
		}
		utils.InfoLog.Info("Lee del área compartida", "valor", s.LeerMemoria(300*tam), "compartida_por", previos)
	}, 6)
	s.Dormir(500)
}

func disco(s *kernel.Sistema) {
	tam := s.TamPagina()
	for d := 1; d <= 3; d++ {
		datos := bytes.Repeat([]byte{byte(d)}, tam)
		if err := s.EscribirDisco(d, d*10, datos); err != nil {
			utils.ErrorLog.Error("Escritura fallida", "disco", d, "error", err)
			continue
		}
		leido, err := s.LeerDisco(d, d*10)
		if err != nil || !bytes.Equal(leido, datos) {
			utils.ErrorLog.Error("Lectura distinta a lo escrito", "disco", d, "error", err)
			continue
		}
		utils.InfoLog.Info("Sector verificado", "disco", d, "sector", d*10)
	}
}

func suspension(s *kernel.Sistema) {
	trabajador, err := s.CrearProceso("trabajador", func(s *kernel.Sistema) {
		for i := 0; i < 3; i++ {
			utils.InfoLog.Info("Trabajador", "vuelta", i, "hora", s.Hora())
			s.Dormir(50)
		}
	}, 15)
	if err != nil {
		utils.ErrorLog.Error("No se pudo crear el trabajador", "error", err)
		return
	}
	s.SuspenderProceso(trabajador)
	s.Dormir(100)
	s.ReanudarProceso(trabajador)
	s.CambiarPrioridad(trabajador, 5)
	s.Dormir(500)
}
