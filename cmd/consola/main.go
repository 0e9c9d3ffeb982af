package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sisoputnfrba/tp-os502-LosCuervosXeneizes/utils"
)

var consultas = map[string]string{
	"estado":   utils.ConsultaEstado,
	"procesos": utils.ConsultaProcesos,
	"proceso":  utils.ConsultaProceso,
	"marcos":   utils.ConsultaMarcos,
	"discos":   utils.ConsultaDiscos,
}

func main() {
	utils.InicializarLogger("WARN", "consola")

	if len(os.Args) < 4 {
		fmt.Fprintf(os.Stderr, "Uso: %s <ip> <puerto> <estado|procesos|proceso|marcos|discos> [pid]\n", os.Args[0])
		os.Exit(1)
	}
	ip := os.Args[1]
	puerto, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Puerto inválido: %s\n", os.Args[2])
		os.Exit(1)
	}
	operacion, ok := consultas[strings.ToLower(os.Args[3])]
	if !ok {
		fmt.Fprintf(os.Stderr, "Consulta desconocida: %s\n", os.Args[3])
		os.Exit(1)
	}

	var datos map[string]interface{}
	if operacion == utils.ConsultaProceso {
		if len(os.Args) < 5 {
			fmt.Fprintln(os.Stderr, "La consulta proceso necesita un pid")
			os.Exit(1)
		}
		pid, err := strconv.Atoi(os.Args[4])
		if err != nil {
			fmt.Fprintf(os.Stderr, "PID inválido: %s\n", os.Args[4])
			os.Exit(1)
		}
		datos = map[string]interface{}{"pid": pid}
	}

	cliente := utils.NewHTTPClient(ip, puerto, "consola")
	if err := cliente.VerificarConexion(); err != nil {
		utils.ErrorLog.Error("No se pudo conectar con el monitor", "error", err)
		os.Exit(1)
	}

	var respuesta interface{}
	if err := cliente.Consultar(operacion, datos, &respuesta); err != nil {
		utils.ErrorLog.Error("Consulta fallida", "operacion", operacion, "error", err)
		os.Exit(1)
	}

	salida, err := json.MarshalIndent(respuesta, "", "  ")
	if err != nil {
		utils.ErrorLog.Error("No se pudo formatear la respuesta", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(salida))
}
