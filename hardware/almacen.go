package hardware

import (
	"fmt"
	"os"
)

// almacen guarda el contenido de los sectores de todos los discos
type almacen interface {
	leer(disco, sector int, destino []byte) (bool, error)
	escribir(disco, sector int, datos []byte) error
	cerrar() error
}

type claveSector struct {
	disco, sector int
}

type almacenMemoria struct {
	sectores map[claveSector][]byte
}

func nuevoAlmacenMemoria() *almacenMemoria {
	return &almacenMemoria{sectores: make(map[claveSector][]byte)}
}

func (a *almacenMemoria) leer(disco, sector int, destino []byte) (bool, error) {
	datos, existe := a.sectores[claveSector{disco, sector}]
	if !existe {
		return false, nil
	}
	copy(destino, datos)
	return true, nil
}

func (a *almacenMemoria) escribir(disco, sector int, datos []byte) error {
	copia := make([]byte, len(datos))
	copy(copia, datos)
	a.sectores[claveSector{disco, sector}] = copia
	return nil
}

func (a *almacenMemoria) cerrar() error { return nil }

// almacenArchivo guarda todos los discos en un único archivo; cada sector
// ocupa tamSector bytes en el offset ((disco-1)*sectoresPorDisco+sector)*tamSector.
type almacenArchivo struct {
	archivo          *os.File
	tamSector        int
	sectoresPorDisco int
	escritos         map[claveSector]bool
}

func nuevoAlmacenArchivo(ruta string, tamSector, sectoresPorDisco int) (*almacenArchivo, error) {
	archivo, err := os.OpenFile(ruta, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("error al abrir archivo de discos %s: %v", ruta, err)
	}
	return &almacenArchivo{
		archivo:          archivo,
		tamSector:        tamSector,
		sectoresPorDisco: sectoresPorDisco,
		escritos:         make(map[claveSector]bool),
	}, nil
}

func (a *almacenArchivo) offset(disco, sector int) int64 {
	return int64(((disco-1)*a.sectoresPorDisco + sector) * a.tamSector)
}

func (a *almacenArchivo) leer(disco, sector int, destino []byte) (bool, error) {
	if !a.escritos[claveSector{disco, sector}] {
		return false, nil
	}
	if _, err := a.archivo.ReadAt(destino[:a.tamSector], a.offset(disco, sector)); err != nil {
		return false, fmt.Errorf("error al leer disco %d sector %d: %v", disco, sector, err)
	}
	return true, nil
}

func (a *almacenArchivo) escribir(disco, sector int, datos []byte) error {
	if _, err := a.archivo.WriteAt(datos[:a.tamSector], a.offset(disco, sector)); err != nil {
		return fmt.Errorf("error al escribir disco %d sector %d: %v", disco, sector, err)
	}
	a.escritos[claveSector{disco, sector}] = true
	return nil
}

func (a *almacenArchivo) cerrar() error {
	return a.archivo.Close()
}
