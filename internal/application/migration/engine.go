// Package migration copia los registros de un juego de repositorios origen a
// otro destino, sin duplicar lo que ya existe. El caso típico es pasar los
// archivos JSON de una instalación de escritorio a PostgreSQL, pero el motor
// solo conoce los puertos de repositorio y funciona en cualquier dirección.
package migration

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

// TxRunner ejecuta un callback con repositorios de destino atados a una misma
// unidad atómica. La implementación PostgreSQL abre una transacción; la
// DirectRunner pasa los repositorios tal cual para destinos sin transacciones.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		asesores repository.AsesorRepository,
		clientes repository.ClienteRepository,
		propiedades repository.PropiedadRepository,
	) error) error
}

// DirectRunner es un TxRunner sin atomicidad: entrega los repositorios que ya
// tiene. Sirve para destinos JSON y para tests.
type DirectRunner struct {
	Asesores    repository.AsesorRepository
	Clientes    repository.ClienteRepository
	Propiedades repository.PropiedadRepository
}

func (d DirectRunner) Run(ctx context.Context, fn func(
	asesores repository.AsesorRepository,
	clientes repository.ClienteRepository,
	propiedades repository.PropiedadRepository,
) error) error {
	return fn(d.Asesores, d.Clientes, d.Propiedades)
}

// ClavesNaturales define qué hace "igual" a dos registros entre backends,
// dado que los ids autogenerados no viajan. Configurable por si una
// instalación tiene CURP repetidos o títulos genéricos.
type ClavesNaturales struct {
	AsesorPorUsername        bool
	ClientePorCURP           bool
	PropiedadPorTituloCiudad bool
}

// ClavesPorDefecto activa las tres claves naturales.
func ClavesPorDefecto() ClavesNaturales {
	return ClavesNaturales{
		AsesorPorUsername:        true,
		ClientePorCURP:           true,
		PropiedadPorTituloCiudad: true,
	}
}

// Resumen cuenta el destino de los registros de una colección.
type Resumen struct {
	Migrados int `json:"migrados"`
	Omitidos int `json:"omitidos"`
	Fallidos int `json:"fallidos"`
}

// Reporte es el resultado de una corrida completa.
type Reporte struct {
	Asesores    Resumen `json:"asesores"`
	Clientes    Resumen `json:"clientes"`
	Propiedades Resumen `json:"propiedades"`
}

// Total devuelve la suma de registros migrados en todas las colecciones.
func (r Reporte) Total() int {
	return r.Asesores.Migrados + r.Clientes.Migrados + r.Propiedades.Migrados
}

// Origen agrupa los repositorios de lectura.
type Origen struct {
	Asesores    repository.AsesorRepository
	Clientes    repository.ClienteRepository
	Propiedades repository.PropiedadRepository
}

// Engine orquesta una corrida de migración. Es idempotente: correrlo dos
// veces deja el destino igual que correrlo una.
type Engine struct {
	origen Origen
	runner TxRunner
	claves ClavesNaturales
	log    zerolog.Logger
}

// NewEngine construye el motor. runner ata los escritores del destino.
func NewEngine(origen Origen, runner TxRunner, claves ClavesNaturales, log zerolog.Logger) *Engine {
	return &Engine{origen: origen, runner: runner, claves: claves, log: log}
}

// Run migra asesores, luego clientes (rehaciendo la referencia asesor_id con
// los ids que asignó el destino) y por último propiedades. Un registro que
// falla se cuenta y se salta; la corrida sigue.
func (e *Engine) Run(ctx context.Context) (Reporte, error) {
	var reporte Reporte

	// Mapa id de origen -> id de destino, para rehacer cliente.asesor_id.
	idAsesor := make(map[int64]int64)

	asesores, err := e.cargarAsesores()
	if err != nil {
		return reporte, err
	}
	for _, a := range asesores {
		a := a
		err := e.runner.Run(ctx, func(repoA repository.AsesorRepository, _ repository.ClienteRepository, _ repository.PropiedadRepository) error {
			if e.claves.AsesorPorUsername {
				existente, err := repoA.FindByUsername(a.Username)
				if err != nil {
					return err
				}
				if existente != nil {
					idAsesor[a.ID] = existente.ID
					reporte.Asesores.Omitidos++
					return nil
				}
			}
			copia := *a
			guardado, err := repoA.Create(&copia)
			if err != nil {
				return err
			}
			idAsesor[a.ID] = guardado.ID
			reporte.Asesores.Migrados++
			return nil
		})
		if err != nil {
			reporte.Asesores.Fallidos++
			e.log.Error().Err(err).Int64("origen_id", a.ID).Str("username", a.Username).Msg("asesor no migrado")
		}
	}

	clientes, err := e.cargarClientes()
	if err != nil {
		return reporte, err
	}
	for _, c := range clientes {
		c := c
		err := e.runner.Run(ctx, func(_ repository.AsesorRepository, repoC repository.ClienteRepository, _ repository.PropiedadRepository) error {
			if e.claves.ClientePorCURP {
				existente, err := repoC.FindByCURP(c.CURP)
				if err != nil {
					return err
				}
				if existente != nil {
					reporte.Clientes.Omitidos++
					return nil
				}
			}
			copia := *c
			copia.AsesorID = remapAsesor(c.AsesorID, idAsesor)
			if _, err := repoC.Create(&copia); err != nil {
				return err
			}
			reporte.Clientes.Migrados++
			return nil
		})
		if err != nil {
			reporte.Clientes.Fallidos++
			e.log.Error().Err(err).Int64("origen_id", c.ID).Str("curp", c.CURP).Msg("cliente no migrado")
		}
	}

	propiedades, err := e.cargarPropiedades()
	if err != nil {
		return reporte, err
	}
	for _, p := range propiedades {
		p := p
		err := e.runner.Run(ctx, func(_ repository.AsesorRepository, _ repository.ClienteRepository, repoP repository.PropiedadRepository) error {
			if e.claves.PropiedadPorTituloCiudad {
				existente, err := repoP.FindByTituloCiudad(p.Titulo, ciudadDe(p))
				if err != nil {
					return err
				}
				if existente != nil {
					reporte.Propiedades.Omitidos++
					return nil
				}
			}
			copia := *p
			if _, err := repoP.Create(&copia); err != nil {
				return err
			}
			reporte.Propiedades.Migrados++
			return nil
		})
		if err != nil {
			reporte.Propiedades.Fallidos++
			e.log.Error().Err(err).Int64("origen_id", p.ID).Str("titulo", p.Titulo).Msg("propiedad no migrada")
		}
	}

	e.log.Info().
		Int("asesores", reporte.Asesores.Migrados).
		Int("clientes", reporte.Clientes.Migrados).
		Int("propiedades", reporte.Propiedades.Migrados).
		Msg("migración completada")
	return reporte, nil
}

// remapAsesor traduce la referencia al id que asignó el destino. Si el asesor
// de origen no llegó al destino, la referencia se suelta en vez de inventar
// un id.
func remapAsesor(origenID *int64, idAsesor map[int64]int64) *int64 {
	if origenID == nil {
		return nil
	}
	nuevo, ok := idAsesor[*origenID]
	if !ok {
		return nil
	}
	return &nuevo
}

func ciudadDe(p *entity.Propiedad) string {
	if p.Ciudad == nil {
		return ""
	}
	return *p.Ciudad
}

func (e *Engine) cargarAsesores() ([]*entity.Asesor, error) {
	items, err := listarTodo(func(page repository.Page) ([]*entity.Asesor, int, error) {
		return e.origen.Asesores.List(repository.AsesorFilter{IncluirInactivos: true}, page)
	})
	if err != nil {
		return nil, fmt.Errorf("leer asesores de origen: %w", err)
	}
	return items, nil
}

func (e *Engine) cargarClientes() ([]*entity.Cliente, error) {
	items, err := listarTodo(func(page repository.Page) ([]*entity.Cliente, int, error) {
		return e.origen.Clientes.List(repository.ClienteFilter{IncluirInactivos: true}, page)
	})
	if err != nil {
		return nil, fmt.Errorf("leer clientes de origen: %w", err)
	}
	return items, nil
}

func (e *Engine) cargarPropiedades() ([]*entity.Propiedad, error) {
	items, err := listarTodo(func(page repository.Page) ([]*entity.Propiedad, int, error) {
		return e.origen.Propiedades.List(repository.PropiedadFilter{IncluirInactivos: true}, page)
	})
	if err != nil {
		return nil, fmt.Errorf("leer propiedades de origen: %w", err)
	}
	return items, nil
}

// listarTodo agota la paginación del origen página por página.
func listarTodo[T any](list func(repository.Page) ([]*T, int, error)) ([]*T, error) {
	var todos []*T
	page := repository.Page{Numero: 1, Tamano: 100}
	for {
		items, total, err := list(page)
		if err != nil {
			return nil, err
		}
		todos = append(todos, items...)
		if len(todos) >= total || len(items) == 0 {
			return todos, nil
		}
		page.Numero++
	}
}
