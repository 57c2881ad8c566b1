package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
)

// PropiedadFilter predicados de listado para propiedades.
type PropiedadFilter struct {
	Texto            string // subcadena sobre título, descripción, ciudad y zona
	Ciudad           string // coincidencia exacta
	Tipo             string // coincidencia exacta
	PrecioMin        *decimal.Decimal
	PrecioMax        *decimal.Decimal
	Habitaciones     *int
	IncluirInactivos bool
}

// PropiedadRepository puerto de persistencia para propiedades.
type PropiedadRepository interface {
	Create(p *entity.Propiedad) (*entity.Propiedad, error)
	GetByID(id int64) (*entity.Propiedad, error)
	// FindByTituloCiudad devuelve (nil, nil) si no existe. Es la clave
	// natural usada por la migración para deduplicar.
	FindByTituloCiudad(titulo, ciudad string) (*entity.Propiedad, error)
	Update(p *entity.Propiedad) error
	SoftDelete(id int64) error
	List(f PropiedadFilter, page Page) ([]*entity.Propiedad, int, error)
}
