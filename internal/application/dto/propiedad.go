package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
)

// PropiedadResponse vista JSON de una propiedad del catálogo.
type PropiedadResponse struct {
	ID           int64           `json:"id"`
	Activo       bool            `json:"activo"`
	Titulo       string          `json:"titulo"`
	Descripcion  *string         `json:"descripcion,omitempty"`
	Precio       decimal.Decimal `json:"precio"`
	Metros       *float64        `json:"metros,omitempty"`
	Estado       *string         `json:"estado,omitempty"`
	Ciudad       *string         `json:"ciudad,omitempty"`
	Zona         *string         `json:"zona,omitempty"`
	Tipo         *string         `json:"tipo,omitempty"`
	Habitaciones *int            `json:"habitaciones,omitempty"`
	Amenidades   *string         `json:"amenidades,omitempty"`
}

// PropiedadToResponse convierte la entidad al contrato JSON de la API.
func PropiedadToResponse(p *entity.Propiedad) PropiedadResponse {
	return PropiedadResponse{
		ID:           p.ID,
		Activo:       p.Activo,
		Titulo:       p.Titulo,
		Descripcion:  p.Descripcion,
		Precio:       p.Precio,
		Metros:       p.Metros,
		Estado:       p.Estado,
		Ciudad:       p.Ciudad,
		Zona:         p.Zona,
		Tipo:         p.Tipo,
		Habitaciones: p.Habitaciones,
		Amenidades:   p.Amenidades,
	}
}
