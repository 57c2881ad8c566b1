package entity

import "github.com/shopspring/decimal"

// Propiedad representa un inmueble publicado en el catálogo.
type Propiedad struct {
	ID           int64           `json:"id"`
	Activo       bool            `json:"activo"`
	Titulo       string          `json:"titulo"`
	Descripcion  *string         `json:"descripcion,omitempty"`
	Precio       decimal.Decimal `json:"precio"` // siempre >= 0
	Metros       *float64        `json:"metros,omitempty"`
	Estado       *string         `json:"estado,omitempty"`
	Ciudad       *string         `json:"ciudad,omitempty"`
	Zona         *string         `json:"zona,omitempty"`
	Tipo         *string         `json:"tipo,omitempty"`
	Habitaciones *int            `json:"habitaciones,omitempty"`
	Amenidades   *string         `json:"amenidades,omitempty"`
}
