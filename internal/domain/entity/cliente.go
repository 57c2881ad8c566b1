package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cliente representa un prospecto o cliente de la inmobiliaria.
// Edad y Scoring son campos derivados: se recalculan en cada escritura a
// partir del resto de atributos y nunca se editan a mano.
type Cliente struct {
	ID              int64      `json:"id"`
	Activo          bool       `json:"activo"`
	PrimerNombre    string     `json:"primer_nombre"`
	SegundoNombre   *string    `json:"segundo_nombre,omitempty"`
	ApellidoPaterno string     `json:"apellido_paterno"`
	ApellidoMaterno *string    `json:"apellido_materno,omitempty"`
	CURP            string     `json:"curp"`
	FechaNacimiento *time.Time `json:"fecha_nacimiento,omitempty"`
	Edad            *int       `json:"edad,omitempty"` // derivado de FechaNacimiento
	Genero          *string    `json:"genero,omitempty"`
	Telefono        *string    `json:"telefono,omitempty"`
	Correo          *string    `json:"correo,omitempty"`
	FechaRegistro   time.Time  `json:"fecha_registro"`

	// Perfil financiero, insumo del scoring.
	IngresoMensual    *decimal.Decimal `json:"ingreso_mensual,omitempty"`
	Presupuesto       *decimal.Decimal `json:"presupuesto,omitempty"`
	CreditoDisponible *decimal.Decimal `json:"credito_disponible,omitempty"`
	TipoCredito       *string          `json:"tipo_credito,omitempty"`

	Scoring  int    `json:"scoring"` // derivado, 0..100
	AsesorID *int64 `json:"asesor_id,omitempty"`
}
