package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para Asesor.
const (
	RolAdmin  = "admin"
	RolAsesor = "asesor"
)

// Asesor representa una cuenta de asesor inmobiliario.
// El perfil extendido se modela con campos opcionales explícitos (punteros)
// en lugar de un mapa abierto; ambas persistencias los tratan como nullable.
type Asesor struct {
	ID                     int64      `json:"id"`
	Username               string     `json:"username"`
	PasswordHash           string     `json:"password_hash"` // bcrypt, nunca en texto plano
	Rol                    string     `json:"rol"`           // admin | asesor
	Nombres                string     `json:"nombres"`
	Apellidos              string     `json:"apellidos"`
	Activo                 bool       `json:"activo"`
	RequiereCambioPassword bool       `json:"requiere_cambio_password"`
	UltimoAcceso           *time.Time `json:"ultimo_acceso,omitempty"`

	// Perfil extendido (columnas nullable en BD).
	PrimerNombre     *string          `json:"primer_nombre,omitempty"`
	SegundoNombre    *string          `json:"segundo_nombre,omitempty"`
	ApellidoPaterno  *string          `json:"apellido_paterno,omitempty"`
	ApellidoMaterno  *string          `json:"apellido_materno,omitempty"`
	CURP             *string          `json:"curp,omitempty"`
	FechaNacimiento  *time.Time       `json:"fecha_nacimiento,omitempty"`
	Genero           *string          `json:"genero,omitempty"`
	Telefono         *string          `json:"telefono,omitempty"`
	Correo           *string          `json:"correo,omitempty"`
	Inmobiliaria     *string          `json:"inmobiliaria,omitempty"`
	AnosExperiencia  *int             `json:"anos_experiencia,omitempty"`
	ComisionAsignada *decimal.Decimal `json:"comision_asignada,omitempty"`
	FechaIngreso     *time.Time       `json:"fecha_ingreso,omitempty"`
}

// EsAdmin indica si el asesor tiene rol de administrador.
func (a *Asesor) EsAdmin() bool {
	return a.Rol == RolAdmin
}
