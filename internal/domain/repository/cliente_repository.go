package repository

import "github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"

// ClienteFilter predicados de listado para clientes.
type ClienteFilter struct {
	Texto            string // subcadena sobre nombres, CURP, teléfono y correo
	AsesorID         *int64 // coincidencia exacta
	TipoCredito      string // coincidencia exacta
	IncluirInactivos bool
}

// ClienteRepository puerto de persistencia para clientes.
type ClienteRepository interface {
	Create(c *entity.Cliente) (*entity.Cliente, error)
	GetByID(id int64) (*entity.Cliente, error)
	// FindByCURP devuelve (nil, nil) si no existe.
	FindByCURP(curp string) (*entity.Cliente, error)
	Update(c *entity.Cliente) error
	SoftDelete(id int64) error
	List(f ClienteFilter, page Page) ([]*entity.Cliente, int, error)
}
