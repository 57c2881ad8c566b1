package repository

import "github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"

// AsesorFilter predicados de listado para asesores.
type AsesorFilter struct {
	Texto            string // subcadena sobre username, nombres y apellidos
	Rol              string // coincidencia exacta
	IncluirInactivos bool
}

// AsesorRepository puerto de persistencia para asesores. Lo implementan el
// backend JSON y el backend PostgreSQL con semántica observable idéntica.
type AsesorRepository interface {
	// Create asigna el identificador y persiste. Devuelve el registro
	// almacenado. ErrUsernameExiste si el username ya está registrado.
	Create(a *entity.Asesor) (*entity.Asesor, error)
	// GetByID devuelve el asesor (aun inactivo) o ErrNotFound.
	GetByID(id int64) (*entity.Asesor, error)
	// FindByUsername devuelve (nil, nil) si no existe.
	FindByUsername(username string) (*entity.Asesor, error)
	// Update reemplaza el registro completo. ErrNotFound si no existe.
	Update(a *entity.Asesor) error
	// SoftDelete apaga el flag activo. Idempotente; ErrNotFound si el id no existe.
	SoftDelete(id int64) error
	// List devuelve la página ordenada por id ascendente y el total de
	// registros que cumplen el filtro. Por defecto excluye inactivos.
	List(f AsesorFilter, page Page) ([]*entity.Asesor, int, error)
}
