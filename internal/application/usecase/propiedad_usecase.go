package usecase

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

// PropiedadInput datos de alta de una propiedad.
type PropiedadInput struct {
	Titulo       string
	Descripcion  *string
	Precio       decimal.Decimal
	Metros       *float64
	Estado       *string
	Ciudad       *string
	Zona         *string
	Tipo         *string
	Habitaciones *int
	Amenidades   *string
}

// PropiedadPatch campos modificables; nil deja el campo como está.
type PropiedadPatch struct {
	Titulo       *string
	Descripcion  *string
	Precio       *decimal.Decimal
	Metros       *float64
	Estado       *string
	Ciudad       *string
	Zona         *string
	Tipo         *string
	Habitaciones *int
	Amenidades   *string
	Activo       *bool
}

// PropiedadUseCase reglas de negocio del catálogo de propiedades.
type PropiedadUseCase struct {
	repo repository.PropiedadRepository
	log  zerolog.Logger
}

// NewPropiedadUseCase construye el caso de uso.
func NewPropiedadUseCase(repo repository.PropiedadRepository, log zerolog.Logger) *PropiedadUseCase {
	return &PropiedadUseCase{repo: repo, log: log}
}

// Crear valida y persiste una propiedad nueva.
func (uc *PropiedadUseCase) Crear(input PropiedadInput) (*entity.Propiedad, error) {
	p := entity.Propiedad{
		Activo:       true,
		Titulo:       strings.TrimSpace(input.Titulo),
		Descripcion:  input.Descripcion,
		Precio:       input.Precio,
		Metros:       input.Metros,
		Estado:       input.Estado,
		Ciudad:       input.Ciudad,
		Zona:         input.Zona,
		Tipo:         input.Tipo,
		Habitaciones: input.Habitaciones,
		Amenidades:   input.Amenidades,
	}
	if err := validarPropiedad(&p); err != nil {
		return nil, err
	}
	guardada, err := uc.repo.Create(&p)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("propiedad_id", guardada.ID).Str("titulo", guardada.Titulo).Msg("propiedad creada")
	return guardada, nil
}

// Obtener devuelve la propiedad por id, incluso inactiva.
func (uc *PropiedadUseCase) Obtener(id int64) (*entity.Propiedad, error) {
	return uc.repo.GetByID(id)
}

// Actualizar aplica el patch sobre el registro actual y revalida.
func (uc *PropiedadUseCase) Actualizar(id int64, patch PropiedadPatch) (*entity.Propiedad, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Titulo != nil {
		p.Titulo = strings.TrimSpace(*patch.Titulo)
	}
	if patch.Descripcion != nil {
		p.Descripcion = patch.Descripcion
	}
	if patch.Precio != nil {
		p.Precio = *patch.Precio
	}
	if patch.Metros != nil {
		p.Metros = patch.Metros
	}
	if patch.Estado != nil {
		p.Estado = patch.Estado
	}
	if patch.Ciudad != nil {
		p.Ciudad = patch.Ciudad
	}
	if patch.Zona != nil {
		p.Zona = patch.Zona
	}
	if patch.Tipo != nil {
		p.Tipo = patch.Tipo
	}
	if patch.Habitaciones != nil {
		p.Habitaciones = patch.Habitaciones
	}
	if patch.Amenidades != nil {
		p.Amenidades = patch.Amenidades
	}
	if patch.Activo != nil {
		p.Activo = *patch.Activo
	}

	if err := validarPropiedad(p); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Eliminar baja lógica de la propiedad.
func (uc *PropiedadUseCase) Eliminar(id int64) error {
	if err := uc.repo.SoftDelete(id); err != nil {
		return err
	}
	uc.log.Info().Int64("propiedad_id", id).Msg("propiedad dada de baja")
	return nil
}

// Listar pagina las propiedades que cumplen el filtro.
func (uc *PropiedadUseCase) Listar(f repository.PropiedadFilter, page repository.Page) ([]*entity.Propiedad, int, error) {
	return uc.repo.List(f, page)
}

func validarPropiedad(p *entity.Propiedad) error {
	if p.Titulo == "" {
		return fmt.Errorf("%w: titulo es obligatorio", domain.ErrValidacion)
	}
	if p.Precio.IsNegative() {
		return fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrValidacion)
	}
	return nil
}
