// Package usecase contiene la lógica de aplicación sobre los puertos de
// repositorio: validación de entrada, recálculo de campos derivados y reglas
// de negocio que no dependen del backend de persistencia.
package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/scoring"
)

const longitudCURP = 18

// ClienteInput datos de alta de un cliente. Edad y Scoring no se aceptan:
// siempre se derivan.
type ClienteInput struct {
	PrimerNombre      string
	SegundoNombre     *string
	ApellidoPaterno   string
	ApellidoMaterno   *string
	CURP              string
	FechaNacimiento   *time.Time
	Genero            *string
	Telefono          *string
	Correo            *string
	IngresoMensual    *decimal.Decimal
	Presupuesto       *decimal.Decimal
	CreditoDisponible *decimal.Decimal
	TipoCredito       *string
	AsesorID          *int64
}

// ClientePatch campos modificables de un cliente; nil deja el campo como está.
type ClientePatch struct {
	PrimerNombre      *string
	SegundoNombre     *string
	ApellidoPaterno   *string
	ApellidoMaterno   *string
	CURP              *string
	FechaNacimiento   *time.Time
	Genero            *string
	Telefono          *string
	Correo            *string
	IngresoMensual    *decimal.Decimal
	Presupuesto       *decimal.Decimal
	CreditoDisponible *decimal.Decimal
	TipoCredito       *string
	AsesorID          *int64
	Activo            *bool
}

// ClienteUseCase reglas de negocio de clientes.
type ClienteUseCase struct {
	repo     repository.ClienteRepository
	asesores repository.AsesorRepository
	log      zerolog.Logger

	// Ahora permite fijar el reloj en tests; la edad depende de él.
	Ahora func() time.Time
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository, asesores repository.AsesorRepository, log zerolog.Logger) *ClienteUseCase {
	return &ClienteUseCase{repo: repo, asesores: asesores, log: log, Ahora: time.Now}
}

// Crear valida, deriva edad y scoring y persiste un cliente nuevo.
func (uc *ClienteUseCase) Crear(input ClienteInput) (*entity.Cliente, error) {
	c := entity.Cliente{
		Activo:            true,
		PrimerNombre:      strings.TrimSpace(input.PrimerNombre),
		SegundoNombre:     input.SegundoNombre,
		ApellidoPaterno:   strings.TrimSpace(input.ApellidoPaterno),
		ApellidoMaterno:   input.ApellidoMaterno,
		CURP:              strings.ToUpper(strings.TrimSpace(input.CURP)),
		FechaNacimiento:   input.FechaNacimiento,
		Genero:            input.Genero,
		Telefono:          input.Telefono,
		Correo:            input.Correo,
		FechaRegistro:     uc.Ahora(),
		IngresoMensual:    input.IngresoMensual,
		Presupuesto:       input.Presupuesto,
		CreditoDisponible: input.CreditoDisponible,
		TipoCredito:       input.TipoCredito,
		AsesorID:          input.AsesorID,
	}
	if err := uc.validar(&c); err != nil {
		return nil, err
	}
	existente, err := uc.repo.FindByCURP(c.CURP)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrCURPExiste
	}
	uc.derivar(&c)

	guardado, err := uc.repo.Create(&c)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("cliente_id", guardado.ID).Str("curp", guardado.CURP).Msg("cliente creado")
	return guardado, nil
}

// Obtener devuelve el cliente por id, incluso inactivo.
func (uc *ClienteUseCase) Obtener(id int64) (*entity.Cliente, error) {
	return uc.repo.GetByID(id)
}

// Actualizar aplica el patch sobre el registro actual, revalida y rederiva.
func (uc *ClienteUseCase) Actualizar(id int64, patch ClientePatch) (*entity.Cliente, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.PrimerNombre != nil {
		c.PrimerNombre = strings.TrimSpace(*patch.PrimerNombre)
	}
	if patch.SegundoNombre != nil {
		c.SegundoNombre = patch.SegundoNombre
	}
	if patch.ApellidoPaterno != nil {
		c.ApellidoPaterno = strings.TrimSpace(*patch.ApellidoPaterno)
	}
	if patch.ApellidoMaterno != nil {
		c.ApellidoMaterno = patch.ApellidoMaterno
	}
	if patch.CURP != nil {
		nueva := strings.ToUpper(strings.TrimSpace(*patch.CURP))
		if nueva != c.CURP {
			existente, err := uc.repo.FindByCURP(nueva)
			if err != nil {
				return nil, err
			}
			if existente != nil && existente.ID != c.ID {
				return nil, domain.ErrCURPExiste
			}
		}
		c.CURP = nueva
	}
	if patch.FechaNacimiento != nil {
		c.FechaNacimiento = patch.FechaNacimiento
	}
	if patch.Genero != nil {
		c.Genero = patch.Genero
	}
	if patch.Telefono != nil {
		c.Telefono = patch.Telefono
	}
	if patch.Correo != nil {
		c.Correo = patch.Correo
	}
	if patch.IngresoMensual != nil {
		c.IngresoMensual = patch.IngresoMensual
	}
	if patch.Presupuesto != nil {
		c.Presupuesto = patch.Presupuesto
	}
	if patch.CreditoDisponible != nil {
		c.CreditoDisponible = patch.CreditoDisponible
	}
	if patch.TipoCredito != nil {
		c.TipoCredito = patch.TipoCredito
	}
	if patch.AsesorID != nil {
		c.AsesorID = patch.AsesorID
	}
	if patch.Activo != nil {
		c.Activo = *patch.Activo
	}

	if err := uc.validar(c); err != nil {
		return nil, err
	}
	uc.derivar(c)

	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Eliminar baja lógica del cliente. El registro se conserva con activo=false.
func (uc *ClienteUseCase) Eliminar(id int64) error {
	if err := uc.repo.SoftDelete(id); err != nil {
		return err
	}
	uc.log.Info().Int64("cliente_id", id).Msg("cliente dado de baja")
	return nil
}

// Listar pagina los clientes que cumplen el filtro.
func (uc *ClienteUseCase) Listar(f repository.ClienteFilter, page repository.Page) ([]*entity.Cliente, int, error) {
	return uc.repo.List(f, page)
}

func (uc *ClienteUseCase) validar(c *entity.Cliente) error {
	if c.PrimerNombre == "" {
		return fmt.Errorf("%w: primer_nombre es obligatorio", domain.ErrValidacion)
	}
	if c.ApellidoPaterno == "" {
		return fmt.Errorf("%w: apellido_paterno es obligatorio", domain.ErrValidacion)
	}
	if len(c.CURP) != longitudCURP {
		return fmt.Errorf("%w: el CURP debe tener %d caracteres", domain.ErrValidacion, longitudCURP)
	}
	if c.AsesorID != nil {
		if _, err := uc.asesores.GetByID(*c.AsesorID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: el asesor %d no existe", domain.ErrValidacion, *c.AsesorID)
			}
			return err
		}
	}
	return nil
}

// derivar recalcula edad y scoring. Se llama en toda escritura para que los
// valores almacenados nunca queden desfasados de sus insumos.
func (uc *ClienteUseCase) derivar(c *entity.Cliente) {
	if c.FechaNacimiento != nil {
		edad := scoring.CalcularEdad(*c.FechaNacimiento, uc.Ahora())
		c.Edad = &edad
	} else {
		c.Edad = nil
	}
	c.Scoring = scoring.CalcularScoring(scoring.DatosScoring{
		IngresoMensual:    montoDe(c.IngresoMensual),
		Presupuesto:       montoDe(c.Presupuesto),
		CreditoDisponible: montoDe(c.CreditoDisponible),
		TipoCredito:       textoDe(c.TipoCredito),
	})
}

func montoDe(d *decimal.Decimal) float64 {
	if d == nil {
		return 0
	}
	return d.InexactFloat64()
}

func textoDe(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
