package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/auth"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

// Cuenta administradora que se siembra en instalaciones vacías. La contraseña
// inicial nace marcada para cambio obligatorio en el primer login.
const (
	adminInicialUsername = "admin"
	adminInicialPassword = "admin123"
)

// AsesorInput datos de alta de una cuenta de asesor. Password viaja en texto
// plano solo hasta aquí; se hashea antes de persistir.
type AsesorInput struct {
	Username  string
	Password  string
	Rol       string
	Nombres   string
	Apellidos string

	PrimerNombre     *string
	SegundoNombre    *string
	ApellidoPaterno  *string
	ApellidoMaterno  *string
	CURP             *string
	FechaNacimiento  *time.Time
	Genero           *string
	Telefono         *string
	Correo           *string
	Inmobiliaria     *string
	AnosExperiencia  *int
	ComisionAsignada *decimal.Decimal
	FechaIngreso     *time.Time
}

// AsesorPatch campos modificables; nil deja el campo como está. El username
// es inmutable y la contraseña se gestiona desde auth, no desde aquí.
type AsesorPatch struct {
	Rol       *string
	Nombres   *string
	Apellidos *string
	Activo    *bool

	PrimerNombre     *string
	SegundoNombre    *string
	ApellidoPaterno  *string
	ApellidoMaterno  *string
	CURP             *string
	FechaNacimiento  *time.Time
	Genero           *string
	Telefono         *string
	Correo           *string
	Inmobiliaria     *string
	AnosExperiencia  *int
	ComisionAsignada *decimal.Decimal
	FechaIngreso     *time.Time
}

// AsesorUseCase reglas de negocio de cuentas de asesor.
type AsesorUseCase struct {
	repo     repository.AsesorRepository
	politica auth.Politica
	log      zerolog.Logger
}

// NewAsesorUseCase construye el caso de uso.
func NewAsesorUseCase(repo repository.AsesorRepository, politica auth.Politica, log zerolog.Logger) *AsesorUseCase {
	return &AsesorUseCase{repo: repo, politica: politica, log: log}
}

// Crear valida, hashea la contraseña y persiste una cuenta nueva. La cuenta
// nace con cambio de contraseña obligatorio: quien la crea asigna una
// contraseña temporal.
func (uc *AsesorUseCase) Crear(input AsesorInput) (*entity.Asesor, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username es obligatorio", domain.ErrValidacion)
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password es obligatorio", domain.ErrValidacion)
	}
	rol := input.Rol
	if rol == "" {
		rol = entity.RolAsesor
	}
	if rol != entity.RolAdmin && rol != entity.RolAsesor {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrValidacion, rol)
	}
	if err := uc.politica.Validar(input.Password); err != nil {
		return nil, err
	}
	existente, err := uc.repo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrUsernameExiste
	}
	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	a := entity.Asesor{
		Username:               username,
		PasswordHash:           hash,
		Rol:                    rol,
		Nombres:                strings.TrimSpace(input.Nombres),
		Apellidos:              strings.TrimSpace(input.Apellidos),
		Activo:                 true,
		RequiereCambioPassword: true,

		PrimerNombre:     input.PrimerNombre,
		SegundoNombre:    input.SegundoNombre,
		ApellidoPaterno:  input.ApellidoPaterno,
		ApellidoMaterno:  input.ApellidoMaterno,
		CURP:             input.CURP,
		FechaNacimiento:  input.FechaNacimiento,
		Genero:           input.Genero,
		Telefono:         input.Telefono,
		Correo:           input.Correo,
		Inmobiliaria:     input.Inmobiliaria,
		AnosExperiencia:  input.AnosExperiencia,
		ComisionAsignada: input.ComisionAsignada,
		FechaIngreso:     input.FechaIngreso,
	}
	guardado, err := uc.repo.Create(&a)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("asesor_id", guardado.ID).Str("username", guardado.Username).Str("rol", guardado.Rol).Msg("asesor creado")
	return guardado, nil
}

// Obtener devuelve el asesor por id, incluso inactivo.
func (uc *AsesorUseCase) Obtener(id int64) (*entity.Asesor, error) {
	return uc.repo.GetByID(id)
}

// Actualizar aplica el patch sobre el registro actual.
func (uc *AsesorUseCase) Actualizar(id int64, patch AsesorPatch) (*entity.Asesor, error) {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.Rol != nil {
		if *patch.Rol != entity.RolAdmin && *patch.Rol != entity.RolAsesor {
			return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrValidacion, *patch.Rol)
		}
		a.Rol = *patch.Rol
	}
	if patch.Nombres != nil {
		a.Nombres = strings.TrimSpace(*patch.Nombres)
	}
	if patch.Apellidos != nil {
		a.Apellidos = strings.TrimSpace(*patch.Apellidos)
	}
	if patch.Activo != nil {
		a.Activo = *patch.Activo
	}
	if patch.PrimerNombre != nil {
		a.PrimerNombre = patch.PrimerNombre
	}
	if patch.SegundoNombre != nil {
		a.SegundoNombre = patch.SegundoNombre
	}
	if patch.ApellidoPaterno != nil {
		a.ApellidoPaterno = patch.ApellidoPaterno
	}
	if patch.ApellidoMaterno != nil {
		a.ApellidoMaterno = patch.ApellidoMaterno
	}
	if patch.CURP != nil {
		a.CURP = patch.CURP
	}
	if patch.FechaNacimiento != nil {
		a.FechaNacimiento = patch.FechaNacimiento
	}
	if patch.Genero != nil {
		a.Genero = patch.Genero
	}
	if patch.Telefono != nil {
		a.Telefono = patch.Telefono
	}
	if patch.Correo != nil {
		a.Correo = patch.Correo
	}
	if patch.Inmobiliaria != nil {
		a.Inmobiliaria = patch.Inmobiliaria
	}
	if patch.AnosExperiencia != nil {
		a.AnosExperiencia = patch.AnosExperiencia
	}
	if patch.ComisionAsignada != nil {
		a.ComisionAsignada = patch.ComisionAsignada
	}
	if patch.FechaIngreso != nil {
		a.FechaIngreso = patch.FechaIngreso
	}

	if err := uc.repo.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Eliminar baja lógica de la cuenta. El asesor deja de poder iniciar sesión
// pero su historial y sus clientes asignados se conservan.
func (uc *AsesorUseCase) Eliminar(id int64) error {
	if err := uc.repo.SoftDelete(id); err != nil {
		return err
	}
	uc.log.Info().Int64("asesor_id", id).Msg("asesor dado de baja")
	return nil
}

// Listar pagina los asesores que cumplen el filtro.
func (uc *AsesorUseCase) Listar(f repository.AsesorFilter, page repository.Page) ([]*entity.Asesor, int, error) {
	return uc.repo.List(f, page)
}

// EnsureAdminInicial siembra la cuenta admin si no existe todavía. Devuelve
// true cuando la creó. Se invoca en cada arranque; en instalaciones ya
// sembradas no hace nada.
func (uc *AsesorUseCase) EnsureAdminInicial() (bool, error) {
	existente, err := uc.repo.FindByUsername(adminInicialUsername)
	if err != nil {
		return false, err
	}
	if existente != nil {
		return false, nil
	}
	hash, err := auth.HashPassword(adminInicialPassword)
	if err != nil {
		return false, err
	}
	a := entity.Asesor{
		Username:               adminInicialUsername,
		PasswordHash:           hash,
		Rol:                    entity.RolAdmin,
		Nombres:                "Administrador",
		Apellidos:              "Sistema",
		Activo:                 true,
		RequiereCambioPassword: true,
	}
	if _, err := uc.repo.Create(&a); err != nil {
		return false, err
	}
	uc.log.Warn().Str("username", adminInicialUsername).Msg("cuenta admin inicial creada con contraseña temporal")
	return true, nil
}
