// Package auth implementa la verificación de credenciales, el ciclo de vida
// de la contraseña y el seguimiento de la sesión actual del proceso.
//
// Máquina de estados:
//
//	LoggedOut -> (Login ok) -> LoggedIn
//	LoggedOut -> (Login ok, requiere cambio) -> MustChangePassword
//	MustChangePassword -> (CambiarPassword ok) -> LoggedIn
//	LoggedIn | MustChangePassword -> (Logout) -> LoggedOut
package auth

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

// Hash de relleno: cuando el username no existe se compara contra este valor
// para que el costo de la verificación tenga la misma forma que con un
// usuario real y no se filtre la existencia de la cuenta por tiempo.
const hashRelleno = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword genera el hash bcrypt (sal incluida) de una contraseña.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerificarPassword compara en tiempo constante la contraseña contra el hash almacenado.
func VerificarPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerificarCredenciales valida username y contraseña contra el repositorio,
// sin tocar ninguna sesión. Devuelve ErrCredenciales ante usuario inexistente,
// inactivo o contraseña incorrecta, sin distinguir el caso.
func VerificarCredenciales(repo repository.AsesorRepository, username, password string) (*entity.Asesor, error) {
	asesor, err := repo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if asesor == nil || !asesor.Activo {
		bcrypt.CompareHashAndPassword([]byte(hashRelleno), []byte(password))
		return nil, domain.ErrCredenciales
	}
	if !VerificarPassword(password, asesor.PasswordHash) {
		return nil, domain.ErrCredenciales
	}
	return asesor, nil
}

// Manager es el dueño de la sesión del proceso. Se construye una vez y se
// inyecta a quien necesite identidad; no hay estado global.
type Manager struct {
	repo     repository.AsesorRepository
	politica Politica
	log      zerolog.Logger

	mu     sync.Mutex
	sesion *Sesion

	// Ahora permite fijar el reloj en tests.
	Ahora func() time.Time
}

// NewManager construye el gestor de autenticación.
func NewManager(repo repository.AsesorRepository, politica Politica, log zerolog.Logger) *Manager {
	return &Manager{repo: repo, politica: politica, log: log, Ahora: time.Now}
}

// Login verifica credenciales, actualiza ultimo_acceso y establece la sesión.
// El campo RequiereCambioPassword de la sesión indica si el asesor debe
// cambiar su contraseña antes de seguir operando.
func (m *Manager) Login(username, password string) (*Sesion, error) {
	asesor, err := VerificarCredenciales(m.repo, username, password)
	if err != nil {
		m.log.Debug().Str("username", username).Msg("login rechazado")
		return nil, err
	}

	ahora := m.Ahora()
	asesor.UltimoAcceso = &ahora
	if err := m.repo.Update(asesor); err != nil {
		// El login no se cae por no poder registrar el último acceso.
		m.log.Warn().Err(err).Int64("asesor_id", asesor.ID).Msg("no se pudo actualizar ultimo_acceso")
	}

	sesion := Sesion{
		ID: uuid.NewString(),
		Usuario: Usuario{
			ID:                     asesor.ID,
			Username:               asesor.Username,
			Rol:                    asesor.Rol,
			Nombres:                asesor.Nombres,
			Apellidos:              asesor.Apellidos,
			RequiereCambioPassword: asesor.RequiereCambioPassword,
		},
		IniciadaEn: ahora,
	}

	m.mu.Lock()
	m.sesion = &sesion
	m.mu.Unlock()

	m.log.Info().Str("username", username).Bool("requiere_cambio", sesion.Usuario.RequiereCambioPassword).Msg("sesión iniciada")
	copia := sesion
	return &copia, nil
}

// CambiarPassword rehashea la contraseña del asesor en sesión y limpia el
// flag de cambio forzado. Exige la contraseña actual y el cumplimiento de la
// política configurada.
func (m *Manager) CambiarPassword(actual, nueva string) error {
	m.mu.Lock()
	sesion := m.sesion
	m.mu.Unlock()
	if sesion == nil {
		return domain.ErrSesionNoIniciada
	}

	asesor, err := m.repo.GetByID(sesion.Usuario.ID)
	if err != nil {
		return err
	}
	if !VerificarPassword(actual, asesor.PasswordHash) {
		return domain.ErrCredenciales
	}
	if err := m.politica.Validar(nueva); err != nil {
		return err
	}
	hash, err := HashPassword(nueva)
	if err != nil {
		return err
	}
	asesor.PasswordHash = hash
	asesor.RequiereCambioPassword = false
	if err := m.repo.Update(asesor); err != nil {
		return err
	}

	m.mu.Lock()
	if m.sesion != nil && m.sesion.Usuario.ID == asesor.ID {
		m.sesion.Usuario.RequiereCambioPassword = false
	}
	m.mu.Unlock()
	m.log.Info().Int64("asesor_id", asesor.ID).Msg("contraseña actualizada")
	return nil
}

// ResetearPassword asigna una contraseña temporal a otro asesor y marca
// requiere_cambio_password, de modo que su próximo login caiga en
// MustChangePassword. Solo permitido para administradores.
func (m *Manager) ResetearPassword(asesorID int64, nueva string) error {
	if !m.IsAdmin() {
		if m.GetCurrentUser() == nil {
			return domain.ErrSesionNoIniciada
		}
		return domain.ErrPermisos
	}
	if err := m.politica.Validar(nueva); err != nil {
		return err
	}
	asesor, err := m.repo.GetByID(asesorID)
	if err != nil {
		return err
	}
	hash, err := HashPassword(nueva)
	if err != nil {
		return err
	}
	asesor.PasswordHash = hash
	asesor.RequiereCambioPassword = true
	if err := m.repo.Update(asesor); err != nil {
		return err
	}
	m.log.Info().Int64("asesor_id", asesorID).Msg("contraseña reseteada por admin")
	return nil
}

// GetCurrentUser devuelve el usuario en sesión o nil si no hay sesión.
// Nunca devuelve error: la UI lo consulta constantemente.
func (m *Manager) GetCurrentUser() *Usuario {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sesion == nil {
		return nil
	}
	copia := m.sesion.Usuario
	return &copia
}

// IsAdmin indica si hay sesión y el usuario tiene rol admin.
func (m *Manager) IsAdmin() bool {
	u := m.GetCurrentUser()
	return u != nil && u.Rol == entity.RolAdmin
}

// RequiereCambioPassword indica si el usuario en sesión debe cambiar su contraseña.
func (m *Manager) RequiereCambioPassword() bool {
	u := m.GetCurrentUser()
	return u != nil && u.RequiereCambioPassword
}

// Logout destruye la sesión. Es idempotente.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.sesion = nil
	m.mu.Unlock()
}
