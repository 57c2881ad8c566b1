package auth_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/auth"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/jsonstore"
)

// sembrarAsesor crea una cuenta directamente en el repositorio con la
// contraseña ya hasheada.
func sembrarAsesor(t *testing.T, repo *jsonstore.AsesorRepo, username, password, rol string, activo, requiereCambio bool) *entity.Asesor {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	guardado, err := repo.Create(&entity.Asesor{
		Username:               username,
		PasswordHash:           hash,
		Rol:                    rol,
		Nombres:                "Usuario",
		Apellidos:              "De Prueba",
		Activo:                 activo,
		RequiereCambioPassword: requiereCambio,
	})
	require.NoError(t, err)
	return guardado
}

func nuevoManager(t *testing.T) (*auth.Manager, *jsonstore.AsesorRepo) {
	t.Helper()
	repo := jsonstore.NewAsesorRepository(t.TempDir())
	return auth.NewManager(repo, auth.PoliticaPorDefecto(), zerolog.Nop()), repo
}

func TestManager_LoginExitoso(t *testing.T) {
	m, repo := nuevoManager(t)
	asesor := sembrarAsesor(t, repo, "mgarcia", "secreta-123", entity.RolAsesor, true, false)

	sesion, err := m.Login("mgarcia", "secreta-123")
	require.NoError(t, err)
	assert.NotEmpty(t, sesion.ID)
	assert.Equal(t, asesor.ID, sesion.Usuario.ID)
	assert.False(t, sesion.Usuario.RequiereCambioPassword)

	u := m.GetCurrentUser()
	require.NotNil(t, u)
	assert.Equal(t, "mgarcia", u.Username)
	assert.False(t, m.IsAdmin())
	assert.False(t, m.RequiereCambioPassword())
}

func TestManager_LoginRegistraUltimoAcceso(t *testing.T) {
	m, repo := nuevoManager(t)
	asesor := sembrarAsesor(t, repo, "mgarcia", "secreta-123", entity.RolAsesor, true, false)

	momento := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	m.Ahora = func() time.Time { return momento }

	_, err := m.Login("mgarcia", "secreta-123")
	require.NoError(t, err)

	leido, err := repo.GetByID(asesor.ID)
	require.NoError(t, err)
	require.NotNil(t, leido.UltimoAcceso)
	assert.True(t, leido.UltimoAcceso.Equal(momento))
}

func TestManager_LoginRechazado(t *testing.T) {
	m, repo := nuevoManager(t)
	sembrarAsesor(t, repo, "mgarcia", "secreta-123", entity.RolAsesor, true, false)
	sembrarAsesor(t, repo, "inactivo", "secreta-123", entity.RolAsesor, false, false)

	casos := []struct {
		nombre   string
		username string
		password string
	}{
		{"password incorrecta", "mgarcia", "otra-cosa"},
		{"usuario inexistente", "nadie", "secreta-123"},
		{"cuenta inactiva", "inactivo", "secreta-123"},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := m.Login(tc.username, tc.password)
			assert.ErrorIs(t, err, domain.ErrCredenciales)
			assert.Nil(t, m.GetCurrentUser(), "un login fallido no deja sesión")
		})
	}
}

func TestManager_LoginConCambioObligatorio(t *testing.T) {
	m, repo := nuevoManager(t)
	sembrarAsesor(t, repo, "mgarcia", "temporal-99", entity.RolAsesor, true, true)

	sesion, err := m.Login("mgarcia", "temporal-99")
	require.NoError(t, err)
	assert.True(t, sesion.Usuario.RequiereCambioPassword)
	assert.True(t, m.RequiereCambioPassword())
}

func TestManager_CambiarPassword(t *testing.T) {
	m, repo := nuevoManager(t)
	asesor := sembrarAsesor(t, repo, "mgarcia", "temporal-99", entity.RolAsesor, true, true)

	_, err := m.Login("mgarcia", "temporal-99")
	require.NoError(t, err)

	require.NoError(t, m.CambiarPassword("temporal-99", "definitiva-42"))
	assert.False(t, m.RequiereCambioPassword(), "el flag se limpia tras el cambio")

	leido, err := repo.GetByID(asesor.ID)
	require.NoError(t, err)
	assert.False(t, leido.RequiereCambioPassword)
	assert.True(t, auth.VerificarPassword("definitiva-42", leido.PasswordHash))
	assert.False(t, auth.VerificarPassword("temporal-99", leido.PasswordHash))

	// La nueva contraseña sirve para el siguiente login.
	m.Logout()
	_, err = m.Login("mgarcia", "definitiva-42")
	require.NoError(t, err)
}

func TestManager_CambiarPassword_SinSesion(t *testing.T) {
	m, _ := nuevoManager(t)
	assert.ErrorIs(t, m.CambiarPassword("a", "b"), domain.ErrSesionNoIniciada)
}

func TestManager_CambiarPassword_ActualIncorrecta(t *testing.T) {
	m, repo := nuevoManager(t)
	asesor := sembrarAsesor(t, repo, "mgarcia", "secreta-123", entity.RolAsesor, true, false)
	_, err := m.Login("mgarcia", "secreta-123")
	require.NoError(t, err)

	err = m.CambiarPassword("equivocada", "definitiva-42")
	assert.ErrorIs(t, err, domain.ErrCredenciales)

	// El hash no cambió.
	leido, err := repo.GetByID(asesor.ID)
	require.NoError(t, err)
	assert.True(t, auth.VerificarPassword("secreta-123", leido.PasswordHash))
}

func TestManager_CambiarPassword_PoliticaRechaza(t *testing.T) {
	m, repo := nuevoManager(t)
	asesor := sembrarAsesor(t, repo, "mgarcia", "secreta-123", entity.RolAsesor, true, false)
	_, err := m.Login("mgarcia", "secreta-123")
	require.NoError(t, err)

	err = m.CambiarPassword("secreta-123", "corta")
	assert.ErrorIs(t, err, domain.ErrPoliticaPassword)

	leido, err := repo.GetByID(asesor.ID)
	require.NoError(t, err)
	assert.True(t, auth.VerificarPassword("secreta-123", leido.PasswordHash),
		"una contraseña rechazada por política no toca el hash")
}

func TestManager_ResetearPassword(t *testing.T) {
	m, repo := nuevoManager(t)
	sembrarAsesor(t, repo, "admin", "admin-secreta", entity.RolAdmin, true, false)
	objetivo := sembrarAsesor(t, repo, "mgarcia", "secreta-123", entity.RolAsesor, true, false)

	_, err := m.Login("admin", "admin-secreta")
	require.NoError(t, err)
	require.True(t, m.IsAdmin())

	require.NoError(t, m.ResetearPassword(objetivo.ID, "temporal-nueva1"))

	leido, err := repo.GetByID(objetivo.ID)
	require.NoError(t, err)
	assert.True(t, leido.RequiereCambioPassword, "el reset fuerza cambio en el próximo login")
	assert.True(t, auth.VerificarPassword("temporal-nueva1", leido.PasswordHash))
}

func TestManager_ResetearPassword_SinPermisos(t *testing.T) {
	m, repo := nuevoManager(t)
	objetivo := sembrarAsesor(t, repo, "mgarcia", "secreta-123", entity.RolAsesor, true, false)

	// Sin sesión.
	assert.ErrorIs(t, m.ResetearPassword(objetivo.ID, "temporal-nueva1"), domain.ErrSesionNoIniciada)

	// Con sesión de asesor raso.
	_, err := m.Login("mgarcia", "secreta-123")
	require.NoError(t, err)
	assert.ErrorIs(t, m.ResetearPassword(objetivo.ID, "temporal-nueva1"), domain.ErrPermisos)
}

func TestManager_Logout(t *testing.T) {
	m, repo := nuevoManager(t)
	sembrarAsesor(t, repo, "mgarcia", "secreta-123", entity.RolAsesor, true, false)

	_, err := m.Login("mgarcia", "secreta-123")
	require.NoError(t, err)
	require.NotNil(t, m.GetCurrentUser())

	m.Logout()
	assert.Nil(t, m.GetCurrentUser())
	assert.False(t, m.IsAdmin())

	// Idempotente.
	m.Logout()
	assert.Nil(t, m.GetCurrentUser())
}

func TestVerificarCredenciales_Stateless(t *testing.T) {
	repo := jsonstore.NewAsesorRepository(t.TempDir())
	sembrarAsesor(t, repo, "mgarcia", "secreta-123", entity.RolAsesor, true, false)

	asesor, err := auth.VerificarCredenciales(repo, "mgarcia", "secreta-123")
	require.NoError(t, err)
	assert.Equal(t, "mgarcia", asesor.Username)

	_, err = auth.VerificarCredenciales(repo, "mgarcia", "mala")
	assert.ErrorIs(t, err, domain.ErrCredenciales)
}
