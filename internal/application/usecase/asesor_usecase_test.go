package usecase_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/auth"
	"github.com/tu-usuario/crm-inmobiliario/internal/application/usecase"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/jsonstore"
)

func nuevoAsesorUC(t *testing.T) (*usecase.AsesorUseCase, *jsonstore.AsesorRepo) {
	t.Helper()
	repo := jsonstore.NewAsesorRepository(t.TempDir())
	return usecase.NewAsesorUseCase(repo, auth.PoliticaPorDefecto(), zerolog.Nop()), repo
}

func TestAsesorUC_Crear(t *testing.T) {
	uc, _ := nuevoAsesorUC(t)

	guardado, err := uc.Crear(usecase.AsesorInput{
		Username:  "mgarcia",
		Password:  "temporal-123",
		Nombres:   "María",
		Apellidos: "García",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RolAsesor, guardado.Rol, "el rol por defecto es asesor")
	assert.True(t, guardado.Activo)
	assert.True(t, guardado.RequiereCambioPassword, "la cuenta nace con contraseña temporal")
	assert.NotEqual(t, "temporal-123", guardado.PasswordHash)
	assert.True(t, auth.VerificarPassword("temporal-123", guardado.PasswordHash))
}

func TestAsesorUC_CrearValidacion(t *testing.T) {
	uc, _ := nuevoAsesorUC(t)

	_, err := uc.Crear(usecase.AsesorInput{Password: "temporal-123"})
	assert.ErrorIs(t, err, domain.ErrValidacion, "sin username")

	_, err = uc.Crear(usecase.AsesorInput{Username: "mgarcia"})
	assert.ErrorIs(t, err, domain.ErrValidacion, "sin password")

	_, err = uc.Crear(usecase.AsesorInput{Username: "mgarcia", Password: "temporal-123", Rol: "gerente"})
	assert.ErrorIs(t, err, domain.ErrValidacion, "rol desconocido")

	_, err = uc.Crear(usecase.AsesorInput{Username: "mgarcia", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrPoliticaPassword)
}

func TestAsesorUC_CrearUsernameDuplicado(t *testing.T) {
	uc, _ := nuevoAsesorUC(t)

	_, err := uc.Crear(usecase.AsesorInput{Username: "mgarcia", Password: "temporal-123"})
	require.NoError(t, err)

	_, err = uc.Crear(usecase.AsesorInput{Username: "mgarcia", Password: "temporal-456"})
	assert.ErrorIs(t, err, domain.ErrUsernameExiste)
}

func TestAsesorUC_ActualizarPerfil(t *testing.T) {
	uc, _ := nuevoAsesorUC(t)

	guardado, err := uc.Crear(usecase.AsesorInput{Username: "mgarcia", Password: "temporal-123"})
	require.NoError(t, err)

	rol := entity.RolAdmin
	inmobiliaria := "Bienes Raíces del Bajío"
	actualizado, err := uc.Actualizar(guardado.ID, usecase.AsesorPatch{
		Rol:          &rol,
		Inmobiliaria: &inmobiliaria,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RolAdmin, actualizado.Rol)
	require.NotNil(t, actualizado.Inmobiliaria)
	assert.Equal(t, inmobiliaria, *actualizado.Inmobiliaria)

	malRol := "gerente"
	_, err = uc.Actualizar(guardado.ID, usecase.AsesorPatch{Rol: &malRol})
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

func TestAsesorUC_EnsureAdminInicial(t *testing.T) {
	uc, repo := nuevoAsesorUC(t)

	creado, err := uc.EnsureAdminInicial()
	require.NoError(t, err)
	assert.True(t, creado)

	admin, err := repo.FindByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RolAdmin, admin.Rol)
	assert.True(t, admin.RequiereCambioPassword, "la contraseña sembrada debe cambiarse en el primer login")
	assert.True(t, auth.VerificarPassword("admin123", admin.PasswordHash))

	// Idempotente: la segunda corrida no crea nada.
	creado, err = uc.EnsureAdminInicial()
	require.NoError(t, err)
	assert.False(t, creado)

	_, total, err := repo.List(repository.AsesorFilter{IncluirInactivos: true}, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, total, "sigue existiendo una sola cuenta admin")
}
