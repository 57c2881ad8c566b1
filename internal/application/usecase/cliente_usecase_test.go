package usecase_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/usecase"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/jsonstore"
)

func nuevoClienteUC(t *testing.T) (*usecase.ClienteUseCase, *jsonstore.AsesorRepo) {
	t.Helper()
	dir := t.TempDir()
	clientes := jsonstore.NewClienteRepository(dir)
	asesores := jsonstore.NewAsesorRepository(dir)
	return usecase.NewClienteUseCase(clientes, asesores, zerolog.Nop()), asesores
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func str(s string) *string { return &s }

func TestClienteUC_CrearDerivaEdadYScoring(t *testing.T) {
	uc, _ := nuevoClienteUC(t)
	uc.Ahora = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	nacimiento := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	guardado, err := uc.Crear(usecase.ClienteInput{
		PrimerNombre:      "Juan",
		ApellidoPaterno:   "Pérez",
		CURP:              "abcd900101hdfxxx01",
		FechaNacimiento:   &nacimiento,
		IngresoMensual:    dec("50000"),
		Presupuesto:       dec("50000"),
		CreditoDisponible: dec("50000"),
		TipoCredito:       str("Hipotecario"),
	})
	require.NoError(t, err)

	assert.Equal(t, "ABCD900101HDFXXX01", guardado.CURP, "el CURP se normaliza a mayúsculas")
	require.NotNil(t, guardado.Edad)
	assert.Equal(t, 34, *guardado.Edad)
	// Ratios al tope y tipo Hipotecario: 40 + 40 + 20.
	assert.Equal(t, 100, guardado.Scoring)
	assert.True(t, guardado.Activo)
	assert.False(t, guardado.FechaRegistro.IsZero())
}

func TestClienteUC_CrearSinPerfilFinanciero(t *testing.T) {
	uc, _ := nuevoClienteUC(t)

	guardado, err := uc.Crear(usecase.ClienteInput{
		PrimerNombre:    "Juan",
		ApellidoPaterno: "Pérez",
		CURP:            "ABCD900101HDFXXX01",
	})
	require.NoError(t, err)

	assert.Nil(t, guardado.Edad, "sin fecha de nacimiento no hay edad")
	// Solo aporta el componente de tipo de crédito con factor neutro: 0.5 * 20.
	assert.Equal(t, 10, guardado.Scoring)
}

func TestClienteUC_CrearValidacion(t *testing.T) {
	uc, asesores := nuevoClienteUC(t)

	casos := []struct {
		nombre string
		input  usecase.ClienteInput
	}{
		{"sin primer nombre", usecase.ClienteInput{ApellidoPaterno: "Pérez", CURP: "ABCD900101HDFXXX01"}},
		{"sin apellido paterno", usecase.ClienteInput{PrimerNombre: "Juan", CURP: "ABCD900101HDFXXX01"}},
		{"curp corto", usecase.ClienteInput{PrimerNombre: "Juan", ApellidoPaterno: "Pérez", CURP: "ABC123"}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := uc.Crear(tc.input)
			assert.ErrorIs(t, err, domain.ErrValidacion)
		})
	}

	// Asesor inexistente.
	fantasma := int64(99)
	_, err := uc.Crear(usecase.ClienteInput{
		PrimerNombre:    "Juan",
		ApellidoPaterno: "Pérez",
		CURP:            "ABCD900101HDFXXX01",
		AsesorID:        &fantasma,
	})
	assert.ErrorIs(t, err, domain.ErrValidacion)

	// Con un asesor real sí pasa.
	asesor, err := asesores.Create(&entity.Asesor{Username: "mgarcia", Rol: entity.RolAsesor, Activo: true})
	require.NoError(t, err)
	_, err = uc.Crear(usecase.ClienteInput{
		PrimerNombre:    "Juan",
		ApellidoPaterno: "Pérez",
		CURP:            "ABCD900101HDFXXX01",
		AsesorID:        &asesor.ID,
	})
	require.NoError(t, err)
}

func TestClienteUC_CrearCURPDuplicado(t *testing.T) {
	uc, _ := nuevoClienteUC(t)

	_, err := uc.Crear(usecase.ClienteInput{PrimerNombre: "Juan", ApellidoPaterno: "Pérez", CURP: "ABCD900101HDFXXX01"})
	require.NoError(t, err)

	_, err = uc.Crear(usecase.ClienteInput{PrimerNombre: "Ana", ApellidoPaterno: "López", CURP: "abcd900101hdfxxx01"})
	assert.ErrorIs(t, err, domain.ErrCURPExiste, "el duplicado se detecta tras normalizar")
}

func TestClienteUC_ActualizarRederiva(t *testing.T) {
	uc, _ := nuevoClienteUC(t)
	uc.Ahora = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }

	guardado, err := uc.Crear(usecase.ClienteInput{
		PrimerNombre:    "Juan",
		ApellidoPaterno: "Pérez",
		CURP:            "ABCD900101HDFXXX01",
	})
	require.NoError(t, err)
	require.Equal(t, 10, guardado.Scoring)

	// Al completar el perfil financiero el scoring se recalcula solo.
	actualizado, err := uc.Actualizar(guardado.ID, usecase.ClientePatch{
		IngresoMensual:    dec("40000"),
		Presupuesto:       dec("20000"),
		CreditoDisponible: dec("10000"),
		TipoCredito:       str("Bancario"),
	})
	require.NoError(t, err)
	// 40*0.5 + 40*0.5 + 20*0.9 = 58.
	assert.Equal(t, 58, actualizado.Scoring)

	// La fecha de nacimiento nueva deriva edad.
	nacimiento := time.Date(2000, 6, 15, 0, 0, 0, 0, time.UTC)
	actualizado, err = uc.Actualizar(guardado.ID, usecase.ClientePatch{FechaNacimiento: &nacimiento})
	require.NoError(t, err)
	require.NotNil(t, actualizado.Edad)
	assert.Equal(t, 23, *actualizado.Edad, "el cumpleaños de 2024 aún no llega al corte")
}

func TestClienteUC_ActualizarCURPDuplicado(t *testing.T) {
	uc, _ := nuevoClienteUC(t)

	_, err := uc.Crear(usecase.ClienteInput{PrimerNombre: "Juan", ApellidoPaterno: "Pérez", CURP: "AAAA900101HDFXXX01"})
	require.NoError(t, err)
	segundo, err := uc.Crear(usecase.ClienteInput{PrimerNombre: "Ana", ApellidoPaterno: "López", CURP: "BBBB900101HDFXXX02"})
	require.NoError(t, err)

	_, err = uc.Actualizar(segundo.ID, usecase.ClientePatch{CURP: str("AAAA900101HDFXXX01")})
	assert.ErrorIs(t, err, domain.ErrCURPExiste)

	// Reasignarse su propio CURP no es conflicto.
	_, err = uc.Actualizar(segundo.ID, usecase.ClientePatch{CURP: str("bbbb900101hdfxxx02")})
	require.NoError(t, err)
}

func TestClienteUC_EliminarYReactivar(t *testing.T) {
	uc, _ := nuevoClienteUC(t)

	guardado, err := uc.Crear(usecase.ClienteInput{PrimerNombre: "Juan", ApellidoPaterno: "Pérez", CURP: "ABCD900101HDFXXX01"})
	require.NoError(t, err)

	require.NoError(t, uc.Eliminar(guardado.ID))
	leido, err := uc.Obtener(guardado.ID)
	require.NoError(t, err)
	assert.False(t, leido.Activo)

	activo := true
	reactivado, err := uc.Actualizar(guardado.ID, usecase.ClientePatch{Activo: &activo})
	require.NoError(t, err)
	assert.True(t, reactivado.Activo)
}
