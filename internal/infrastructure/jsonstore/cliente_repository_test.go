package jsonstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
	"github.com/tu-usuario/crm-inmobiliario/internal/infrastructure/jsonstore"
)

func nuevoCliente(curp string) *entity.Cliente {
	return &entity.Cliente{
		Activo:          true,
		PrimerNombre:    "Juan",
		ApellidoPaterno: "Pérez",
		CURP:            curp,
	}
}

func TestClienteRepo_CreateYGetByID(t *testing.T) {
	repo := jsonstore.NewClienteRepository(t.TempDir())

	guardado, err := repo.Create(nuevoCliente("ABCD900101HDFXXX01"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), guardado.ID)

	leido, err := repo.GetByID(guardado.ID)
	require.NoError(t, err)
	assert.Equal(t, "ABCD900101HDFXXX01", leido.CURP)
	assert.Equal(t, "Juan", leido.PrimerNombre)
}

func TestClienteRepo_CURPDuplicado(t *testing.T) {
	repo := jsonstore.NewClienteRepository(t.TempDir())

	_, err := repo.Create(nuevoCliente("ABCD900101HDFXXX01"))
	require.NoError(t, err)

	_, err = repo.Create(nuevoCliente("ABCD900101HDFXXX01"))
	assert.ErrorIs(t, err, domain.ErrCURPExiste)
}

func TestClienteRepo_FindByCURP(t *testing.T) {
	repo := jsonstore.NewClienteRepository(t.TempDir())

	_, err := repo.Create(nuevoCliente("ABCD900101HDFXXX01"))
	require.NoError(t, err)

	encontrado, err := repo.FindByCURP("ABCD900101HDFXXX01")
	require.NoError(t, err)
	require.NotNil(t, encontrado)

	ausente, err := repo.FindByCURP("ZZZZ000000XXXXXX00")
	require.NoError(t, err)
	assert.Nil(t, ausente)
}

func TestClienteRepo_ListFiltros(t *testing.T) {
	repo := jsonstore.NewClienteRepository(t.TempDir())

	asesorID := int64(3)
	hipotecario := "Hipotecario"

	c1 := nuevoCliente("AAAA900101HDFXXX01")
	c1.AsesorID = &asesorID
	c1.TipoCredito = &hipotecario
	_, err := repo.Create(c1)
	require.NoError(t, err)

	c2 := nuevoCliente("BBBB900101HDFXXX02")
	c2.PrimerNombre = "Laura"
	_, err = repo.Create(c2)
	require.NoError(t, err)

	items, total, err := repo.List(repository.ClienteFilter{AsesorID: &asesorID}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "AAAA900101HDFXXX01", items[0].CURP)

	items, _, err = repo.List(repository.ClienteFilter{TipoCredito: "Hipotecario"}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, _, err = repo.List(repository.ClienteFilter{Texto: "laura"}, repository.Page{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Laura", items[0].PrimerNombre)
}

func TestClienteRepo_SoftDeleteConservaRegistro(t *testing.T) {
	repo := jsonstore.NewClienteRepository(t.TempDir())

	guardado, err := repo.Create(nuevoCliente("ABCD900101HDFXXX01"))
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(guardado.ID))

	leido, err := repo.GetByID(guardado.ID)
	require.NoError(t, err)
	assert.False(t, leido.Activo)

	_, total, err := repo.List(repository.ClienteFilter{}, repository.Page{})
	require.NoError(t, err)
	assert.Zero(t, total)
}
