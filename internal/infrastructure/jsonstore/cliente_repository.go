package jsonstore

import (
	"path/filepath"
	"sort"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación del puerto ClienteRepository sobre archivo JSON.
type ClienteRepo struct {
	col *coleccion[*entity.Cliente]
}

// NewClienteRepository crea el repositorio sobre <dir>/clientes_store.json.
func NewClienteRepository(dir string) *ClienteRepo {
	return &ClienteRepo{col: newColeccion[*entity.Cliente](filepath.Join(dir, "clientes_store.json"))}
}

func (r *ClienteRepo) Create(c *entity.Cliente) (*entity.Cliente, error) {
	guardado := *c
	err := r.col.mutar(func(items []*entity.Cliente) ([]*entity.Cliente, error) {
		var maxID int64
		for _, it := range items {
			if it.CURP == c.CURP {
				return nil, domain.ErrCURPExiste
			}
			if it.ID > maxID {
				maxID = it.ID
			}
		}
		guardado.ID = maxID + 1
		return append(items, &guardado), nil
	})
	if err != nil {
		return nil, err
	}
	copia := guardado
	return &copia, nil
}

func (r *ClienteRepo) GetByID(id int64) (*entity.Cliente, error) {
	var encontrado *entity.Cliente
	err := r.col.leer(func(items []*entity.Cliente) error {
		for _, it := range items {
			if it.ID == id {
				copia := *it
				encontrado = &copia
				return nil
			}
		}
		return domain.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return encontrado, nil
}

func (r *ClienteRepo) FindByCURP(curp string) (*entity.Cliente, error) {
	var encontrado *entity.Cliente
	err := r.col.leer(func(items []*entity.Cliente) error {
		for _, it := range items {
			if it.CURP == curp {
				copia := *it
				encontrado = &copia
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return encontrado, nil
}

func (r *ClienteRepo) Update(c *entity.Cliente) error {
	return r.col.mutar(func(items []*entity.Cliente) ([]*entity.Cliente, error) {
		for i, it := range items {
			if it.ID == c.ID {
				copia := *c
				items[i] = &copia
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (r *ClienteRepo) SoftDelete(id int64) error {
	return r.col.mutar(func(items []*entity.Cliente) ([]*entity.Cliente, error) {
		for _, it := range items {
			if it.ID == id {
				it.Activo = false
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (r *ClienteRepo) List(f repository.ClienteFilter, page repository.Page) ([]*entity.Cliente, int, error) {
	var pagina []*entity.Cliente
	var total int
	err := r.col.leer(func(items []*entity.Cliente) error {
		var filtrados []*entity.Cliente
		for _, it := range items {
			if !coincideCliente(it, f) {
				continue
			}
			copia := *it
			filtrados = append(filtrados, &copia)
		}
		sort.Slice(filtrados, func(i, j int) bool { return filtrados[i].ID < filtrados[j].ID })
		total = len(filtrados)
		pagina = paginar(filtrados, page)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return pagina, total, nil
}

func coincideCliente(c *entity.Cliente, f repository.ClienteFilter) bool {
	if !f.IncluirInactivos && !c.Activo {
		return false
	}
	if f.AsesorID != nil && (c.AsesorID == nil || *c.AsesorID != *f.AsesorID) {
		return false
	}
	if f.TipoCredito != "" && (c.TipoCredito == nil || *c.TipoCredito != f.TipoCredito) {
		return false
	}
	if f.Texto != "" {
		if !contiene(c.PrimerNombre, f.Texto) && !contiene(c.ApellidoPaterno, f.Texto) &&
			!contiene(c.CURP, f.Texto) &&
			!contieneAlguno(f.Texto, c.SegundoNombre, c.ApellidoMaterno, c.Telefono, c.Correo) {
			return false
		}
	}
	return true
}
