package jsonstore

import (
	"path/filepath"
	"sort"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

var _ repository.AsesorRepository = (*AsesorRepo)(nil)

// AsesorRepo implementación del puerto AsesorRepository sobre archivo JSON.
type AsesorRepo struct {
	col *coleccion[*entity.Asesor]
}

// NewAsesorRepository crea el repositorio sobre <dir>/asesores_store.json.
func NewAsesorRepository(dir string) *AsesorRepo {
	return &AsesorRepo{col: newColeccion[*entity.Asesor](filepath.Join(dir, "asesores_store.json"))}
}

// Create asigna id = max(id)+1 y persiste.
func (r *AsesorRepo) Create(a *entity.Asesor) (*entity.Asesor, error) {
	guardado := *a
	err := r.col.mutar(func(items []*entity.Asesor) ([]*entity.Asesor, error) {
		var maxID int64
		for _, it := range items {
			if it.Username == a.Username {
				return nil, domain.ErrUsernameExiste
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

func (r *AsesorRepo) GetByID(id int64) (*entity.Asesor, error) {
	var encontrado *entity.Asesor
	err := r.col.leer(func(items []*entity.Asesor) error {
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

func (r *AsesorRepo) FindByUsername(username string) (*entity.Asesor, error) {
	var encontrado *entity.Asesor
	err := r.col.leer(func(items []*entity.Asesor) error {
		for _, it := range items {
			if it.Username == username {
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

func (r *AsesorRepo) Update(a *entity.Asesor) error {
	return r.col.mutar(func(items []*entity.Asesor) ([]*entity.Asesor, error) {
		for i, it := range items {
			if it.ID == a.ID {
				copia := *a
				items[i] = &copia
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

// SoftDelete apaga el flag activo; repetirlo sobre un registro ya inactivo es
// un éxito sin cambios.
func (r *AsesorRepo) SoftDelete(id int64) error {
	return r.col.mutar(func(items []*entity.Asesor) ([]*entity.Asesor, error) {
		for _, it := range items {
			if it.ID == id {
				it.Activo = false
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (r *AsesorRepo) List(f repository.AsesorFilter, page repository.Page) ([]*entity.Asesor, int, error) {
	var pagina []*entity.Asesor
	var total int
	err := r.col.leer(func(items []*entity.Asesor) error {
		var filtrados []*entity.Asesor
		for _, it := range items {
			if !coincideAsesor(it, f) {
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

func coincideAsesor(a *entity.Asesor, f repository.AsesorFilter) bool {
	if !f.IncluirInactivos && !a.Activo {
		return false
	}
	if f.Rol != "" && a.Rol != f.Rol {
		return false
	}
	if f.Texto != "" {
		if !contiene(a.Username, f.Texto) && !contiene(a.Nombres, f.Texto) && !contiene(a.Apellidos, f.Texto) {
			return false
		}
	}
	return true
}
