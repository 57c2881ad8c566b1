package jsonstore

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

var _ repository.PropiedadRepository = (*PropiedadRepo)(nil)

// PropiedadRepo implementación del puerto PropiedadRepository sobre archivo JSON.
type PropiedadRepo struct {
	col *coleccion[*entity.Propiedad]
}

// NewPropiedadRepository crea el repositorio sobre <dir>/propiedades_store.json.
func NewPropiedadRepository(dir string) *PropiedadRepo {
	return &PropiedadRepo{col: newColeccion[*entity.Propiedad](filepath.Join(dir, "propiedades_store.json"))}
}

func (r *PropiedadRepo) Create(p *entity.Propiedad) (*entity.Propiedad, error) {
	guardado := *p
	err := r.col.mutar(func(items []*entity.Propiedad) ([]*entity.Propiedad, error) {
		var maxID int64
		for _, it := range items {
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

func (r *PropiedadRepo) GetByID(id int64) (*entity.Propiedad, error) {
	var encontrado *entity.Propiedad
	err := r.col.leer(func(items []*entity.Propiedad) error {
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

func (r *PropiedadRepo) FindByTituloCiudad(titulo, ciudad string) (*entity.Propiedad, error) {
	var encontrado *entity.Propiedad
	err := r.col.leer(func(items []*entity.Propiedad) error {
		for _, it := range items {
			if !strings.EqualFold(it.Titulo, titulo) {
				continue
			}
			if (it.Ciudad == nil && ciudad == "") || (it.Ciudad != nil && strings.EqualFold(*it.Ciudad, ciudad)) {
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

func (r *PropiedadRepo) Update(p *entity.Propiedad) error {
	return r.col.mutar(func(items []*entity.Propiedad) ([]*entity.Propiedad, error) {
		for i, it := range items {
			if it.ID == p.ID {
				copia := *p
				items[i] = &copia
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (r *PropiedadRepo) SoftDelete(id int64) error {
	return r.col.mutar(func(items []*entity.Propiedad) ([]*entity.Propiedad, error) {
		for _, it := range items {
			if it.ID == id {
				it.Activo = false
				return items, nil
			}
		}
		return nil, domain.ErrNotFound
	})
}

func (r *PropiedadRepo) List(f repository.PropiedadFilter, page repository.Page) ([]*entity.Propiedad, int, error) {
	var pagina []*entity.Propiedad
	var total int
	err := r.col.leer(func(items []*entity.Propiedad) error {
		var filtrados []*entity.Propiedad
		for _, it := range items {
			if !coincidePropiedad(it, f) {
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

func coincidePropiedad(p *entity.Propiedad, f repository.PropiedadFilter) bool {
	if !f.IncluirInactivos && !p.Activo {
		return false
	}
	if f.Ciudad != "" && (p.Ciudad == nil || !strings.EqualFold(*p.Ciudad, f.Ciudad)) {
		return false
	}
	if f.Tipo != "" && (p.Tipo == nil || !strings.EqualFold(*p.Tipo, f.Tipo)) {
		return false
	}
	if f.PrecioMin != nil && p.Precio.LessThan(*f.PrecioMin) {
		return false
	}
	if f.PrecioMax != nil && p.Precio.GreaterThan(*f.PrecioMax) {
		return false
	}
	if f.Habitaciones != nil && (p.Habitaciones == nil || *p.Habitaciones != *f.Habitaciones) {
		return false
	}
	if f.Texto != "" {
		if !contiene(p.Titulo, f.Texto) &&
			!contieneAlguno(f.Texto, p.Descripcion, p.Ciudad, p.Zona) {
			return false
		}
	}
	return true
}
