package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/entity"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

var _ repository.PropiedadRepository = (*PropiedadRepo)(nil)

// PropiedadRepo implementación del puerto PropiedadRepository sobre PostgreSQL (usable con pool o tx).
type PropiedadRepo struct {
	q Querier
}

// NewPropiedadRepository construye el adaptador de persistencia para propiedades. Pasar pool o tx (Querier).
func NewPropiedadRepository(q Querier) *PropiedadRepo {
	return &PropiedadRepo{q: q}
}

const propiedadCols = `id, activo, titulo, descripcion, precio, metros, estado, ciudad, zona, tipo, habitaciones, amenidades`

func scanPropiedad(row pgx.Row) (*entity.Propiedad, error) {
	var p entity.Propiedad
	err := row.Scan(
		&p.ID, &p.Activo, &p.Titulo, &p.Descripcion, &p.Precio, &p.Metros,
		&p.Estado, &p.Ciudad, &p.Zona, &p.Tipo, &p.Habitaciones, &p.Amenidades,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserta una propiedad y deja que la secuencia asigne el id.
func (r *PropiedadRepo) Create(p *entity.Propiedad) (*entity.Propiedad, error) {
	query := `
		INSERT INTO propiedades (activo, titulo, descripcion, precio, metros, estado, ciudad, zona, tipo, habitaciones, amenidades)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`
	guardado := *p
	err := r.q.QueryRow(context.Background(), query,
		p.Activo, p.Titulo, p.Descripcion, p.Precio, p.Metros,
		p.Estado, p.Ciudad, p.Zona, p.Tipo, p.Habitaciones, p.Amenidades,
	).Scan(&guardado.ID)
	if err != nil {
		return nil, backendErr("insert propiedad", err)
	}
	return &guardado, nil
}

// GetByID obtiene una propiedad por ID, incluso si está inactiva.
func (r *PropiedadRepo) GetByID(id int64) (*entity.Propiedad, error) {
	query := fmt.Sprintf(`SELECT %s FROM propiedades WHERE id = $1`, propiedadCols)
	p, err := scanPropiedad(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, backendErr("get propiedad", err)
	}
	return p, nil
}

// FindByTituloCiudad busca por la clave natural título+ciudad (sin distinguir
// mayúsculas). Devuelve (nil, nil) si no existe.
func (r *PropiedadRepo) FindByTituloCiudad(titulo, ciudad string) (*entity.Propiedad, error) {
	query := fmt.Sprintf(`SELECT %s FROM propiedades WHERE LOWER(titulo) = LOWER($1) AND LOWER(COALESCE(ciudad,'')) = LOWER($2) LIMIT 1`, propiedadCols)
	p, err := scanPropiedad(r.q.QueryRow(context.Background(), query, titulo, ciudad))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, backendErr("get propiedad por titulo y ciudad", err)
	}
	return p, nil
}

// Update reemplaza los campos mutables de la propiedad.
func (r *PropiedadRepo) Update(p *entity.Propiedad) error {
	query := `
		UPDATE propiedades SET activo = $2, titulo = $3, descripcion = $4, precio = $5, metros = $6,
			estado = $7, ciudad = $8, zona = $9, tipo = $10, habitaciones = $11, amenidades = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Activo, p.Titulo, p.Descripcion, p.Precio, p.Metros,
		p.Estado, p.Ciudad, p.Zona, p.Tipo, p.Habitaciones, p.Amenidades,
	)
	if err != nil {
		return backendErr("update propiedad", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete apaga el flag activo. Repetirlo es un éxito sin cambios.
func (r *PropiedadRepo) SoftDelete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE propiedades SET activo = FALSE WHERE id = $1`, id)
	if err != nil {
		return backendErr("soft delete propiedad", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página ordenada por id ascendente y el total del filtro.
func (r *PropiedadRepo) List(f repository.PropiedadFilter, page repository.Page) ([]*entity.Propiedad, int, error) {
	page.Normalizar()
	where, args := buildPropiedadWhere(f)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM propiedades %s`, where)
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, backendErr("count propiedades", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM propiedades %s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		propiedadCols, where, len(args)+1, len(args)+2)
	rows, err := r.q.Query(context.Background(), query, append(args, page.Tamano, page.Offset())...)
	if err != nil {
		return nil, 0, backendErr("list propiedades", err)
	}
	defer rows.Close()

	var list []*entity.Propiedad
	for rows.Next() {
		p, err := scanPropiedad(rows)
		if err != nil {
			return nil, 0, backendErr("scan propiedad", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, backendErr("list propiedades", err)
	}
	return list, total, nil
}

func buildPropiedadWhere(f repository.PropiedadFilter) (string, []any) {
	where := "WHERE 1=1"
	var args []any
	if !f.IncluirInactivos {
		where += " AND activo = TRUE"
	}
	if f.Ciudad != "" {
		args = append(args, f.Ciudad)
		where += fmt.Sprintf(" AND LOWER(COALESCE(ciudad,'')) = LOWER($%d)", len(args))
	}
	if f.Tipo != "" {
		args = append(args, f.Tipo)
		where += fmt.Sprintf(" AND LOWER(COALESCE(tipo,'')) = LOWER($%d)", len(args))
	}
	if f.PrecioMin != nil {
		args = append(args, *f.PrecioMin)
		where += fmt.Sprintf(" AND precio >= $%d", len(args))
	}
	if f.PrecioMax != nil {
		args = append(args, *f.PrecioMax)
		where += fmt.Sprintf(" AND precio <= $%d", len(args))
	}
	if f.Habitaciones != nil {
		args = append(args, *f.Habitaciones)
		where += fmt.Sprintf(" AND habitaciones = $%d", len(args))
	}
	if f.Texto != "" {
		args = append(args, "%"+f.Texto+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (titulo ILIKE $%d OR COALESCE(descripcion,'') ILIKE $%d
			OR COALESCE(ciudad,'') ILIKE $%d OR COALESCE(zona,'') ILIKE $%d)`, n, n, n, n)
	}
	return where, args
}
