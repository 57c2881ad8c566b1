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

var _ repository.AsesorRepository = (*AsesorRepo)(nil)

// AsesorRepo implementación del puerto AsesorRepository sobre PostgreSQL (usable con pool o tx).
type AsesorRepo struct {
	q Querier
}

// NewAsesorRepository construye el adaptador de persistencia para asesores. Pasar pool o tx (Querier).
func NewAsesorRepository(q Querier) *AsesorRepo {
	return &AsesorRepo{q: q}
}

const asesorCols = `id, username, password_hash, rol, nombres, apellidos, activo, requiere_cambio_password,
	ultimo_acceso, primer_nombre, segundo_nombre, apellido_paterno, apellido_materno, curp,
	fecha_nacimiento, genero, telefono, correo, inmobiliaria, anos_experiencia, comision_asignada, fecha_ingreso`

func scanAsesor(row pgx.Row) (*entity.Asesor, error) {
	var a entity.Asesor
	err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Rol, &a.Nombres, &a.Apellidos, &a.Activo, &a.RequiereCambioPassword,
		&a.UltimoAcceso, &a.PrimerNombre, &a.SegundoNombre, &a.ApellidoPaterno, &a.ApellidoMaterno, &a.CURP,
		&a.FechaNacimiento, &a.Genero, &a.Telefono, &a.Correo, &a.Inmobiliaria, &a.AnosExperiencia, &a.ComisionAsignada, &a.FechaIngreso,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta un asesor y deja que la secuencia asigne el id.
func (r *AsesorRepo) Create(a *entity.Asesor) (*entity.Asesor, error) {
	query := `
		INSERT INTO asesores (username, password_hash, rol, nombres, apellidos, activo, requiere_cambio_password,
			ultimo_acceso, primer_nombre, segundo_nombre, apellido_paterno, apellido_materno, curp,
			fecha_nacimiento, genero, telefono, correo, inmobiliaria, anos_experiencia, comision_asignada, fecha_ingreso)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id`
	guardado := *a
	err := r.q.QueryRow(context.Background(), query,
		a.Username, a.PasswordHash, a.Rol, a.Nombres, a.Apellidos, a.Activo, a.RequiereCambioPassword,
		a.UltimoAcceso, a.PrimerNombre, a.SegundoNombre, a.ApellidoPaterno, a.ApellidoMaterno, a.CURP,
		a.FechaNacimiento, a.Genero, a.Telefono, a.Correo, a.Inmobiliaria, a.AnosExperiencia, a.ComisionAsignada, a.FechaIngreso,
	).Scan(&guardado.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUsernameExiste
		}
		return nil, backendErr("insert asesor", err)
	}
	return &guardado, nil
}

// GetByID obtiene un asesor por ID, incluso si está inactivo.
func (r *AsesorRepo) GetByID(id int64) (*entity.Asesor, error) {
	query := fmt.Sprintf(`SELECT %s FROM asesores WHERE id = $1`, asesorCols)
	a, err := scanAsesor(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, backendErr("get asesor", err)
	}
	return a, nil
}

// FindByUsername obtiene un asesor por username. Devuelve (nil, nil) si no existe.
func (r *AsesorRepo) FindByUsername(username string) (*entity.Asesor, error) {
	query := fmt.Sprintf(`SELECT %s FROM asesores WHERE username = $1 LIMIT 1`, asesorCols)
	a, err := scanAsesor(r.q.QueryRow(context.Background(), query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, backendErr("get asesor por username", err)
	}
	return a, nil
}

// Update reemplaza los campos mutables del asesor.
func (r *AsesorRepo) Update(a *entity.Asesor) error {
	query := `
		UPDATE asesores SET username = $2, password_hash = $3, rol = $4, nombres = $5, apellidos = $6,
			activo = $7, requiere_cambio_password = $8, ultimo_acceso = $9, primer_nombre = $10,
			segundo_nombre = $11, apellido_paterno = $12, apellido_materno = $13, curp = $14,
			fecha_nacimiento = $15, genero = $16, telefono = $17, correo = $18, inmobiliaria = $19,
			anos_experiencia = $20, comision_asignada = $21, fecha_ingreso = $22
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		a.ID, a.Username, a.PasswordHash, a.Rol, a.Nombres, a.Apellidos,
		a.Activo, a.RequiereCambioPassword, a.UltimoAcceso, a.PrimerNombre,
		a.SegundoNombre, a.ApellidoPaterno, a.ApellidoMaterno, a.CURP,
		a.FechaNacimiento, a.Genero, a.Telefono, a.Correo, a.Inmobiliaria,
		a.AnosExperiencia, a.ComisionAsignada, a.FechaIngreso,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameExiste
		}
		return backendErr("update asesor", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete apaga el flag activo. Repetirlo es un éxito sin cambios.
func (r *AsesorRepo) SoftDelete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE asesores SET activo = FALSE WHERE id = $1`, id)
	if err != nil {
		return backendErr("soft delete asesor", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página ordenada por id ascendente y el total del filtro.
func (r *AsesorRepo) List(f repository.AsesorFilter, page repository.Page) ([]*entity.Asesor, int, error) {
	page.Normalizar()
	where, args := buildAsesorWhere(f)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM asesores %s`, where)
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, backendErr("count asesores", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM asesores %s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		asesorCols, where, len(args)+1, len(args)+2)
	rows, err := r.q.Query(context.Background(), query, append(args, page.Tamano, page.Offset())...)
	if err != nil {
		return nil, 0, backendErr("list asesores", err)
	}
	defer rows.Close()

	var list []*entity.Asesor
	for rows.Next() {
		a, err := scanAsesor(rows)
		if err != nil {
			return nil, 0, backendErr("scan asesor", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, backendErr("list asesores", err)
	}
	return list, total, nil
}

func buildAsesorWhere(f repository.AsesorFilter) (string, []any) {
	where := "WHERE 1=1"
	var args []any
	if !f.IncluirInactivos {
		where += " AND activo = TRUE"
	}
	if f.Rol != "" {
		args = append(args, f.Rol)
		where += fmt.Sprintf(" AND rol = $%d", len(args))
	}
	if f.Texto != "" {
		args = append(args, "%"+f.Texto+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (username ILIKE $%d OR nombres ILIKE $%d OR apellidos ILIKE $%d)", n, n, n)
	}
	return where, args
}
