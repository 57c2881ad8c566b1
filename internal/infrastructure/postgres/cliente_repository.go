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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación del puerto ClienteRepository sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteCols = `id, activo, primer_nombre, segundo_nombre, apellido_paterno, apellido_materno, curp,
	fecha_nacimiento, edad, genero, telefono, correo, fecha_registro,
	ingreso_mensual, presupuesto, credito_disponible, tipo_credito, scoring, asesor_id`

func scanCliente(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(
		&c.ID, &c.Activo, &c.PrimerNombre, &c.SegundoNombre, &c.ApellidoPaterno, &c.ApellidoMaterno, &c.CURP,
		&c.FechaNacimiento, &c.Edad, &c.Genero, &c.Telefono, &c.Correo, &c.FechaRegistro,
		&c.IngresoMensual, &c.Presupuesto, &c.CreditoDisponible, &c.TipoCredito, &c.Scoring, &c.AsesorID,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta un cliente y deja que la secuencia asigne el id.
func (r *ClienteRepo) Create(c *entity.Cliente) (*entity.Cliente, error) {
	query := `
		INSERT INTO clientes (activo, primer_nombre, segundo_nombre, apellido_paterno, apellido_materno, curp,
			fecha_nacimiento, edad, genero, telefono, correo, fecha_registro,
			ingreso_mensual, presupuesto, credito_disponible, tipo_credito, scoring, asesor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id`
	guardado := *c
	err := r.q.QueryRow(context.Background(), query,
		c.Activo, c.PrimerNombre, c.SegundoNombre, c.ApellidoPaterno, c.ApellidoMaterno, c.CURP,
		c.FechaNacimiento, c.Edad, c.Genero, c.Telefono, c.Correo, c.FechaRegistro,
		c.IngresoMensual, c.Presupuesto, c.CreditoDisponible, c.TipoCredito, c.Scoring, c.AsesorID,
	).Scan(&guardado.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrCURPExiste
		}
		return nil, backendErr("insert cliente", err)
	}
	return &guardado, nil
}

// GetByID obtiene un cliente por ID, incluso si está inactivo.
func (r *ClienteRepo) GetByID(id int64) (*entity.Cliente, error) {
	query := fmt.Sprintf(`SELECT %s FROM clientes WHERE id = $1`, clienteCols)
	c, err := scanCliente(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, backendErr("get cliente", err)
	}
	return c, nil
}

// FindByCURP obtiene un cliente por CURP. Devuelve (nil, nil) si no existe.
func (r *ClienteRepo) FindByCURP(curp string) (*entity.Cliente, error) {
	query := fmt.Sprintf(`SELECT %s FROM clientes WHERE curp = $1 LIMIT 1`, clienteCols)
	c, err := scanCliente(r.q.QueryRow(context.Background(), query, curp))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, backendErr("get cliente por curp", err)
	}
	return c, nil
}

// Update reemplaza los campos mutables del cliente.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	query := `
		UPDATE clientes SET activo = $2, primer_nombre = $3, segundo_nombre = $4, apellido_paterno = $5,
			apellido_materno = $6, curp = $7, fecha_nacimiento = $8, edad = $9, genero = $10,
			telefono = $11, correo = $12, ingreso_mensual = $13, presupuesto = $14,
			credito_disponible = $15, tipo_credito = $16, scoring = $17, asesor_id = $18
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		c.ID, c.Activo, c.PrimerNombre, c.SegundoNombre, c.ApellidoPaterno,
		c.ApellidoMaterno, c.CURP, c.FechaNacimiento, c.Edad, c.Genero,
		c.Telefono, c.Correo, c.IngresoMensual, c.Presupuesto,
		c.CreditoDisponible, c.TipoCredito, c.Scoring, c.AsesorID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCURPExiste
		}
		return backendErr("update cliente", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete apaga el flag activo. Repetirlo es un éxito sin cambios.
func (r *ClienteRepo) SoftDelete(id int64) error {
	cmd, err := r.q.Exec(context.Background(), `UPDATE clientes SET activo = FALSE WHERE id = $1`, id)
	if err != nil {
		return backendErr("soft delete cliente", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página ordenada por id ascendente y el total del filtro.
func (r *ClienteRepo) List(f repository.ClienteFilter, page repository.Page) ([]*entity.Cliente, int, error) {
	page.Normalizar()
	where, args := buildClienteWhere(f)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM clientes %s`, where)
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, backendErr("count clientes", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM clientes %s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		clienteCols, where, len(args)+1, len(args)+2)
	rows, err := r.q.Query(context.Background(), query, append(args, page.Tamano, page.Offset())...)
	if err != nil {
		return nil, 0, backendErr("list clientes", err)
	}
	defer rows.Close()

	var list []*entity.Cliente
	for rows.Next() {
		c, err := scanCliente(rows)
		if err != nil {
			return nil, 0, backendErr("scan cliente", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, backendErr("list clientes", err)
	}
	return list, total, nil
}

func buildClienteWhere(f repository.ClienteFilter) (string, []any) {
	where := "WHERE 1=1"
	var args []any
	if !f.IncluirInactivos {
		where += " AND activo = TRUE"
	}
	if f.AsesorID != nil {
		args = append(args, *f.AsesorID)
		where += fmt.Sprintf(" AND asesor_id = $%d", len(args))
	}
	if f.TipoCredito != "" {
		args = append(args, f.TipoCredito)
		where += fmt.Sprintf(" AND tipo_credito = $%d", len(args))
	}
	if f.Texto != "" {
		args = append(args, "%"+f.Texto+"%")
		n := len(args)
		where += fmt.Sprintf(` AND (primer_nombre ILIKE $%d OR COALESCE(segundo_nombre,'') ILIKE $%d
			OR apellido_paterno ILIKE $%d OR COALESCE(apellido_materno,'') ILIKE $%d
			OR curp ILIKE $%d OR COALESCE(telefono,'') ILIKE $%d OR COALESCE(correo,'') ILIKE $%d)`,
			n, n, n, n, n, n, n)
	}
	return where, args
}
