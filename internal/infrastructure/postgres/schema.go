package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentencias idempotentes de creación de esquema. El core tolera columnas
// nullable adicionales porque todas las consultas usan listas explícitas.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS asesores (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		rol TEXT NOT NULL DEFAULT 'asesor',
		nombres TEXT NOT NULL DEFAULT '',
		apellidos TEXT NOT NULL DEFAULT '',
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		requiere_cambio_password BOOLEAN NOT NULL DEFAULT FALSE,
		ultimo_acceso TIMESTAMPTZ,
		primer_nombre TEXT,
		segundo_nombre TEXT,
		apellido_paterno TEXT,
		apellido_materno TEXT,
		curp TEXT,
		fecha_nacimiento DATE,
		genero TEXT,
		telefono TEXT,
		correo TEXT,
		inmobiliaria TEXT,
		anos_experiencia INTEGER,
		comision_asignada NUMERIC(10,4),
		fecha_ingreso DATE
	)`,
	`CREATE TABLE IF NOT EXISTS clientes (
		id BIGSERIAL PRIMARY KEY,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		primer_nombre TEXT NOT NULL,
		segundo_nombre TEXT,
		apellido_paterno TEXT NOT NULL,
		apellido_materno TEXT,
		curp TEXT NOT NULL UNIQUE,
		fecha_nacimiento DATE,
		edad INTEGER,
		genero TEXT,
		telefono TEXT,
		correo TEXT,
		fecha_registro TIMESTAMPTZ NOT NULL DEFAULT now(),
		ingreso_mensual NUMERIC(14,2),
		presupuesto NUMERIC(14,2),
		credito_disponible NUMERIC(14,2),
		tipo_credito TEXT,
		scoring INTEGER NOT NULL DEFAULT 0,
		asesor_id BIGINT REFERENCES asesores(id)
	)`,
	`CREATE TABLE IF NOT EXISTS propiedades (
		id BIGSERIAL PRIMARY KEY,
		activo BOOLEAN NOT NULL DEFAULT TRUE,
		titulo TEXT NOT NULL,
		descripcion TEXT,
		precio NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (precio >= 0),
		metros DOUBLE PRECISION,
		estado TEXT,
		ciudad TEXT,
		zona TEXT,
		tipo TEXT,
		habitaciones INTEGER,
		amenidades TEXT
	)`,
}

// EnsureSchema crea las tablas si no existen. Seguro de ejecutar en cada arranque.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return backendErr("crear esquema", err)
		}
	}
	return nil
}
