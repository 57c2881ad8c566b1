package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/migration"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

var _ migration.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. La
// migración lo usa para que la verificación por clave natural y el insert
// ocurran de forma atómica.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	asesores repository.AsesorRepository,
	clientes repository.ClienteRepository,
	propiedades repository.PropiedadRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	asesores := NewAsesorRepository(tx)
	clientes := NewClienteRepository(tx)
	propiedades := NewPropiedadRepository(tx)

	if err := fn(asesores, clientes, propiedades); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
