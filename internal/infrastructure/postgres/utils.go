package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// backendErr envuelve un fallo de conexión/consulta como error de backend,
// preservando el texto de la causa para los logs.
func backendErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrBackend, op, err)
}
