package scoring_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain/scoring"
)

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCalcularEdad(t *testing.T) {
	casos := []struct {
		nombre     string
		nacimiento time.Time
		corte      time.Time
		esperada   int
	}{
		{"cumpleaños exacto", fecha(1990, time.January, 1), fecha(2024, time.January, 1), 34},
		{"un día antes del cumpleaños", fecha(1990, time.June, 15), fecha(2024, time.June, 14), 33},
		{"día del cumpleaños", fecha(1990, time.June, 15), fecha(2024, time.June, 15), 34},
		{"mes anterior al cumpleaños", fecha(1990, time.December, 1), fecha(2024, time.June, 1), 33},
		{"nacimiento futuro no da edad negativa", fecha(2030, time.January, 1), fecha(2024, time.January, 1), 0},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperada, scoring.CalcularEdad(c.nacimiento, c.corte))
		})
	}
}

func TestCalcularScoring(t *testing.T) {
	casos := []struct {
		nombre   string
		datos    scoring.DatosScoring
		esperado int
	}{
		{
			"perfil máximo",
			scoring.DatosScoring{IngresoMensual: 10000, Presupuesto: 10000, CreditoDisponible: 10000, TipoCredito: "Hipotecario"},
			100,
		},
		{
			"ratios a la mitad con crédito bancario",
			scoring.DatosScoring{IngresoMensual: 10000, Presupuesto: 5000, CreditoDisponible: 2500, TipoCredito: "Bancario"},
			58, // 20 + 20 + 18
		},
		{
			"sin datos financieros solo pesa el tipo",
			scoring.DatosScoring{TipoCredito: "No Aplica"},
			4,
		},
		{
			"tipo desconocido usa factor neutro",
			scoring.DatosScoring{TipoCredito: "Trueque"},
			10,
		},
		{
			"ratios mayores a uno se topan",
			scoring.DatosScoring{IngresoMensual: 1000, Presupuesto: 50000, CreditoDisponible: 90000, TipoCredito: "Contado"},
			100,
		},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, scoring.CalcularScoring(c.datos))
		})
	}
}

// El scoring es una función pura: el mismo input produce siempre el mismo valor.
func TestCalcularScoringDeterminista(t *testing.T) {
	d := scoring.DatosScoring{IngresoMensual: 8000, Presupuesto: 6000, CreditoDisponible: 3000, TipoCredito: "Infonavit"}
	assert.Equal(t, scoring.CalcularScoring(d), scoring.CalcularScoring(d))
}
