// Package scoring implementa los cálculos de campos derivados del CRM:
// edad a partir de la fecha de nacimiento y scoring predictivo del cliente.
// Todas las funciones son puras y deterministas; la capa de aplicación las
// invoca en cada escritura para que el valor almacenado sea siempre
// consistente con el resto de atributos.
package scoring

import "time"

// Pesos del scoring: 40% capacidad de presupuesto sobre ingreso, 40% crédito
// disponible relativo al presupuesto y 20% según el tipo de crédito.
const (
	pesoPresupuesto = 40.0
	pesoCredito     = 40.0
	pesoTipoCredito = 20.0
)

// factorTipoCredito pondera el tipo de crédito declarado por el cliente.
// Un tipo desconocido recibe el factor neutro 0.5.
var factorTipoCredito = map[string]float64{
	"Hipotecario": 1.0,
	"Contado":     1.0,
	"Bancario":    0.9,
	"Infonavit":   0.8,
	"No Aplica":   0.2,
}

// DatosScoring agrupa los atributos financieros que alimentan el scoring.
type DatosScoring struct {
	IngresoMensual    float64
	Presupuesto       float64
	CreditoDisponible float64
	TipoCredito       string
}

// CalcularEdad devuelve la edad en años cumplidos a la fecha de corte.
// Si el cumpleaños de este año aún no llega, se resta uno.
func CalcularEdad(nacimiento, corte time.Time) int {
	edad := corte.Year() - nacimiento.Year()
	antesDeCumple := corte.Month() < nacimiento.Month() ||
		(corte.Month() == nacimiento.Month() && corte.Day() < nacimiento.Day())
	if antesDeCumple {
		edad--
	}
	if edad < 0 {
		return 0
	}
	return edad
}

// CalcularScoring devuelve un valor entero en [0, 100].
func CalcularScoring(d DatosScoring) int {
	score := 0.0
	if d.IngresoMensual > 0 {
		ratio := d.Presupuesto / d.IngresoMensual
		if ratio > 1 {
			ratio = 1
		}
		score += ratio * pesoPresupuesto
	}
	if d.Presupuesto > 0 {
		ratio := d.CreditoDisponible / d.Presupuesto
		if ratio > 1 {
			ratio = 1
		}
		score += ratio * pesoCredito
	}
	factor, ok := factorTipoCredito[d.TipoCredito]
	if !ok {
		factor = 0.5
	}
	score += factor * pesoTipoCredito

	final := int(score + 0.5)
	if final < 0 {
		return 0
	}
	if final > 100 {
		return 100
	}
	return final
}
