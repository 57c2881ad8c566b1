package auth

import (
	"fmt"
	"unicode"

	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
)

// Politica define la fuerza mínima exigida a una contraseña nueva. Es
// configuración, no código: se carga desde pkg/config.
type Politica struct {
	MinLength         int
	RequiereMayuscula bool
	RequiereMinuscula bool
	RequiereDigito    bool
}

// PoliticaPorDefecto exige solo longitud mínima de 8.
func PoliticaPorDefecto() Politica {
	return Politica{MinLength: 8}
}

// Validar devuelve un error envuelto en ErrPoliticaPassword si la contraseña
// no cumple la política.
func (p Politica) Validar(password string) error {
	if len(password) < p.MinLength {
		return fmt.Errorf("%w: se requieren al menos %d caracteres", domain.ErrPoliticaPassword, p.MinLength)
	}
	var mayuscula, minuscula, digito bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			mayuscula = true
		case unicode.IsLower(r):
			minuscula = true
		case unicode.IsDigit(r):
			digito = true
		}
	}
	if p.RequiereMayuscula && !mayuscula {
		return fmt.Errorf("%w: se requiere al menos una mayúscula", domain.ErrPoliticaPassword)
	}
	if p.RequiereMinuscula && !minuscula {
		return fmt.Errorf("%w: se requiere al menos una minúscula", domain.ErrPoliticaPassword)
	}
	if p.RequiereDigito && !digito {
		return fmt.Errorf("%w: se requiere al menos un dígito", domain.ErrPoliticaPassword)
	}
	return nil
}
