package repository

// Page describe una página de resultados (1-based). No hay cursores: cada
// llamada a List es una secuencia reiniciable con su propio total.
type Page struct {
	Numero int
	Tamano int
}

// Normalizar aplica valores por defecto y topes.
func (p *Page) Normalizar() {
	if p.Numero < 1 {
		p.Numero = 1
	}
	if p.Tamano <= 0 {
		p.Tamano = 20
	}
	if p.Tamano > 100 {
		p.Tamano = 100
	}
}

// Offset devuelve el desplazamiento absoluto de la página.
func (p Page) Offset() int {
	return (p.Numero - 1) * p.Tamano
}
