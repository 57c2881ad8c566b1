package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/dto"
	"github.com/tu-usuario/crm-inmobiliario/internal/application/usecase"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
)

// PropiedadHandler expone el catálogo de propiedades en modo lectura.
type PropiedadHandler struct {
	uc *usecase.PropiedadUseCase
}

// NewPropiedadHandler construye el handler del catálogo.
func NewPropiedadHandler(uc *usecase.PropiedadUseCase) *PropiedadHandler {
	return &PropiedadHandler{uc: uc}
}

// List devuelve una página del catálogo. Filtros por query string:
// q, ciudad, tipo, precio_min, precio_max, habitaciones, incluir_inactivos,
// pagina, tamano.
func (h *PropiedadHandler) List(c *fiber.Ctx) error {
	f := repository.PropiedadFilter{
		Texto:            c.Query("q"),
		Ciudad:           c.Query("ciudad"),
		Tipo:             c.Query("tipo"),
		IncluirInactivos: c.QueryBool("incluir_inactivos"),
	}
	if s := c.Query("precio_min"); s != "" {
		min, err := decimal.NewFromString(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "precio_min inválido"})
		}
		f.PrecioMin = &min
	}
	if s := c.Query("precio_max"); s != "" {
		max, err := decimal.NewFromString(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "precio_max inválido"})
		}
		f.PrecioMax = &max
	}
	if s := c.Query("habitaciones"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "habitaciones inválido"})
		}
		f.Habitaciones = &n
	}

	page := repository.Page{
		Numero: c.QueryInt("pagina", 1),
		Tamano: c.QueryInt("tamano", 20),
	}
	items, total, err := h.uc.Listar(f, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	page.Normalizar()

	out := dto.PageResponse[dto.PropiedadResponse]{
		Items:  make([]dto.PropiedadResponse, 0, len(items)),
		Total:  total,
		Pagina: page.Numero,
		Tamano: page.Tamano,
	}
	for _, p := range items {
		out.Items = append(out.Items, dto.PropiedadToResponse(p))
	}
	return c.JSON(out)
}

// GetByID devuelve una propiedad por id, incluso inactiva.
func (h *PropiedadHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	p, err := h.uc.Obtener(id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la propiedad no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.PropiedadToResponse(p))
}
