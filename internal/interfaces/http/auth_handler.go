package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/crm-inmobiliario/internal/application/auth"
	"github.com/tu-usuario/crm-inmobiliario/internal/application/dto"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain"
	"github.com/tu-usuario/crm-inmobiliario/internal/domain/repository"
	"github.com/tu-usuario/crm-inmobiliario/pkg/config"
	"github.com/tu-usuario/crm-inmobiliario/pkg/jwt"
)

// AuthHandler maneja el login de la API. A diferencia del gestor de sesión
// del escritorio, la API es stateless: cada login emite un JWT y no queda
// ninguna sesión en el servidor.
type AuthHandler struct {
	asesores repository.AsesorRepository
	jwtCfg   config.JWTConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(asesores repository.AsesorRepository, jwtCfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{asesores: asesores, jwtCfg: jwtCfg}
}

// Login valida credenciales y emite el token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	asesor, err := auth.VerificarCredenciales(h.asesores, in.Username, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrCredenciales) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	token, err := jwt.Generate(h.jwtCfg.Secret, asesor.ID, asesor.Username, asesor.Rol, h.jwtCfg.Issuer, h.jwtCfg.Expiration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.LoginResponse{
		Token: token,
		Usuario: dto.UsuarioResponse{
			ID:                     asesor.ID,
			Username:               asesor.Username,
			Rol:                    asesor.Rol,
			Nombres:                asesor.Nombres,
			Apellidos:              asesor.Apellidos,
			RequiereCambioPassword: asesor.RequiereCambioPassword,
		},
	})
}
