package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Repuestos-api/internal/application/auth"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// AuthHandler maneja el login de administrador (PIN) y de operario.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// LoginPIN godoc
// @Summary      Login de administrador por PIN
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PinLoginRequest  true  "pin"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/pin [post]
func (h *AuthHandler) LoginPIN(c *fiber.Ctx) error {
	var in dto.PinLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LoginPIN(c.UserContext(), in)
	if err != nil {
		h.log.Warn().Str("ip", c.IP()).Msg("intento de PIN fallido")
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// LoginOperator godoc
// @Summary      Login de operario
// @Description  Emite un token de operario para un empleado activo; el empleado queda como actor de sus movimientos.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OperatorLoginRequest  true  "amann_id"
// @Success      200   {object}  dto.TokenResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/operator [post]
func (h *AuthHandler) LoginOperator(c *fiber.Ctx) error {
	var in dto.OperatorLoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.LoginOperator(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
