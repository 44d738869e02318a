package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/pkg/jwt"
)

// AuthHandler emite tokens para un actor. La identidad real (usuarios, roles)
// vive en un colaborador externo; este endpoint existe para desarrollo y para
// integraciones que ya autenticaron al actor por otra vía.
type AuthHandler struct {
	secret     string
	issuer     string
	expMinutes int
}

// NewAuthHandler construye el handler.
func NewAuthHandler(secret, issuer string, expMinutes int) *AuthHandler {
	return &AuthHandler{secret: secret, issuer: issuer, expMinutes: expMinutes}
}

type tokenRequest struct {
	ActorID string `json:"actor_id"`
}

// Token godoc
// @Summary      Emitir token para un actor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  tokenRequest  true  "actor_id"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in tokenRequest
	if err := c.BodyParser(&in); err != nil || in.ActorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "actor_id requerido"})
	}
	token, err := jwt.Generate(h.secret, in.ActorID, h.issuer, h.expMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"token": token})
}
