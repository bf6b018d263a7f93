package handlers

import (
	"errors"
	"net/http"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// Login godoc
// @Summary Autenticar usuário do painel
// @Description Autentica um gestor ou administrador e emite o token de sessão do painel.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credenciais de acesso"
// @Success 200 {object} models.LoginResponse "Sessão emitida"
// @Failure 400 {object} ErrorResponse "Corpo da requisição inválido"
// @Failure 401 {object} ErrorResponse "Credenciais inválidas ou usuário inativo"
// @Failure 403 {object} ErrorResponse "Perfil sem acesso ao painel"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /auth/login [post]
func Login(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "Login")
	defer span.End()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
		return
	}

	resp, err := services.AuthServiceInstance.Login(ctx, req.Email, req.Password, auditContextFromGin(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrInactiveUser):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		case errors.Is(err, models.ErrInsufficientRole):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Role does not grant dashboard access"})
		default:
			observability.Logger().Error("login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to authenticate"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
