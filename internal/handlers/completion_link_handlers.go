package handlers

import (
	"errors"
	"net/http"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// IssueCompletionLinkRequest is the payload for link issuance
type IssueCompletionLinkRequest struct {
	SinistroID string `json:"sinistroId" binding:"required"`
}

// IssueCompletionLink godoc
// @Summary Gerar link de conclusão
// @Description Gera (ou reutiliza) o link tokenizado que permite ao cliente concluir um sinistro aberto pelo gestor. Tokens expirados são substituídos por um novo com validade de 30 dias.
// @Tags completion-link
// @Accept json
// @Produce json
// @Param body body IssueCompletionLinkRequest true "Identificador do sinistro"
// @Security BearerAuth
// @Success 200 {object} models.CompletionLinkResponse "Link gerado"
// @Failure 400 {object} ErrorResponse "Corpo da requisição inválido"
// @Failure 401 {object} ErrorResponse "Token de autenticação não fornecido ou inválido"
// @Failure 403 {object} ErrorResponse "Sinistro não foi aberto por um gestor"
// @Failure 404 {object} ErrorResponse "Sinistro não encontrado"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /sinistros/completion-link [post]
func IssueCompletionLink(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "IssueCompletionLink")
	defer span.End()

	var req IssueCompletionLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sinistroId is required"})
		return
	}

	span.SetAttributes(attribute.String("sinistro_id", req.SinistroID))

	resp, err := services.CompletionLinkServiceInstance.IssueOrRefreshLink(ctx, req.SinistroID, auditContextFromGin(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSinistroNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sinistro not found"})
		case errors.Is(err, models.ErrNotManagerCreated):
			c.JSON(http.StatusForbidden, ErrorResponse{Error: "Sinistro was not created on behalf of a client"})
		default:
			observability.Logger().Error("failed to issue completion link", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to issue completion link"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ValidateCompletionLink godoc
// @Summary Validar link de conclusão
// @Description Valida o par sinistro/token de um link de conclusão e retorna o registro completo do sinistro.
// @Tags completion-link
// @Produce json
// @Param sinistroId query string true "Identificador do sinistro"
// @Param token query string true "Token de conclusão"
// @Success 200 {object} models.CompletionValidateResponse "Link válido"
// @Failure 400 {object} ErrorResponse "Parâmetros ausentes"
// @Failure 404 {object} ErrorResponse "Sinistro ou token não encontrados"
// @Failure 410 {object} ErrorResponse "Token expirado"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /sinistros/completion-link [get]
func ValidateCompletionLink(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ValidateCompletionLink")
	defer span.End()

	sinistroID := c.Query("sinistroId")
	token := c.Query("token")
	if sinistroID == "" || token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sinistroId and token are required"})
		return
	}

	span.SetAttributes(attribute.String("sinistro_id", sinistroID))

	sinistro, err := services.CompletionLinkServiceInstance.ValidateLink(ctx, sinistroID, token, auditContextFromGin(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSinistroNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sinistro not found"})
		case errors.Is(err, models.ErrTokenExpired):
			c.JSON(http.StatusGone, ErrorResponse{Error: "Completion token expired"})
		default:
			observability.Logger().Error("failed to validate completion link", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to validate completion link"})
		}
		return
	}

	c.JSON(http.StatusOK, models.CompletionValidateResponse{
		Success:  true,
		Valid:    true,
		Sinistro: sinistro,
	})
}
