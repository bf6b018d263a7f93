package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/autoprotege/app-sinistro/internal/utils"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// auditContextFromGin builds an audit context from the request
func auditContextFromGin(c *gin.Context) utils.AuditContext {
	auditCtx := utils.AuditContext{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: c.GetString("RequestID"),
	}
	if claims, ok := c.Get("claims"); ok {
		if sessionClaims, ok := claims.(*models.SessionClaims); ok {
			auditCtx.UserID = sessionClaims.Subject
		}
	}
	return auditCtx
}

// CreateSinistro godoc
// @Summary Finalizar abertura de sinistro
// @Description Recebe o rascunho acumulado pelo assistente de abertura, gera o número do sinistro e persiste o registro.
// @Tags sinistro
// @Accept json
// @Produce json
// @Param draft body models.FormDraft true "Rascunho finalizado do sinistro"
// @Success 201 {object} models.Sinistro "Sinistro criado com sucesso"
// @Failure 400 {object} ErrorResponse "Rascunho inválido"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /sinistros [post]
func CreateSinistro(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CreateSinistro")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "create_sinistro"),
		attribute.String("service", "sinistro"),
	)

	logger := observability.Logger()

	ctx, parseSpan := utils.TraceInputParsing(ctx, "form_draft")
	var draft models.FormDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, nil)
		parseSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}
	parseSpan.End()

	// Claims opened from the admin dashboard are flagged as manager-created
	createdByManager := false
	if _, ok := c.Get("claims"); ok {
		createdByManager = true
	}

	sinistro, err := services.ClaimServiceInstance.CreateSinistro(ctx, &draft, createdByManager, auditContextFromGin(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidClaimType),
			errors.Is(err, models.ErrInvalidCPF),
			errors.Is(err, models.ErrInvalidPlate):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("failed to create sinistro", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create sinistro"})
		}
		return
	}

	c.JSON(http.StatusCreated, sinistro)

	utils.AddTimingToSpan(span, startTime)
	logger.Debug("CreateSinistro completed",
		zap.String("numero_sinistro", sinistro.NumeroSinistro),
		zap.Duration("total_duration", time.Since(startTime)))
}

// GetSinistro godoc
// @Summary Obter sinistro
// @Description Recupera um sinistro pelo identificador, com cache de leitura.
// @Tags sinistro
// @Produce json
// @Param id path string true "Identificador do sinistro"
// @Security BearerAuth
// @Success 200 {object} models.Sinistro "Sinistro encontrado"
// @Failure 401 {object} ErrorResponse "Token de autenticação não fornecido ou inválido"
// @Failure 404 {object} ErrorResponse "Sinistro não encontrado"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /sinistros/{id} [get]
func GetSinistro(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetSinistro")
	defer span.End()

	id := c.Param("id")
	span.SetAttributes(
		attribute.String("sinistro_id", id),
		attribute.String("operation", "get_sinistro"),
	)

	sinistro, err := services.ClaimServiceInstance.GetSinistroByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrSinistroNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sinistro not found"})
			return
		}
		observability.Logger().Error("failed to get sinistro", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve sinistro"})
		return
	}

	c.JSON(http.StatusOK, sinistro)
}

// ListSinistros godoc
// @Summary Listar sinistros
// @Description Recupera a lista paginada de sinistros para o painel administrativo, opcionalmente filtrada por status.
// @Tags sinistro
// @Produce json
// @Param page query int false "Número da página (padrão: 1)" minimum(1)
// @Param per_page query int false "Itens por página (padrão: 10, máximo: 100)" minimum(1) maximum(100)
// @Param status query string false "Filtrar por status"
// @Security BearerAuth
// @Success 200 {object} models.PaginatedSinistros "Lista paginada de sinistros"
// @Failure 400 {object} ErrorResponse "Parâmetros de paginação inválidos"
// @Failure 401 {object} ErrorResponse "Token de autenticação não fornecido ou inválido"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /sinistros [get]
func ListSinistros(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListSinistros")
	defer span.End()

	page, perPage, err := parsePaginationParams(c.Query("page"), c.Query("per_page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	result, err := services.ClaimServiceInstance.ListSinistros(ctx, page, perPage, c.Query("status"))
	if err != nil {
		observability.Logger().Error("failed to list sinistros", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve sinistros"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateSinistroStatus godoc
// @Summary Atualizar status do sinistro
// @Description Move um sinistro para um novo status ativo do registro. Sinistros em status terminal não são alterados.
// @Tags sinistro
// @Accept json
// @Produce json
// @Param id path string true "Identificador do sinistro"
// @Param body body UpdateStatusRequest true "Novo status"
// @Security BearerAuth
// @Success 200 {object} models.Sinistro "Status atualizado"
// @Failure 400 {object} ErrorResponse "Status desconhecido ou inativo"
// @Failure 401 {object} ErrorResponse "Token de autenticação não fornecido ou inválido"
// @Failure 404 {object} ErrorResponse "Sinistro não encontrado"
// @Failure 409 {object} ErrorResponse "Sinistro em status terminal"
// @Failure 500 {object} ErrorResponse "Erro interno do servidor"
// @Router /sinistros/{id}/status [put]
func UpdateSinistroStatus(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "UpdateSinistroStatus")
	defer span.End()

	id := c.Param("id")
	span.SetAttributes(attribute.String("sinistro_id", id))

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	sinistro, err := services.ClaimServiceInstance.UpdateStatus(ctx, id, req.Status, auditContextFromGin(c))
	if err != nil {
		switch {
		case errors.Is(err, models.ErrSinistroNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Sinistro not found"})
		case errors.Is(err, models.ErrUnknownStatus), errors.Is(err, models.ErrInactiveStatus):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, models.ErrTerminalStatus):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			observability.Logger().Error("failed to update status", zap.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, sinistro)
}

// parsePaginationParams validates page/per_page query values
func parsePaginationParams(pageStr, perPageStr string) (int, int, error) {
	page := 1
	perPage := 10

	if pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			return 0, 0, fmt.Errorf("invalid page parameter")
		}
		page = parsed
	}

	if perPageStr != "" {
		parsed, err := strconv.Atoi(perPageStr)
		if err != nil || parsed < 1 || parsed > 100 {
			return 0, 0, fmt.Errorf("invalid per_page parameter")
		}
		perPage = parsed
	}

	return page, perPage, nil
}

// UpdateStatusRequest is the payload for status transitions
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ErrorResponse is the generic error payload
type ErrorResponse struct {
	Error string `json:"error"`
}
