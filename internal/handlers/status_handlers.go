package handlers

import (
	"net/http"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// GetStatuses godoc
// @Summary Listar status de sinistro
// @Description Retorna a lista de status configurados. Servida do cache local quando dentro do TTL; em falha da consulta retorna a lista padrão.
// @Tags status
// @Produce json
// @Success 200 {object} models.StatusListResponse "Lista de status"
// @Router /status [get]
func GetStatuses(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetStatuses")
	defer span.End()

	statuses := services.StatusRegistryInstance.GetStatuses(ctx)
	span.SetAttributes(attribute.Int("status_count", len(statuses)))

	c.JSON(http.StatusOK, models.StatusListResponse{Status: statuses})
}

// InvalidateStatusCache godoc
// @Summary Invalidar cache de status
// @Description Limpa o cache local de status. Usado após mutações feitas fora da API.
// @Tags status
// @Produce json
// @Security BearerAuth
// @Success 204 "Cache invalidado"
// @Failure 401 {object} ErrorResponse "Token de autenticação não fornecido ou inválido"
// @Failure 403 {object} ErrorResponse "Acesso negado - permissões insuficientes"
// @Router /status/invalidate [post]
func InvalidateStatusCache(c *gin.Context) {
	_, span := otel.Tracer("").Start(c.Request.Context(), "InvalidateStatusCache")
	defer span.End()

	services.StatusRegistryInstance.Invalidate()
	c.Status(http.StatusNoContent)
}
