package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthResponse reports the API and its dependencies
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// HealthCheck godoc
// @Summary Verificação de saúde
// @Description Verifica a disponibilidade da API e de suas dependências (MongoDB e Redis).
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Serviço saudável"
// @Failure 503 {object} HealthResponse "Alguma dependência indisponível"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:   "healthy",
		Services: map[string]string{},
	}

	if config.MongoDB != nil {
		if err := config.MongoDB.Client().Ping(ctx, readpref.Primary()); err != nil {
			resp.Services["mongodb"] = "unhealthy"
			resp.Status = "unhealthy"
		} else {
			resp.Services["mongodb"] = "healthy"
		}
	} else {
		resp.Services["mongodb"] = "not_initialized"
		resp.Status = "unhealthy"
	}

	if config.Redis != nil {
		if err := config.Redis.Ping(ctx).Err(); err != nil {
			resp.Services["redis"] = "unhealthy"
			resp.Status = "unhealthy"
		} else {
			resp.Services["redis"] = "healthy"
		}
	} else {
		resp.Services["redis"] = "not_initialized"
	}

	status := http.StatusOK
	if resp.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}
