package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticStatusFetcher struct {
	statuses []models.SinistroStatus
	err      error
}

func (f *staticStatusFetcher) FetchStatuses(_ context.Context) ([]models.SinistroStatus, error) {
	return f.statuses, f.err
}

func statusRouter(fetcher services.StatusFetcher) *gin.Engine {
	services.StatusRegistryInstance = services.NewStatusRegistry(fetcher, 5*time.Minute, nil, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/status", GetStatuses)
	router.POST("/v1/status/invalidate", InvalidateStatusCache)
	return router
}

func TestGetStatusesFromConfiguredList(t *testing.T) {
	router := statusRouter(&staticStatusFetcher{statuses: []models.SinistroStatus{
		{Nome: "pendente", Cor: "#f59e0b", Ordem: 1, Ativo: true},
		{Nome: "em_analise", Cor: "#3b82f6", Ordem: 2, Ativo: true},
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.StatusListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Status, 2)
	assert.Equal(t, "pendente", resp.Status[0].Nome)
}

func TestGetStatusesFallsBackToDefaults(t *testing.T) {
	router := statusRouter(&staticStatusFetcher{err: errors.New("store down")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/status", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.StatusListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Status, 6, "a failed fetch serves the built-in default list")
}

func TestInvalidateStatusCache(t *testing.T) {
	router := statusRouter(&staticStatusFetcher{statuses: []models.SinistroStatus{
		{Nome: "pendente", Ordem: 1, Ativo: true},
	}})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/status/invalidate", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
}
