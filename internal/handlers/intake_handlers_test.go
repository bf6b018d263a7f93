package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intakeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v1/intake/steps", EvaluateIntakeSteps)
	return router
}

func postDraft(t *testing.T, router *gin.Engine, draft models.FormDraft) (*httptest.ResponseRecorder, IntakeStepsResponse) {
	t.Helper()

	body, err := json.Marshal(draft)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/intake/steps", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp IntakeStepsResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestEvaluateIntakeStepsEmptyDraft(t *testing.T) {
	w, resp := postDraft(t, intakeRouter(), models.FormDraft{})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Steps, 1)
	assert.False(t, resp.Steps[0].Complete)
	assert.False(t, resp.CanFinalize)
}

func TestEvaluateIntakeStepsCompleteTheftDraft(t *testing.T) {
	stolen := true
	draft := models.FormDraft{
		Tipo:               models.ClaimTypeTheft,
		DocumentosRoubados: &stolen,
		Nome:               "Maria Souza",
		CPF:                "11144477735",
		Placa:              "ABC1D23",
		Fotos: []models.PhotoDocument{
			{Kind: models.PhotoKindVehicle, FileName: "frente_veiculo_1700000000000.jpg", Timestamp: 1700000000000},
			{Kind: models.PhotoKindPoliceReport, FileName: "boletim_1700000000001.jpg", Timestamp: 1700000000001},
		},
	}

	w, resp := postDraft(t, intakeRouter(), draft)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Steps, 6)
	for _, step := range resp.Steps {
		assert.True(t, step.Complete, "step %s should be complete", step.State)
	}
	assert.True(t, resp.CanFinalize)
}

func TestEvaluateIntakeStepsIncompleteIdentityBlocksFinalize(t *testing.T) {
	stolen := true
	draft := models.FormDraft{
		Tipo:               models.ClaimTypeTheft,
		DocumentosRoubados: &stolen,
		Nome:               "Maria Souza",
		CPF:                "11111111111",
		Placa:              "ABC1D23",
		Fotos: []models.PhotoDocument{
			{Kind: models.PhotoKindVehicle, FileName: "frente_veiculo_1700000000000.jpg", Timestamp: 1700000000000},
			{Kind: models.PhotoKindPoliceReport, FileName: "boletim_1700000000001.jpg", Timestamp: 1700000000001},
		},
	}

	w, resp := postDraft(t, intakeRouter(), draft)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.CanFinalize, "an invalid CPF must block finalization")
}

func TestEvaluateIntakeStepsUnansweredBranch(t *testing.T) {
	draft := models.FormDraft{Tipo: models.ClaimTypeRobbery}

	w, resp := postDraft(t, intakeRouter(), draft)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Steps, 2)
	assert.False(t, resp.CanFinalize, "a branch cut short by an unanswered question is not finalizable")
}

func TestEvaluateIntakeStepsRejectsInvalidBody(t *testing.T) {
	router := intakeRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/intake/steps", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
