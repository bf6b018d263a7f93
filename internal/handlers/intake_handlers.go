package handlers

import (
	"net/http"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// IntakeStep reports the standing of one wizard step for a draft
type IntakeStep struct {
	State    services.FormState `json:"state"`
	Complete bool               `json:"complete"`
}

// IntakeStepsResponse lists the wizard steps for the draft's chosen branch
type IntakeStepsResponse struct {
	Steps       []IntakeStep `json:"steps"`
	CanFinalize bool         `json:"can_finalize"`
}

// EvaluateIntakeSteps godoc
// @Summary Avaliar etapas do assistente
// @Description Recebe o rascunho acumulado e retorna a sequência de etapas do ramo escolhido, com a completude de cada uma. O cliente usa o resultado para montar a barra de progresso e habilitar o envio final.
// @Tags intake
// @Accept json
// @Produce json
// @Param draft body models.FormDraft true "Rascunho em progresso"
// @Success 200 {object} IntakeStepsResponse "Etapas avaliadas"
// @Failure 400 {object} ErrorResponse "Rascunho inválido"
// @Router /intake/steps [post]
func EvaluateIntakeSteps(c *gin.Context) {
	_, span := otel.Tracer("").Start(c.Request.Context(), "EvaluateIntakeSteps")
	defer span.End()

	var draft models.FormDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	sequence := services.StepSequence(&draft)
	span.SetAttributes(
		attribute.String("tipo", string(draft.Tipo)),
		attribute.Int("step_count", len(sequence)),
	)

	resp := IntakeStepsResponse{CanFinalize: true}
	for _, state := range sequence {
		complete := services.CanProceed(state, &draft)
		resp.Steps = append(resp.Steps, IntakeStep{State: state, Complete: complete})
		if state != services.StateFinalize && !complete {
			resp.CanFinalize = false
		}
	}
	// A branch cut short by an unanswered question is never finalizable
	if len(sequence) == 0 || sequence[len(sequence)-1] != services.StateFinalize {
		resp.CanFinalize = false
	}

	c.JSON(http.StatusOK, resp)
}
