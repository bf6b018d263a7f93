package services

import (
	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/utils"
)

// FormState identifies one step of the intake wizard
type FormState string

const (
	StateClaimType         FormState = "tipo_sinistro"
	StateDocumentsQuestion FormState = "documentos_roubados"
	StateLicense           FormState = "captura_cnh"
	StateRegistration      FormState = "captura_crlv"
	StateIdentity          FormState = "identificacao"
	StateOwnVehiclePhotos  FormState = "fotos_proprio_veiculo"
	StateThirdPartyInfo    FormState = "dados_terceiro"
	StateThirdPartyPhotos  FormState = "fotos_terceiro"
	StateVehiclePhotos     FormState = "fotos_veiculo"
	StatePoliceReport      FormState = "boletim_ocorrencia"
	StateFinalize          FormState = "finalizar"
)

// FormEvent drives a transition between steps
type FormEvent string

const (
	EventSelectCollision FormEvent = "selecionar_colisao"
	EventSelectTheft     FormEvent = "selecionar_furto"
	EventSelectRobbery   FormEvent = "selecionar_roubo"
	EventDocumentsStolen FormEvent = "documentos_roubados_sim"
	EventDocumentsKept   FormEvent = "documentos_roubados_nao"
	EventNext            FormEvent = "avancar"
	EventBack            FormEvent = "voltar"
)

type transitionKey struct {
	from  FormState
	event FormEvent
}

// transitions is the explicit state × event → next-state table.
// EventBack is not in the table: it pops the machine's history instead.
var transitions = map[transitionKey]FormState{
	{StateClaimType, EventSelectCollision}: StateOwnVehiclePhotos,
	{StateClaimType, EventSelectTheft}:     StateDocumentsQuestion,
	{StateClaimType, EventSelectRobbery}:   StateDocumentsQuestion,

	{StateDocumentsQuestion, EventDocumentsStolen}: StateIdentity,
	{StateDocumentsQuestion, EventDocumentsKept}:   StateLicense,

	{StateLicense, EventNext}:      StateRegistration,
	{StateRegistration, EventNext}: StateVehiclePhotos,
	{StateIdentity, EventNext}:     StateVehiclePhotos,

	{StateOwnVehiclePhotos, EventNext}: StateThirdPartyInfo,
	{StateThirdPartyInfo, EventNext}:   StateThirdPartyPhotos,
	{StateThirdPartyPhotos, EventNext}: StatePoliceReport,

	{StateVehiclePhotos, EventNext}: StatePoliceReport,
	{StatePoliceReport, EventNext}:  StateFinalize,
}

// CanProceed is the pure guard evaluated before leaving a state. It inspects
// only the accumulated draft data.
func CanProceed(state FormState, draft *models.FormDraft) bool {
	switch state {
	case StateClaimType:
		return draft.Tipo.Valid()
	case StateDocumentsQuestion:
		return draft.DocumentosRoubados != nil
	case StateLicense:
		return len(draft.PhotosOfKind(models.PhotoKindCNH)) > 0
	case StateRegistration:
		return len(draft.PhotosOfKind(models.PhotoKindCRLV)) > 0
	case StateIdentity:
		return draft.Nome != "" &&
			utils.ValidateCPF(draft.CPF) &&
			utils.ValidatePlate(draft.Placa)
	case StateOwnVehiclePhotos, StateThirdPartyPhotos, StateVehiclePhotos:
		return len(draft.PhotosOfKind(models.PhotoKindVehicle)) > 0
	case StateThirdPartyInfo:
		return draft.TerceiroNome != ""
	case StatePoliceReport:
		return len(draft.PhotosOfKind(models.PhotoKindPoliceReport)) > 0
	case StateFinalize:
		return true
	}
	return false
}

// FormMachine orchestrates the intake wizard. Backward navigation re-enters
// the previous state without discarding already-captured draft data.
type FormMachine struct {
	draft   *models.FormDraft
	current FormState
	history []FormState
}

// NewFormMachine starts a machine at the claim-type step
func NewFormMachine(draft *models.FormDraft) *FormMachine {
	if draft == nil {
		draft = &models.FormDraft{}
	}
	return &FormMachine{
		draft:   draft,
		current: StateClaimType,
	}
}

// Current returns the machine's current step
func (m *FormMachine) Current() FormState {
	return m.current
}

// Draft returns the accumulated draft
func (m *FormMachine) Draft() *models.FormDraft {
	return m.draft
}

// Apply processes one event. Forward events are rejected while the current
// step's guard fails; selection events also record the choice on the draft.
func (m *FormMachine) Apply(event FormEvent) error {
	if event == EventBack {
		if len(m.history) == 0 {
			return models.ErrUnknownTransition
		}
		m.current = m.history[len(m.history)-1]
		m.history = m.history[:len(m.history)-1]
		return nil
	}

	// Selection events mutate the draft before the guard runs, so selecting
	// a type and advancing is a single interaction.
	switch event {
	case EventSelectCollision:
		m.setType(models.ClaimTypeCollision)
	case EventSelectTheft:
		m.setType(models.ClaimTypeTheft)
	case EventSelectRobbery:
		m.setType(models.ClaimTypeRobbery)
	case EventDocumentsStolen:
		v := true
		m.draft.DocumentosRoubados = &v
	case EventDocumentsKept:
		v := false
		m.draft.DocumentosRoubados = &v
	}

	next, ok := transitions[transitionKey{m.current, event}]
	if !ok {
		return models.ErrUnknownTransition
	}
	if !CanProceed(m.current, m.draft) {
		return models.ErrStepIncomplete
	}

	m.history = append(m.history, m.current)
	m.current = next
	return nil
}

// setType records the claim type; changing it resets the dependent branch
// data so a re-selection restarts the branch cleanly
func (m *FormMachine) setType(t models.ClaimType) {
	if m.draft.Tipo != t && m.draft.Tipo != models.ClaimTypeUnset {
		m.draft.DocumentosRoubados = nil
	}
	m.draft.Tipo = t
}

// StepSequence returns the ordered steps the wizard will walk for the
// choices recorded on the draft. Steps after an unanswered branch are
// omitted.
func StepSequence(draft *models.FormDraft) []FormState {
	steps := []FormState{StateClaimType}

	switch draft.Tipo {
	case models.ClaimTypeCollision:
		steps = append(steps,
			StateOwnVehiclePhotos,
			StateThirdPartyInfo,
			StateThirdPartyPhotos,
			StatePoliceReport,
			StateFinalize,
		)
	case models.ClaimTypeTheft, models.ClaimTypeRobbery:
		steps = append(steps, StateDocumentsQuestion)
		if draft.DocumentosRoubados == nil {
			return steps
		}
		if *draft.DocumentosRoubados {
			steps = append(steps, StateIdentity)
		} else {
			steps = append(steps, StateLicense, StateRegistration)
		}
		steps = append(steps,
			StateVehiclePhotos,
			StatePoliceReport,
			StateFinalize,
		)
	}

	return steps
}
