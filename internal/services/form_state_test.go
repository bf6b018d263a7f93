package services

import (
	"testing"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoOf(kind models.PhotoKind) models.PhotoDocument {
	return models.PhotoDocument{Kind: kind, FileName: string(kind) + "_1700000000000.jpg", Timestamp: 1700000000000}
}

func TestFormMachineTheftWithStolenDocumentsSkipsCaptures(t *testing.T) {
	m := NewFormMachine(nil)

	require.NoError(t, m.Apply(EventSelectTheft))
	assert.Equal(t, StateDocumentsQuestion, m.Current())

	require.NoError(t, m.Apply(EventDocumentsStolen))
	assert.Equal(t, StateIdentity, m.Current(), "stolen documents skip the CNH and CRLV captures")

	m.Draft().Nome = "Maria Souza"
	m.Draft().CPF = "11144477735"
	m.Draft().Placa = "ABC1D23"
	require.NoError(t, m.Apply(EventNext))
	assert.Equal(t, StateVehiclePhotos, m.Current())

	m.Draft().Fotos = append(m.Draft().Fotos, photoOf(models.PhotoKindVehicle))
	require.NoError(t, m.Apply(EventNext))
	assert.Equal(t, StatePoliceReport, m.Current())

	m.Draft().Fotos = append(m.Draft().Fotos, photoOf(models.PhotoKindPoliceReport))
	require.NoError(t, m.Apply(EventNext))
	assert.Equal(t, StateFinalize, m.Current())
}

func TestFormMachineTheftWithKeptDocumentsCapturesBoth(t *testing.T) {
	m := NewFormMachine(nil)

	require.NoError(t, m.Apply(EventSelectTheft))
	require.NoError(t, m.Apply(EventDocumentsKept))
	assert.Equal(t, StateLicense, m.Current())

	m.Draft().Fotos = append(m.Draft().Fotos, photoOf(models.PhotoKindCNH))
	require.NoError(t, m.Apply(EventNext))
	assert.Equal(t, StateRegistration, m.Current())

	m.Draft().Fotos = append(m.Draft().Fotos, photoOf(models.PhotoKindCRLV))
	require.NoError(t, m.Apply(EventNext))
	assert.Equal(t, StateVehiclePhotos, m.Current())
}

func TestFormMachineCollisionBranch(t *testing.T) {
	m := NewFormMachine(nil)

	require.NoError(t, m.Apply(EventSelectCollision))
	assert.Equal(t, StateOwnVehiclePhotos, m.Current())

	m.Draft().Fotos = append(m.Draft().Fotos, photoOf(models.PhotoKindVehicle))
	require.NoError(t, m.Apply(EventNext))
	assert.Equal(t, StateThirdPartyInfo, m.Current())

	m.Draft().TerceiroNome = "José Pereira"
	require.NoError(t, m.Apply(EventNext))
	assert.Equal(t, StateThirdPartyPhotos, m.Current())

	require.NoError(t, m.Apply(EventNext))
	assert.Equal(t, StatePoliceReport, m.Current())
}

func TestFormMachineGuardBlocksIncompleteStep(t *testing.T) {
	m := NewFormMachine(nil)
	require.NoError(t, m.Apply(EventSelectTheft))
	require.NoError(t, m.Apply(EventDocumentsStolen))

	// Identity step with no data
	err := m.Apply(EventNext)
	assert.ErrorIs(t, err, models.ErrStepIncomplete)
	assert.Equal(t, StateIdentity, m.Current(), "a failed guard must not advance the machine")

	// Invalid CPF still blocks
	m.Draft().Nome = "Maria Souza"
	m.Draft().CPF = "11111111111"
	m.Draft().Placa = "ABC1D23"
	assert.ErrorIs(t, m.Apply(EventNext), models.ErrStepIncomplete)
}

func TestFormMachineRejectsUnknownTransition(t *testing.T) {
	m := NewFormMachine(nil)

	assert.ErrorIs(t, m.Apply(EventNext), models.ErrUnknownTransition)
	assert.ErrorIs(t, m.Apply(EventDocumentsStolen), models.ErrUnknownTransition)
}

func TestFormMachineBackPreservesDraft(t *testing.T) {
	m := NewFormMachine(nil)
	require.NoError(t, m.Apply(EventSelectTheft))
	require.NoError(t, m.Apply(EventDocumentsKept))
	m.Draft().Fotos = append(m.Draft().Fotos, photoOf(models.PhotoKindCNH))

	require.NoError(t, m.Apply(EventBack))
	assert.Equal(t, StateDocumentsQuestion, m.Current())
	assert.Len(t, m.Draft().Fotos, 1, "backward navigation must not discard captured data")

	require.NoError(t, m.Apply(EventBack))
	assert.Equal(t, StateClaimType, m.Current())

	// At the first step there is nothing to go back to
	assert.ErrorIs(t, m.Apply(EventBack), models.ErrUnknownTransition)
}

func TestFormMachineTypeChangeResetsBranchAnswer(t *testing.T) {
	m := NewFormMachine(nil)
	require.NoError(t, m.Apply(EventSelectTheft))
	require.NoError(t, m.Apply(EventDocumentsStolen))
	require.NotNil(t, m.Draft().DocumentosRoubados)

	require.NoError(t, m.Apply(EventBack))
	require.NoError(t, m.Apply(EventBack))

	require.NoError(t, m.Apply(EventSelectCollision))
	assert.Nil(t, m.Draft().DocumentosRoubados, "re-selecting the type restarts the branch cleanly")
}

func TestStepSequence(t *testing.T) {
	stolen := true
	kept := false

	tests := []struct {
		name  string
		draft models.FormDraft
		want  []FormState
	}{
		{
			name:  "No type chosen",
			draft: models.FormDraft{},
			want:  []FormState{StateClaimType},
		},
		{
			name:  "Collision",
			draft: models.FormDraft{Tipo: models.ClaimTypeCollision},
			want: []FormState{
				StateClaimType, StateOwnVehiclePhotos, StateThirdPartyInfo,
				StateThirdPartyPhotos, StatePoliceReport, StateFinalize,
			},
		},
		{
			name:  "Theft with unanswered documents question",
			draft: models.FormDraft{Tipo: models.ClaimTypeTheft},
			want:  []FormState{StateClaimType, StateDocumentsQuestion},
		},
		{
			name:  "Theft with stolen documents",
			draft: models.FormDraft{Tipo: models.ClaimTypeTheft, DocumentosRoubados: &stolen},
			want: []FormState{
				StateClaimType, StateDocumentsQuestion, StateIdentity,
				StateVehiclePhotos, StatePoliceReport, StateFinalize,
			},
		},
		{
			name:  "Robbery with kept documents",
			draft: models.FormDraft{Tipo: models.ClaimTypeRobbery, DocumentosRoubados: &kept},
			want: []FormState{
				StateClaimType, StateDocumentsQuestion, StateLicense, StateRegistration,
				StateVehiclePhotos, StatePoliceReport, StateFinalize,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StepSequence(&tt.draft))
		})
	}
}
