package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatusFetcher struct {
	statuses []models.SinistroStatus
	err      error
	calls    int
}

func (f *fakeStatusFetcher) FetchStatuses(_ context.Context) ([]models.SinistroStatus, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.statuses, nil
}

func configuredStatuses() []models.SinistroStatus {
	return []models.SinistroStatus{
		{Nome: "pendente", Cor: "#f59e0b", Ordem: 1, Ativo: true},
		{Nome: "em_analise", Cor: "#3b82f6", Ordem: 2, Ativo: true},
		{Nome: "suspenso", Cor: "#6b7280", Ordem: 3, Ativo: false},
	}
}

func TestStatusRegistryCachesWithinTTL(t *testing.T) {
	fetcher := &fakeStatusFetcher{statuses: configuredStatuses()}
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	registry := NewStatusRegistry(fetcher, 5*time.Minute, fixedClock(now), nil)

	first := registry.GetStatuses(context.Background())
	second := registry.GetStatuses(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.calls, "second call within the TTL must be served from cache")
}

func TestStatusRegistryRefetchesAfterTTL(t *testing.T) {
	fetcher := &fakeStatusFetcher{statuses: configuredStatuses()}
	current := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	registry := NewStatusRegistry(fetcher, 5*time.Minute, func() time.Time { return current }, nil)

	registry.GetStatuses(context.Background())
	current = current.Add(5*time.Minute + time.Second)
	registry.GetStatuses(context.Background())

	assert.Equal(t, 2, fetcher.calls)
}

func TestStatusRegistryFallbackDoesNotPoisonCache(t *testing.T) {
	fetcher := &fakeStatusFetcher{err: errors.New("primary unreachable")}
	registry := NewStatusRegistry(fetcher, 5*time.Minute, fixedClock(time.Now()), nil)

	got := registry.GetStatuses(context.Background())

	// The default list is served but never cached
	require.Len(t, got, 6)
	assert.Equal(t, "pendente", got[0].Nome)

	// A recovered store is consulted again on the very next call, not after
	// the TTL would have lapsed
	fetcher.err = nil
	fetcher.statuses = configuredStatuses()
	got = registry.GetStatuses(context.Background())

	assert.Equal(t, 2, fetcher.calls)
	assert.Len(t, got, 3)
}

func TestStatusRegistryInvalidate(t *testing.T) {
	fetcher := &fakeStatusFetcher{statuses: configuredStatuses()}
	registry := NewStatusRegistry(fetcher, 5*time.Minute, fixedClock(time.Now()), nil)

	registry.GetStatuses(context.Background())
	registry.Invalidate()
	registry.GetStatuses(context.Background())

	assert.Equal(t, 2, fetcher.calls)
}

func TestStatusRegistryActiveStatus(t *testing.T) {
	fetcher := &fakeStatusFetcher{statuses: configuredStatuses()}
	registry := NewStatusRegistry(fetcher, 5*time.Minute, fixedClock(time.Now()), nil)

	tests := []struct {
		name    string
		status  string
		wantErr error
	}{
		{name: "Active status", status: "em_analise"},
		{name: "Lookup is case-insensitive", status: "EM_ANALISE"},
		{name: "Inactive status", status: "suspenso", wantErr: models.ErrInactiveStatus},
		{name: "Unknown status", status: "inexistente", wantErr: models.ErrUnknownStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.ActiveStatus(context.Background(), tt.status)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "em_analise", got.Nome)
		})
	}
}

func TestIsTerminal(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{"concluido", true},
		{"rejeitado", true},
		{"arquivado", true},
		{"CONCLUIDO", true},
		{"pendente", false},
		{"em_analise", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsTerminal(tt.status), "IsTerminal(%q)", tt.status)
	}
}

func TestDefaultStatusesAreIsolated(t *testing.T) {
	first := models.DefaultStatuses()
	first[0].Nome = "mutated"

	second := models.DefaultStatuses()
	assert.Equal(t, "pendente", second[0].Nome, "DefaultStatuses must return a fresh slice per call")
}
