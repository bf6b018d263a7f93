package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/logging"
	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// terminalStatuses is the fixed set of states a claim cannot leave.
// Terminal-ness is a structural property, not configurable data, so the set
// is independent of the dynamic registry.
var terminalStatuses = map[string]struct{}{
	"concluido": {},
	"rejeitado": {},
	"arquivado": {},
}

// IsTerminal reports whether a status name denotes a terminal state
func IsTerminal(name string) bool {
	_, ok := terminalStatuses[strings.ToLower(name)]
	return ok
}

// StatusFetcher retrieves the configured status list from the store
type StatusFetcher interface {
	FetchStatuses(ctx context.Context) ([]models.SinistroStatus, error)
}

// mongoStatusFetcher reads statuses from the status collection
type mongoStatusFetcher struct {
	database *mongo.Database
}

func (f *mongoStatusFetcher) FetchStatuses(ctx context.Context) ([]models.SinistroStatus, error) {
	collection := f.database.Collection(config.AppConfig.StatusCollection)

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "ordem", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find statuses: %w", err)
	}
	defer cursor.Close(ctx)

	var statuses []models.SinistroStatus
	if err = cursor.All(ctx, &statuses); err != nil {
		return nil, fmt.Errorf("failed to decode statuses: %w", err)
	}
	if len(statuses) == 0 {
		return nil, fmt.Errorf("status collection is empty")
	}
	return statuses, nil
}

// StatusRegistry is a memoized accessor for the configured claim statuses.
// The cache holds for the configured TTL; a failed refresh serves the
// built-in default list without touching the cache, so the next call retries.
type StatusRegistry struct {
	fetcher StatusFetcher
	ttl     time.Duration
	now     func() time.Time
	logger  *logging.SafeLogger

	mu        sync.Mutex
	cached    []models.SinistroStatus
	fetchedAt time.Time
}

// NewStatusRegistry creates a registry with an injected clock
func NewStatusRegistry(fetcher StatusFetcher, ttl time.Duration, now func() time.Time, logger *logging.SafeLogger) *StatusRegistry {
	if now == nil {
		now = time.Now
	}
	return &StatusRegistry{
		fetcher: fetcher,
		ttl:     ttl,
		now:     now,
		logger:  logger,
	}
}

// Global registry instance
var StatusRegistryInstance *StatusRegistry

// InitStatusRegistry initializes the global status registry
func InitStatusRegistry() {
	StatusRegistryInstance = NewStatusRegistry(
		&mongoStatusFetcher{database: config.MongoDB},
		config.AppConfig.StatusCacheTTL,
		time.Now,
		logging.Logger,
	)
}

// GetStatuses returns the cached status list, refreshing it when the TTL has
// lapsed. Fetch failures fall back to the default list.
func (r *StatusRegistry) GetStatuses(ctx context.Context) []models.SinistroStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.cached) > 0 && r.now().Sub(r.fetchedAt) < r.ttl {
		observability.CacheHits.WithLabelValues("status_registry").Inc()
		return r.cached
	}

	statuses, err := r.fetcher.FetchStatuses(ctx)
	if err != nil {
		// Cache stays untouched so a later call retries before the TTL
		// would have expired it
		r.logger.Warn("status fetch failed, serving default list", zap.Error(err))
		observability.StatusRegistryFetches.WithLabelValues("fallback").Inc()
		return models.DefaultStatuses()
	}

	r.cached = statuses
	r.fetchedAt = r.now()
	observability.StatusRegistryFetches.WithLabelValues("success").Inc()
	return r.cached
}

// Invalidate clears the cache unconditionally. Call it after any out-of-band
// status mutation.
func (r *StatusRegistry) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = nil
	r.fetchedAt = time.Time{}
}

// ActiveStatus returns the active status with the given name, or an error
// when the name is unknown or the status is inactive
func (r *StatusRegistry) ActiveStatus(ctx context.Context, name string) (*models.SinistroStatus, error) {
	name = strings.ToLower(name)
	for _, s := range r.GetStatuses(ctx) {
		if strings.ToLower(s.Nome) == name {
			if !s.Ativo {
				return nil, models.ErrInactiveStatus
			}
			status := s
			return &status, nil
		}
	}
	return nil, models.ErrUnknownStatus
}
