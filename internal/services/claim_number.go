package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/logging"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ClaimNumberStore provides the persisted maximum claim number for a prefix
type ClaimNumberStore interface {
	// LastClaimNumber returns the lexicographically greatest numero_sinistro
	// with the given prefix, or "" when none exists.
	LastClaimNumber(ctx context.Context, prefix string) (string, error)
}

// mongoClaimNumberStore reads the current maximum from the sinistro collection
type mongoClaimNumberStore struct {
	database *mongo.Database
}

func (s *mongoClaimNumberStore) LastClaimNumber(ctx context.Context, prefix string) (string, error) {
	collection := s.database.Collection(config.AppConfig.SinistroCollection)

	// String ordering is safe because the numeric suffix is zero-padded
	filter := bson.M{"numero_sinistro": bson.M{"$regex": "^" + prefix}}
	opts := options.FindOne().SetSort(bson.D{{Key: "numero_sinistro", Value: -1}})

	var doc struct {
		NumeroSinistro string `bson:"numero_sinistro"`
	}
	err := collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query last claim number: %w", err)
	}
	return doc.NumeroSinistro, nil
}

// ClaimNumberGenerator produces sequential SIN-<year>-NNNNNN identifiers.
// Callers are serialized behind a mutex, which closes the read-then-increment
// race for a single instance; the unique index on numero_sinistro protects
// multi-instance deployments.
type ClaimNumberGenerator struct {
	store  ClaimNumberStore
	now    func() time.Time
	logger *logging.SafeLogger
	mu     sync.Mutex
}

// NewClaimNumberGenerator creates a generator over the given store
func NewClaimNumberGenerator(store ClaimNumberStore, now func() time.Time, logger *logging.SafeLogger) *ClaimNumberGenerator {
	if now == nil {
		now = time.Now
	}
	return &ClaimNumberGenerator{
		store:  store,
		now:    now,
		logger: logger,
	}
}

// Global generator instance
var ClaimNumberGeneratorInstance *ClaimNumberGenerator

// InitClaimNumberGenerator initializes the global generator
func InitClaimNumberGenerator() {
	ClaimNumberGeneratorInstance = NewClaimNumberGenerator(
		&mongoClaimNumberStore{database: config.MongoDB},
		time.Now,
		logging.Logger,
	)
}

// Generate returns the next claim number for the current year. A store
// failure degrades to a timestamp-derived identifier instead of propagating.
func (g *ClaimNumberGenerator) Generate(ctx context.Context) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	prefix := fmt.Sprintf("SIN-%d-", now.Year())

	last, err := g.store.LastClaimNumber(ctx, prefix)
	if err != nil {
		g.logger.Error("claim number query failed, using timestamp fallback",
			zap.String("prefix", prefix),
			zap.Error(err))
		observability.ClaimNumbersGenerated.WithLabelValues("fallback").Inc()
		return g.fallback(prefix, now)
	}

	next := 1
	if last != "" {
		suffix := last[len(prefix):]
		parsed, parseErr := strconv.Atoi(suffix)
		if parseErr != nil {
			g.logger.Error("malformed claim number in store, using timestamp fallback",
				zap.String("numero_sinistro", last),
				zap.Error(parseErr))
			observability.ClaimNumbersGenerated.WithLabelValues("fallback").Inc()
			return g.fallback(prefix, now)
		}
		next = parsed + 1
	}

	observability.ClaimNumbersGenerated.WithLabelValues("sequential").Inc()
	return fmt.Sprintf("%s%06d", prefix, next)
}

// fallback derives a degraded, non-sequential but still well-formed number
// from the last six digits of the epoch milliseconds
func (g *ClaimNumberGenerator) fallback(prefix string, now time.Time) string {
	millis := now.UnixMilli()
	return fmt.Sprintf("%s%06d", prefix, millis%1000000)
}
