package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/logging"
	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"github.com/autoprotege/app-sinistro/internal/redisclient"
	"github.com/autoprotege/app-sinistro/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// initialStatus is assigned to every newly finalized claim
const initialStatus = "pendente"

// ClaimService handles claim persistence and the dashboard listing
type ClaimService struct {
	database  *mongo.Database
	cache     *redisclient.Client
	cacheTTL  time.Duration
	generator *ClaimNumberGenerator
	registry  *StatusRegistry
	logger    *logging.SafeLogger
}

// NewClaimService creates a new claim service instance
func NewClaimService(database *mongo.Database, cache *redisclient.Client, cacheTTL time.Duration, generator *ClaimNumberGenerator, registry *StatusRegistry, logger *logging.SafeLogger) *ClaimService {
	return &ClaimService{
		database:  database,
		cache:     cache,
		cacheTTL:  cacheTTL,
		generator: generator,
		registry:  registry,
		logger:    logger,
	}
}

// ClaimStore is the claim-service surface consumed by the HTTP layer and the
// completion-link service
type ClaimStore interface {
	CreateSinistro(ctx context.Context, draft *models.FormDraft, createdByManager bool, auditCtx utils.AuditContext) (*models.Sinistro, error)
	GetSinistroByID(ctx context.Context, id string) (*models.Sinistro, error)
	ListSinistros(ctx context.Context, page, perPage int, status string) (*models.PaginatedSinistros, error)
	UpdateStatus(ctx context.Context, id, newStatus string, auditCtx utils.AuditContext) (*models.Sinistro, error)
	SetCompletionToken(ctx context.Context, id, token string, expiresAt time.Time) error
}

// Global claim service instance
var ClaimServiceInstance ClaimStore

// InitClaimService initializes the global claim service instance
func InitClaimService() {
	ClaimServiceInstance = NewClaimService(
		config.MongoDB,
		config.Redis,
		config.AppConfig.RedisTTL,
		ClaimNumberGeneratorInstance,
		StatusRegistryInstance,
		logging.Logger,
	)
}

func (s *ClaimService) collection() *mongo.Collection {
	return s.database.Collection(config.AppConfig.SinistroCollection)
}

func cacheKey(id string) string {
	return "sinistro:" + id
}

// CreateSinistro validates a finalized draft, assigns a claim number and
// persists the record. Identity fields are validated only for the flows that
// collect them.
func (s *ClaimService) CreateSinistro(ctx context.Context, draft *models.FormDraft, createdByManager bool, auditCtx utils.AuditContext) (*models.Sinistro, error) {
	if !draft.Tipo.Valid() {
		return nil, models.ErrInvalidClaimType
	}
	if draft.CPF != "" && !utils.ValidateCPF(draft.CPF) {
		return nil, models.ErrInvalidCPF
	}
	if draft.Placa != "" && !utils.ValidatePlate(draft.Placa) {
		return nil, models.ErrInvalidPlate
	}

	telefone := draft.Telefone
	if telefone != "" {
		normalized, err := utils.NormalizePhone(telefone)
		if err != nil {
			return nil, fmt.Errorf("invalid contact phone: %w", err)
		}
		telefone = normalized
	}

	genCtx, genSpan := utils.TraceBusinessLogic(ctx, "claim_number_generation")
	numero := s.generator.Generate(genCtx)
	genSpan.End()

	now := time.Now()
	sinistro := &models.Sinistro{
		NumeroSinistro:     numero,
		Tipo:               draft.Tipo,
		Status:             initialStatus,
		Nome:               draft.Nome,
		CPF:                utils.FormatCPF(draft.CPF),
		Placa:              utils.FormatPlate(draft.Placa),
		Telefone:           telefone,
		DocumentosRoubados: draft.DocumentosRoubados,
		Fotos:              draft.Fotos,
		CreatedByManager:   createdByManager,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	result, err := s.collection().InsertOne(ctx, sinistro)
	if mongo.IsDuplicateKeyError(err) {
		// Another instance raced us to the same sequence value; take the
		// next one and retry once
		sinistro.NumeroSinistro = s.generator.Generate(ctx)
		result, err = s.collection().InsertOne(ctx, sinistro)
	}
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("insert", "error").Inc()
		return nil, fmt.Errorf("failed to insert sinistro: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("insert", "success").Inc()

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		sinistro.ID = oid
	}

	auditCtx.NumeroSinistro = sinistro.NumeroSinistro
	utils.LogAuditEvent(ctx, auditCtx, utils.AuditActionCreate, utils.AuditResourceSinistro,
		sinistro.ID.Hex(), nil, nil, map[string]string{"tipo": string(sinistro.Tipo)})

	s.logger.Info("sinistro created",
		zap.String("numero_sinistro", sinistro.NumeroSinistro),
		zap.String("tipo", string(sinistro.Tipo)),
		zap.String("cpf", observability.MaskCPF(sinistro.CPF)),
		zap.Bool("created_by_manager", createdByManager))

	return sinistro, nil
}

// GetSinistroByID retrieves a claim, reading through the Redis cache
func (s *ClaimService) GetSinistroByID(ctx context.Context, id string) (*models.Sinistro, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrSinistroNotFound
	}

	if s.cache != nil {
		cacheCtx, cacheSpan := utils.TraceCacheGet(ctx, cacheKey(id))
		cached, cacheErr := s.cache.Get(cacheCtx, cacheKey(id)).Result()
		cacheSpan.End()
		if cacheErr == nil {
			var sinistro models.Sinistro
			if err := json.Unmarshal([]byte(cached), &sinistro); err == nil {
				observability.CacheHits.WithLabelValues("sinistro_get").Inc()
				return &sinistro, nil
			}
		}
	}

	findCtx, findSpan := utils.TraceDatabaseFind(ctx, config.AppConfig.SinistroCollection, "_id")
	var sinistro models.Sinistro
	err = s.collection().FindOne(findCtx, bson.M{"_id": oid}).Decode(&sinistro)
	findSpan.End()
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrSinistroNotFound
	}
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("find", "error").Inc()
		return nil, fmt.Errorf("failed to find sinistro: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("find", "success").Inc()

	if s.cache != nil {
		if data, err := json.Marshal(&sinistro); err == nil {
			s.cache.Set(ctx, cacheKey(id), data, s.cacheTTL)
		}
	}

	return &sinistro, nil
}

// ListSinistros returns a paginated dashboard listing, optionally filtered
// by status, newest first
func (s *ClaimService) ListSinistros(ctx context.Context, page, perPage int, status string) (*models.PaginatedSinistros, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.collection().CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count sinistros: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find sinistros: %w", err)
	}
	defer cursor.Close(ctx)

	var sinistros []models.Sinistro
	if err = cursor.All(ctx, &sinistros); err != nil {
		return nil, fmt.Errorf("failed to decode sinistros: %w", err)
	}

	response := &models.PaginatedSinistros{Data: sinistros}
	response.Pagination.Page = page
	response.Pagination.PerPage = perPage
	response.Pagination.Total = int(total)
	response.Pagination.TotalPages = int(math.Ceil(float64(total) / float64(perPage)))
	return response, nil
}

// UpdateStatus moves a claim to a new status. Only active statuses from the
// registry are selectable, and terminal claims stay put.
func (s *ClaimService) UpdateStatus(ctx context.Context, id, newStatus string, auditCtx utils.AuditContext) (*models.Sinistro, error) {
	sinistro, err := s.GetSinistroByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if IsTerminal(sinistro.Status) {
		return nil, fmt.Errorf("%w: %s", models.ErrTerminalStatus, sinistro.Status)
	}

	target, err := s.registry.ActiveStatus(ctx, newStatus)
	if err != nil {
		return nil, err
	}

	oid, _ := primitive.ObjectIDFromHex(id)
	update := bson.M{"$set": bson.M{"status": target.Nome, "updated_at": time.Now()}}
	updateCtx, updateSpan := utils.TraceDatabaseUpdate(ctx, config.AppConfig.SinistroCollection, "_id")
	_, err = s.collection().UpdateOne(updateCtx, bson.M{"_id": oid}, update)
	updateSpan.End()
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("update", "error").Inc()
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	observability.DatabaseOperations.WithLabelValues("update", "success").Inc()

	s.invalidateCache(ctx, id)

	auditCtx.NumeroSinistro = sinistro.NumeroSinistro
	utils.LogAuditEvent(ctx, auditCtx, utils.AuditActionUpdate, utils.AuditResourceStatus,
		id, sinistro.Status, target.Nome, nil)

	sinistro.Status = target.Nome
	return sinistro, nil
}

// SetCompletionToken persists a freshly minted completion token.
// Implements CompletionTokenStore for the link service.
func (s *ClaimService) SetCompletionToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrSinistroNotFound
	}

	update := bson.M{"$set": bson.M{
		"completion_token": token,
		"token_expires_at": expiresAt,
		"updated_at":       time.Now(),
	}}
	result, err := s.collection().UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to persist completion token: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrSinistroNotFound
	}

	s.invalidateCache(ctx, id)
	return nil
}

func (s *ClaimService) invalidateCache(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(id)).Err(); err != nil {
		s.logger.Warn("failed to invalidate sinistro cache",
			zap.String("sinistro_id", id),
			zap.Error(err))
	}
}
