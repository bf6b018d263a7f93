package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/logging"
	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/observability"
	"github.com/autoprotege/app-sinistro/internal/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompletionTokenStore is the persistence surface the link service needs
type CompletionTokenStore interface {
	GetSinistroByID(ctx context.Context, id string) (*models.Sinistro, error)
	SetCompletionToken(ctx context.Context, id, token string, expiresAt time.Time) error
}

// CompletionLinkService issues and validates token-gated completion links
// for claims a manager opened on behalf of a client
type CompletionLinkService struct {
	store    CompletionTokenStore
	baseURL  string
	tokenTTL time.Duration
	now      func() time.Time
	newToken func() string
	logger   *logging.SafeLogger
}

// NewCompletionLinkService creates a link service with injected clock and
// token source
func NewCompletionLinkService(store CompletionTokenStore, baseURL string, tokenTTL time.Duration, now func() time.Time, newToken func() string, logger *logging.SafeLogger) *CompletionLinkService {
	if now == nil {
		now = time.Now
	}
	if newToken == nil {
		newToken = uuid.NewString
	}
	return &CompletionLinkService{
		store:    store,
		baseURL:  baseURL,
		tokenTTL: tokenTTL,
		now:      now,
		newToken: newToken,
		logger:   logger,
	}
}

// Global link service instance
var CompletionLinkServiceInstance *CompletionLinkService

// InitCompletionLinkService initializes the global link service
func InitCompletionLinkService(store CompletionTokenStore) {
	CompletionLinkServiceInstance = NewCompletionLinkService(
		store,
		config.AppConfig.PublicBaseURL,
		config.AppConfig.CompletionTokenTTL,
		time.Now,
		uuid.NewString,
		logging.Logger,
	)
}

// IssueOrRefreshLink returns the completion URL for a manager-created claim.
// An unexpired token is reused; an absent or expired one is replaced with a
// fresh token valid for the configured lifetime.
func (s *CompletionLinkService) IssueOrRefreshLink(ctx context.Context, sinistroID string, auditCtx utils.AuditContext) (*models.CompletionLinkResponse, error) {
	sinistro, err := s.store.GetSinistroByID(ctx, sinistroID)
	if err != nil {
		observability.CompletionLinks.WithLabelValues("issue", lookupResult(err)).Inc()
		return nil, err
	}

	if !sinistro.CreatedByManager {
		observability.CompletionLinks.WithLabelValues("issue", "forbidden").Inc()
		return nil, models.ErrNotManagerCreated
	}

	now := s.now()
	token := sinistro.CompletionToken
	expiresAt := sinistro.TokenExpiresAt

	if token == "" || expiresAt == nil || expiresAt.Before(now) {
		token = s.newToken()
		newExpiry := now.Add(s.tokenTTL)
		expiresAt = &newExpiry

		if err := s.store.SetCompletionToken(ctx, sinistroID, token, newExpiry); err != nil {
			observability.CompletionLinks.WithLabelValues("issue", "error").Inc()
			return nil, fmt.Errorf("failed to persist completion token: %w", err)
		}

		s.logger.Info("completion token minted",
			zap.String("sinistro_id", sinistroID),
			zap.String("token", observability.MaskToken(token)),
			zap.Time("expires_at", newExpiry))
	}

	// Best-effort audit; never blocks the success path
	utils.LogAuditEvent(ctx, auditCtx, utils.AuditActionCreate, utils.AuditResourceCompletionLink,
		sinistroID, nil, nil, map[string]string{"numero_sinistro": sinistro.NumeroSinistro})

	observability.CompletionLinks.WithLabelValues("issue", "success").Inc()
	return &models.CompletionLinkResponse{
		Success:        true,
		Link:           fmt.Sprintf("%s/completar-ocorrencia/%s?token=%s", s.baseURL, sinistroID, token),
		Token:          token,
		ExpiresAt:      *expiresAt,
		NumeroSinistro: sinistro.NumeroSinistro,
	}, nil
}

// ValidateLink checks a claim/token pair and returns the full claim record.
// Token comparison is constant-time.
func (s *CompletionLinkService) ValidateLink(ctx context.Context, sinistroID, token string, auditCtx utils.AuditContext) (*models.Sinistro, error) {
	sinistro, err := s.store.GetSinistroByID(ctx, sinistroID)
	if err != nil {
		observability.CompletionLinks.WithLabelValues("validate", lookupResult(err)).Inc()
		return nil, err
	}

	if sinistro.CompletionToken == "" ||
		subtle.ConstantTimeCompare([]byte(sinistro.CompletionToken), []byte(token)) != 1 {
		observability.CompletionLinks.WithLabelValues("validate", "not_found").Inc()
		return nil, models.ErrSinistroNotFound
	}

	if sinistro.TokenExpiresAt == nil || sinistro.TokenExpiresAt.Before(s.now()) {
		observability.CompletionLinks.WithLabelValues("validate", "expired").Inc()
		return nil, models.ErrTokenExpired
	}

	utils.LogAuditEvent(ctx, auditCtx, utils.AuditActionValidate, utils.AuditResourceCompletionLink,
		sinistroID, nil, nil, map[string]string{"numero_sinistro": sinistro.NumeroSinistro})

	observability.CompletionLinks.WithLabelValues("validate", "success").Inc()
	return sinistro, nil
}

// lookupResult distinguishes a missing claim from an infrastructure failure
// for the metric result label
func lookupResult(err error) string {
	if errors.Is(err, models.ErrSinistroNotFound) {
		return "not_found"
	}
	return "error"
}
