package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/logging"
	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService authenticates dashboard users and issues session tokens
type AuthService struct {
	database   *mongo.Database
	jwtSecret  []byte
	sessionTTL time.Duration
	now        func() time.Time
	logger     *logging.SafeLogger
}

// NewAuthService creates an auth service instance
func NewAuthService(database *mongo.Database, jwtSecret string, sessionTTL time.Duration, now func() time.Time, logger *logging.SafeLogger) *AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		database:   database,
		jwtSecret:  []byte(jwtSecret),
		sessionTTL: sessionTTL,
		now:        now,
		logger:     logger,
	}
}

// Global auth service instance
var AuthServiceInstance *AuthService

// InitAuthService initializes the global auth service
func InitAuthService() {
	AuthServiceInstance = NewAuthService(
		config.MongoDB,
		config.AppConfig.JWTSecret,
		config.AppConfig.SessionTTL,
		time.Now,
		logging.Logger,
	)
}

// Login authenticates an email/password pair. Bad credentials and inactive
// or missing profiles map to ErrInvalidCredentials/ErrInactiveUser (401);
// a disallowed role maps to ErrInsufficientRole (403).
func (s *AuthService) Login(ctx context.Context, email, password string, auditCtx utils.AuditContext) (*models.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.database.Collection(config.AppConfig.UserCollection).
		FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		// Same response as a wrong password to avoid account enumeration
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.SenhaHash), []byte(password)) != nil {
		s.logger.Warn("login failed", zap.String("email", email))
		return nil, models.ErrInvalidCredentials
	}

	if !user.Ativo {
		return nil, models.ErrInactiveUser
	}

	if !user.HasAllowedRole() {
		return nil, models.ErrInsufficientRole
	}

	token, err := s.signSession(&user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	auditCtx.UserID = user.ID.Hex()
	utils.LogAuditEvent(ctx, auditCtx, utils.AuditActionLogin, utils.AuditResourceUser,
		user.ID.Hex(), nil, nil, map[string]string{"role": user.Role})

	s.logger.Info("user logged in",
		zap.String("email", email),
		zap.String("role", user.Role))

	return &models.LoginResponse{Token: token, User: &user}, nil
}

func (s *AuthService) signSession(user *models.User) (string, error) {
	now := s.now()
	claims := models.SessionClaims{
		Email: user.Email,
		Nome:  user.Nome,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			Issuer:    "app-sinistro",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseSession verifies a session token and returns its claims
func ParseSession(tokenString, secret string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
