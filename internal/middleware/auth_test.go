package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/autoprotege/app-sinistro/internal/config"
	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/autoprotege/app-sinistro/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() {
	config.AppConfig = &config.Config{
		JWTSecret:    "middleware-test-secret",
		AdminGroup:   "admin",
		ManagerGroup: "manager",
	}
}

func signTestToken(t *testing.T, role string) string {
	t.Helper()

	claims := models.SessionClaims{
		Email: "user@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "65f0000000000000000000aa",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "app-sinistro",
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)
	return token
}

func protectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware()}, handlers...)
	chain = append(chain, func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/protected", chain...)
	return router
}

func TestAuthMiddleware(t *testing.T) {
	testConfig()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "Valid bearer token",
			authHeader: "Bearer " + signTestToken(t, models.RoleManager),
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Malformed header",
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Garbage token",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
	}

	router := protectedRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	testConfig()

	tests := []struct {
		name       string
		role       string
		middleware gin.HandlerFunc
		wantStatus int
	}{
		{
			name:       "Manager passes manager gate",
			role:       models.RoleManager,
			middleware: RequireManager(),
			wantStatus: http.StatusOK,
		},
		{
			name:       "Admin passes manager gate",
			role:       models.RoleAdmin,
			middleware: RequireManager(),
			wantStatus: http.StatusOK,
		},
		{
			name:       "Manager blocked by admin gate",
			role:       models.RoleManager,
			middleware: RequireAdmin(),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "Unknown role blocked",
			role:       "viewer",
			middleware: RequireManager(),
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := protectedRouter(tt.middleware)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+signTestToken(t, tt.role))
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	testConfig()

	tests := []struct {
		name       string
		authHeader string
		wantClaims bool
	}{
		{
			name:       "Valid token sets claims",
			authHeader: "Bearer " + signTestToken(t, models.RoleManager),
			wantClaims: true,
		},
		{
			name:       "Missing header passes without claims",
			authHeader: "",
			wantClaims: false,
		},
		{
			name:       "Garbage token passes without claims",
			authHeader: "Bearer not-a-jwt",
			wantClaims: false,
		},
		{
			name:       "Malformed header passes without claims",
			authHeader: "Token abc",
			wantClaims: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()

			var sawClaims bool
			router.POST("/open", OptionalAuthMiddleware(), func(c *gin.Context) {
				_, sawClaims = c.Get("claims")
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/open", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code, "optional auth must never reject")
			assert.Equal(t, tt.wantClaims, sawClaims)
		})
	}
}

func TestParseSessionMatchesMiddlewareSecret(t *testing.T) {
	testConfig()

	token := signTestToken(t, models.RoleAdmin)
	claims, err := services.ParseSession(token, config.AppConfig.JWTSecret)

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}
