package services

import (
	"testing"
	"time"

	"github.com/autoprotege/app-sinistro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", 24*time.Hour, time.Now, nil)

	user := &models.User{
		ID:    primitive.NewObjectID(),
		Nome:  "Ana Gestora",
		Email: "ana@example.com",
		Role:  models.RoleManager,
		Ativo: true,
	}

	token, err := svc.signSession(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseSession(token, "test-secret")
	require.NoError(t, err)

	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana Gestora", claims.Nome)
	assert.Equal(t, models.RoleManager, claims.Role)
	assert.Equal(t, "app-sinistro", claims.Issuer)
}

func TestParseSessionRejectsWrongSecret(t *testing.T) {
	svc := NewAuthService(nil, "test-secret", 24*time.Hour, time.Now, nil)

	token, err := svc.signSession(&models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = ParseSession(token, "another-secret")
	assert.Error(t, err)
}

func TestParseSessionRejectsExpiredToken(t *testing.T) {
	past := func() time.Time { return time.Now().Add(-48 * time.Hour) }
	svc := NewAuthService(nil, "test-secret", 24*time.Hour, past, nil)

	token, err := svc.signSession(&models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = ParseSession(token, "test-secret")
	assert.Error(t, err)
}

func TestParseSessionRejectsGarbage(t *testing.T) {
	_, err := ParseSession("not-a-jwt", "test-secret")
	assert.Error(t, err)
}

func TestUserHasAllowedRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{models.RoleAdmin, true},
		{models.RoleManager, true},
		{"viewer", false},
		{"", false},
	}

	for _, tt := range tests {
		u := models.User{Role: tt.role}
		assert.Equal(t, tt.want, u.HasAllowedRole(), "role %q", tt.role)
	}
}
