package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles accepted by the admin dashboard
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// User represents an admin or manager account
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Nome      string             `bson:"nome" json:"nome"`
	Email     string             `bson:"email" json:"email"`
	SenhaHash string             `bson:"senha_hash" json:"-"`
	Role      string             `bson:"role" json:"role"`
	Ativo     bool               `bson:"ativo" json:"ativo"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// HasAllowedRole reports whether the user's role grants dashboard access
func (u *User) HasAllowedRole() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager
}

// SessionClaims are the JWT claims carried in dashboard session tokens
type SessionClaims struct {
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// LoginRequest is the admin auth request payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the admin auth success payload
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
