package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"skylane/concourse/internal/constants"
)

// UserClaims is the JWT payload identifying a caller and their role.
type UserClaims struct {
	UserID      int64          `json:"uid"`
	Email       string         `json:"email"`
	Role        constants.Role `json:"role"`
	AirlineCode *string        `json:"airline_code,omitempty"`
	jwt.RegisteredClaims
}

// NewToken signs a claims set valid for ttl.
func NewToken(secret string, userID int64, email string, role constants.Role, airlineCode *string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := UserClaims{
		UserID:      userID,
		Email:       email,
		Role:        role,
		AirlineCode: airlineCode,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "concourse",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates a bearer token and returns its claims.
func ParseToken(secret, token string) (*UserClaims, error) {
	var claims UserClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return &claims, nil
}

type contextKey string

const userClaimsKey contextKey = "user_claims"

// SetUserClaims stores claims on the request context.
func SetUserClaims(ctx context.Context, claims *UserClaims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// GetUserClaims returns the claims set by the auth middleware, or nil.
func GetUserClaims(ctx context.Context) *UserClaims {
	if claims, ok := ctx.Value(userClaimsKey).(*UserClaims); ok {
		return claims
	}
	return nil
}
