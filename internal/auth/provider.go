package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/netbill/netbill/internal/config"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/types"
)

// Claims carries the authenticated identity extracted from a JWT
type Claims struct {
	UserID     string
	TenantID   string
	Role       types.UserRole
	CustomerID string
}

// Provider validates and issues HS256 tokens
type Provider interface {
	ValidateToken(ctx context.Context, token string) (*Claims, error)
	GenerateToken(ctx context.Context, claims *Claims, ttl time.Duration) (string, error)
}

type jwtProvider struct {
	cfg config.AuthConfig
}

// NewProvider creates a JWT auth provider
func NewProvider(cfg *config.Configuration) Provider {
	return &jwtProvider{cfg: cfg.Auth}
}

func (p *jwtProvider) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(p.cfg.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	mapClaims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, userOk := mapClaims["user_id"].(string)
	tenantID, tenantOk := mapClaims["tenant_id"].(string)
	if !userOk || !tenantOk || userID == "" || tenantID == "" {
		return nil, ierr.NewError("token missing identity claims").
			WithHint("Token missing identity claims").
			Mark(ierr.ErrPermissionDenied)
	}

	claims := &Claims{
		UserID:   userID,
		TenantID: tenantID,
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = types.UserRole(role)
	}
	if customerID, ok := mapClaims["customer_id"].(string); ok {
		claims.CustomerID = customerID
	}

	return claims, nil
}

func (p *jwtProvider) GenerateToken(ctx context.Context, claims *Claims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	mapClaims := jwt.MapClaims{
		"user_id":   claims.UserID,
		"tenant_id": claims.TenantID,
		"role":      string(claims.Role),
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	if claims.CustomerID != "" {
		mapClaims["customer_id"] = claims.CustomerID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to sign token").
			Mark(ierr.ErrSystem)
	}
	return signed, nil
}

// ValidateAPIKey resolves a static API key to a tenant and user identity
func ValidateAPIKey(cfg *config.Configuration, key string) (tenantID string, userID string, ok bool) {
	if key == "" || len(cfg.Auth.APIKeys) == 0 {
		return "", "", false
	}
	identity, found := cfg.Auth.APIKeys[key]
	if !found {
		return "", "", false
	}
	// identity is stored as "tenantID:userID"
	for i := 0; i < len(identity); i++ {
		if identity[i] == ':' {
			return identity[:i], identity[i+1:], true
		}
	}
	return "", "", false
}
