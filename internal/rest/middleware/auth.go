package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/netbill/netbill/internal/auth"
	"github.com/netbill/netbill/internal/config"
	ierr "github.com/netbill/netbill/internal/errors"
	"github.com/netbill/netbill/internal/logger"
	"github.com/netbill/netbill/internal/types"
)

// AuthMiddleware authenticates requests with a bearer JWT or a static API
// key. Claims are copied into the request context so repositories downstream
// see the tenant scope.
func AuthMiddleware(provider auth.Provider, cfg *config.Configuration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey := c.GetHeader(cfg.Auth.APIKeyHeader); apiKey != "" {
			tenantID, userID, ok := auth.ValidateAPIKey(cfg, apiKey)
			if !ok {
				abortUnauthorized(c, "invalid api key")
				return
			}
			applyClaims(c, &auth.Claims{
				TenantID: tenantID,
				UserID:   userID,
				Role:     types.UserRoleAdmin,
			})
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing authorization")
			return
		}

		claims, err := provider.ValidateToken(c.Request.Context(), strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			log.Debugw("token validation failed", "error", err)
			abortUnauthorized(c, "invalid token")
			return
		}
		if claims.TenantID == "" {
			abortUnauthorized(c, "token has no tenant")
			return
		}

		applyClaims(c, claims)
		c.Next()
	}
}

// RequireRole gates a route group to the given staff roles
func RequireRole(roles ...types.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := types.GetUserRole(c.Request.Context())
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, ierr.ErrorResponse{
			Error: ierr.ErrorDetail{Display: "insufficient permissions"},
		})
	}
}

// RequireCustomerSession gates portal routes to tokens carrying a customer id
func RequireCustomerSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if types.GetCustomerID(c.Request.Context()) == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, ierr.ErrorResponse{
				Error: ierr.ErrorDetail{Display: "portal session required"},
			})
			return
		}
		c.Next()
	}
}

func applyClaims(c *gin.Context, claims *auth.Claims) {
	ctx := c.Request.Context()
	ctx = types.SetTenantID(ctx, claims.TenantID)
	ctx = types.SetUserID(ctx, claims.UserID)
	ctx = types.SetUserRole(ctx, claims.Role)
	if claims.CustomerID != "" {
		ctx = types.SetCustomerID(ctx, claims.CustomerID)
	}
	c.Request = c.Request.WithContext(ctx)
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ierr.ErrorResponse{
		Error: ierr.ErrorDetail{Display: msg},
	})
}
