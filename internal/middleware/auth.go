package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"seniorcare-lead-api/internal/response"
	"seniorcare-lead-api/internal/tenant"
)

const tenantKey = "tenant"

// Claims is the token payload issued by the identity service.
type Claims struct {
	UserID  string `json:"user_id,omitempty"`
	SpaceID string `json:"space_id"`
	jwt.RegisteredClaims
}

// TenantResolver checks that a user may act inside a space.
type TenantResolver interface {
	Resolve(ctx context.Context, userID, spaceID uuid.UUID) (tenant.Context, error)
}

// Auth validates the bearer token locally, resolves the space grant and
// stores the tenant context for handlers.
func Auth(jwtSecret string, resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		// "user_id" first, then the standard subject
		userIDStr := claims.UserID
		if userIDStr == "" {
			userIDStr = claims.Subject
		}
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			abortUnauthorized(c, "Invalid user ID in token")
			return
		}
		spaceID, err := uuid.Parse(claims.SpaceID)
		if err != nil {
			abortUnauthorized(c, "Invalid space ID in token")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		tc, err := resolver.Resolve(ctx, userID, spaceID)
		if err != nil {
			var appErr *response.AppError
			if !errors.As(err, &appErr) {
				appErr = response.Wrap("Failed to resolve space access", err)
			}
			_ = c.Error(err)
			response.SendAppError(c, appErr)
			c.Abort()
			return
		}

		SetTenant(c, tc)
		c.Next()
	}
}

// SetTenant stores tc on the request.
func SetTenant(c *gin.Context, tc tenant.Context) {
	c.Set(tenantKey, tc)
}

// TenantFrom returns the tenant context stored by Auth.
func TenantFrom(c *gin.Context) (tenant.Context, bool) {
	v, ok := c.Get(tenantKey)
	if !ok {
		return tenant.Context{}, false
	}
	tc, ok := v.(tenant.Context)
	return tc, ok && tc.Valid()
}

func abortUnauthorized(c *gin.Context, message string) {
	response.SendError(c, response.CodeUnauthorized, message)
	c.Abort()
}
