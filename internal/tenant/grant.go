package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/response"
)

const grantKeyPrefix = "lead:grant:"

// UserFinder loads a user regardless of space.
type UserFinder interface {
	FindUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type cachedGrant struct {
	SpaceID uuid.UUID `json:"spaceId"`
	Enabled bool      `json:"enabled"`
}

// GrantResolver checks that a user may act inside a space. Successful
// lookups are cached in redis when a client is configured.
type GrantResolver struct {
	users  UserFinder
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewGrantResolver creates a resolver. rdb may be nil.
func NewGrantResolver(users UserFinder, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *GrantResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GrantResolver{users: users, redis: rdb, ttl: ttl, logger: logger}
}

// Resolve returns the tenant context for userID acting in spaceID.
func (r *GrantResolver) Resolve(ctx context.Context, userID, spaceID uuid.UUID) (Context, error) {
	grant, ok := r.fromCache(ctx, userID)
	if !ok {
		user, err := r.users.FindUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return Context{}, response.NewAppError(response.CodeUnauthorized, "User is not registered", "")
			}
			return Context{}, response.Wrap("Failed to resolve user grants", err)
		}
		grant = cachedGrant{SpaceID: user.SpaceID, Enabled: user.Enabled}
		r.store(ctx, userID, grant)
	}

	if !grant.Enabled {
		return Context{}, response.NewAppError(response.CodeUnauthorized, "User is disabled", "")
	}
	if grant.SpaceID != spaceID {
		return Context{}, response.NewAppError(response.CodeUnauthorized, "User has no access to this space", "")
	}
	return New(spaceID, userID), nil
}

// Invalidate drops the cached grant of userID.
func (r *GrantResolver) Invalidate(ctx context.Context, userID uuid.UUID) {
	if r.redis == nil {
		return
	}
	if err := r.redis.Del(ctx, grantKey(userID)).Err(); err != nil {
		r.logger.Warn("Failed to invalidate grant cache", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func (r *GrantResolver) fromCache(ctx context.Context, userID uuid.UUID) (cachedGrant, bool) {
	if r.redis == nil {
		return cachedGrant{}, false
	}
	raw, err := r.redis.Get(ctx, grantKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("Grant cache read failed, falling back to database", zap.Error(err))
		}
		return cachedGrant{}, false
	}
	var grant cachedGrant
	if err := json.Unmarshal(raw, &grant); err != nil {
		return cachedGrant{}, false
	}
	return grant, true
}

func (r *GrantResolver) store(ctx context.Context, userID uuid.UUID, grant cachedGrant) {
	if r.redis == nil {
		return
	}
	raw, err := json.Marshal(grant)
	if err != nil {
		return
	}
	if err := r.redis.Set(ctx, grantKey(userID), raw, r.ttl).Err(); err != nil {
		r.logger.Warn("Grant cache write failed", zap.Error(err))
	}
}

func grantKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s%s", grantKeyPrefix, userID)
}
