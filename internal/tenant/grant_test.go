package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"seniorcare-lead-api/internal/domain"
	"seniorcare-lead-api/internal/response"
)

type fakeUsers struct {
	users map[uuid.UUID]*domain.User
	calls int
}

func (f *fakeUsers) FindUser(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.calls++
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newUser(spaceID uuid.UUID, enabled bool) *domain.User {
	u := &domain.User{SpaceID: spaceID, FirstName: "Ada", LastName: "Park", Enabled: enabled}
	u.ID = uuid.New()
	return u
}

func setupResolver(t *testing.T, users *fakeUsers) (*GrantResolver, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewGrantResolver(users, rdb, time.Minute, zap.NewNop()), mr
}

func TestGrantResolver_Resolve(t *testing.T) {
	spaceID := uuid.New()
	member := newUser(spaceID, true)
	disabled := newUser(spaceID, false)
	outsider := newUser(uuid.New(), true)
	users := &fakeUsers{users: map[uuid.UUID]*domain.User{
		member.ID: member, disabled.ID: disabled, outsider.ID: outsider,
	}}
	resolver, _ := setupResolver(t, users)

	tests := []struct {
		name    string
		userID  uuid.UUID
		wantErr bool
	}{
		{"member of space", member.ID, false},
		{"disabled user", disabled.ID, true},
		{"user of another space", outsider.ID, true},
		{"unknown user", uuid.New(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := resolver.Resolve(context.Background(), tt.userID, spaceID)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, response.HasCode(err, response.CodeUnauthorized))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, spaceID, tc.SpaceID)
			assert.Equal(t, tt.userID, tc.UserID)
			assert.True(t, tc.Valid())
		})
	}
}

func TestGrantResolver_CachesGrant(t *testing.T) {
	spaceID := uuid.New()
	member := newUser(spaceID, true)
	users := &fakeUsers{users: map[uuid.UUID]*domain.User{member.ID: member}}
	resolver, mr := setupResolver(t, users)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, member.ID, spaceID)
	require.NoError(t, err)
	_, err = resolver.Resolve(ctx, member.ID, spaceID)
	require.NoError(t, err)

	assert.Equal(t, 1, users.calls)
	assert.True(t, mr.Exists(grantKey(member.ID)))
	assert.Equal(t, time.Minute, mr.TTL(grantKey(member.ID)))

	resolver.Invalidate(ctx, member.ID)
	assert.False(t, mr.Exists(grantKey(member.ID)))

	_, err = resolver.Resolve(ctx, member.ID, spaceID)
	require.NoError(t, err)
	assert.Equal(t, 2, users.calls)
}

func TestGrantResolver_RedisDownFallsBackToDatabase(t *testing.T) {
	spaceID := uuid.New()
	member := newUser(spaceID, true)
	users := &fakeUsers{users: map[uuid.UUID]*domain.User{member.ID: member}}
	resolver, mr := setupResolver(t, users)
	mr.Close()

	tc, err := resolver.Resolve(context.Background(), member.ID, spaceID)
	require.NoError(t, err)
	assert.Equal(t, member.ID, tc.UserID)
}

func TestGrantResolver_WithoutRedis(t *testing.T) {
	spaceID := uuid.New()
	member := newUser(spaceID, true)
	users := &fakeUsers{users: map[uuid.UUID]*domain.User{member.ID: member}}
	resolver := NewGrantResolver(users, nil, time.Minute, nil)

	_, err := resolver.Resolve(context.Background(), member.ID, spaceID)
	require.NoError(t, err)
	_, err = resolver.Resolve(context.Background(), member.ID, spaceID)
	require.NoError(t, err)
	assert.Equal(t, 2, users.calls)
}
