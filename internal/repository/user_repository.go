package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"seniorcare-lead-api/internal/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// FindUser loads a user in any space. Only the grant resolver uses it.
	FindUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.User, error)
	FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.User, error)
	List(ctx context.Context, spaceID uuid.UUID) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) error
}

type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) FindUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := conn(ctx, r.db).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByID(ctx context.Context, spaceID, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Where("id = ? AND enabled = ?", id, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepositoryImpl) FindByIDs(ctx context.Context, spaceID uuid.UUID, ids []uuid.UUID) ([]domain.User, error) {
	return findInSpace[domain.User](ctx, r.db, spaceID, ids)
}

func (r *userRepositoryImpl) List(ctx context.Context, spaceID uuid.UUID) ([]domain.User, error) {
	users := []domain.User{}
	if err := conn(ctx, r.db).
		Scopes(inSpace("", spaceID)).
		Where("enabled = ?", true).
		Order("last_name ASC, first_name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	return conn(ctx, r.db).Create(user).Error
}

// SpaceRepository defines the interface for space data access
type SpaceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Space, error)
	Create(ctx context.Context, space *domain.Space) error
}

type spaceRepositoryImpl struct {
	db *gorm.DB
}

// NewSpaceRepository creates a new instance of SpaceRepository
func NewSpaceRepository(db *gorm.DB) SpaceRepository {
	return &spaceRepositoryImpl{db: db}
}

func (r *spaceRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Space, error) {
	var space domain.Space
	if err := conn(ctx, r.db).Where("id = ?", id).First(&space).Error; err != nil {
		return nil, err
	}
	return &space, nil
}

func (r *spaceRepositoryImpl) Create(ctx context.Context, space *domain.Space) error {
	return conn(ctx, r.db).Create(space).Error
}
