package repository

import (
	"context"
	"errors"

	"github.com/pay-theory/dynamorm/pkg/core"
	dynamoerrors "github.com/pay-theory/dynamorm/pkg/errors"

	"github.com/davelara/shopper-cart/internal/platform/logger"
	"github.com/davelara/shopper-cart/internal/user/domain"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

type dynamoUserRepository struct {
	db core.DB
}

func NewDynamoUserRepository(db core.DB) UserRepository {
	return &dynamoUserRepository{db: db}
}

func (r *dynamoUserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	if err := r.db.WithContext(ctx).Model(u).Create(); err != nil {
		logger.Error("CreateUser: create failed", err)
		return err
	}
	return nil
}

func (r *dynamoUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Index("gsi-email").
		Where("Email", "=", email).
		First(&u)
	if err != nil {
		if errors.Is(err, dynamoerrors.ErrItemNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("GetUserByEmail: query failed", err)
		return nil, err
	}
	return &u, nil
}

func (r *dynamoUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("ID", "=", id).
		First(&u)
	if err != nil {
		if errors.Is(err, dynamoerrors.ErrItemNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("GetUserByID: query failed", err)
		return nil, err
	}
	return &u, nil
}
