package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pay-theory/dynamorm/pkg/core"
	dynamoerrors "github.com/pay-theory/dynamorm/pkg/errors"

	"github.com/davelara/shopper-cart/internal/cart/domain"
	"github.com/davelara/shopper-cart/internal/platform/logger"
)

var ErrCartEntryNotFound = errors.New("cart entry not found")

type CartRepository interface {
	ListEntriesByUser(ctx context.Context, userID string) ([]domain.CartEntry, error)
	GetEntryByID(ctx context.Context, id string) (*domain.CartEntry, error)
	FindEntryByProduct(ctx context.Context, userID, productID string) (*domain.CartEntry, error)
	CreateEntry(ctx context.Context, e *domain.CartEntry) error
	UpdateEntryQuantity(ctx context.Context, id string, quantity int) error
	DeleteEntry(ctx context.Context, id string) error
	CountEntriesByProduct(ctx context.Context, productID string) (int, error)
	ListEntriesOlderThan(ctx context.Context, cutoff time.Time) ([]domain.CartEntry, error)
}

type dynamoCartRepository struct {
	db core.DB
}

func NewDynamoCartRepository(db core.DB) CartRepository {
	return &dynamoCartRepository{db: db}
}

func (r *dynamoCartRepository) ListEntriesByUser(ctx context.Context, userID string) ([]domain.CartEntry, error) {
	entries := []domain.CartEntry{}
	err := r.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Index("gsi-user").
		Where("UserID", "=", userID).
		All(&entries)
	if err != nil {
		logger.Error("ListEntriesByUser: query failed", err)
		return nil, err
	}
	return entries, nil
}

func (r *dynamoCartRepository) GetEntryByID(ctx context.Context, id string) (*domain.CartEntry, error) {
	var e domain.CartEntry
	err := r.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Where("ID", "=", id).
		First(&e)
	if err != nil {
		if errors.Is(err, dynamoerrors.ErrItemNotFound) {
			return nil, ErrCartEntryNotFound
		}
		logger.Error("GetEntryByID: query failed", err)
		return nil, err
	}
	return &e, nil
}

// FindEntryByProduct returns the user's entry for a product, or
// ErrCartEntryNotFound when the product is not in the cart yet.
func (r *dynamoCartRepository) FindEntryByProduct(ctx context.Context, userID, productID string) (*domain.CartEntry, error) {
	entries := []domain.CartEntry{}
	err := r.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Index("gsi-user").
		Where("UserID", "=", userID).
		Filter("ProductID", "=", productID).
		All(&entries)
	if err != nil {
		logger.Error("FindEntryByProduct: query failed", err)
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrCartEntryNotFound
	}
	return &entries[0], nil
}

func (r *dynamoCartRepository) CreateEntry(ctx context.Context, e *domain.CartEntry) error {
	if err := r.db.WithContext(ctx).Model(e).Create(); err != nil {
		logger.Error("CreateEntry: create failed", err)
		return err
	}
	return nil
}

func (r *dynamoCartRepository) UpdateEntryQuantity(ctx context.Context, id string, quantity int) error {
	err := r.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Where("ID", "=", id).
		UpdateBuilder().
		Set("Quantity", quantity).
		Execute()
	if err != nil {
		logger.Error("UpdateEntryQuantity: update failed", err)
		return err
	}
	return nil
}

func (r *dynamoCartRepository) DeleteEntry(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Model(&domain.CartEntry{ID: id}).
		Where("ID", "=", id).
		Delete()
	if err != nil {
		logger.Error("DeleteEntry: delete failed", err)
		return err
	}
	return nil
}

// CountEntriesByProduct backs the catalog's delete-conflict check.
func (r *dynamoCartRepository) CountEntriesByProduct(ctx context.Context, productID string) (int, error) {
	entries := []domain.CartEntry{}
	err := r.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Filter("ProductID", "=", productID).
		Scan(&entries)
	if err != nil {
		logger.Error("CountEntriesByProduct: scan failed", err)
		return 0, err
	}
	return len(entries), nil
}

func (r *dynamoCartRepository) ListEntriesOlderThan(ctx context.Context, cutoff time.Time) ([]domain.CartEntry, error) {
	entries := []domain.CartEntry{}
	err := r.db.WithContext(ctx).Model(&domain.CartEntry{}).
		Filter("CreatedAt", "<", cutoff).
		Scan(&entries)
	if err != nil {
		logger.Error("ListEntriesOlderThan: scan failed", err)
		return nil, err
	}
	return entries, nil
}
