package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	cartDomain "github.com/davelara/shopper-cart/internal/cart/domain"
	cartRepo "github.com/davelara/shopper-cart/internal/cart/repository"
	catalogRepo "github.com/davelara/shopper-cart/internal/catalog/repository"
	"github.com/davelara/shopper-cart/internal/platform/logger"
	"github.com/davelara/shopper-cart/internal/platform/stream"
)

var (
	// ErrQuantityExceedsStock rejects cart writes that ask for more units
	// than the product currently has. Best-effort: stock can still change
	// between this check and checkout.
	ErrQuantityExceedsStock = errors.New("requested quantity exceeds available stock")
)

type CartService interface {
	GetCart(ctx context.Context, userID string) ([]cartDomain.CartItem, error)
	AddItem(ctx context.Context, userID string, req cartDomain.AddToCartRequest) error
	UpdateQuantity(ctx context.Context, userID, entryID string, quantity int) error
	RemoveItem(ctx context.Context, userID, entryID string) error

	StartSweeper(spec string) error
	StopSweeper()
	SweepAbandonedEntries(ctx context.Context)
}

type cartServiceImpl struct {
	repo     cartRepo.CartRepository
	products catalogRepo.ProductRepository
	events   stream.Publisher
	sweeper  *cron.Cron
	maxAge   time.Duration
}

func NewCartService(repo cartRepo.CartRepository, products catalogRepo.ProductRepository, events stream.Publisher, maxAge time.Duration) CartService {
	return &cartServiceImpl{
		repo:     repo,
		products: products,
		events:   events,
		sweeper:  cron.New(cron.WithSeconds()),
		maxAge:   maxAge,
	}
}

// GetCart joins each entry with a fresh product record. Entries whose
// product no longer exists are skipped rather than failing the whole read.
func (s *cartServiceImpl) GetCart(ctx context.Context, userID string) ([]cartDomain.CartItem, error) {
	entries, err := s.repo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := []cartDomain.CartItem{}
	for _, entry := range entries {
		product, err := s.products.GetProductByID(ctx, entry.ProductID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrProductNotFound) {
				logger.Warn("GetCart: entry %s references missing product %s, skipping", entry.ID, entry.ProductID)
				continue
			}
			return nil, err
		}
		items = append(items, cartDomain.CartItem{
			ID:       entry.ID,
			Product:  *product,
			Quantity: entry.Quantity,
		})
	}
	return items, nil
}

// AddItem merges into an existing entry for the same product instead of
// creating a duplicate.
func (s *cartServiceImpl) AddItem(ctx context.Context, userID string, req cartDomain.AddToCartRequest) error {
	product, err := s.products.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindEntryByProduct(ctx, userID, req.ProductID)
	if err != nil && !errors.Is(err, cartRepo.ErrCartEntryNotFound) {
		return err
	}

	if existing != nil {
		newQuantity := existing.Quantity + req.Quantity
		if newQuantity > product.Stock {
			return ErrQuantityExceedsStock
		}
		if err := s.repo.UpdateEntryQuantity(ctx, existing.ID, newQuantity); err != nil {
			logger.Error("Svc.AddItem: failed to merge quantity", err)
			return err
		}
		s.publish(ctx, userID, existing.ID, stream.ActionUpdated)
		return nil
	}

	if req.Quantity > product.Stock {
		return ErrQuantityExceedsStock
	}

	entry := &cartDomain.CartEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		logger.Error("Svc.AddItem: failed to create entry", err)
		return err
	}
	s.publish(ctx, userID, entry.ID, stream.ActionCreated)
	return nil
}

// UpdateQuantity removes the entry when quantity drops to zero or below,
// and rejects updates above the product's current stock.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, entryID string, quantity int) error {
	entry, err := s.ownedEntry(ctx, userID, entryID)
	if err != nil {
		return err
	}

	if quantity <= 0 {
		if err := s.repo.DeleteEntry(ctx, entryID); err != nil {
			return err
		}
		s.publish(ctx, userID, entryID, stream.ActionDeleted)
		return nil
	}

	product, err := s.products.GetProductByID(ctx, entry.ProductID)
	if err != nil {
		return err
	}
	if quantity > product.Stock {
		return ErrQuantityExceedsStock
	}

	if err := s.repo.UpdateEntryQuantity(ctx, entryID, quantity); err != nil {
		return err
	}
	s.publish(ctx, userID, entryID, stream.ActionUpdated)
	return nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, entryID string) error {
	if _, err := s.ownedEntry(ctx, userID, entryID); err != nil {
		return err
	}
	if err := s.repo.DeleteEntry(ctx, entryID); err != nil {
		return err
	}
	s.publish(ctx, userID, entryID, stream.ActionDeleted)
	return nil
}

// ownedEntry resolves an entry and hides other users' entries behind
// not-found.
func (s *cartServiceImpl) ownedEntry(ctx context.Context, userID, entryID string) (*cartDomain.CartEntry, error) {
	entry, err := s.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, cartRepo.ErrCartEntryNotFound
	}
	return entry, nil
}

func (s *cartServiceImpl) StartSweeper(spec string) error {
	_, err := s.sweeper.AddFunc(spec, func() {
		s.SweepAbandonedEntries(context.Background())
	})
	if err != nil {
		return err
	}
	s.sweeper.Start()
	logger.Info("Abandoned-cart sweeper started with spec '%s', max age %v", spec, s.maxAge)
	return nil
}

func (s *cartServiceImpl) StopSweeper() {
	s.sweeper.Stop()
}

// SweepAbandonedEntries deletes cart entries older than the configured max
// age. Individual delete failures are logged and the sweep continues.
func (s *cartServiceImpl) SweepAbandonedEntries(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.maxAge)
	entries, err := s.repo.ListEntriesOlderThan(ctx, cutoff)
	if err != nil {
		logger.Error("SweepAbandonedEntries: failed to list stale entries", err)
		return
	}
	if len(entries) == 0 {
		return
	}

	logger.Info("SweepAbandonedEntries: removing %d entries older than %s", len(entries), cutoff.Format(time.RFC3339))
	for _, entry := range entries {
		if err := s.repo.DeleteEntry(ctx, entry.ID); err != nil {
			logger.Error("SweepAbandonedEntries: failed to delete entry "+entry.ID, err)
			continue
		}
		s.publish(ctx, entry.UserID, entry.ID, stream.ActionDeleted)
	}
}

func (s *cartServiceImpl) publish(ctx context.Context, userID, entryID, action string) {
	if s.events == nil {
		return
	}
	ev := stream.Event{Entity: "cart_entry", ID: entryID, Action: action, At: time.Now().UTC()}
	if err := s.events.Publish(ctx, stream.CartTopic(userID), ev); err != nil {
		logger.Warn("Svc.publish: failed to publish cart event for %s: %v", entryID, err)
	}
}
