package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gastor/internal/common"
	"gastor/internal/dbx"
	"gastor/internal/logging"
	"gastor/internal/server/models"
	"gastor/internal/server/repositories/repomanager"
)

// Pagination defaults and the server-side cap on caller-supplied limits.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Page is a normalized offset/limit pair.
type Page struct {
	Offset int
	Limit  int
}

// Normalize clamps the page to sane bounds: negative offsets become 0,
// a missing or non-positive limit becomes DefaultLimit, anything above
// MaxLimit is capped.
func (p Page) Normalize() Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// CategoryInput are the caller-mutable category fields.
type CategoryInput struct {
	Name string
	Kind models.Kind
}

// TransactionInput are the caller-mutable transaction fields. A zero
// Timestamp means "now".
type TransactionInput struct {
	CategoryID  int64
	Amount      float64
	Kind        models.Kind
	Description string
	Timestamp   time.Time
}

// LedgerService implements the ownership-scoped CRUD on categories and
// transactions. Every method takes the resolved owner id explicitly; rows of
// other owners are reported as not found, never as forbidden.
type LedgerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewLedgerService constructs a LedgerService on top of the repositories.
func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, l logging.Logger) *LedgerService {
	return &LedgerService{db: db, repomanager: m, logger: l.With("module", "ledger")}
}

// ListCategories returns one page of the owner's categories.
func (s *LedgerService) ListCategories(ctx context.Context, ownerID int64, page Page) ([]*models.Category, error) {
	page = page.Normalize()
	return s.repomanager.Categories(s.db).List(ctx, ownerID, page.Offset, page.Limit)
}

// CreateCategory creates a category owned by ownerID.
func (s *LedgerService) CreateCategory(ctx context.Context, ownerID int64, in CategoryInput) (*models.Category, error) {
	category := &models.Category{OwnerID: ownerID, Name: in.Name, Kind: in.Kind}
	return s.repomanager.Categories(s.db).Create(ctx, category)
}

// GetCategory returns the category when it belongs to ownerID.
func (s *LedgerService) GetCategory(ctx context.Context, id, ownerID int64) (*models.Category, error) {
	return s.repomanager.Categories(s.db).Get(ctx, id, ownerID)
}

// UpdateCategory replaces the category's name and kind.
func (s *LedgerService) UpdateCategory(ctx context.Context, id, ownerID int64, in CategoryInput) (*models.Category, error) {
	category := &models.Category{ID: id, OwnerID: ownerID, Name: in.Name, Kind: in.Kind}
	if err := s.repomanager.Categories(s.db).Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category unless any transaction still
// references it. The reference check and the delete run in one transaction
// so a concurrent insert cannot orphan itself.
func (s *LedgerService) DeleteCategory(ctx context.Context, id, ownerID int64) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Categories(tx).Get(ctx, id, ownerID); err != nil {
			return err
		}

		n, err := s.repomanager.Transactions(tx).CountByCategory(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return common.ErrorCategoryInUse
		}

		return s.repomanager.Categories(tx).Delete(ctx, id, ownerID)
	})
}

// ListTransactions returns one page of the owner's transactions, most
// recent first.
func (s *LedgerService) ListTransactions(ctx context.Context, ownerID int64, page Page) ([]*models.Transaction, error) {
	page = page.Normalize()
	return s.repomanager.Transactions(s.db).List(ctx, ownerID, page.Offset, page.Limit)
}

// CreateTransaction inserts a transaction after confirming, in the same
// storage transaction, that the referenced category belongs to the same
// owner. A missing or foreign category yields ErrorInvalidCategory and
// nothing is persisted.
func (s *LedgerService) CreateTransaction(ctx context.Context, ownerID int64, in TransactionInput) (*models.Transaction, error) {
	tr := &models.Transaction{
		OwnerID:     ownerID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Kind:        in.Kind,
		Description: in.Description,
		Timestamp:   in.Timestamp,
	}
	if tr.Timestamp.IsZero() {
		tr.Timestamp = time.Now().UTC()
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkCategoryOwner(ctx, tx, in.CategoryID, ownerID); err != nil {
			return err
		}
		_, err := s.repomanager.Transactions(tx).Create(ctx, tr)
		return err
	}); err != nil {
		return nil, err
	}

	return tr, nil
}

// GetTransaction returns the transaction when it belongs to ownerID.
func (s *LedgerService) GetTransaction(ctx context.Context, id, ownerID int64) (*models.Transaction, error) {
	return s.repomanager.Transactions(s.db).Get(ctx, id, ownerID)
}

// UpdateTransaction replaces the mutable fields. The (possibly changed)
// category reference is re-checked for ownership inside the same storage
// transaction as the write.
func (s *LedgerService) UpdateTransaction(ctx context.Context, id, ownerID int64, in TransactionInput) (*models.Transaction, error) {
	tr := &models.Transaction{
		ID:          id,
		OwnerID:     ownerID,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		Kind:        in.Kind,
		Description: in.Description,
		Timestamp:   in.Timestamp,
	}
	if tr.Timestamp.IsZero() {
		tr.Timestamp = time.Now().UTC()
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.checkCategoryOwner(ctx, tx, in.CategoryID, ownerID); err != nil {
			return err
		}
		return s.repomanager.Transactions(tx).Update(ctx, tr)
	}); err != nil {
		return nil, err
	}

	return tr, nil
}

// DeleteTransaction removes the transaction when it belongs to ownerID.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id, ownerID int64) error {
	return s.repomanager.Transactions(s.db).Delete(ctx, id, ownerID)
}

func (s *LedgerService) checkCategoryOwner(ctx context.Context, tx dbx.DBTX, categoryID, ownerID int64) error {
	if _, err := s.repomanager.Categories(tx).Get(ctx, categoryID, ownerID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorInvalidCategory
		}
		return fmt.Errorf("error checking category: %w", err)
	}
	return nil
}
