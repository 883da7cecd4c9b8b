package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gastor/internal/common"
	"gastor/internal/server/models"
	"gastor/internal/server/repositories/repomanager"
)

func newTestLedger(t *testing.T, m *repomanager.SQLRepositoryManager) *LedgerService {
	t.Helper()
	return NewLedgerService(m.Conn(), m, newTestLogger())
}

func registerTwoUsers(t *testing.T, m *repomanager.SQLRepositoryManager) (int64, int64) {
	t.Helper()
	s := newTestUserService(t, m, time.Hour)
	u, err := s.Register(context.Background(), "u@example.com", "u", "pw")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	v, err := s.Register(context.Background(), "v@example.com", "v", "pw")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	return u.ID, v.ID
}

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"defaults", Page{}, Page{Offset: 0, Limit: DefaultLimit}},
		{"negative offset", Page{Offset: -5, Limit: 10}, Page{Offset: 0, Limit: 10}},
		{"limit capped", Page{Limit: 100000}, Page{Offset: 0, Limit: MaxLimit}},
		{"kept as is", Page{Offset: 20, Limit: 50}, Page{Offset: 20, Limit: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Normalize(); got != tt.want {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
		})
	}
}

func TestDeleteCategory_BlockedWhileInUse(t *testing.T) {
	m := newTestManager(t)
	ledger := newTestLedger(t, m)
	owner, _ := registerTwoUsers(t, m)
	ctx := context.Background()

	cat, err := ledger.CreateCategory(ctx, owner, CategoryInput{Name: "Food", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	if _, err := ledger.CreateTransaction(ctx, owner, TransactionInput{
		CategoryID: cat.ID, Amount: 12.5, Kind: models.KindExpense,
	}); err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}

	err = ledger.DeleteCategory(ctx, cat.ID, owner)
	if !errors.Is(err, common.ErrorCategoryInUse) {
		t.Fatalf("want ErrorCategoryInUse, got %v", err)
	}

	// The category must remain intact.
	if _, err := ledger.GetCategory(ctx, cat.ID, owner); err != nil {
		t.Fatalf("category should survive a blocked delete: %v", err)
	}
}

func TestDeleteCategory_UnusedSucceeds(t *testing.T) {
	m := newTestManager(t)
	ledger := newTestLedger(t, m)
	owner, _ := registerTwoUsers(t, m)
	ctx := context.Background()

	cat, err := ledger.CreateCategory(ctx, owner, CategoryInput{Name: "Empty", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	if err := ledger.DeleteCategory(ctx, cat.ID, owner); err != nil {
		t.Fatalf("DeleteCategory error: %v", err)
	}

	_, err = ledger.GetCategory(ctx, cat.ID, owner)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound after delete, got %v", err)
	}
}

func TestCreateTransaction_ForeignCategoryRejected(t *testing.T) {
	m := newTestManager(t)
	ledger := newTestLedger(t, m)
	owner, other := registerTwoUsers(t, m)
	ctx := context.Background()

	foreign, err := ledger.CreateCategory(ctx, other, CategoryInput{Name: "Theirs", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	_, err = ledger.CreateTransaction(ctx, owner, TransactionInput{
		CategoryID: foreign.ID, Amount: 10, Kind: models.KindExpense,
	})
	if !errors.Is(err, common.ErrorInvalidCategory) {
		t.Fatalf("want ErrorInvalidCategory, got %v", err)
	}

	// Nothing may be persisted.
	list, err := ledger.ListTransactions(ctx, owner, Page{})
	if err != nil {
		t.Fatalf("ListTransactions error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no transactions, got %d", len(list))
	}
}

func TestCreateTransaction_DefaultsTimestamp(t *testing.T) {
	m := newTestManager(t)
	ledger := newTestLedger(t, m)
	owner, _ := registerTwoUsers(t, m)
	ctx := context.Background()

	cat, err := ledger.CreateCategory(ctx, owner, CategoryInput{Name: "Food", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	before := time.Now().UTC().Add(-time.Minute)
	tr, err := ledger.CreateTransaction(ctx, owner, TransactionInput{
		CategoryID: cat.ID, Amount: 5, Kind: models.KindExpense,
	})
	if err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}
	if tr.Timestamp.Before(before) || tr.Timestamp.After(time.Now().UTC().Add(time.Minute)) {
		t.Fatalf("timestamp not defaulted to now: %v", tr.Timestamp)
	}
}

func TestUpdateTransaction_RechecksCategoryOwnership(t *testing.T) {
	m := newTestManager(t)
	ledger := newTestLedger(t, m)
	owner, other := registerTwoUsers(t, m)
	ctx := context.Background()

	mine, err := ledger.CreateCategory(ctx, owner, CategoryInput{Name: "Mine", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	theirs, err := ledger.CreateCategory(ctx, other, CategoryInput{Name: "Theirs", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	tr, err := ledger.CreateTransaction(ctx, owner, TransactionInput{
		CategoryID: mine.ID, Amount: 10, Kind: models.KindExpense,
	})
	if err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}

	_, err = ledger.UpdateTransaction(ctx, tr.ID, owner, TransactionInput{
		CategoryID: theirs.ID, Amount: 10, Kind: models.KindExpense,
	})
	if !errors.Is(err, common.ErrorInvalidCategory) {
		t.Fatalf("want ErrorInvalidCategory, got %v", err)
	}
}

func TestCrossOwnerRowsLookMissing(t *testing.T) {
	m := newTestManager(t)
	ledger := newTestLedger(t, m)
	owner, other := registerTwoUsers(t, m)
	ctx := context.Background()

	cat, err := ledger.CreateCategory(ctx, owner, CategoryInput{Name: "Food", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	tr, err := ledger.CreateTransaction(ctx, owner, TransactionInput{
		CategoryID: cat.ID, Amount: 10, Kind: models.KindExpense,
	})
	if err != nil {
		t.Fatalf("CreateTransaction error: %v", err)
	}

	if _, err := ledger.GetCategory(ctx, cat.ID, other); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("foreign category must look missing, got %v", err)
	}
	if _, err := ledger.GetTransaction(ctx, tr.ID, other); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("foreign transaction must look missing, got %v", err)
	}
	if err := ledger.DeleteTransaction(ctx, tr.ID, other); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("foreign delete must look missing, got %v", err)
	}
}
