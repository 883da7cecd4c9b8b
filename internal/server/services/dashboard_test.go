package services

import (
	"context"
	"testing"
	"time"

	"gastor/internal/server/models"
)

func TestSummarize_MonthWindow(t *testing.T) {
	m := newTestManager(t)
	ledger := newTestLedger(t, m)
	dash := NewDashboardService(m.Conn(), m)
	owner, other := registerTwoUsers(t, m)
	ctx := context.Background()

	salary, err := ledger.CreateCategory(ctx, owner, CategoryInput{Name: "Salary", Kind: models.KindIncome})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	food, err := ledger.CreateCategory(ctx, owner, CategoryInput{Name: "Food", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}

	jan10 := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	jan20 := time.Date(2024, time.January, 20, 18, 30, 0, 0, time.UTC)
	feb1 := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	add := func(ownerID int64, in TransactionInput) {
		t.Helper()
		if _, err := ledger.CreateTransaction(ctx, ownerID, in); err != nil {
			t.Fatalf("CreateTransaction error: %v", err)
		}
	}

	add(owner, TransactionInput{CategoryID: salary.ID, Amount: 100, Kind: models.KindIncome, Timestamp: jan10})
	add(owner, TransactionInput{CategoryID: food.ID, Amount: 40, Kind: models.KindExpense, Timestamp: jan20})
	// Next month, must not count.
	add(owner, TransactionInput{CategoryID: food.ID, Amount: 10, Kind: models.KindExpense, Timestamp: feb1})

	// Another user's activity in the same month, must not count either.
	otherCat, err := ledger.CreateCategory(ctx, other, CategoryInput{Name: "Food", Kind: models.KindExpense})
	if err != nil {
		t.Fatalf("CreateCategory error: %v", err)
	}
	add(other, TransactionInput{CategoryID: otherCat.ID, Amount: 999, Kind: models.KindExpense, Timestamp: jan10})

	now := time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC)
	got, err := dash.Summarize(ctx, owner, now)
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}

	if got.TotalIncome != 100 {
		t.Errorf("TotalIncome = %v, want 100", got.TotalIncome)
	}
	if got.TotalExpense != 40 {
		t.Errorf("TotalExpense = %v, want 40", got.TotalExpense)
	}
	if got.Balance != 60 {
		t.Errorf("Balance = %v, want 60", got.Balance)
	}
	if len(got.ExpenseByCategory) != 1 {
		t.Fatalf("ExpenseByCategory = %+v, want one entry", got.ExpenseByCategory)
	}
	if got.ExpenseByCategory[0].Name != "Food" || got.ExpenseByCategory[0].Value != 40 {
		t.Errorf("ExpenseByCategory[0] = %+v, want {Food 40}", got.ExpenseByCategory[0])
	}
}

func TestSummarize_EmptyMonth(t *testing.T) {
	m := newTestManager(t)
	dash := NewDashboardService(m.Conn(), m)
	owner, _ := registerTwoUsers(t, m)

	got, err := dash.Summarize(context.Background(), owner, time.Now().UTC())
	if err != nil {
		t.Fatalf("Summarize error: %v", err)
	}
	if got.TotalIncome != 0 || got.TotalExpense != 0 || got.Balance != 0 {
		t.Errorf("totals = %+v, want zeros", got)
	}
	if got.ExpenseByCategory == nil || len(got.ExpenseByCategory) != 0 {
		t.Errorf("ExpenseByCategory = %#v, want empty non-nil slice", got.ExpenseByCategory)
	}
}

func TestMonthWindow(t *testing.T) {
	from, to := monthWindow(time.Date(2024, time.December, 31, 23, 59, 59, 0, time.UTC))
	if !from.Equal(time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v", from)
	}
	if !to.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("to = %v", to)
	}
}
