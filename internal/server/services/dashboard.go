package services

import (
	"context"
	"database/sql"
	"time"

	"gastor/internal/server/models"
	"gastor/internal/server/repositories/repomanager"
)

// DashboardService computes the per-user monthly summary.
type DashboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewDashboardService constructs a DashboardService on top of the repositories.
func NewDashboardService(db *sql.DB, m repomanager.RepositoryManager) *DashboardService {
	return &DashboardService{db: db, repomanager: m}
}

// Summarize totals the owner's income and expenses for the calendar month of
// now (UTC) and breaks expenses down by category name. Months are evaluated
// as half-open ranges so no dialect-specific date extraction is involved.
func (s *DashboardService) Summarize(ctx context.Context, ownerID int64, now time.Time) (*models.DashboardSummary, error) {
	from, to := monthWindow(now)
	repo := s.repomanager.Transactions(s.db)

	income, err := repo.SumByKind(ctx, ownerID, models.KindIncome, from, to)
	if err != nil {
		return nil, err
	}

	expense, err := repo.SumByKind(ctx, ownerID, models.KindExpense, from, to)
	if err != nil {
		return nil, err
	}

	byCategory, err := repo.ExpenseTotalsByCategory(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	if byCategory == nil {
		byCategory = []models.CategoryTotal{}
	}

	return &models.DashboardSummary{
		TotalIncome:       income,
		TotalExpense:      expense,
		Balance:           income - expense,
		ExpenseByCategory: byCategory,
	}, nil
}

// monthWindow returns [first of month, first of next month) in UTC.
func monthWindow(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}
