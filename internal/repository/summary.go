package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/goal-tracker/backend/internal/models"
)

type SummaryRepository struct {
	db *pgxpool.Pool
}

type CategoryBreakdown struct {
	Category   string
	Amount     float64
	Percentage float64
}

type FinancialSummary struct {
	PeriodStart     time.Time
	PeriodEnd       time.Time
	Months          int
	TotalIncome     float64
	TotalExpenses   float64
	Savings         float64
	SavingsRate     float64
	MonthlyIncome   float64
	MonthlyExpenses float64
	ByCategory      []CategoryBreakdown
}

// NewSummaryRepository создает репозиторий финансовой сводки.
func NewSummaryRepository(db *pgxpool.Pool) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Build собирает сводку доходов и расходов за скользящее окно в месяцах.
func (r *SummaryRepository) Build(ctx context.Context, userID uuid.UUID, months int) (FinancialSummary, error) {
	var summary FinancialSummary

	if months <= 0 {
		return summary, ErrInvalid
	}

	start, end := trailingWindow(time.Now(), months)
	summary.PeriodStart = start
	summary.PeriodEnd = end
	summary.Months = months

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount) FILTER (WHERE type = $4), 0) AS total_income,
		        COALESCE(SUM(amount) FILTER (WHERE type = $5), 0) AS total_expenses
		 FROM transactions
		 WHERE user_id = $1 AND date >= $2 AND date <= $3`,
		userID, start, end, models.TransactionTypeIncome, models.TransactionTypeExpense,
	).Scan(&summary.TotalIncome, &summary.TotalExpenses)
	if err != nil {
		return summary, err
	}

	summary.Savings = summary.TotalIncome - summary.TotalExpenses
	if summary.TotalIncome > 0 {
		summary.SavingsRate = summary.Savings / summary.TotalIncome
	}
	summary.MonthlyIncome = summary.TotalIncome / float64(months)
	summary.MonthlyExpenses = summary.TotalExpenses / float64(months)

	rows, err := r.db.Query(ctx,
		`SELECT category, COALESCE(SUM(amount), 0) AS amount
		 FROM transactions
		 WHERE user_id = $1 AND date >= $2 AND date <= $3 AND type = $4
		 GROUP BY category
		 ORDER BY amount DESC`,
		userID, start, end, models.TransactionTypeExpense,
	)
	if err != nil {
		return summary, err
	}
	defer rows.Close()

	breakdown := make([]CategoryBreakdown, 0)
	for rows.Next() {
		var row CategoryBreakdown
		err := rows.Scan(&row.Category, &row.Amount)
		if err != nil {
			return summary, err
		}
		if summary.TotalExpenses > 0 {
			row.Percentage = row.Amount / summary.TotalExpenses * 100
		}
		breakdown = append(breakdown, row)
	}

	if err := rows.Err(); err != nil {
		return summary, err
	}

	summary.ByCategory = breakdown
	return summary, nil
}
