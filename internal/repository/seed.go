package repository

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/goal-tracker/backend/internal/models"
)

type SeedRepository struct {
	db *pgxpool.Pool
}

type demoCategory struct {
	Name      string
	MinAmount float64
	MaxAmount float64
}

var demoCategories = []demoCategory{
	{Name: "Еда", MinAmount: 300, MaxAmount: 3500},
	{Name: "Транспорт", MinAmount: 50, MaxAmount: 1500},
	{Name: "Развлечения", MinAmount: 500, MaxAmount: 5000},
	{Name: "Покупки", MinAmount: 800, MaxAmount: 8000},
	{Name: "Здоровье", MinAmount: 400, MaxAmount: 6000},
	{Name: "Образование", MinAmount: 1000, MaxAmount: 10000},
}

const (
	demoSalaryBase   = 85000.0
	demoSalarySpread = 5000.0
	demoExpenseCount = 50
	demoHistoryDays  = 90
	demoSalaryMonths = 3
)

// NewSeedRepository создает репозиторий демо-данных.
func NewSeedRepository(db *pgxpool.Pool) *SeedRepository {
	return &SeedRepository{db: db}
}

// SeedDemoData наполняет счет пользователя демонстрационными транзакциями.
// Повторный вызов для пользователя с транзакциями ничего не делает.
func (r *SeedRepository) SeedDemoData(ctx context.Context, userID, accountID uuid.UUID) (int, error) {
	var existing int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1`,
		userID,
	).Scan(&existing)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	now := time.Now()
	inserted := 0

	// Зарплата приходит пятого числа каждого месяца.
	for i := 0; i < demoSalaryMonths; i++ {
		month := now.AddDate(0, -i, 0)
		payday := time.Date(month.Year(), month.Month(), 5, 12, 0, 0, 0, time.UTC)
		if payday.After(now) {
			continue
		}

		amount := demoSalaryBase + gofakeit.Float64Range(-demoSalarySpread, demoSalarySpread)
		_, err = tx.Exec(ctx,
			`INSERT INTO transactions (id, user_id, account_id, amount, type, category, description, date, is_manual)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)`,
			uuid.New(), userID, accountID, amount, models.TransactionTypeIncome, "Зарплата", "Зарплата", payday,
		)
		if err != nil {
			return 0, err
		}
		inserted++
	}

	for i := 0; i < demoExpenseCount; i++ {
		category := demoCategories[gofakeit.Number(0, len(demoCategories)-1)]
		amount := gofakeit.Float64Range(category.MinAmount, category.MaxAmount)
		date := now.AddDate(0, 0, -gofakeit.Number(0, demoHistoryDays))

		_, err = tx.Exec(ctx,
			`INSERT INTO transactions (id, user_id, account_id, amount, type, category, description, date, is_manual)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)`,
			uuid.New(), userID, accountID, amount, models.TransactionTypeExpense, category.Name, gofakeit.ProductName(), date,
		)
		if err != nil {
			return 0, err
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	return inserted, nil
}
