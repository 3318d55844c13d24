package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/goal-tracker/backend/internal/models"
)

type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository создает репозиторий транзакций.
func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create сохраняет транзакцию и в той же БД-транзакции корректирует баланс счета:
// доход увеличивает баланс, расход уменьшает, перевод не меняет.
func (r *TransactionRepository) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	var created models.Transaction

	if t.Amount <= 0 || !models.ValidTransactionType(t.Type) {
		return created, ErrInvalid
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return created, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO transactions (user_id, account_id, amount, type, category, description, date, is_manual)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, user_id, account_id, amount, type, category, description, date, is_manual`,
		t.UserID, t.AccountID, t.Amount, t.Type, t.Category, t.Description, t.Date, t.IsManual,
	).Scan(&created.ID, &created.UserID, &created.AccountID, &created.Amount, &created.Type,
		&created.Category, &created.Description, &created.Date, &created.IsManual)
	if err != nil {
		return models.Transaction{}, err
	}

	if t.AccountID != nil {
		change := t.Amount
		switch t.Type {
		case models.TransactionTypeExpense:
			change = -t.Amount
		case models.TransactionTypeTransfer:
			change = 0
		}

		if change != 0 {
			cmd, err := tx.Exec(ctx,
				`UPDATE accounts
				 SET balance = balance + $1, last_updated = NOW()
				 WHERE id = $2 AND user_id = $3`,
				change, *t.AccountID, t.UserID,
			)
			if err != nil {
				return models.Transaction{}, err
			}
			if cmd.RowsAffected() == 0 {
				return models.Transaction{}, ErrNotFound
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Transaction{}, err
	}

	return created, nil
}

// ListByUser возвращает транзакции пользователя за период, новые первыми.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, startDate, endDate *time.Time, limit int) ([]models.Transaction, error) {
	if limit <= 0 {
		return nil, ErrInvalid
	}

	query := `SELECT id, user_id, account_id, amount, type, category, description, date, is_manual
	          FROM transactions
	          WHERE user_id = $1`
	args := []any{userID}

	if startDate != nil {
		args = append(args, *startDate)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if endDate != nil {
		args = append(args, *endDate)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByCategory возвращает транзакции категории за скользящее окно в months месяцев.
func (r *TransactionRepository) ListByCategory(ctx context.Context, userID uuid.UUID, category string, months int) ([]models.Transaction, error) {
	if months <= 0 {
		return nil, ErrInvalid
	}

	startDate, endDate := trailingWindow(time.Now(), months)

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, account_id, amount, type, category, description, date, is_manual
		 FROM transactions
		 WHERE user_id = $1
		   AND category = $2
		   AND date >= $3
		   AND date <= $4
		 ORDER BY date DESC`,
		userID, category, startDate, endDate,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// DeleteAllByUser удаляет все транзакции пользователя и возвращает их число.
func (r *TransactionRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM transactions
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return 0, err
	}

	return cmd.RowsAffected(), nil
}

// trailingWindow возвращает границы окна из months приближенных 30-дневных месяцев.
func trailingWindow(now time.Time, months int) (time.Time, time.Time) {
	end := now
	start := end.AddDate(0, 0, -months*30)
	return start, end
}

func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var t models.Transaction

		err := rows.Scan(&t.ID, &t.UserID, &t.AccountID, &t.Amount, &t.Type, &t.Category, &t.Description, &t.Date, &t.IsManual)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}
