package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/goal-tracker/backend/internal/models"
)

type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository создает репозиторий счетов.
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create создает счет пользователя.
func (r *AccountRepository) Create(ctx context.Context, userID uuid.UUID, name string, balance float64, currency string) (models.Account, error) {
	var account models.Account

	err := r.db.QueryRow(ctx,
		`INSERT INTO accounts (user_id, name, balance, currency, last_updated)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING id, user_id, name, balance, currency, last_updated`,
		userID, name, balance, currency,
	).Scan(&account.ID, &account.UserID, &account.Name, &account.Balance, &account.Currency, &account.LastUpdated)
	if err != nil {
		return account, err
	}

	return account, nil
}

// GetByID возвращает счет пользователя по идентификатору.
func (r *AccountRepository) GetByID(ctx context.Context, userID, accountID uuid.UUID) (models.Account, error) {
	var account models.Account

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, balance, currency, last_updated
		 FROM accounts
		 WHERE id = $1 AND user_id = $2`,
		accountID, userID,
	).Scan(&account.ID, &account.UserID, &account.Name, &account.Balance, &account.Currency, &account.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return account, ErrNotFound
		}
		return account, err
	}

	return account, nil
}

// ListByUser возвращает счета пользователя, отсортированные по имени.
func (r *AccountRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, balance, currency, last_updated
		 FROM accounts
		 WHERE user_id = $1
		 ORDER BY name`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		var account models.Account

		err := rows.Scan(&account.ID, &account.UserID, &account.Name, &account.Balance, &account.Currency, &account.LastUpdated)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return accounts, nil
}
