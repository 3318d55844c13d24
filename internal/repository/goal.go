package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/goal-tracker/backend/internal/models"
)

type GoalRepository struct {
	db *pgxpool.Pool
}

// NewGoalRepository создает репозиторий финансовых целей.
func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create создает финансовую цель.
func (r *GoalRepository) Create(ctx context.Context, userID uuid.UUID, name string, targetAmount, currentAmount float64, deadline *time.Time, priority models.GoalPriority, urgency models.GoalUrgency) (models.FinancialGoal, error) {
	var goal models.FinancialGoal

	if strings.TrimSpace(name) == "" || targetAmount <= 0 || currentAmount < 0 {
		return goal, ErrInvalid
	}
	if !models.ValidPriority(priority) || !models.ValidUrgency(urgency) {
		return goal, ErrInvalid
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO financial_goals (user_id, name, target_amount, current_amount, deadline, priority, urgency)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, user_id, name, target_amount, current_amount, deadline, priority, urgency, created_at`,
		userID, name, targetAmount, currentAmount, deadline, priority, urgency,
	).Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline, &goal.Priority, &goal.Urgency, &goal.CreatedAt)
	if err != nil {
		return goal, err
	}

	return goal, nil
}

// GetByID возвращает цель пользователя по идентификатору.
func (r *GoalRepository) GetByID(ctx context.Context, userID, goalID uuid.UUID) (models.FinancialGoal, error) {
	var goal models.FinancialGoal

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, target_amount, current_amount, deadline, priority, urgency, created_at
		 FROM financial_goals
		 WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	).Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline, &goal.Priority, &goal.Urgency, &goal.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return goal, ErrNotFound
		}
		return goal, err
	}

	return goal, nil
}

// ListByUser возвращает список целей пользователя.
func (r *GoalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.FinancialGoal, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, target_amount, current_amount, deadline, priority, urgency, created_at
		 FROM financial_goals
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := make([]models.FinancialGoal, 0)
	for rows.Next() {
		var goal models.FinancialGoal

		err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline, &goal.Priority, &goal.Urgency, &goal.CreatedAt)
		if err != nil {
			return nil, err
		}

		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return goals, nil
}

// Update обновляет параметры цели. Нулевые указатели оставляют поле без изменений,
// clearDeadline сбрасывает дедлайн в NULL.
func (r *GoalRepository) Update(ctx context.Context, userID, goalID uuid.UUID, name *string, targetAmount *float64, deadline *time.Time, clearDeadline bool, priority *models.GoalPriority, urgency *models.GoalUrgency) (models.FinancialGoal, error) {
	var goal models.FinancialGoal

	if name != nil && strings.TrimSpace(*name) == "" {
		return goal, ErrInvalid
	}
	if targetAmount != nil && *targetAmount <= 0 {
		return goal, ErrInvalid
	}
	if priority != nil && !models.ValidPriority(*priority) {
		return goal, ErrInvalid
	}
	if urgency != nil && !models.ValidUrgency(*urgency) {
		return goal, ErrInvalid
	}

	err := r.db.QueryRow(ctx,
		`UPDATE financial_goals
		 SET name = COALESCE($3, name),
		     target_amount = COALESCE($4, target_amount),
		     deadline = CASE WHEN $8 THEN NULL ELSE COALESCE($5, deadline) END,
		     priority = COALESCE($6, priority),
		     urgency = COALESCE($7, urgency)
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, target_amount, current_amount, deadline, priority, urgency, created_at`,
		goalID, userID, name, targetAmount, deadline, priority, urgency, clearDeadline,
	).Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline, &goal.Priority, &goal.Urgency, &goal.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return goal, ErrNotFound
		}
		return goal, err
	}

	return goal, nil
}

// UpdateProgress выставляет накопленную сумму цели в новое абсолютное значение.
func (r *GoalRepository) UpdateProgress(ctx context.Context, userID, goalID uuid.UUID, currentAmount float64) (models.FinancialGoal, error) {
	var goal models.FinancialGoal

	if currentAmount < 0 {
		return goal, ErrInvalid
	}

	err := r.db.QueryRow(ctx,
		`UPDATE financial_goals
		 SET current_amount = $3
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, name, target_amount, current_amount, deadline, priority, urgency, created_at`,
		goalID, userID, currentAmount,
	).Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline, &goal.Priority, &goal.Urgency, &goal.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return goal, ErrNotFound
		}
		return goal, err
	}

	return goal, nil
}

// Delete удаляет цель пользователя.
func (r *GoalRepository) Delete(ctx context.Context, userID, goalID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM financial_goals
		 WHERE id = $1 AND user_id = $2`,
		goalID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
