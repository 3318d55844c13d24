package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionType string

type GoalPriority string

type GoalUrgency string

const (
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeTransfer TransactionType = "transfer"

	GoalPriorityLow      GoalPriority = "low"
	GoalPriorityMedium   GoalPriority = "medium"
	GoalPriorityHigh     GoalPriority = "high"
	GoalPriorityCritical GoalPriority = "critical"

	GoalUrgencyLongTerm   GoalUrgency = "long_term"
	GoalUrgencyMediumTerm GoalUrgency = "medium_term"
	GoalUrgencyShortTerm  GoalUrgency = "short_term"
	GoalUrgencyUrgent     GoalUrgency = "urgent"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}

type Account struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Balance     float64   `json:"balance"`
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"last_updated"`
}

// Transaction хранит сумму без знака; направление задается полем Type.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	IsManual    bool            `json:"is_manual"`
}

type FinancialGoal struct {
	ID            uuid.UUID    `json:"id"`
	UserID        uuid.UUID    `json:"user_id"`
	Name          string       `json:"name"`
	TargetAmount  float64      `json:"target_amount"`
	CurrentAmount float64      `json:"current_amount"`
	Deadline      *time.Time   `json:"deadline,omitempty"`
	Priority      GoalPriority `json:"priority"`
	Urgency       GoalUrgency  `json:"urgency"`
	CreatedAt     time.Time    `json:"created_at"`
}

// AmountLeft возвращает остаток до цели, не уходя в минус при перевыполнении.
func (g FinancialGoal) AmountLeft() float64 {
	left := g.TargetAmount - g.CurrentAmount
	if left < 0 {
		return 0
	}
	return left
}

// UserProfile описывает производный месячный срез финансов пользователя. В базе не хранится.
type UserProfile struct {
	UserID             uuid.UUID `json:"user_id"`
	MonthlyIncome      float64   `json:"monthly_income"`
	MonthlyExpenses    float64   `json:"monthly_expenses"`
	AverageSavingsRate float64   `json:"average_savings_rate"`
	RiskTolerance      float64   `json:"risk_tolerance"`
}

// MonthlySavings возвращает разницу между месячным доходом и расходами.
func (p UserProfile) MonthlySavings() float64 {
	return p.MonthlyIncome - p.MonthlyExpenses
}

// NewProfileFromTransactions строит профиль по транзакциям текущего календарного месяца.
func NewProfileFromTransactions(userID uuid.UUID, transactions []Transaction, riskTolerance float64, now time.Time) UserProfile {
	profile := UserProfile{
		UserID:        userID,
		RiskTolerance: riskTolerance,
	}

	for _, t := range transactions {
		if t.Date.Year() != now.Year() || t.Date.Month() != now.Month() {
			continue
		}

		switch t.Type {
		case TransactionTypeIncome:
			profile.MonthlyIncome += t.Amount
		case TransactionTypeExpense:
			profile.MonthlyExpenses += t.Amount
		}
	}

	if profile.MonthlyIncome > 0 {
		profile.AverageSavingsRate = (profile.MonthlyIncome - profile.MonthlyExpenses) / profile.MonthlyIncome
	}

	return profile
}

// ValidPriority проверяет, что значение входит в набор приоритетов.
func ValidPriority(value GoalPriority) bool {
	switch value {
	case GoalPriorityLow, GoalPriorityMedium, GoalPriorityHigh, GoalPriorityCritical:
		return true
	}
	return false
}

// ValidUrgency проверяет, что значение входит в набор срочностей.
func ValidUrgency(value GoalUrgency) bool {
	switch value {
	case GoalUrgencyLongTerm, GoalUrgencyMediumTerm, GoalUrgencyShortTerm, GoalUrgencyUrgent:
		return true
	}
	return false
}

// ValidTransactionType проверяет, что значение входит в набор типов транзакций.
func ValidTransactionType(value TransactionType) bool {
	switch value {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypeTransfer:
		return true
	}
	return false
}
