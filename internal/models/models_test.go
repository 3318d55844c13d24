package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// TestAmountLeft проверяет расчет остатка до цели.
func TestAmountLeft(t *testing.T) {
	goal := FinancialGoal{TargetAmount: 100000, CurrentAmount: 20000}
	if got := goal.AmountLeft(); got != 80000 {
		t.Fatalf("expected 80000, got %v", got)
	}
}

// TestAmountLeftClamped проверяет, что остаток не бывает отрицательным.
func TestAmountLeftClamped(t *testing.T) {
	goal := FinancialGoal{TargetAmount: 50000, CurrentAmount: 70000}
	if got := goal.AmountLeft(); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

// TestNewProfileFromTransactions проверяет, что в профиль попадает только текущий месяц.
func TestNewProfileFromTransactions(t *testing.T) {
	userID := uuid.New()
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	transactions := []Transaction{
		{UserID: userID, Amount: 85000, Type: TransactionTypeIncome, Date: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)},
		{UserID: userID, Amount: 15000, Type: TransactionTypeExpense, Date: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)},
		{UserID: userID, Amount: 50000, Type: TransactionTypeExpense, Date: time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)},
		// Прошлый месяц не учитывается.
		{UserID: userID, Amount: 99000, Type: TransactionTypeExpense, Date: time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
		// Переводы не меняют доходы и расходы.
		{UserID: userID, Amount: 30000, Type: TransactionTypeTransfer, Date: time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)},
	}

	profile := NewProfileFromTransactions(userID, transactions, 0.5, now)

	if profile.MonthlyIncome != 85000 {
		t.Fatalf("expected income 85000, got %v", profile.MonthlyIncome)
	}
	if profile.MonthlyExpenses != 65000 {
		t.Fatalf("expected expenses 65000, got %v", profile.MonthlyExpenses)
	}
	if profile.MonthlySavings() != 20000 {
		t.Fatalf("expected savings 20000, got %v", profile.MonthlySavings())
	}

	wantRate := (85000.0 - 65000.0) / 85000.0
	if profile.AverageSavingsRate != wantRate {
		t.Fatalf("expected savings rate %v, got %v", wantRate, profile.AverageSavingsRate)
	}
}

// TestNewProfileZeroIncome проверяет, что при нулевом доходе норма сбережений равна нулю.
func TestNewProfileZeroIncome(t *testing.T) {
	now := time.Now()
	transactions := []Transaction{
		{Amount: 1000, Type: TransactionTypeExpense, Date: now},
	}

	profile := NewProfileFromTransactions(uuid.New(), transactions, 0.5, now)
	if profile.AverageSavingsRate != 0 {
		t.Fatalf("expected zero savings rate, got %v", profile.AverageSavingsRate)
	}
}

// TestValidPriority проверяет валидацию приоритетов.
func TestValidPriority(t *testing.T) {
	for _, p := range []GoalPriority{GoalPriorityLow, GoalPriorityMedium, GoalPriorityHigh, GoalPriorityCritical} {
		if !ValidPriority(p) {
			t.Fatalf("expected %s to be valid", p)
		}
	}

	if ValidPriority("extreme") {
		t.Fatal("expected invalid priority")
	}
}

// TestValidTransactionType проверяет валидацию типов транзакций.
func TestValidTransactionType(t *testing.T) {
	if !ValidTransactionType(TransactionTypeTransfer) {
		t.Fatal("expected transfer to be valid")
	}

	if ValidTransactionType("withdrawal") {
		t.Fatal("expected invalid transaction type")
	}
}
