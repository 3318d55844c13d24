package finance

import (
	"math"
	"testing"
	"time"

	"example.com/goal-tracker/backend/internal/models"
)

func expense(category string, amount float64) models.Transaction {
	return models.Transaction{
		Amount:   amount,
		Type:     models.TransactionTypeExpense,
		Category: category,
		Date:     time.Now(),
	}
}

// TestAnalyzeSpendingScenario проверяет контрольный сценарий с topN=1.
func TestAnalyzeSpendingScenario(t *testing.T) {
	transactions := []models.Transaction{
		expense("Еда", 1000),
		expense("Еда", 500),
		expense("Транспорт", 300),
	}

	analysis := AnalyzeSpending(transactions, 1)

	if analysis.TotalExpenses != 1800 {
		t.Fatalf("expected total 1800, got %v", analysis.TotalExpenses)
	}
	if len(analysis.TopCategories) != 1 {
		t.Fatalf("expected one top category, got %d", len(analysis.TopCategories))
	}

	top := analysis.TopCategories[0]
	if top.Category != "Еда" || top.Amount != 1500 || top.TransactionCount != 2 {
		t.Fatalf("unexpected top category: %+v", top)
	}
	if math.Abs(top.Percentage-83.3333333333) > 0.001 {
		t.Fatalf("expected ~83.33%%, got %v", top.Percentage)
	}

	other := analysis.OtherCategories
	if other.Amount != 300 || other.CategoryCount != 1 {
		t.Fatalf("unexpected other bucket: %+v", other)
	}
	if math.Abs(other.Percentage-16.6666666666) > 0.001 {
		t.Fatalf("expected ~16.67%%, got %v", other.Percentage)
	}

	if analysis.CategoryCount != 2 {
		t.Fatalf("expected 2 categories, got %d", analysis.CategoryCount)
	}
	if !almostEqual(analysis.AverageTransactionSize, 600) {
		t.Fatalf("expected average 600, got %v", analysis.AverageTransactionSize)
	}
}

// TestAnalyzeSpendingPercentagesSum проверяет, что проценты сходятся к 100.
func TestAnalyzeSpendingPercentagesSum(t *testing.T) {
	transactions := []models.Transaction{
		expense("Еда", 4200),
		expense("Транспорт", 1300),
		expense("Развлечения", 2750),
		expense("Покупки", 900),
		expense("Здоровье", 640),
	}

	analysis := AnalyzeSpending(transactions, 2)

	sum := analysis.OtherCategories.Percentage
	for _, category := range analysis.TopCategories {
		sum += category.Percentage
	}

	if math.Abs(sum-100) > 0.0001 {
		t.Fatalf("expected percentages to sum to 100, got %v", sum)
	}
}

// TestAnalyzeSpendingIgnoresIncome проверяет фильтрацию по типу расхода.
func TestAnalyzeSpendingIgnoresIncome(t *testing.T) {
	transactions := []models.Transaction{
		expense("Еда", 1000),
		{Amount: 85000, Type: models.TransactionTypeIncome, Category: "Зарплата", Date: time.Now()},
		{Amount: 5000, Type: models.TransactionTypeTransfer, Category: "Перевод", Date: time.Now()},
	}

	analysis := AnalyzeSpending(transactions, 5)

	if analysis.TotalExpenses != 1000 {
		t.Fatalf("expected total 1000, got %v", analysis.TotalExpenses)
	}
	if analysis.CategoryCount != 1 {
		t.Fatalf("expected single category, got %d", analysis.CategoryCount)
	}

	// Средний чек делится на все входные транзакции, включая доходы и переводы.
	if !almostEqual(analysis.AverageTransactionSize, 1000.0/3) {
		t.Fatalf("expected average %v, got %v", 1000.0/3, analysis.AverageTransactionSize)
	}
}

// TestAnalyzeSpendingEmpty проверяет нулевые значения без деления на ноль.
func TestAnalyzeSpendingEmpty(t *testing.T) {
	analysis := AnalyzeSpending(nil, 5)

	if analysis.TotalExpenses != 0 {
		t.Fatalf("expected zero total, got %v", analysis.TotalExpenses)
	}
	if len(analysis.TopCategories) != 0 {
		t.Fatalf("expected no top categories, got %d", len(analysis.TopCategories))
	}
	if analysis.OtherCategories.Percentage != 0 {
		t.Fatalf("expected zero percentage, got %v", analysis.OtherCategories.Percentage)
	}
	if analysis.AverageTransactionSize != 0 {
		t.Fatalf("expected zero average, got %v", analysis.AverageTransactionSize)
	}
}

// TestAnalyzeSpendingStableTieBreak проверяет сохранение порядка первого появления.
func TestAnalyzeSpendingStableTieBreak(t *testing.T) {
	transactions := []models.Transaction{
		expense("Книги", 500),
		expense("Кино", 500),
		expense("Кофе", 500),
	}

	analysis := AnalyzeSpending(transactions, 3)

	want := []string{"Книги", "Кино", "Кофе"}
	for i, category := range analysis.TopCategories {
		if category.Category != want[i] {
			t.Fatalf("expected %s at position %d, got %s", want[i], i, category.Category)
		}
	}
}
