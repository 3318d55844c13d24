package finance

import (
	"errors"
	"math"
	"testing"
	"time"

	"example.com/goal-tracker/backend/internal/models"
)

const floatTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

// TestTimeToGoalScenario проверяет контрольный сценарий: 80000 / 20000 * 0.85.
func TestTimeToGoalScenario(t *testing.T) {
	goal := models.FinancialGoal{
		TargetAmount:  100000,
		CurrentAmount: 20000,
		Priority:      models.GoalPriorityHigh,
	}
	profile := models.UserProfile{MonthlyIncome: 85000, MonthlyExpenses: 65000}

	months, details, err := TimeToGoal(goal, profile, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !almostEqual(details.RawMonths, 4.0) {
		t.Fatalf("expected raw months 4.0, got %v", details.RawMonths)
	}
	if !almostEqual(months, 3.4) {
		t.Fatalf("expected adjusted months 3.4, got %v", months)
	}
	if details.MonthlySavings != 20000 {
		t.Fatalf("expected monthly savings 20000, got %v", details.MonthlySavings)
	}
	if details.AmountLeft != 80000 {
		t.Fatalf("expected amount left 80000, got %v", details.AmountLeft)
	}
	if details.EstimatedCompletionDate == "" {
		t.Fatal("expected completion date to be set")
	}
	if details.PriorityImpact != "15.0%" {
		t.Fatalf("expected priority impact 15.0%%, got %s", details.PriorityImpact)
	}
}

// TestTimeToGoalUnaffordable проверяет бесконечный срок при неположительных накоплениях.
func TestTimeToGoalUnaffordable(t *testing.T) {
	goal := models.FinancialGoal{TargetAmount: 100000, Priority: models.GoalPriorityMedium}
	profile := models.UserProfile{MonthlyIncome: 40000, MonthlyExpenses: 50000}

	months, details, err := TimeToGoal(goal, profile, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !math.IsInf(months, 1) {
		t.Fatalf("expected infinite months, got %v", months)
	}
	if details.Reason == "" {
		t.Fatal("expected reason for unaffordable goal")
	}
	if details.MonthlySavings != -10000 {
		t.Fatalf("expected monthly savings -10000, got %v", details.MonthlySavings)
	}
}

// TestTimeToGoalMonotonic проверяет, что рост накоплений сокращает срок.
func TestTimeToGoalMonotonic(t *testing.T) {
	goal := models.FinancialGoal{TargetAmount: 120000, Priority: models.GoalPriorityMedium}
	profile := models.UserProfile{}

	previous := math.Inf(1)
	for _, savings := range []float64{5000, 10000, 20000, 40000} {
		override := savings
		months, _, err := TimeToGoal(goal, profile, &override)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if months >= previous {
			t.Fatalf("expected months to decrease with savings %v: %v >= %v", savings, months, previous)
		}
		previous = months
	}
}

// TestTimeToGoalPriorityOrdering проверяет порядок множителей приоритета.
func TestTimeToGoalPriorityOrdering(t *testing.T) {
	profile := models.UserProfile{MonthlyIncome: 60000, MonthlyExpenses: 40000}

	order := []models.GoalPriority{
		models.GoalPriorityCritical,
		models.GoalPriorityHigh,
		models.GoalPriorityMedium,
		models.GoalPriorityLow,
	}

	previous := -1.0
	for _, priority := range order {
		goal := models.FinancialGoal{TargetAmount: 100000, Priority: priority}
		months, _, err := TimeToGoal(goal, profile, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if months <= previous {
			t.Fatalf("expected months for %s to exceed previous: %v <= %v", priority, months, previous)
		}
		previous = months
	}
}

// TestTimeToGoalInvalidTarget проверяет отказ при неположительной цели.
func TestTimeToGoalInvalidTarget(t *testing.T) {
	goal := models.FinancialGoal{TargetAmount: 0}
	if _, _, err := TimeToGoal(goal, models.UserProfile{}, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

// TestInvestmentGrowthZeroRate проверяет линейное накопление при нулевой ставке.
func TestInvestmentGrowthZeroRate(t *testing.T) {
	result, err := InvestmentGrowth(0, 10000, 0, 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !almostEqual(result.TotalFutureValue, 120000) {
		t.Fatalf("expected future value 120000, got %v", result.TotalFutureValue)
	}
	if !almostEqual(result.TotalEarnings, 0) {
		t.Fatalf("expected zero earnings, got %v", result.TotalEarnings)
	}
	if !almostEqual(result.ROIPercentage, 0) {
		t.Fatalf("expected zero ROI, got %v", result.ROIPercentage)
	}
}

// TestInvestmentGrowthCompounds проверяет будущую стоимость при положительной ставке.
func TestInvestmentGrowthCompounds(t *testing.T) {
	result, err := InvestmentGrowth(100000, 5000, 12, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	monthlyRate := 12.0 / 12 / 100
	wantInitial := 100000 * math.Pow(1+monthlyRate, 24)
	wantAnnuity := 5000 * (math.Pow(1+monthlyRate, 24) - 1) / monthlyRate

	if !almostEqual(result.TotalFutureValue, wantInitial+wantAnnuity) {
		t.Fatalf("expected future value %v, got %v", wantInitial+wantAnnuity, result.TotalFutureValue)
	}
	if result.TotalContributions != 100000+5000*24 {
		t.Fatalf("expected contributions %v, got %v", 100000+5000*24, result.TotalContributions)
	}
	if result.TotalEarnings <= 0 {
		t.Fatalf("expected positive earnings, got %v", result.TotalEarnings)
	}
}

// TestInvestmentGrowthInvalid проверяет отказ при отрицательных входах.
func TestInvestmentGrowthInvalid(t *testing.T) {
	if _, err := InvestmentGrowth(0, 1000, 5, -1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative years, got %v", err)
	}

	if _, err := InvestmentGrowth(-1, 1000, 5, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative initial, got %v", err)
	}
}

// TestEstimateSavingsFromCuts проверяет расчет экономии по таблице долей.
func TestEstimateSavingsFromCuts(t *testing.T) {
	total, byCategory := EstimateSavingsFromCuts(60000, map[string]float64{
		"Еда":         0.2,
		"Развлечения": 0.5,
	})

	wantFood := 60000 * 0.25 * 0.2
	wantFun := 60000 * 0.20 * 0.5

	if !almostEqual(byCategory["Еда"], wantFood) {
		t.Fatalf("expected food savings %v, got %v", wantFood, byCategory["Еда"])
	}
	if !almostEqual(byCategory["Развлечения"], wantFun) {
		t.Fatalf("expected entertainment savings %v, got %v", wantFun, byCategory["Развлечения"])
	}
	if !almostEqual(total, wantFood+wantFun) {
		t.Fatalf("expected total %v, got %v", wantFood+wantFun, total)
	}
}

// TestEstimateSavingsUnknownCategory проверяет, что незнакомые категории пропускаются.
func TestEstimateSavingsUnknownCategory(t *testing.T) {
	total, byCategory := EstimateSavingsFromCuts(60000, map[string]float64{
		"Яхты": 0.9,
	})

	if total != 0 {
		t.Fatalf("expected zero total, got %v", total)
	}
	if len(byCategory) != 0 {
		t.Fatalf("expected empty breakdown, got %v", byCategory)
	}
}

// TestForecastMonthsCapped проверяет насыщение итеративного прогноза.
func TestForecastMonthsCapped(t *testing.T) {
	// Взнос нулевой, ставка нулевая: цель недостижима, поиск должен упереться в кап.
	months := ForecastMonths(0, 1000000, 0, 0)
	if months != ForecastMaxMonths {
		t.Fatalf("expected cap %d, got %d", ForecastMaxMonths, months)
	}
}

// TestForecastMonthsSimple проверяет прогноз без доходности.
func TestForecastMonthsSimple(t *testing.T) {
	months := ForecastMonths(0, 120000, 10000, 0)
	if months != 12 {
		t.Fatalf("expected 12 months, got %d", months)
	}
}

// TestForecastMonthsReturnsFaster проверяет, что доходность ускоряет накопление.
func TestForecastMonthsReturnsFaster(t *testing.T) {
	without := ForecastMonths(0, 500000, 15000, 0)
	with := ForecastMonths(0, 500000, 15000, 10)

	if with >= without {
		t.Fatalf("expected investments to shorten the path: %d >= %d", with, without)
	}
}

// TestForecastSeries проверяет помесячный ряд и обрезание по цели.
func TestForecastSeries(t *testing.T) {
	series := ForecastSeries(0, 25000, 10000, 0, 4)

	want := []float64{0, 10000, 20000, 25000, 25000}
	if len(series) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(series))
	}
	for i := range want {
		if !almostEqual(series[i], want[i]) {
			t.Fatalf("point %d: expected %v, got %v", i, want[i], series[i])
		}
	}
}

// TestTimeToGoalCompletionDateFormat проверяет формат даты завершения.
func TestTimeToGoalCompletionDateFormat(t *testing.T) {
	goal := models.FinancialGoal{TargetAmount: 40000, Priority: models.GoalPriorityMedium}
	profile := models.UserProfile{MonthlyIncome: 50000, MonthlyExpenses: 30000}

	_, details, err := TimeToGoal(goal, profile, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := time.Parse("2006-01-02", details.EstimatedCompletionDate); err != nil {
		t.Fatalf("expected ISO date, got %s", details.EstimatedCompletionDate)
	}
}
