package finance

import (
	"errors"
	"fmt"
	"math"
	"time"

	"example.com/goal-tracker/backend/internal/models"
)

// ErrInvalidInput сигнализирует о нарушении предусловия вызова калькулятора.
var ErrInvalidInput = errors.New("invalid calculator input")

const (
	// Приближение месяца фиксированными 30 днями, без календарной точности.
	daysPerMonth = 30

	// ForecastMaxMonths ограничивает итеративный прогноз 50 годами.
	ForecastMaxMonths = 600
)

var priorityMultipliers = map[models.GoalPriority]float64{
	models.GoalPriorityCritical: 0.7,
	models.GoalPriorityHigh:     0.85,
	models.GoalPriorityMedium:   1.0,
	models.GoalPriorityLow:      1.15,
}

// Таблица срочности объявлена, но в расчет пока не входит: продукт не подтвердил,
// должна ли срочность масштабировать оценку вместе с приоритетом.
var urgencyMultipliers = map[models.GoalUrgency]float64{
	models.GoalUrgencyUrgent:     0.8,
	models.GoalUrgencyShortTerm:  0.9,
	models.GoalUrgencyMediumTerm: 1.0,
	models.GoalUrgencyLongTerm:   1.1,
}

type TimeToGoalDetails struct {
	RawMonths               float64 `json:"raw_months"`
	AdjustedMonths          float64 `json:"adjusted_months"`
	MonthlySavings          float64 `json:"monthly_savings"`
	AmountLeft              float64 `json:"amount_left"`
	EstimatedCompletionDate string  `json:"estimated_completion_date,omitempty"`
	PriorityImpact          string  `json:"priority_impact,omitempty"`
	Reason                  string  `json:"reason,omitempty"`
}

type GrowthResult struct {
	TotalFutureValue   float64 `json:"total_future_value"`
	TotalContributions float64 `json:"total_contributions"`
	TotalEarnings      float64 `json:"total_earnings"`
	AnnualReturnRate   float64 `json:"annual_return_rate"`
	ROIPercentage      float64 `json:"roi_percentage"`
}

// TimeToGoal оценивает число месяцев до цели с учетом множителя приоритета.
// Если накопления не положительны, возвращает +Inf и причину в деталях:
// это ожидаемое состояние, а не ошибка.
func TimeToGoal(goal models.FinancialGoal, profile models.UserProfile, monthlySavingsOverride *float64) (float64, TimeToGoalDetails, error) {
	if goal.TargetAmount <= 0 {
		return 0, TimeToGoalDetails{}, fmt.Errorf("%w: target amount must be positive", ErrInvalidInput)
	}

	monthlySavings := profile.MonthlySavings()
	if monthlySavingsOverride != nil {
		monthlySavings = *monthlySavingsOverride
	}

	amountLeft := goal.AmountLeft()

	if monthlySavings <= 0 {
		return math.Inf(1), TimeToGoalDetails{
			MonthlySavings: monthlySavings,
			AmountLeft:     amountLeft,
			Reason:         "Расходы превышают доходы",
		}, nil
	}

	rawMonths := amountLeft / monthlySavings

	multiplier := 1.0
	if m, ok := priorityMultipliers[goal.Priority]; ok {
		multiplier = m
	}

	adjusted := rawMonths * multiplier
	if adjusted < 0 {
		adjusted = 0
	}

	completion := time.Now().AddDate(0, 0, int(adjusted*daysPerMonth))

	details := TimeToGoalDetails{
		RawMonths:               rawMonths,
		AdjustedMonths:          adjusted,
		MonthlySavings:          monthlySavings,
		AmountLeft:              amountLeft,
		EstimatedCompletionDate: completion.Format("2006-01-02"),
		PriorityImpact:          fmt.Sprintf("%.1f%%", 100*(1-multiplier)),
	}

	return adjusted, details, nil
}

// InvestmentGrowth считает будущую стоимость стартовой суммы и ежемесячных
// взносов при ежемесячной капитализации.
func InvestmentGrowth(initial, monthlyContribution, annualRatePercent, years float64) (GrowthResult, error) {
	if years < 0 {
		return GrowthResult{}, fmt.Errorf("%w: years must not be negative", ErrInvalidInput)
	}
	if initial < 0 || monthlyContribution < 0 {
		return GrowthResult{}, fmt.Errorf("%w: amounts must not be negative", ErrInvalidInput)
	}

	monthlyRate := annualRatePercent / 12 / 100
	months := years * 12

	futureInitial := initial * math.Pow(1+monthlyRate, months)

	var futureAnnuity float64
	if monthlyRate > 0 {
		futureAnnuity = monthlyContribution * (math.Pow(1+monthlyRate, months) - 1) / monthlyRate
	} else {
		futureAnnuity = monthlyContribution * months
	}

	result := GrowthResult{
		TotalFutureValue:   futureInitial + futureAnnuity,
		TotalContributions: initial + monthlyContribution*months,
		AnnualReturnRate:   annualRatePercent,
	}
	result.TotalEarnings = result.TotalFutureValue - result.TotalContributions
	if result.TotalContributions > 0 {
		result.ROIPercentage = result.TotalEarnings / result.TotalContributions * 100
	}

	return result, nil
}

// Доли категорий в месячных расходах по умолчанию: реальные суммы по категориям
// в этот расчет не передаются.
var defaultCategoryDistribution = map[string]float64{
	"Еда":         0.25,
	"Транспорт":   0.15,
	"Развлечения": 0.20,
	"Коммуналка":  0.10,
	"Покупки":     0.20,
	"Прочее":      0.10,
}

// EstimateSavingsFromCuts оценивает экономию от сокращения категорий расходов.
// Категории вне таблицы долей молча пропускаются.
func EstimateSavingsFromCuts(currentMonthlyExpenses float64, cuts map[string]float64) (float64, map[string]float64) {
	savingsByCategory := make(map[string]float64, len(cuts))
	var total float64

	for category, reduction := range cuts {
		share, ok := defaultCategoryDistribution[category]
		if !ok {
			continue
		}

		categoryExpense := currentMonthlyExpenses * share
		categorySavings := categoryExpense * reduction
		savingsByCategory[category] = categorySavings
		total += categorySavings
	}

	return total, savingsByCategory
}

// ForecastMonths численно ищет число месяцев до цели при ежемесячном взносе и
// капитализации. Поиск жестко ограничен ForecastMaxMonths и насыщается на нем.
func ForecastMonths(current, target, monthlyContribution, annualRatePercent float64) int {
	monthlyRate := annualRatePercent / 12 / 100

	months := 0
	balance := current
	for balance < target && months < ForecastMaxMonths {
		balance = balance*(1+monthlyRate) + monthlyContribution
		months++
	}

	return months
}

// ForecastSeries возвращает помесячный ряд накоплений, обрезанный по цели.
// Первая точка равна текущему накоплению.
func ForecastSeries(current, target, monthlyContribution, annualRatePercent float64, months int) []float64 {
	if months < 0 {
		months = 0
	}
	if months > ForecastMaxMonths {
		months = ForecastMaxMonths
	}

	monthlyRate := annualRatePercent / 12 / 100

	series := make([]float64, 0, months+1)
	series = append(series, current)

	balance := current
	for i := 0; i < months; i++ {
		balance = balance*(1+monthlyRate) + monthlyContribution
		point := balance
		if point > target {
			point = target
		}
		series = append(series, point)
	}

	return series
}
