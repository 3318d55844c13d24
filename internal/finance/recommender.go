package finance

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"example.com/goal-tracker/backend/internal/models"
)

type RecommendationCategory string

const (
	RecommendationSpendingCut    RecommendationCategory = "spending_cut"
	RecommendationInvestment     RecommendationCategory = "investment"
	RecommendationIncomeIncrease RecommendationCategory = "income_increase"
)

type Action map[string]any

// Recommendation живет в пределах одного запроса: идентификатор генерируется
// заново при каждой выдаче и нигде не сохраняется.
type Recommendation struct {
	ID              uuid.UUID              `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Category        RecommendationCategory `json:"category"`
	EstimatedImpact float64                `json:"estimated_impact"`
	Confidence      float64                `json:"confidence"`
	Actions         []Action               `json:"actions"`
}

type Strategy struct {
	Key              string  `json:"key"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	AnnualReturn     float64 `json:"annual_return"`
	RiskLevel        float64 `json:"risk_level"`
	MinHorizonMonths int     `json:"min_horizon_months"`
}

type ImpactSummary struct {
	OriginalMonths          float64                            `json:"original_months"`
	NewMonths               float64                            `json:"new_months"`
	TimeReductionMonths     float64                            `json:"time_reduction_months"`
	TimeReductionPercent    float64                            `json:"time_reduction_percent"`
	TotalMonthlyImpact      float64                            `json:"total_monthly_impact"`
	NewMonthlySavings       float64                            `json:"new_monthly_savings"`
	EstimatedCompletionDate string                             `json:"estimated_completion_date,omitempty"`
	ImpactByCategory        map[RecommendationCategory]float64 `json:"impact_by_category"`
}

// Engine подбирает рекомендации по цели, профилю и анализу расходов.
type Engine struct {
	strategies map[string]Strategy
}

// NewEngine создает движок с неизменяемым набором инвестиционных стратегий.
func NewEngine() *Engine {
	return &Engine{
		strategies: map[string]Strategy{
			"conservative": {
				Key:              "conservative",
				Name:             "Консервативная стратегия",
				Description:      "Вклады и гособлигации с низким риском",
				AnnualReturn:     6.5,
				RiskLevel:        0.2,
				MinHorizonMonths: 6,
			},
			"balanced": {
				Key:              "balanced",
				Name:             "Сбалансированная стратегия",
				Description:      "Смесь облигаций и ETF на акции",
				AnnualReturn:     10.2,
				RiskLevel:        0.5,
				MinHorizonMonths: 12,
			},
			"aggressive": {
				Key:              "aggressive",
				Name:             "Агрессивная стратегия",
				Description:      "Акции роста и технологические ETF",
				AnnualReturn:     15.7,
				RiskLevel:        0.8,
				MinHorizonMonths: 24,
			},
		},
	}
}

var reductionPotentials = map[string]float64{
	"Развлечения":   0.3,
	"Рестораны/Кафе": 0.4,
	"Одежда":        0.25,
	"Подарки":       0.2,
	"Такси":         0.5,
}

const defaultReductionPotential = 0.15

const (
	incomeRecommendationThreshold = 100000
	incomeRecommendationImpact    = 15000
	investedShareOfSurplus        = 0.2
)

// Generate собирает рекомендации трех семейств и сортирует их по убыванию эффекта.
func (e *Engine) Generate(goal models.FinancialGoal, profile models.UserProfile, analysis SpendingAnalysis) []Recommendation {
	recommendations := make([]Recommendation, 0, 5)

	recommendations = append(recommendations, e.spendingRecommendations(analysis)...)
	recommendations = append(recommendations, e.investmentRecommendations(goal, profile)...)
	recommendations = append(recommendations, e.incomeRecommendations(profile)...)

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].EstimatedImpact > recommendations[j].EstimatedImpact
	})

	return recommendations
}

func (e *Engine) spendingRecommendations(analysis SpendingAnalysis) []Recommendation {
	recs := make([]Recommendation, 0, 3)

	top := analysis.TopCategories
	if len(top) > 3 {
		top = top[:3]
	}

	for _, category := range top {
		potential := reductionPotential(category.Category)
		if potential <= 0 {
			continue
		}

		savings := category.Amount * potential
		recs = append(recs, Recommendation{
			ID:    uuid.New(),
			Title: fmt.Sprintf("Сократите расходы на '%s'", category.Category),
			Description: fmt.Sprintf(
				"Сократите расходы на %s на %.0f%%. Вы тратите %.0f руб/мес в этой категории.",
				category.Category, potential*100, category.Amount,
			),
			Category:        RecommendationSpendingCut,
			EstimatedImpact: savings,
			Confidence:      0.7,
			Actions: []Action{{
				"action":            "reduce_spending",
				"category":          category.Category,
				"target_percentage": potential,
				"current_amount":    category.Amount,
				"potential_savings": savings,
			}},
		})
	}

	return recs
}

func (e *Engine) investmentRecommendations(goal models.FinancialGoal, profile models.UserProfile) []Recommendation {
	horizonMonths, _, err := TimeToGoal(goal, profile, nil)
	if err != nil || math.IsInf(horizonMonths, 1) || horizonMonths < 6 {
		return nil
	}

	strategy, ok := e.SelectStrategy(profile.RiskTolerance, horizonMonths)
	if !ok {
		return nil
	}

	monthlyInvestment := profile.MonthlySavings() * investedShareOfSurplus
	if monthlyInvestment <= 0 {
		return nil
	}

	growth, err := InvestmentGrowth(0, monthlyInvestment, strategy.AnnualReturn, horizonMonths/12)
	if err != nil {
		return nil
	}

	return []Recommendation{{
		ID:    uuid.New(),
		Title: fmt.Sprintf("Инвестиционная стратегия: %s", strategy.Name),
		Description: fmt.Sprintf(
			"%s. Ожидаемая доходность: %.1f%% годовых. При инвестировании %.0f руб/мес вы можете заработать %.0f руб за %.0f месяцев.",
			strategy.Description, strategy.AnnualReturn, monthlyInvestment, growth.TotalEarnings, horizonMonths,
		),
		Category:        RecommendationInvestment,
		EstimatedImpact: growth.TotalEarnings / horizonMonths,
		Confidence:      0.6,
		Actions: []Action{{
			"action":                   "start_investing",
			"strategy":                 strategy.Key,
			"monthly_amount":           monthlyInvestment,
			"expected_annual_return":   strategy.AnnualReturn,
			"risk_level":               strategy.RiskLevel,
			"estimated_total_earnings": growth.TotalEarnings,
		}},
	}}
}

func (e *Engine) incomeRecommendations(profile models.UserProfile) []Recommendation {
	if profile.MonthlyIncome >= incomeRecommendationThreshold {
		return nil
	}

	return []Recommendation{{
		ID:    uuid.New(),
		Title: "Рассмотрите дополнительные источники дохода",
		Description: "Подработка или фриланс могут значительно ускорить достижение цели. " +
			"Даже 10-20 тыс. руб/мес дадут существенный эффект.",
		Category:        RecommendationIncomeIncrease,
		EstimatedImpact: incomeRecommendationImpact,
		Confidence:      0.5,
		Actions: []Action{{
			"action": "explore_side_income",
			"suggestions": []string{
				"Фриланс по вашей основной специальности",
				"Консультирование",
				"Удаленная подработка",
			},
			"potential_income_range": "10000-30000 руб/мес",
		}},
	}}
}

// SelectStrategy выбирает стратегию по горизонту цели и готовности к риску.
// Горизонт короче 6 месяцев стратегию не получает.
func (e *Engine) SelectStrategy(riskTolerance, horizonMonths float64) (Strategy, bool) {
	var key string

	switch {
	case horizonMonths < 6:
		return Strategy{}, false
	case horizonMonths < 12:
		key = "conservative"
	case horizonMonths < 24:
		switch {
		case riskTolerance < 0.3:
			key = "conservative"
		case riskTolerance < 0.7:
			key = "balanced"
		default:
			key = "aggressive"
		}
	default:
		if riskTolerance < 0.4 {
			key = "balanced"
		} else {
			key = "aggressive"
		}
	}

	strategy, ok := e.strategies[key]
	return strategy, ok
}

// CombinedImpact моделирует суммарный эффект выбранных рекомендаций на срок цели.
// Инвестиционные рекомендации входят в суммарный эффект, но не меняют норму
// накоплений: они работают с уже существующим профицитом.
func (e *Engine) CombinedImpact(goal models.FinancialGoal, profile models.UserProfile, selected []Recommendation) (ImpactSummary, error) {
	var totalImpact float64
	newSavings := profile.MonthlySavings()

	impactByCategory := make(map[RecommendationCategory]float64, len(selected))
	for _, rec := range selected {
		totalImpact += rec.EstimatedImpact
		impactByCategory[rec.Category] = rec.EstimatedImpact

		if rec.Category == RecommendationSpendingCut || rec.Category == RecommendationIncomeIncrease {
			newSavings += rec.EstimatedImpact
		}
	}

	newMonths, details, err := TimeToGoal(goal, profile, &newSavings)
	if err != nil {
		return ImpactSummary{}, err
	}

	originalMonths, _, err := TimeToGoal(goal, profile, nil)
	if err != nil {
		return ImpactSummary{}, err
	}

	var reduction float64
	if !math.IsInf(originalMonths, 1) {
		reduction = originalMonths - newMonths
	}

	var reductionPercent float64
	if originalMonths > 0 && !math.IsInf(originalMonths, 1) {
		reductionPercent = reduction / originalMonths * 100
	}

	return ImpactSummary{
		OriginalMonths:          originalMonths,
		NewMonths:               newMonths,
		TimeReductionMonths:     reduction,
		TimeReductionPercent:    reductionPercent,
		TotalMonthlyImpact:      totalImpact,
		NewMonthlySavings:       newSavings,
		EstimatedCompletionDate: details.EstimatedCompletionDate,
		ImpactByCategory:        impactByCategory,
	}, nil
}

func reductionPotential(category string) float64 {
	if potential, ok := reductionPotentials[category]; ok {
		return potential
	}
	return defaultReductionPotential
}
