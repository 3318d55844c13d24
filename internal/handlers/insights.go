package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/goal-tracker/backend/internal/auth"
	"example.com/goal-tracker/backend/internal/finance"
	"example.com/goal-tracker/backend/internal/models"
	"example.com/goal-tracker/backend/internal/repository"
)

const (
	defaultTopCategories = 5
	maxTopCategories     = 20
	analysisFetchLimit   = 1000
)

type InsightsHandler struct {
	Transactions         *repository.TransactionRepository
	Goals                *repository.GoalRepository
	Engine               *finance.Engine
	DefaultRiskTolerance float64
}

// NewInsightsHandler создает обработчик аналитики и рекомендаций.
func NewInsightsHandler(transactions *repository.TransactionRepository, goals *repository.GoalRepository, engine *finance.Engine, defaultRiskTolerance float64) *InsightsHandler {
	return &InsightsHandler{
		Transactions:         transactions,
		Goals:                goals,
		Engine:               engine,
		DefaultRiskTolerance: defaultRiskTolerance,
	}
}

type ProjectionResponse struct {
	GoalID     uuid.UUID                 `json:"goal_id"`
	Achievable bool                      `json:"achievable"`
	Months     *float64                  `json:"months"`
	Details    finance.TimeToGoalDetails `json:"details"`
}

type GrowthRequest struct {
	InitialAmount       float64 `json:"initial_amount" validate:"gte=0"`
	MonthlyContribution float64 `json:"monthly_contribution" validate:"gte=0"`
	AnnualRatePercent   float64 `json:"annual_rate_percent" validate:"gte=0"`
	Years               float64 `json:"years" validate:"gt=0"`
}

type SavingsFromCutsRequest struct {
	MonthlyExpenses *float64           `json:"monthly_expenses" validate:"omitempty,gt=0"`
	Cuts            map[string]float64 `json:"cuts" validate:"required,min=1"`
}

type SavingsFromCutsResponse struct {
	MonthlySavings float64            `json:"monthly_savings"`
	ByCategory     map[string]float64 `json:"by_category"`
}

type ForecastRequest struct {
	MonthlyContribution float64 `json:"monthly_contribution" validate:"gte=0"`
	AnnualRatePercent   float64 `json:"annual_rate_percent" validate:"gte=0"`
}

type ForecastResponse struct {
	GoalID     uuid.UUID `json:"goal_id"`
	Achievable bool      `json:"achievable"`
	Months     *int      `json:"months"`
	Series     []float64 `json:"series"`
}

type RecommendationsResponse struct {
	GoalID          uuid.UUID                `json:"goal_id"`
	Recommendations []finance.Recommendation `json:"recommendations"`
	Strategy        *finance.Strategy        `json:"strategy,omitempty"`
	Profile         models.UserProfile       `json:"profile"`
}

// Пустой список рекомендаций допустим: ответ тогда совпадает с базовым прогнозом.
type ImpactRequest struct {
	Recommendations []finance.Recommendation `json:"recommendations"`
}

type ImpactResponse struct {
	OriginalMonths          *float64                                   `json:"original_months"`
	NewMonths               *float64                                   `json:"new_months"`
	TimeReductionMonths     float64                                    `json:"time_reduction_months"`
	TimeReductionPercent    float64                                    `json:"time_reduction_percent"`
	TotalMonthlyImpact      float64                                    `json:"total_monthly_impact"`
	NewMonthlySavings       float64                                    `json:"new_monthly_savings"`
	EstimatedCompletionDate string                                     `json:"estimated_completion_date,omitempty"`
	ImpactByCategory        map[finance.RecommendationCategory]float64 `json:"impact_by_category"`
}

// Spending возвращает анализ расходов за скользящее окно.
func (h *InsightsHandler) Spending(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	months := defaultWindowMonths
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 24 {
			return badRequest(c, "invalid months")
		}
		months = parsed
	}

	topN := defaultTopCategories
	if raw := c.QueryParam("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxTopCategories {
			return badRequest(c, "invalid top")
		}
		topN = parsed
	}

	end := time.Now()
	start := end.AddDate(0, 0, -months*30)

	transactions, err := h.Transactions.ListByUser(c.Request().Context(), userID, &start, &end, analysisFetchLimit)
	if err != nil {
		return serverError(c)
	}

	analysis := finance.AnalyzeSpending(transactions, topN)
	return c.JSON(http.StatusOK, analysis)
}

// Projection оценивает срок достижения цели по текущему профилю.
func (h *InsightsHandler) Projection(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	goal, err := h.Goals.GetByID(c.Request().Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	riskTolerance, err := h.riskToleranceParam(c)
	if err != nil {
		return badRequest(c, "invalid risk_tolerance")
	}

	profile, err := h.loadProfile(c, userID, riskTolerance)
	if err != nil {
		return serverError(c)
	}

	months, details, err := finance.TimeToGoal(goal, profile, nil)
	if err != nil {
		return badRequest(c, "invalid goal parameters")
	}

	return c.JSON(http.StatusOK, toProjectionResponse(goal.ID, months, details))
}

// InvestmentGrowth считает будущую стоимость вложений.
func (h *InsightsHandler) InvestmentGrowth(c echo.Context) error {
	if _, ok := auth.UserIDFromContext(c); !ok {
		return unauthorized(c)
	}

	var req GrowthRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	result, err := finance.InvestmentGrowth(req.InitialAmount, req.MonthlyContribution, req.AnnualRatePercent, req.Years)
	if err != nil {
		return badRequest(c, "invalid growth parameters")
	}

	return c.JSON(http.StatusOK, result)
}

// SavingsFromCuts оценивает месячную экономию от сокращения категорий трат.
func (h *InsightsHandler) SavingsFromCuts(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req SavingsFromCutsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	for _, fraction := range req.Cuts {
		if fraction < 0 || fraction > 1 {
			return badRequest(c, "cut fractions must be between 0 and 1")
		}
	}

	monthlyExpenses := 0.0
	if req.MonthlyExpenses != nil {
		monthlyExpenses = *req.MonthlyExpenses
	} else {
		profile, err := h.loadProfile(c, userID, h.DefaultRiskTolerance)
		if err != nil {
			return serverError(c)
		}
		monthlyExpenses = profile.MonthlyExpenses
	}

	savings, byCategory := finance.EstimateSavingsFromCuts(monthlyExpenses, req.Cuts)
	return c.JSON(http.StatusOK, SavingsFromCutsResponse{
		MonthlySavings: savings,
		ByCategory:     byCategory,
	})
}

// Forecast строит помесячный прогноз накоплений до цели.
func (h *InsightsHandler) Forecast(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	goal, err := h.Goals.GetByID(c.Request().Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	var req ForecastRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	months := finance.ForecastMonths(goal.CurrentAmount, goal.TargetAmount, req.MonthlyContribution, req.AnnualRatePercent)
	series := finance.ForecastSeries(goal.CurrentAmount, goal.TargetAmount, req.MonthlyContribution, req.AnnualRatePercent, months)

	response := ForecastResponse{
		GoalID: goal.ID,
		Series: series,
	}
	if months < finance.ForecastMaxMonths {
		response.Achievable = true
		response.Months = &months
	}

	return c.JSON(http.StatusOK, response)
}

// Recommendations подбирает рекомендации по ускорению цели.
func (h *InsightsHandler) Recommendations(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	goal, err := h.Goals.GetByID(c.Request().Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	riskTolerance, err := h.riskToleranceParam(c)
	if err != nil {
		return badRequest(c, "invalid risk_tolerance")
	}

	profile, err := h.loadProfile(c, userID, riskTolerance)
	if err != nil {
		return serverError(c)
	}

	end := time.Now()
	start := end.AddDate(0, 0, -defaultWindowMonths*30)
	transactions, err := h.Transactions.ListByUser(c.Request().Context(), userID, &start, &end, analysisFetchLimit)
	if err != nil {
		return serverError(c)
	}

	analysis := finance.AnalyzeSpending(transactions, defaultTopCategories)
	recommendations := h.Engine.Generate(goal, profile, analysis)

	response := RecommendationsResponse{
		GoalID:          goal.ID,
		Recommendations: recommendations,
		Profile:         profile,
	}

	horizon, _, err := finance.TimeToGoal(goal, profile, nil)
	if err == nil && !math.IsInf(horizon, 1) {
		if strategy, ok := h.Engine.SelectStrategy(profile.RiskTolerance, horizon); ok {
			response.Strategy = &strategy
		}
	}

	return c.JSON(http.StatusOK, response)
}

// Impact моделирует суммарный эффект выбранных рекомендаций.
func (h *InsightsHandler) Impact(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	goal, err := h.Goals.GetByID(c.Request().Context(), userID, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	var req ImpactRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	riskTolerance, err := h.riskToleranceParam(c)
	if err != nil {
		return badRequest(c, "invalid risk_tolerance")
	}

	profile, err := h.loadProfile(c, userID, riskTolerance)
	if err != nil {
		return serverError(c)
	}

	summary, err := h.Engine.CombinedImpact(goal, profile, req.Recommendations)
	if err != nil {
		return badRequest(c, "invalid goal parameters")
	}

	return c.JSON(http.StatusOK, toImpactResponse(summary))
}

func (h *InsightsHandler) riskToleranceParam(c echo.Context) (float64, error) {
	raw := c.QueryParam("risk_tolerance")
	if raw == "" {
		return h.DefaultRiskTolerance, nil
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || parsed < 0 || parsed > 1 {
		return 0, errors.New("risk_tolerance must be between 0 and 1")
	}

	return parsed, nil
}

// loadProfile строит профиль по транзакциям текущего календарного месяца.
func (h *InsightsHandler) loadProfile(c echo.Context, userID uuid.UUID, riskTolerance float64) (models.UserProfile, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	transactions, err := h.Transactions.ListByUser(c.Request().Context(), userID, &monthStart, &now, analysisFetchLimit)
	if err != nil {
		return models.UserProfile{}, err
	}

	return models.NewProfileFromTransactions(userID, transactions, riskTolerance, now), nil
}

// toProjectionResponse переводит бесконечный срок в achievable=false с null месяцами:
// +Inf не сериализуется в JSON.
func toProjectionResponse(goalID uuid.UUID, months float64, details finance.TimeToGoalDetails) ProjectionResponse {
	response := ProjectionResponse{
		GoalID:  goalID,
		Details: details,
	}

	if !math.IsInf(months, 1) {
		response.Achievable = true
		response.Months = &months
	}

	return response
}

func toImpactResponse(summary finance.ImpactSummary) ImpactResponse {
	response := ImpactResponse{
		TimeReductionMonths:     summary.TimeReductionMonths,
		TimeReductionPercent:    summary.TimeReductionPercent,
		TotalMonthlyImpact:      summary.TotalMonthlyImpact,
		NewMonthlySavings:       summary.NewMonthlySavings,
		EstimatedCompletionDate: summary.EstimatedCompletionDate,
		ImpactByCategory:        summary.ImpactByCategory,
	}

	if !math.IsInf(summary.OriginalMonths, 1) {
		original := summary.OriginalMonths
		response.OriginalMonths = &original
	}
	if !math.IsInf(summary.NewMonths, 1) {
		months := summary.NewMonths
		response.NewMonths = &months
	}

	return response
}
