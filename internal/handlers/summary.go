package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"example.com/goal-tracker/backend/internal/auth"
	"example.com/goal-tracker/backend/internal/repository"
)

type SummaryHandler struct {
	Summary       *repository.SummaryRepository
	DefaultMonths int
}

// NewSummaryHandler создает обработчик финансовой сводки.
func NewSummaryHandler(summary *repository.SummaryRepository, defaultMonths int) *SummaryHandler {
	return &SummaryHandler{Summary: summary, DefaultMonths: defaultMonths}
}

type SummaryCategoryItem struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type SummaryResponse struct {
	PeriodStart     string                `json:"period_start"`
	PeriodEnd       string                `json:"period_end"`
	Months          int                   `json:"months"`
	TotalIncome     float64               `json:"total_income"`
	TotalExpenses   float64               `json:"total_expenses"`
	Savings         float64               `json:"savings"`
	SavingsRate     float64               `json:"savings_rate"`
	MonthlyIncome   float64               `json:"monthly_income"`
	MonthlyExpenses float64               `json:"monthly_expenses"`
	ByCategory      []SummaryCategoryItem `json:"by_category"`
}

// Get возвращает сводку доходов и расходов за скользящее окно.
func (h *SummaryHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	months := h.DefaultMonths
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 24 {
			return badRequest(c, "invalid months")
		}
		months = parsed
	}

	summary, err := h.Summary.Build(c.Request().Context(), userID, months)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid months")
		}
		return serverError(c)
	}

	byCategory := make([]SummaryCategoryItem, 0, len(summary.ByCategory))
	for _, item := range summary.ByCategory {
		byCategory = append(byCategory, SummaryCategoryItem{
			Category:   item.Category,
			Amount:     item.Amount,
			Percentage: item.Percentage,
		})
	}

	return c.JSON(http.StatusOK, SummaryResponse{
		PeriodStart:     summary.PeriodStart.Format(dateLayout),
		PeriodEnd:       summary.PeriodEnd.Format(dateLayout),
		Months:          summary.Months,
		TotalIncome:     summary.TotalIncome,
		TotalExpenses:   summary.TotalExpenses,
		Savings:         summary.Savings,
		SavingsRate:     summary.SavingsRate,
		MonthlyIncome:   summary.MonthlyIncome,
		MonthlyExpenses: summary.MonthlyExpenses,
		ByCategory:      byCategory,
	})
}
