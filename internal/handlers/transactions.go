package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/goal-tracker/backend/internal/auth"
	"example.com/goal-tracker/backend/internal/models"
	"example.com/goal-tracker/backend/internal/notifications"
	"example.com/goal-tracker/backend/internal/repository"
)

const (
	dateLayout          = "2006-01-02"
	defaultListLimit    = 100
	maxListLimit        = 1000
	defaultWindowMonths = 3
)

type TransactionHandler struct {
	Transactions *repository.TransactionRepository
	Notifier     *notifications.Hub
}

// NewTransactionHandler создает обработчик транзакций.
func NewTransactionHandler(transactions *repository.TransactionRepository, notifier *notifications.Hub) *TransactionHandler {
	return &TransactionHandler{Transactions: transactions, Notifier: notifier}
}

type TransactionRequest struct {
	AccountID   *string `json:"account_id"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Type        string  `json:"type" validate:"required"`
	Category    string  `json:"category" validate:"max=100"`
	Description string  `json:"description" validate:"max=500"`
	Date        *string `json:"date"`
}

type TransactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	AccountID   *uuid.UUID `json:"account_id,omitempty"`
	Amount      float64    `json:"amount"`
	Type        string     `json:"type"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	IsManual    bool       `json:"is_manual"`
}

// Create сохраняет новую транзакцию.
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req TransactionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	txType := models.TransactionType(strings.TrimSpace(req.Type))
	if !models.ValidTransactionType(txType) {
		return badRequest(c, "invalid transaction type")
	}

	var accountID *uuid.UUID
	if req.AccountID != nil {
		parsed, err := uuid.Parse(strings.TrimSpace(*req.AccountID))
		if err != nil {
			return badRequest(c, "invalid account id")
		}
		accountID = &parsed
	}

	date := time.Now()
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			return badRequest(c, "invalid date format")
		}
		date = parsed
	}

	transaction := models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		Amount:      req.Amount,
		Type:        txType,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		IsManual:    true,
	}

	created, err := h.Transactions.Create(c.Request().Context(), transaction)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid transaction")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "account not found")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.Event{
		Type: notifications.EventTransactionCreated,
		Data: toTransactionResponse(created),
	})

	return c.JSON(http.StatusCreated, toTransactionResponse(created))
}

// List возвращает транзакции пользователя с фильтром по датам.
func (h *TransactionHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	startDate, endDate, err := parseDateRange(c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return badRequest(c, err.Error())
	}

	limit := defaultListLimit
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > maxListLimit {
			return badRequest(c, "invalid limit")
		}
	}

	transactions, err := h.Transactions.ListByUser(c.Request().Context(), userID, startDate, endDate, limit)
	if err != nil {
		return serverError(c)
	}

	response := make([]TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		response = append(response, toTransactionResponse(transaction))
	}

	return c.JSON(http.StatusOK, map[string][]TransactionResponse{"transactions": response})
}

// ByCategory возвращает расходы по категории за скользящее окно.
func (h *TransactionHandler) ByCategory(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	category := strings.TrimSpace(c.Param("category"))
	if category == "" {
		return badRequest(c, "category is required")
	}

	months := defaultWindowMonths
	if raw := c.QueryParam("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 24 {
			return badRequest(c, "invalid months")
		}
		months = parsed
	}

	transactions, err := h.Transactions.ListByCategory(c.Request().Context(), userID, category, months)
	if err != nil {
		return serverError(c)
	}

	response := make([]TransactionResponse, 0, len(transactions))
	total := 0.0
	for _, transaction := range transactions {
		response = append(response, toTransactionResponse(transaction))
		total += transaction.Amount
	}

	return c.JSON(http.StatusOK, map[string]any{
		"category":     category,
		"months":       months,
		"total":        total,
		"transactions": response,
	})
}

// Clear удаляет все транзакции пользователя.
func (h *TransactionHandler) Clear(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	deleted, err := h.Transactions.DeleteAllByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.Event{
		Type: notifications.EventTransactionsCleared,
		Data: map[string]int64{"deleted": deleted},
	})

	return c.JSON(http.StatusOK, map[string]int64{"deleted": deleted})
}

func parseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return parsed, nil
	}
	return time.Parse(dateLayout, trimmed)
}

func parseDateRange(start, end string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if start != "" {
		parsed, err := parseDate(start)
		if err != nil {
			return nil, nil, errors.New("invalid start_date format")
		}
		startDate = &parsed
	}

	if end != "" {
		parsed, err := parseDate(end)
		if err != nil {
			return nil, nil, errors.New("invalid end_date format")
		}
		endDate = &parsed
	}

	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, nil, errors.New("end_date must be after start_date")
	}

	return startDate, endDate, nil
}

func toTransactionResponse(transaction models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID,
		AccountID:   transaction.AccountID,
		Amount:      transaction.Amount,
		Type:        string(transaction.Type),
		Category:    transaction.Category,
		Description: transaction.Description,
		Date:        transaction.Date,
		IsManual:    transaction.IsManual,
	}
}
