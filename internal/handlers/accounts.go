package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/goal-tracker/backend/internal/auth"
	"example.com/goal-tracker/backend/internal/models"
	"example.com/goal-tracker/backend/internal/repository"
)

type AccountHandler struct {
	Accounts *repository.AccountRepository
}

// NewAccountHandler создает обработчик счетов.
func NewAccountHandler(accounts *repository.AccountRepository) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

type AccountRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Balance  float64 `json:"balance" validate:"gte=0"`
	Currency string  `json:"currency" validate:"omitempty,len=3"`
}

type AccountResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Balance     float64   `json:"balance"`
	Currency    string    `json:"currency"`
	LastUpdated time.Time `json:"last_updated"`
}

// List возвращает счета пользователя.
func (h *AccountHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	accounts, err := h.Accounts.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		response = append(response, toAccountResponse(account))
	}

	return c.JSON(http.StatusOK, map[string][]AccountResponse{"accounts": response})
}

// Create создает счет пользователя.
func (h *AccountHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req AccountRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "RUB"
	}

	account, err := h.Accounts.Create(c.Request().Context(), userID, name, req.Balance, currency)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, toAccountResponse(account))
}

// Get возвращает счет по идентификатору.
func (h *AccountHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid account id")
	}

	account, err := h.Accounts.GetByID(c.Request().Context(), userID, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "account not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toAccountResponse(account))
}

func toAccountResponse(account models.Account) AccountResponse {
	return AccountResponse{
		ID:          account.ID,
		Name:        account.Name,
		Balance:     account.Balance,
		Currency:    account.Currency,
		LastUpdated: account.LastUpdated,
	}
}
