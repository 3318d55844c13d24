package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/goal-tracker/backend/internal/auth"
	"example.com/goal-tracker/backend/internal/repository"
)

type DemoHandler struct {
	Accounts *repository.AccountRepository
	Seeder   *repository.SeedRepository
	Enabled  bool
}

// NewDemoHandler создает обработчик демонстрационных данных.
func NewDemoHandler(accounts *repository.AccountRepository, seeder *repository.SeedRepository, enabled bool) *DemoHandler {
	return &DemoHandler{
		Accounts: accounts,
		Seeder:   seeder,
		Enabled:  enabled,
	}
}

type SeedDemoRequest struct {
	AccountID *uuid.UUID `json:"account_id"`
}

type SeedDemoResponse struct {
	Created int `json:"created"`
}

// Seed наполняет счет пользователя демонстрационными транзакциями.
// Если у пользователя уже есть транзакции, повторное наполнение не выполняется.
func (h *DemoHandler) Seed(c echo.Context) error {
	if !h.Enabled {
		return notFound(c, "demo mode disabled")
	}

	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req SeedDemoRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	var accountID uuid.UUID
	if req.AccountID != nil {
		account, err := h.Accounts.GetByID(c.Request().Context(), userID, *req.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound(c, "account not found")
			}
			return serverError(c)
		}
		accountID = account.ID
	} else {
		accounts, err := h.Accounts.ListByUser(c.Request().Context(), userID)
		if err != nil {
			return serverError(c)
		}
		if len(accounts) == 0 {
			return badRequest(c, "no account to seed")
		}
		accountID = accounts[0].ID
	}

	created, err := h.Seeder.SeedDemoData(c.Request().Context(), userID, accountID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, SeedDemoResponse{Created: created})
}
