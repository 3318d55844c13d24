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
	"example.com/goal-tracker/backend/internal/notifications"
	"example.com/goal-tracker/backend/internal/repository"
)

type GoalHandler struct {
	Goals    *repository.GoalRepository
	Notifier *notifications.Hub
}

// NewGoalHandler создает обработчик финансовых целей.
func NewGoalHandler(goals *repository.GoalRepository, notifier *notifications.Hub) *GoalHandler {
	return &GoalHandler{Goals: goals, Notifier: notifier}
}

type GoalRequest struct {
	Name          string  `json:"name" validate:"required,max=200"`
	TargetAmount  float64 `json:"target_amount" validate:"gt=0"`
	CurrentAmount float64 `json:"current_amount" validate:"gte=0"`
	Deadline      *string `json:"deadline"`
	Priority      string  `json:"priority" validate:"required"`
	Urgency       string  `json:"urgency" validate:"required"`
}

type GoalUpdateRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=200"`
	TargetAmount *float64 `json:"target_amount" validate:"omitempty,gt=0"`
	Deadline     *string  `json:"deadline"`
	Priority     *string  `json:"priority"`
	Urgency      *string  `json:"urgency"`
}

type GoalProgressRequest struct {
	CurrentAmount float64 `json:"current_amount" validate:"gte=0"`
}

type GoalResponse struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	TargetAmount    float64    `json:"target_amount"`
	CurrentAmount   float64    `json:"current_amount"`
	AmountLeft      float64    `json:"amount_left"`
	ProgressPercent float64    `json:"progress_percent"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Priority        string     `json:"priority"`
	Urgency         string     `json:"urgency"`
	CreatedAt       time.Time  `json:"created_at"`
}

// List возвращает цели пользователя.
func (h *GoalHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goals, err := h.Goals.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	response := make([]GoalResponse, 0, len(goals))
	for _, goal := range goals {
		response = append(response, toGoalResponse(goal))
	}

	return c.JSON(http.StatusOK, map[string][]GoalResponse{"goals": response})
}

// Create создает финансовую цель.
func (h *GoalHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	priority := models.GoalPriority(strings.TrimSpace(req.Priority))
	if !models.ValidPriority(priority) {
		return badRequest(c, "invalid priority")
	}

	urgency := models.GoalUrgency(strings.TrimSpace(req.Urgency))
	if !models.ValidUrgency(urgency) {
		return badRequest(c, "invalid urgency")
	}

	deadline, err := parseOptionalDate(req.Deadline)
	if err != nil {
		return badRequest(c, "invalid deadline format")
	}

	goal, err := h.Goals.Create(c.Request().Context(), userID, strings.TrimSpace(req.Name), req.TargetAmount, req.CurrentAmount, deadline, priority, urgency)
	if err != nil {
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid goal")
		}
		return serverError(c)
	}

	h.Notifier.Publish(userID, notifications.Event{
		Type: notifications.EventGoalCreated,
		Data: toGoalResponse(goal),
	})

	return c.JSON(http.StatusCreated, toGoalResponse(goal))
}

// Get возвращает цель по идентификатору.
func (h *GoalHandler) Get(c echo.Context) error {
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

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// Update обновляет параметры цели.
func (h *GoalHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	var req GoalUpdateRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	var priority *models.GoalPriority
	if req.Priority != nil {
		value := models.GoalPriority(strings.TrimSpace(*req.Priority))
		if !models.ValidPriority(value) {
			return badRequest(c, "invalid priority")
		}
		priority = &value
	}

	var urgency *models.GoalUrgency
	if req.Urgency != nil {
		value := models.GoalUrgency(strings.TrimSpace(*req.Urgency))
		if !models.ValidUrgency(value) {
			return badRequest(c, "invalid urgency")
		}
		urgency = &value
	}

	deadline, clearDeadline, err := resolveDeadlineUpdate(req.Deadline)
	if err != nil {
		return badRequest(c, "invalid deadline format")
	}

	goal, err := h.Goals.Update(c.Request().Context(), userID, goalID, req.Name, req.TargetAmount, deadline, clearDeadline, priority, urgency)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "invalid goal")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// UpdateProgress выставляет накопленную сумму цели в новое значение.
func (h *GoalHandler) UpdateProgress(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	var req GoalProgressRequest
	if err = c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err = c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	goal, err := h.Goals.UpdateProgress(c.Request().Context(), userID, goalID, req.CurrentAmount)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		if errors.Is(err, repository.ErrInvalid) {
			return badRequest(c, "current_amount must not be negative")
		}
		return serverError(c)
	}

	eventType := notifications.EventGoalProgressUpdated
	if goal.CurrentAmount >= goal.TargetAmount {
		eventType = notifications.EventGoalCompleted
	}

	h.Notifier.Publish(userID, notifications.Event{
		Type: eventType,
		Data: toGoalResponse(goal),
	})

	return c.JSON(http.StatusOK, toGoalResponse(goal))
}

// Delete удаляет цель пользователя.
func (h *GoalHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	if err := h.Goals.Delete(c.Request().Context(), userID, goalID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}

	parsed, err := parseDate(trimmed)
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}

// resolveDeadlineUpdate различает отсутствие поля (оставить как есть),
// пустую строку (сбросить дедлайн) и дату (заменить).
func resolveDeadlineUpdate(value *string) (*time.Time, bool, error) {
	if value == nil {
		return nil, false, nil
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, true, nil
	}

	parsed, err := parseDate(trimmed)
	if err != nil {
		return nil, false, err
	}

	return &parsed, false, nil
}

func toGoalResponse(goal models.FinancialGoal) GoalResponse {
	progress := 0.0
	if goal.TargetAmount > 0 {
		progress = goal.CurrentAmount / goal.TargetAmount * 100
		if progress > 100 {
			progress = 100
		}
	}

	return GoalResponse{
		ID:              goal.ID,
		Name:            goal.Name,
		TargetAmount:    goal.TargetAmount,
		CurrentAmount:   goal.CurrentAmount,
		AmountLeft:      goal.AmountLeft(),
		ProgressPercent: progress,
		Deadline:        goal.Deadline,
		Priority:        string(goal.Priority),
		Urgency:         string(goal.Urgency),
		CreatedAt:       goal.CreatedAt,
	}
}
