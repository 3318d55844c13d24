package handlers

import (
	"math"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"example.com/goal-tracker/backend/internal/finance"
)

// TestToProjectionResponseFinite проверяет перевод конечного срока в ответ.
func TestToProjectionResponseFinite(t *testing.T) {
	goalID := uuid.New()
	details := finance.TimeToGoalDetails{AdjustedMonths: 4.2}

	response := toProjectionResponse(goalID, 4.2, details)

	if !response.Achievable {
		t.Fatal("expected achievable goal")
	}
	if response.Months == nil || *response.Months != 4.2 {
		t.Fatalf("expected months 4.2, got %v", response.Months)
	}
}

// TestToProjectionResponseInfinite проверяет, что бесконечный срок дает null.
func TestToProjectionResponseInfinite(t *testing.T) {
	response := toProjectionResponse(uuid.New(), math.Inf(1), finance.TimeToGoalDetails{Reason: "Расходы превышают доходы"})

	if response.Achievable {
		t.Fatal("expected unachievable goal")
	}
	if response.Months != nil {
		t.Fatalf("expected nil months, got %v", *response.Months)
	}
	if response.Details.Reason == "" {
		t.Fatal("expected reason to be carried over")
	}
}

// TestImpactRequestAllowsEmptySelection проверяет, что пустой выбор рекомендаций
// проходит валидацию: ответ равен базовому прогнозу.
func TestImpactRequestAllowsEmptySelection(t *testing.T) {
	v := validator.New()

	if err := v.Struct(ImpactRequest{}); err != nil {
		t.Fatalf("empty selection rejected: %v", err)
	}
	if err := v.Struct(ImpactRequest{Recommendations: []finance.Recommendation{}}); err != nil {
		t.Fatalf("empty slice rejected: %v", err)
	}
}

// TestToImpactResponseInfinite проверяет перевод бесконечных сроков в null.
func TestToImpactResponseInfinite(t *testing.T) {
	summary := finance.ImpactSummary{
		OriginalMonths:     math.Inf(1),
		NewMonths:          5,
		TotalMonthlyImpact: 7000,
	}

	response := toImpactResponse(summary)

	if response.OriginalMonths != nil {
		t.Fatalf("expected nil original months, got %v", *response.OriginalMonths)
	}
	if response.NewMonths == nil || *response.NewMonths != 5 {
		t.Fatalf("expected new months 5, got %v", response.NewMonths)
	}
	if response.TotalMonthlyImpact != 7000 {
		t.Fatalf("expected impact 7000, got %v", response.TotalMonthlyImpact)
	}
}
