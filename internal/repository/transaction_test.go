package repository

import (
	"testing"
	"time"
)

// TestTrailingWindow проверяет границы скользящего окна в днях.
func TestTrailingWindow(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

	start, end := trailingWindow(now, 3)

	if !end.Equal(now) {
		t.Fatalf("expected end %v, got %v", now, end)
	}

	wantStart := now.AddDate(0, 0, -90)
	if !start.Equal(wantStart) {
		t.Fatalf("expected start %v, got %v", wantStart, start)
	}
}

// TestTrailingWindowSingleMonth проверяет окно в один месяц.
func TestTrailingWindowSingleMonth(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	start, _ := trailingWindow(now, 1)

	if got := now.Sub(start).Hours() / 24; got != 30 {
		t.Fatalf("expected 30 days, got %v", got)
	}
}
