package handlers

import (
	"testing"
	"time"
)

// TestParseDateRangeValid проверяет корректный разбор диапазона дат.
func TestParseDateRangeValid(t *testing.T) {
	start, end, err := parseDateRange("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if start.Format(dateLayout) != "2024-01-01" {
		t.Fatalf("unexpected start: %s", start.Format(dateLayout))
	}
	if end.Format(dateLayout) != "2024-01-31" {
		t.Fatalf("unexpected end: %s", end.Format(dateLayout))
	}
}

// TestParseDateRangeOpen проверяет открытые границы диапазона.
func TestParseDateRangeOpen(t *testing.T) {
	start, end, err := parseDateRange("", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if start != nil || end != nil {
		t.Fatal("expected nil bounds for empty range")
	}
}

// TestParseDateRangeInvalid проверяет ошибки при неверном диапазоне.
func TestParseDateRangeInvalid(t *testing.T) {
	if _, _, err := parseDateRange("2024/01/01", ""); err == nil {
		t.Fatal("expected error for invalid start format")
	}

	if _, _, err := parseDateRange("2024-02-01", "2024-01-31"); err == nil {
		t.Fatal("expected error for end before start")
	}
}

// TestParseDateAcceptsRFC3339 проверяет разбор даты с временем.
func TestParseDateAcceptsRFC3339(t *testing.T) {
	parsed, err := parseDate("2024-03-15T10:30:00Z")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("expected %v, got %v", want, parsed)
	}
}
