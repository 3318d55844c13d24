package handlers

import (
	"testing"
	"time"
)

func TestResolveDeadlineUpdateAbsent(t *testing.T) {
	deadline, clear, err := resolveDeadlineUpdate(nil)
	if err != nil {
		t.Fatalf("resolveDeadlineUpdate(nil) error = %v", err)
	}
	if deadline != nil || clear {
		t.Fatalf("resolveDeadlineUpdate(nil) = (%v, %v), want (nil, false)", deadline, clear)
	}
}

func TestResolveDeadlineUpdateClear(t *testing.T) {
	empty := ""
	deadline, clear, err := resolveDeadlineUpdate(&empty)
	if err != nil {
		t.Fatalf("resolveDeadlineUpdate(\"\") error = %v", err)
	}
	if deadline != nil || !clear {
		t.Fatalf("resolveDeadlineUpdate(\"\") = (%v, %v), want (nil, true)", deadline, clear)
	}
}

func TestResolveDeadlineUpdateDate(t *testing.T) {
	value := "2026-12-31"
	deadline, clear, err := resolveDeadlineUpdate(&value)
	if err != nil {
		t.Fatalf("resolveDeadlineUpdate(%q) error = %v", value, err)
	}
	if clear {
		t.Fatal("clear = true, want false")
	}
	if deadline == nil {
		t.Fatal("deadline = nil, want parsed date")
	}

	want := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)
	if !deadline.Equal(want) {
		t.Fatalf("deadline = %v, want %v", deadline, want)
	}
}

func TestResolveDeadlineUpdateInvalid(t *testing.T) {
	value := "not-a-date"
	if _, _, err := resolveDeadlineUpdate(&value); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
