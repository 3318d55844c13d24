package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestUpdateProgressRejectsNegativeAmount(t *testing.T) {
	r := &GoalRepository{}

	_, err := r.UpdateProgress(context.Background(), uuid.New(), uuid.New(), -100)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("UpdateProgress(-100) error = %v, want ErrInvalid", err)
	}
}
