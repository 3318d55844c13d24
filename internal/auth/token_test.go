package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenPairRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", "goal-tracker", time.Minute, time.Hour)
	userID := uuid.New()
	refreshID := uuid.New()

	pair, err := m.NewTokenPair(userID, refreshID)
	if err != nil {
		t.Fatalf("NewTokenPair() error = %v", err)
	}

	access, err := m.ParseAccessToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if access.Subject != userID.String() {
		t.Fatalf("subject = %s, want %s", access.Subject, userID)
	}

	refresh, err := m.ParseRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ParseRefreshToken() error = %v", err)
	}
	if refresh.ID != refreshID.String() {
		t.Fatalf("token id = %s, want %s", refresh.ID, refreshID)
	}
}

func TestParseAccessTokenRejectsRefreshToken(t *testing.T) {
	m := NewTokenManager("test-secret", "goal-tracker", time.Minute, time.Hour)

	pair, err := m.NewTokenPair(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("NewTokenPair() error = %v", err)
	}

	if _, err := m.ParseAccessToken(pair.RefreshToken); !errors.Is(err, ErrTokenTypeMismatch) {
		t.Fatalf("error = %v, want ErrTokenTypeMismatch", err)
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", "goal-tracker", -time.Minute, time.Hour)

	pair, err := m.NewTokenPair(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("NewTokenPair() error = %v", err)
	}

	if _, err := m.ParseAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	issued := NewTokenManager("test-secret", "someone-else", time.Minute, time.Hour)
	verifier := NewTokenManager("test-secret", "goal-tracker", time.Minute, time.Hour)

	pair, err := issued.NewTokenPair(uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("NewTokenPair() error = %v", err)
	}

	if _, err := verifier.ParseAccessToken(pair.AccessToken); err == nil {
		t.Fatal("expected error for foreign issuer")
	}
}
