package entities

import (
	"errors"
	"testing"
)

func TestNewAmount(t *testing.T) {
	t.Run("parses decimal strings", func(t *testing.T) {
		a, err := NewAmount("12.34")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Cents() != 1234 {
			t.Fatalf("expected 1234 cents, got %d", a.Cents())
		}
		if a.String() != "12.34" {
			t.Fatalf("unexpected string: %s", a.String())
		}
	})

	t.Run("whole amounts get two decimals", func(t *testing.T) {
		a, err := NewAmount("42")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.String() != "42.00" {
			t.Fatalf("unexpected string: %s", a.String())
		}
		if a.Cents() != 4200 {
			t.Fatalf("expected 4200 cents, got %d", a.Cents())
		}
	})

	t.Run("sub-cent digits truncate toward zero", func(t *testing.T) {
		a, err := NewAmount("10.999")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if a.Cents() != 1099 {
			t.Fatalf("expected 1099 cents, got %d", a.Cents())
		}
	})

	t.Run("rejects non-decimal input", func(t *testing.T) {
		_, err := NewAmount("ten euro")
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestAmountFromCents(t *testing.T) {
	a := AmountFromCents(4200)
	if a.String() != "42.00" {
		t.Fatalf("unexpected string: %s", a.String())
	}
	if a.Cents() != 4200 {
		t.Fatalf("round trip lost cents: %d", a.Cents())
	}

	b := AmountFromCents(1)
	if b.String() != "0.01" {
		t.Fatalf("unexpected string: %s", b.String())
	}
}

func TestAmountEqual(t *testing.T) {
	a, _ := NewAmount("12.50")
	b, _ := NewAmount("12.5")
	if !a.Equal(b) {
		t.Fatalf("expected %s to equal %s", a, b)
	}

	var zero Amount
	if !zero.IsZero() {
		t.Fatal("expected zero value to be zero")
	}
	if a.IsZero() {
		t.Fatal("expected non-zero amount")
	}
}
