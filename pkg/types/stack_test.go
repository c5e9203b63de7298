package types

import (
	"errors"
	"testing"
)

func TestNormalizeStackName(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		name, err := NormalizeStackName("  late night  ")
		if err != nil {
			t.Fatal(err)
		}
		if name != "late night" {
			t.Fatalf("expected %q, got %q", "late night", name)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		if _, err := NormalizeStackName(""); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
		if _, err := NormalizeStackName("   "); !errors.Is(err, ErrInvalidName) {
			t.Fatalf("expected ErrInvalidName, got %v", err)
		}
	})
}
