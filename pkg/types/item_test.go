package types

import (
	"errors"
	"testing"
)

func TestItemValidate(t *testing.T) {
	t.Run("valid item", func(t *testing.T) {
		it := &Item{URL: "https://artist.bandcamp.com/album/lp1", Kind: KindAlbum, Rating: 4}
		if err := it.Validate(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("empty kind is allowed", func(t *testing.T) {
		it := &Item{URL: "https://example.com/x"}
		if err := it.Validate(); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("bad url", func(t *testing.T) {
		it := &Item{URL: "ftp://example.com/x"}
		if !errors.Is(it.Validate(), ErrInvalidURL) {
			t.Fatalf("expected ErrInvalidURL, got %v", it.Validate())
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		it := &Item{URL: "https://example.com/x", Kind: "cassette"}
		if !errors.Is(it.Validate(), ErrInvalidKind) {
			t.Fatalf("expected ErrInvalidKind, got %v", it.Validate())
		}
	})

	t.Run("rating out of range", func(t *testing.T) {
		it := &Item{URL: "https://example.com/x", Rating: 6}
		if !errors.Is(it.Validate(), ErrInvalidRating) {
			t.Fatalf("expected ErrInvalidRating, got %v", it.Validate())
		}
	})
}

func TestItemSetRating(t *testing.T) {
	t.Run("sets rating and touches UpdatedAt", func(t *testing.T) {
		it := &Item{URL: "https://example.com/x"}
		if err := it.SetRating(5); err != nil {
			t.Fatal(err)
		}
		if it.Rating != 5 {
			t.Fatalf("expected rating 5, got %d", it.Rating)
		}
		if it.UpdatedAt.IsZero() {
			t.Fatal("expected UpdatedAt to be set")
		}
	})

	t.Run("zero clears rating", func(t *testing.T) {
		it := &Item{URL: "https://example.com/x", Rating: 3}
		if err := it.SetRating(RatingUnset); err != nil {
			t.Fatal(err)
		}
		if it.Rating != RatingUnset {
			t.Fatalf("expected unrated, got %d", it.Rating)
		}
	})

	t.Run("rejects out of range", func(t *testing.T) {
		it := &Item{URL: "https://example.com/x"}
		if !errors.Is(it.SetRating(-1), ErrInvalidRating) {
			t.Fatal("expected ErrInvalidRating")
		}
		if !errors.Is(it.SetRating(6), ErrInvalidRating) {
			t.Fatal("expected ErrInvalidRating")
		}
	})
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://artist.bandcamp.com/album/lp1",
		"http://example.com",
		"https://soundcloud.com/a/b?in=playlist",
	}
	for _, raw := range valid {
		if err := ValidateURL(raw); err != nil {
			t.Fatalf("expected %q valid, got %v", raw, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		"not a url",
		"ftp://example.com/x",
		"https://",
		"/relative/path",
	}
	for _, raw := range invalid {
		if !errors.Is(ValidateURL(raw), ErrInvalidURL) {
			t.Fatalf("expected %q invalid", raw)
		}
	}
}
