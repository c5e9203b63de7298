package types

import (
	"net/url"
	"strings"
	"time"
)

// Item kinds. Kind describes what the bookmarked link points at.
const (
	KindAlbum = "album"
	KindTrack = "track"
	KindMix   = "mix"
	KindOther = "other"
)

// validKinds is the set of recognized item kinds.
var validKinds = map[string]bool{
	KindAlbum: true,
	KindTrack: true,
	KindMix:   true,
	KindOther: true,
}

// Rating bounds. RatingUnset (0) means the item has not been rated.
const (
	RatingUnset = 0
	RatingMax   = 5
)

// Item is one bookmarked music link.
type Item struct {
	ID        int64      `json:"id"`
	URL       string     `json:"url"`
	Title     string     `json:"title,omitempty"`
	Artist    string     `json:"artist,omitempty"`
	Kind      string     `json:"kind"`
	Rating    int        `json:"rating"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Stacks    []StackRef `json:"stacks"`
}

// Validate checks that the item is well-formed for persistence.
func (it *Item) Validate() error {
	if err := ValidateURL(it.URL); err != nil {
		return err
	}
	if it.Kind != "" && !validKinds[it.Kind] {
		return ErrInvalidKind
	}
	if !ValidRating(it.Rating) {
		return ErrInvalidRating
	}
	return nil
}

// SetRating sets the item rating. Zero clears the rating.
func (it *Item) SetRating(rating int) error {
	if !ValidRating(rating) {
		return ErrInvalidRating
	}
	it.Rating = rating
	it.UpdatedAt = time.Now()
	return nil
}

// ValidRating reports whether rating is in the accepted range.
// Zero is valid and means unrated.
func ValidRating(rating int) bool {
	return rating >= RatingUnset && rating <= RatingMax
}

// ValidKind reports whether kind is a recognized item kind.
func ValidKind(kind string) bool {
	return validKinds[kind]
}

// ValidateURL checks that raw is a non-empty absolute http(s) URL.
func ValidateURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if u.Host == "" {
		return ErrInvalidURL
	}
	return nil
}
