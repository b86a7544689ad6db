// Package market provides the buy/sell listings board.
package market

import (
	"errors"
	"fmt"
	"time"
)

// ListingType discriminates between sell and buy listings.
type ListingType string

const (
	TypeSell ListingType = "sell"
	TypeBuy  ListingType = "buy"
)

var ErrInvalidListingType = errors.New("listing type must be sell or buy")

// ParseListingType validates the raw form value. An empty value defaults
// to sell, anything else outside the two legal values is rejected before
// it can reach the store.
func ParseListingType(raw string) (ListingType, error) {
	switch ListingType(raw) {
	case "":
		return TypeSell, nil
	case TypeSell:
		return TypeSell, nil
	case TypeBuy:
		return TypeBuy, nil
	default:
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidListingType)
	}
}

// Listing is a marketplace entry. A listing belongs to exactly one user
// but is visible to all authenticated users. Listings are never edited
// in place, only created and deleted.
type Listing struct {
	ID          int
	UserID      int
	Title       string
	Description string
	Price       float64
	Type        ListingType
	CreatedAt   time.Time

	// Username is the owner's username, populated on reads for display.
	Username string
}
