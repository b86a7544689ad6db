package market

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/akbarovz/gadgethub/internal/errorz"
)

var (
	errRequired     = errors.New("is required")
	errInvalidPrice = errors.New("must be a non-negative number")
)

// NewListing is the input for creating a listing. Price arrives as the
// raw form value so the service can tell a missing price apart from a
// zero one.
type NewListing struct {
	Title       string
	Description string
	Price       string
	Type        string
}

// Service provides the rules for the marketplace.
type Service struct {
	store Store

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

func NewService(s Store) *Service {
	return &Service{
		store:   s,
		NowFunc: time.Now,
	}
}

// Create validates the input and creates a listing owned by the user.
func (s *Service) Create(ctx context.Context, userID int, in NewListing) (Listing, error) {
	title := strings.TrimSpace(in.Title)
	rawPrice := strings.TrimSpace(in.Price)

	var invalid errorz.InvalidInput

	if title == "" {
		invalid = append(invalid, errorz.Keyed{Key: "Title", Err: errRequired})
	}

	var price float64
	if rawPrice == "" {
		invalid = append(invalid, errorz.Keyed{Key: "Price", Err: errRequired})
	} else {
		var err error
		price, err = strconv.ParseFloat(rawPrice, 64)
		if err != nil || price < 0 {
			invalid = append(invalid, errorz.Keyed{Key: "Price", Err: errInvalidPrice})
		}
	}

	typ, err := ParseListingType(in.Type)
	if err != nil {
		invalid = append(invalid, errorz.Keyed{Key: "Type", Err: err})
	}

	if len(invalid) > 0 {
		return Listing{}, invalid
	}

	listing := Listing{
		UserID:      userID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Price:       price,
		Type:        typ,
		CreatedAt:   s.NowFunc(),
	}

	err = s.store.CreateListing(ctx, &listing)
	if err != nil {
		return Listing{}, err
	}

	return listing, nil
}

// List returns all listings, newest first.
func (s *Service) List(ctx context.Context) ([]Listing, error) {
	return s.store.Listings(ctx)
}

// Delete removes the listing if it's owned by the user.
// Deleting a listing the user doesn't own is a no-op, not an error.
func (s *Service) Delete(ctx context.Context, userID, listingID int) error {
	return s.store.DeleteListing(ctx, userID, listingID)
}
