package market

import "context"

// Store provides access to the listing store.
type Store interface {
	CreateListing(ctx context.Context, l *Listing) error
	// Listings returns all listings of all users, newest first, with the
	// owner's username populated. The board is deliberately not scoped to
	// the caller: it's a shared marketplace, unlike the private task list.
	Listings(ctx context.Context) ([]Listing, error)
	// DeleteListing deletes the listing iff it's owned by userID.
	// Matching no row is a silent no-op.
	DeleteListing(ctx context.Context, userID, listingID int) error
}
