package models

import "time"

// Favorite marks a [Listing] as bookmarked by a [User]. A (user, listing) pair exists at most once.
type Favorite struct {
	UserID    string
	ListingID string
	CreatedAt time.Time
}

// NewFavorite creates a [Favorite] stamped with the current time.
func NewFavorite(userID, listingID string) Favorite {
	return Favorite{UserID: userID, ListingID: listingID, CreatedAt: time.Now()}
}
