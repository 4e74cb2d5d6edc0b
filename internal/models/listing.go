package models

import (
	"fmt"
	"strings"
)

// ListingDetails holds the display attributes of a [Listing].
type ListingDetails struct {
	Title         string
	Description   string
	ImageURL      string
	Category      string
	LocationValue string // country code of the property
	RoomCount     int
	BathroomCount int
	GuestCount    int
	Price         int // nightly price in whole currency units
}

// Listing is a rentable property owned by a [User].
type Listing struct {
	base
	ownerID string
	details ListingDetails
}

// NewListing creates a [Listing] for the given owner.
func NewListing(sequence int, ownerID string, details ListingDetails) *Listing {
	details.Title = strings.TrimSpace(details.Title)
	return &Listing{base: newBase(sequence), ownerID: ownerID, details: details}
}

func (l *Listing) OwnerID() string         { return l.ownerID }
func (l *Listing) Details() ListingDetails { return l.details }
func (l *Listing) Title() string           { return l.details.Title }
func (l *Listing) Description() string     { return l.details.Description }
func (l *Listing) ImageURL() string        { return l.details.ImageURL }
func (l *Listing) Category() string        { return l.details.Category }
func (l *Listing) LocationValue() string   { return l.details.LocationValue }
func (l *Listing) RoomCount() int          { return l.details.RoomCount }
func (l *Listing) BathroomCount() int      { return l.details.BathroomCount }
func (l *Listing) GuestCount() int         { return l.details.GuestCount }
func (l *Listing) Price() int              { return l.details.Price }

// Validate checks required fields and non-negative counts.
func (l *Listing) Validate() error {
	if l.ownerID == "" {
		return fmt.Errorf("owner is required")
	}
	if l.details.Title == "" {
		return fmt.Errorf("title is required")
	}
	if l.details.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	if l.details.RoomCount < 0 || l.details.BathroomCount < 0 || l.details.GuestCount < 0 {
		return fmt.Errorf("counts must not be negative")
	}
	return nil
}
