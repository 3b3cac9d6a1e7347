package types

import "time"

// Place represents a rentable listing in the marketplace.
// It contains the listing content, booking constraints, and an owner
// reference that is set at creation and never changes afterwards.
type Place struct {
	// ID is the unique identifier of the place.
	ID int `json:"id" db:"id"`

	// OwnerID identifies the user who created the place. Only the owner
	// may update the listing.
	OwnerID int `json:"owner_id" db:"owner_id"`

	// Title is the short human-readable name of the listing.
	Title string `json:"title" db:"title"`

	// Address is the street address of the place.
	Address string `json:"address" db:"address"`

	// Description contains the full listing text.
	Description string `json:"description" db:"description"`

	// Photos is the ordered sequence of photo references. Each entry is
	// either a filename served from the local uploads directory or a
	// fully-qualified object-store URL.
	Photos []string `json:"photos" db:"photos"`

	// Perks are free-form amenity labels (wifi, parking, pets, ...).
	Perks []string `json:"perks" db:"perks"`

	// ExtraInfo carries additional house rules shown to guests.
	ExtraInfo string `json:"extra_info" db:"extra_info"`

	// CheckIn is the earliest check-in time, as a free-form time string.
	CheckIn string `json:"check_in" db:"check_in"`

	// CheckOut is the latest check-out time, as a free-form time string.
	CheckOut string `json:"check_out" db:"check_out"`

	// MaxGuests is the maximum number of guests allowed. Must be positive.
	MaxGuests int `json:"max_guests" db:"max_guests"`

	// Price is the nightly price. Must be positive.
	Price float64 `json:"price" db:"price"`

	// CreatedAt is the timestamp at which the place was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the place.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
