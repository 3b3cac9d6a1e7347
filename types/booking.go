package types

import "time"

// Booking represents a reservation of a place for a date range.
// The total price is always computed server-side as the number of nights
// between check-in and check-out multiplied by the place's nightly price.
type Booking struct {
	// ID is the unique identifier of the booking.
	ID int `json:"id" db:"id"`

	// PlaceID identifies the place being booked.
	PlaceID int `json:"place_id" db:"place_id"`

	// UserID identifies the user who made the booking.
	UserID int `json:"user_id" db:"user_id"`

	// CheckIn is the first night of the stay.
	CheckIn time.Time `json:"check_in" db:"check_in"`

	// CheckOut is the day of departure. It is exclusive: a stay from
	// Jan 1 to Jan 4 is three nights.
	CheckOut time.Time `json:"check_out" db:"check_out"`

	// NumberOfGuests is how many guests the booking covers.
	NumberOfGuests int `json:"number_of_guests" db:"number_of_guests"`

	// Name is the renter's display name as entered at booking time.
	Name string `json:"name" db:"name"`

	// Mobile is the renter's contact phone number.
	Mobile string `json:"mobile" db:"mobile"`

	// Price is the total price for the stay.
	Price float64 `json:"price" db:"price"`

	// CreatedAt is the timestamp when the booking was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// Place is the resolved place record. It is populated only on reads
	// that join bookings with their places.
	Place *Place `json:"place,omitempty" db:"-"`
}
