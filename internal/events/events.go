package events

// Channel names for booking lifecycle events.
const (
	BookingCreated = "booking.created"
)

// BookingCreatedEvent carries enough context for a notification consumer.
type BookingCreatedEvent struct {
	BookingID int     `json:"booking_id"`
	PlaceID   int     `json:"place_id"`
	UserID    int     `json:"user_id"`
	CheckIn   int64   `json:"check_in"`  // unix seconds
	CheckOut  int64   `json:"check_out"` // unix seconds
	Price     float64 `json:"price"`
}
