package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/roamnest/apiserver/internal/events"
	"github.com/roamnest/apiserver/types"
	"github.com/rs/zerolog"
)

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking types.Booking) (types.Booking, error)
	ListByUser(ctx context.Context, userID int) ([]types.Booking, error)
}

// EventPublisher sends a message to the named channel. Satisfied by mq.MQ.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
}

// BookingService encapsulates booking use-cases. Booking creation requires a
// resolved identity; the total price is always recomputed server-side.
type BookingService struct {
	repo      BookingRepository
	places    PlaceRepository
	publisher EventPublisher
	logger    zerolog.Logger
}

// NewBookingService constructs a BookingService. publisher may be nil when
// no broker is configured.
func NewBookingService(repo BookingRepository, places PlaceRepository, publisher EventPublisher, logger zerolog.Logger) *BookingService {
	return &BookingService{
		repo:      repo,
		places:    places,
		publisher: publisher,
		logger:    logger,
	}
}

// Create validates the date range, recomputes the total from the place's
// nightly price, and rejects a client-submitted total that disagrees.
// A submitted price of zero means the client left the computation to us.
func (s *BookingService) Create(ctx context.Context, userID int, booking types.Booking) (types.Booking, error) {
	if booking.NumberOfGuests < 1 {
		return types.Booking{}, fmt.Errorf("%w: number of guests must be positive", ErrInvalidInput)
	}
	if booking.Name == "" {
		return types.Booking{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	nights := Nights(booking.CheckIn, booking.CheckOut)
	if nights < 1 {
		return types.Booking{}, fmt.Errorf("%w: check-out must be after check-in", ErrInvalidInput)
	}

	place, err := s.places.Get(ctx, booking.PlaceID)
	if err != nil {
		return types.Booking{}, err
	}

	total := float64(nights) * place.Price
	if booking.Price != 0 && math.Abs(booking.Price-total) > 1e-9 {
		return types.Booking{}, fmt.Errorf("%w: expected %g for %d nights", ErrPriceMismatch, total, nights)
	}

	booking.UserID = userID
	booking.Price = total
	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return types.Booking{}, err
	}

	s.publishCreated(ctx, created)
	return created, nil
}

// ListMine returns only the caller's bookings, each joined with its place.
func (s *BookingService) ListMine(ctx context.Context, userID int) ([]types.Booking, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Nights is the calendar-day difference between check-in and check-out,
// check-out exclusive. Time-of-day and timezone offsets are ignored.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, time.UTC)
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, time.UTC)
	return int(out.Sub(in).Hours() / 24)
}

// publishCreated is fire-and-forget: a broker outage must not fail the
// booking that was already persisted.
func (s *BookingService) publishCreated(ctx context.Context, booking types.Booking) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(events.BookingCreatedEvent{
		BookingID: booking.ID,
		PlaceID:   booking.PlaceID,
		UserID:    booking.UserID,
		CheckIn:   booking.CheckIn.Unix(),
		CheckOut:  booking.CheckOut.Unix(),
		Price:     booking.Price,
	})
	if err != nil {
		return
	}

	if _, err := s.publisher.Publish(ctx, events.BookingCreated, payload, nil); err != nil {
		s.logger.Warn().Err(err).Int("booking_id", booking.ID).Msg("failed to publish booking.created")
	}
}
