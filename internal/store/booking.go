package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/roamnest/apiserver/types"
)

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking types.Booking) (types.Booking, error) {
	booking.CreatedAt = time.Now()

	const query = `
		INSERT INTO bookings (place_id, user_id, check_in, check_out, number_of_guests, name, mobile, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		booking.PlaceID,
		booking.UserID,
		booking.CheckIn,
		booking.CheckOut,
		booking.NumberOfGuests,
		booking.Name,
		booking.Mobile,
		booking.Price,
		booking.CreatedAt,
	).Scan(&booking.ID); err != nil {
		return types.Booking{}, err
	}

	return booking, nil
}

// ListByUser returns the user's bookings, each joined with its full place
// record. This is the one composed read in the system.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int) ([]types.Booking, error) {
	const query = `
		SELECT b.id, b.place_id, b.user_id, b.check_in, b.check_out,
		       b.number_of_guests, b.name, b.mobile, b.price, b.created_at,
		       p.id, p.owner_id, p.title, p.address, p.description, p.photos, p.perks,
		       p.extra_info, p.check_in, p.check_out, p.max_guests, p.price,
		       p.created_at, p.updated_at
		FROM bookings b
		JOIN places p ON p.id = b.place_id
		WHERE b.user_id = $1
		ORDER BY b.id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]types.Booking, 0)
	for rows.Next() {
		var booking types.Booking
		var place types.Place
		var photosJSON, perksJSON []byte
		if err := rows.Scan(
			&booking.ID,
			&booking.PlaceID,
			&booking.UserID,
			&booking.CheckIn,
			&booking.CheckOut,
			&booking.NumberOfGuests,
			&booking.Name,
			&booking.Mobile,
			&booking.Price,
			&booking.CreatedAt,
			&place.ID,
			&place.OwnerID,
			&place.Title,
			&place.Address,
			&place.Description,
			&photosJSON,
			&perksJSON,
			&place.ExtraInfo,
			&place.CheckIn,
			&place.CheckOut,
			&place.MaxGuests,
			&place.Price,
			&place.CreatedAt,
			&place.UpdatedAt,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(photosJSON, &place.Photos)
		_ = json.Unmarshal(perksJSON, &place.Perks)
		booking.Place = &place
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
