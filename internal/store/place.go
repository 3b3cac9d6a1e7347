package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/roamnest/apiserver/types"
)

// PlaceRepository handles persistence for places.
type PlaceRepository struct {
	db *sql.DB
}

func NewPlaceRepository(db *sql.DB) *PlaceRepository {
	return &PlaceRepository{db: db}
}

const placeColumns = `id, owner_id, title, address, description, photos, perks, extra_info, check_in, check_out, max_guests, price, created_at, updated_at`

func scanPlace(row interface{ Scan(dest ...any) error }) (types.Place, error) {
	var place types.Place
	var photosJSON, perksJSON []byte
	err := row.Scan(
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
	)
	if err != nil {
		return types.Place{}, err
	}
	_ = json.Unmarshal(photosJSON, &place.Photos)
	_ = json.Unmarshal(perksJSON, &place.Perks)
	return place, nil
}

func (r *PlaceRepository) List(ctx context.Context) ([]types.Place, error) {
	const query = `
		SELECT ` + placeColumns + `
		FROM places
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPlaces(rows)
}

func (r *PlaceRepository) ListByOwner(ctx context.Context, ownerID int) ([]types.Place, error) {
	const query = `
		SELECT ` + placeColumns + `
		FROM places
		WHERE owner_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPlaces(rows)
}

func collectPlaces(rows *sql.Rows) ([]types.Place, error) {
	places := make([]types.Place, 0)
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, place)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return places, nil
}

func (r *PlaceRepository) Get(ctx context.Context, id int) (types.Place, error) {
	const query = `
		SELECT ` + placeColumns + `
		FROM places
		WHERE id = $1`
	place, err := scanPlace(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Place{}, ErrNotFound
		}
		return types.Place{}, err
	}
	return place, nil
}

func (r *PlaceRepository) Create(ctx context.Context, place types.Place) (types.Place, error) {
	now := time.Now()
	place.CreatedAt = now
	place.UpdatedAt = now

	photosJSON, err := json.Marshal(place.Photos)
	if err != nil {
		return types.Place{}, err
	}
	perksJSON, err := json.Marshal(place.Perks)
	if err != nil {
		return types.Place{}, err
	}

	const query = `
		INSERT INTO places (owner_id, title, address, description, photos, perks, extra_info, check_in, check_out, max_guests, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		place.OwnerID,
		place.Title,
		place.Address,
		place.Description,
		photosJSON,
		perksJSON,
		place.ExtraInfo,
		place.CheckIn,
		place.CheckOut,
		place.MaxGuests,
		place.Price,
		place.CreatedAt,
		place.UpdatedAt,
	).Scan(&place.ID); err != nil {
		return types.Place{}, err
	}

	return place, nil
}

// Update replaces every mutable field of the place in a single statement.
// The owner column is deliberately not part of the SET list.
func (r *PlaceRepository) Update(ctx context.Context, place types.Place) (types.Place, error) {
	place.UpdatedAt = time.Now()

	photosJSON, err := json.Marshal(place.Photos)
	if err != nil {
		return types.Place{}, err
	}
	perksJSON, err := json.Marshal(place.Perks)
	if err != nil {
		return types.Place{}, err
	}

	const query = `
		UPDATE places
		SET title = $1,
			address = $2,
			description = $3,
			photos = $4,
			perks = $5,
			extra_info = $6,
			check_in = $7,
			check_out = $8,
			max_guests = $9,
			price = $10,
			updated_at = $11
		WHERE id = $12`
	result, err := r.db.ExecContext(
		ctx,
		query,
		place.Title,
		place.Address,
		place.Description,
		photosJSON,
		perksJSON,
		place.ExtraInfo,
		place.CheckIn,
		place.CheckOut,
		place.MaxGuests,
		place.Price,
		place.UpdatedAt,
		place.ID,
	)
	if err != nil {
		return types.Place{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Place{}, err
	}
	if affected == 0 {
		return types.Place{}, ErrNotFound
	}

	return place, nil
}
