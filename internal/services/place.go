package services

import (
	"context"
	"fmt"

	"github.com/roamnest/apiserver/types"
)

// PlaceRepository defines persistence operations for places.
type PlaceRepository interface {
	List(ctx context.Context) ([]types.Place, error)
	ListByOwner(ctx context.Context, ownerID int) ([]types.Place, error)
	Get(ctx context.Context, id int) (types.Place, error)
	Create(ctx context.Context, place types.Place) (types.Place, error)
	Update(ctx context.Context, place types.Place) (types.Place, error)
}

// PlaceService encapsulates place use-cases and owns the ownership checks.
type PlaceService struct {
	repo PlaceRepository
}

func NewPlaceService(repo PlaceRepository) *PlaceService {
	return &PlaceService{repo: repo}
}

func (s *PlaceService) List(ctx context.Context) ([]types.Place, error) {
	return s.repo.List(ctx)
}

func (s *PlaceService) ListByOwner(ctx context.Context, ownerID int) ([]types.Place, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *PlaceService) Get(ctx context.Context, id int) (types.Place, error) {
	return s.repo.Get(ctx, id)
}

// Create persists a new place owned by ownerID. The owner is always the
// caller; a client-supplied owner field is ignored.
func (s *PlaceService) Create(ctx context.Context, ownerID int, place types.Place) (types.Place, error) {
	if err := validatePlace(place); err != nil {
		return types.Place{}, err
	}
	place.ID = 0
	place.OwnerID = ownerID
	return s.repo.Create(ctx, place)
}

// Update replaces every mutable field of the place identified by id.
// The ownership check runs before any write: a non-owner gets ErrForbidden
// and a missing id gets store.ErrNotFound, in both cases without touching
// the record.
func (s *PlaceService) Update(ctx context.Context, userID, id int, place types.Place) (types.Place, error) {
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return types.Place{}, err
	}
	if current.OwnerID != userID {
		return types.Place{}, ErrForbidden
	}
	if err := validatePlace(place); err != nil {
		return types.Place{}, err
	}

	place.ID = current.ID
	place.OwnerID = current.OwnerID
	place.CreatedAt = current.CreatedAt
	return s.repo.Update(ctx, place)
}

func validatePlace(place types.Place) error {
	if place.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if place.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if place.MaxGuests <= 0 {
		return fmt.Errorf("%w: max guests must be positive", ErrInvalidInput)
	}
	return nil
}
