package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/roamnest/apiserver/internal/store"
	"github.com/roamnest/apiserver/types"
)

type memUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[int]types.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int]types.User{}}
}

func (r *memUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return user, nil
}

type memPlaceRepo struct {
	mu     sync.Mutex
	nextID int
	places map[int]types.Place
}

func newMemPlaceRepo() *memPlaceRepo {
	return &memPlaceRepo{places: map[int]types.Place{}}
}

func (r *memPlaceRepo) List(ctx context.Context) ([]types.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Place, 0, len(r.places))
	for id := 1; id <= r.nextID; id++ {
		if place, ok := r.places[id]; ok {
			out = append(out, place)
		}
	}
	return out, nil
}

func (r *memPlaceRepo) ListByOwner(ctx context.Context, ownerID int) ([]types.Place, error) {
	all, _ := r.List(ctx)
	out := make([]types.Place, 0)
	for _, place := range all {
		if place.OwnerID == ownerID {
			out = append(out, place)
		}
	}
	return out, nil
}

func (r *memPlaceRepo) Get(ctx context.Context, id int) (types.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	place, ok := r.places[id]
	if !ok {
		return types.Place{}, store.ErrNotFound
	}
	return place, nil
}

func (r *memPlaceRepo) Create(ctx context.Context, place types.Place) (types.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	place.ID = r.nextID
	place.CreatedAt = time.Now()
	place.UpdatedAt = place.CreatedAt
	r.places[place.ID] = place
	return place, nil
}

func (r *memPlaceRepo) Update(ctx context.Context, place types.Place) (types.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.places[place.ID]; !ok {
		return types.Place{}, store.ErrNotFound
	}
	place.UpdatedAt = time.Now()
	r.places[place.ID] = place
	return place, nil
}

type memBookingRepo struct {
	mu       sync.Mutex
	bookings []types.Booking
	places   *memPlaceRepo
}

func newMemBookingRepo(places *memPlaceRepo) *memBookingRepo {
	return &memBookingRepo{places: places}
}

func (r *memBookingRepo) Create(ctx context.Context, booking types.Booking) (types.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = len(r.bookings) + 1
	booking.CreatedAt = time.Now()
	r.bookings = append(r.bookings, booking)
	return booking, nil
}

func (r *memBookingRepo) ListByUser(ctx context.Context, userID int) ([]types.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Booking, 0)
	for _, booking := range r.bookings {
		if booking.UserID != userID {
			continue
		}
		if place, err := r.places.Get(ctx, booking.PlaceID); err == nil {
			booking.Place = &place
		}
		out = append(out, booking)
	}
	return out, nil
}
