package handlers

import (
	"net/http"
	"testing"

	"github.com/roamnest/apiserver/types"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createPlace(t *testing.T, owner types.User, price float64) types.Place {
	t.Helper()

	req := validPlaceRequest()
	req.Price = price
	rec := e.do(t, http.MethodPost, "/places", req, identityOf(owner))
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeJSON[types.Place](t, rec)
}

func TestCreateBookingComputesPrice(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	host := env.createUser(t, "Host", "host@example.com", "pw")
	guest := env.createUser(t, "Guest", "guest@example.com", "pw")
	place := env.createPlace(t, host, 100)

	rec := env.do(t, http.MethodPost, "/bookings", BookingRequest{
		PlaceID:        place.ID,
		CheckIn:        "2026-09-10",
		CheckOut:       "2026-09-13",
		NumberOfGuests: 2,
		Name:           "Guest",
		Mobile:         "555-0100",
	}, identityOf(guest))
	require.Equal(t, http.StatusCreated, rec.Code)

	booking := decodeJSON[types.Booking](t, rec)
	require.Equal(t, float64(300), booking.Price, "3 nights at 100")
	require.Equal(t, guest.ID, booking.UserID)
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/bookings", BookingRequest{
		PlaceID:  1,
		CheckIn:  "2026-09-10",
		CheckOut: "2026-09-11",
		Name:     "Guest",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBookingRejectsPriceMismatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	host := env.createUser(t, "Host", "host@example.com", "pw")
	guest := env.createUser(t, "Guest", "guest@example.com", "pw")
	place := env.createPlace(t, host, 100)

	rec := env.do(t, http.MethodPost, "/bookings", BookingRequest{
		PlaceID:        place.ID,
		CheckIn:        "2026-09-10",
		CheckOut:       "2026-09-13",
		NumberOfGuests: 2,
		Name:           "Guest",
		Price:          250,
	}, identityOf(guest))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	guest := env.createUser(t, "Guest", "guest@example.com", "pw")

	rec := env.do(t, http.MethodPost, "/bookings", BookingRequest{
		PlaceID:        1,
		CheckIn:        "September 10th",
		CheckOut:       "2026-09-13",
		NumberOfGuests: 1,
		Name:           "Guest",
	}, identityOf(guest))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateBookingUnknownPlace(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	guest := env.createUser(t, "Guest", "guest@example.com", "pw")

	rec := env.do(t, http.MethodPost, "/bookings", BookingRequest{
		PlaceID:        42,
		CheckIn:        "2026-09-10",
		CheckOut:       "2026-09-12",
		NumberOfGuests: 1,
		Name:           "Guest",
	}, identityOf(guest))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListBookingsScopesToCaller(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	host := env.createUser(t, "Host", "host@example.com", "pw")
	alice := env.createUser(t, "Alice", "alice@example.com", "pw")
	bob := env.createUser(t, "Bob", "bob@example.com", "pw")
	place := env.createPlace(t, host, 80)

	book := func(identity *types.User) {
		rec := env.do(t, http.MethodPost, "/bookings", BookingRequest{
			PlaceID:        place.ID,
			CheckIn:        "2026-09-10",
			CheckOut:       "2026-09-12",
			NumberOfGuests: 1,
			Name:           identity.Name,
		}, identityOf(*identity))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	book(&alice)
	book(&alice)
	book(&bob)

	rec := env.do(t, http.MethodGet, "/bookings", nil, identityOf(alice))
	require.Equal(t, http.StatusOK, rec.Code)

	bookings := decodeJSON[[]types.Booking](t, rec)
	require.Len(t, bookings, 2)
	for _, booking := range bookings {
		require.Equal(t, alice.ID, booking.UserID)
		require.NotNil(t, booking.Place, "bookings come back joined with their place")
		require.Equal(t, place.ID, booking.Place.ID)
	}

	empty := decodeJSON[[]types.Booking](t, env.do(t, http.MethodGet, "/bookings", nil, identityOf(host)))
	require.Empty(t, empty)
}
