package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/roamnest/apiserver/internal/auth"
	"github.com/roamnest/apiserver/internal/services"
	"github.com/roamnest/apiserver/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testCookieName = "token"

type testEnv struct {
	router   *chi.Mux
	users    *memUserRepo
	places   *memPlaceRepo
	bookings *memBookingRepo
	tokens   *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	users := newMemUserRepo()
	places := newMemPlaceRepo()
	bookings := newMemBookingRepo(places)

	userService := services.NewUserService(users)
	placeService := services.NewPlaceService(places)
	bookingService := services.NewBookingService(bookings, places, nil, zerolog.Nop())

	requireAuth := RequireAuth(tokens, testCookieName)

	router := chi.NewRouter()
	AuthRouter(router, userService, tokens, testCookieName)
	PlaceRouter(router, placeService, requireAuth)
	BookingRouter(router, bookingService, requireAuth)

	return &testEnv{
		router:   router,
		users:    users,
		places:   places,
		bookings: bookings,
		tokens:   tokens,
	}
}

// do performs a request against the in-memory router. A non-nil identity is
// attached as a signed token cookie, the way a logged-in browser would.
func (e *testEnv) do(t *testing.T, method, path string, body any, identity *auth.Identity) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if identity != nil {
		token, err := e.tokens.Issue(*identity)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: token})
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) createUser(t *testing.T, name, email, password string) types.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := e.users.Create(t.Context(), types.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	})
	require.NoError(t, err)
	return user
}

func identityOf(user types.User) *auth.Identity {
	return &auth.Identity{UserID: user.ID, Email: user.Email}
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var value T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&value))
	return value
}
