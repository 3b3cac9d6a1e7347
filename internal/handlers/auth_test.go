package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roamnest/apiserver/types"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/register", RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	}, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	user := decodeJSON[types.User](t, rec)
	require.Equal(t, "alice@example.com", user.Email)
	require.NotZero(t, user.ID)
	require.NotContains(t, rec.Body.String(), "password", "hash must never leak")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	first := env.do(t, http.MethodPost, "/register", RegisterRequest{
		Name: "Alice", Email: "dup@example.com", Password: "pw",
	}, nil)
	require.Equal(t, http.StatusCreated, first.Code)

	second := env.do(t, http.MethodPost, "/register", RegisterRequest{
		Name: "Other Alice", Email: "dup@example.com", Password: "pw2",
	}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, second.Code)
	require.Equal(t, "email already registered", decodeJSON[ErrorResponse](t, second).Error)
}

func TestLoginSetsCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.createUser(t, "Alice", "alice@example.com", "s3cret")

	rec := env.do(t, http.MethodPost, "/login", LoginRequest{
		Email: "alice@example.com", Password: "s3cret",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, testCookieName, cookies[0].Name)
	require.True(t, cookies[0].HttpOnly, "token must be inaccessible to client-side script")

	identity, err := env.tokens.Verify(cookies[0].Value)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", identity.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.createUser(t, "Alice", "alice@example.com", "s3cret")

	rec := env.do(t, http.MethodPost, "/login", LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	}, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Empty(t, rec.Result().Cookies(), "no token on failed login")
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/login", LoginRequest{
		Email: "nobody@example.com", Password: "pw",
	}, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	user := env.createUser(t, "Alice", "alice@example.com", "pw")

	rec := env.do(t, http.MethodGet, "/profile", nil, identityOf(user))
	require.Equal(t, http.StatusOK, rec.Code)

	profile := decodeJSON[ProfileResponse](t, rec)
	require.Equal(t, user.ID, profile.ID)
	require.Equal(t, "Alice", profile.Name)
}

func TestProfileAnonymousIsNull(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/profile", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "null\n", rec.Body.String())
}

func TestProfileInvalidCookieIsNull(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "null\n", rec.Body.String())
}

func TestLogoutClearsCookie(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/logout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Empty(t, cookies[0].Value)
	require.Negative(t, cookies[0].MaxAge)
}
