package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/tour-booking-api/internal/model"
	"github.com/roamly/tour-booking-api/internal/utils"
)

type fakeUserSource struct{ users map[uint64]model.User }

func (s *fakeUserSource) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, errors.New("user not found")
	}
	return u, nil
}

const testSecret = "test-secret"

func runGate(t *testing.T, users UserSource, authorization string) (echo.Context, *httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	next := func(c echo.Context) error { called = true; return nil }
	require.NoError(t, Authenticate(testSecret, users)(next)(c))
	return c, rec, called
}

func TestAuthenticateMissingHeader(t *testing.T) {
	_, rec, called := runGate(t, &fakeUserSource{}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	_, rec, called := runGate(t, &fakeUserSource{}, "Token abc")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateBadToken(t *testing.T) {
	_, rec, called := runGate(t, &fakeUserSource{}, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticateResolvesIdentity(t *testing.T) {
	users := &fakeUserSource{users: map[uint64]model.User{
		42: {ID: 42, Name: "Alice", Email: "alice@example.com", Role: model.RoleUser},
	}}
	tok, err := utils.NewAuthToken(testSecret, 42, model.RoleUser, 7)
	require.NoError(t, err)

	c, rec, called := runGate(t, users, "Bearer "+tok.Token)
	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(42), c.Get(CtxUserID))
	assert.Equal(t, model.RoleUser, c.Get(CtxRole))
	assert.Equal(t, "alice@example.com", c.Get(CtxEmail))
}

func TestAuthenticateDeletedUser(t *testing.T) {
	tok, err := utils.NewAuthToken(testSecret, 42, model.RoleUser, 7)
	require.NoError(t, err)

	_, rec, called := runGate(t, &fakeUserSource{users: map[uint64]model.User{}}, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

// The role attached to the request comes from the store, not from the
// token claim, so stale tokens cannot keep a demoted role alive.
func TestAuthenticateRoleFromStore(t *testing.T) {
	users := &fakeUserSource{users: map[uint64]model.User{
		42: {ID: 42, Role: model.RoleUser},
	}}
	tok, err := utils.NewAuthToken(testSecret, 42, model.RoleAdmin, 7)
	require.NoError(t, err)

	c, _, called := runGate(t, users, "Bearer "+tok.Token)
	require.True(t, called)
	assert.Equal(t, model.RoleUser, c.Get(CtxRole))
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		description string
		role        interface{}
		wantCode    int
		wantCalled  bool
	}{
		{"admin passes", model.RoleAdmin, http.StatusOK, true},
		{"user is forbidden", model.RoleUser, http.StatusForbidden, false},
		{"missing role is forbidden", nil, http.StatusForbidden, false},
	}
	for _, test := range tests {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if test.role != nil {
			c.Set(CtxRole, test.role)
		}

		called := false
		next := func(c echo.Context) error { called = true; return nil }
		require.NoError(t, RequireRole(model.RoleAdmin)(next)(c))
		assert.Equalf(t, test.wantCode, rec.Code, test.description)
		assert.Equalf(t, test.wantCalled, called, test.description)
	}
}
