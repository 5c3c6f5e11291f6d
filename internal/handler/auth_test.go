package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/tour-booking-api/internal/config"
	"github.com/roamly/tour-booking-api/internal/model"
	"github.com/roamly/tour-booking-api/internal/repository"
	"github.com/roamly/tour-booking-api/internal/utils"
)

type fakeUserStore struct {
	nextID  uint64
	byEmail map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, name, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, ok := s.byEmail[email]; ok {
		return 0, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	s.nextID++
	s.byEmail[email] = model.User{ID: s.nextID, Name: name, Email: email, PasswordHash: hash, Role: role}
	return s.nextID, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	u, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func testAuthHandler() (*AuthHandler, *fakeUserStore) {
	users := newFakeUserStore()
	cfg := config.Config{JWTSecret: "test-secret", TokenTTLDays: 7, BcryptCost: 4}
	return NewAuthHandler(cfg, users), users
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		description string
		body        string
	}{
		{"missing name", `{"email":"alice@example.com","password":"secret1"}`},
		{"missing email", `{"name":"Alice","password":"secret1"}`},
		{"missing password", `{"name":"Alice","email":"alice@example.com"}`},
		{"invalid email", `{"name":"Alice","email":"not-an-email","password":"secret1"}`},
		{"short password", `{"name":"Alice","email":"alice@example.com","password":"abc"}`},
	}
	for _, test := range tests {
		h, _ := testAuthHandler()
		c, rec := newTestCtx(http.MethodPost, "/api/auth/register", test.body, 0, "")
		require.NoError(t, h.Register(c))
		assert.Equalf(t, http.StatusBadRequest, rec.Code, test.description)
	}
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	h, _ := testAuthHandler()
	c, rec := newTestCtx(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`, 0, "")

	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		ID    uint64 `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, model.RoleUser, resp.Role)

	uid, role, err := utils.ParseAuthToken("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, uid)
	assert.Equal(t, model.RoleUser, role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, _ := testAuthHandler()
	body := `{"name":"Alice","email":"alice@example.com","password":"secret1"}`

	c, rec := newTestCtx(http.MethodPost, "/api/auth/register", body, 0, "")
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = newTestCtx(http.MethodPost, "/api/auth/register", body, 0, "")
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	h, users := testAuthHandler()
	_, err := users.Create(context.Background(), "Alice", "alice@example.com", "secret1", model.RoleUser, 4)
	require.NoError(t, err)

	tests := []struct {
		description string
		body        string
		wantCode    int
	}{
		{"missing password", `{"email":"alice@example.com"}`, http.StatusBadRequest},
		{"unknown email", `{"email":"nobody@example.com","password":"secret1"}`, http.StatusUnauthorized},
		{"wrong password", `{"email":"alice@example.com","password":"wrong1"}`, http.StatusUnauthorized},
		{"valid credentials", `{"email":"alice@example.com","password":"secret1"}`, http.StatusOK},
	}
	for _, test := range tests {
		c, rec := newTestCtx(http.MethodPost, "/api/auth/login", test.body, 0, "")
		require.NoError(t, h.Login(c))
		assert.Equalf(t, test.wantCode, rec.Code, test.description)
	}
}

func TestLoginResponseShape(t *testing.T) {
	h, users := testAuthHandler()
	_, err := users.Create(context.Background(), "Alice", "alice@example.com", "secret1", model.RoleUser, 4)
	require.NoError(t, err)

	c, rec := newTestCtx(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`, 0, "")
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID    uint64 `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Alice", resp.Name)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token)
}
