package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamly/tour-booking-api/internal/config"
	"github.com/roamly/tour-booking-api/internal/model"
	"github.com/roamly/tour-booking-api/internal/utils"
)

// Walks the main user journey across handlers: register, log in,
// book a tour, have a stranger fail to cancel it, cancel it as the
// owner and finally see it in the admin overview.
func TestBookingLifecycleScenario(t *testing.T) {
	users := newFakeUserStore()
	cfg := config.Config{JWTSecret: "test-secret", TokenTTLDays: 7, BcryptCost: 4}
	auth := NewAuthHandler(cfg, users)

	store := newFakeBookingStore()
	pub := &fakePublisher{}
	bookings := NewBookingHandler(store, pub)
	store.tours[1] = model.Tour{ID: 1, Title: "City Walk", CreatedBy: 99}

	// Register alice.
	c, rec := newTestCtx(http.MethodPost, "/api/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`, 0, "")
	require.NoError(t, auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var reg struct {
		ID    uint64 `json:"id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))

	// Log back in; the fresh token must resolve to the same identity.
	c, rec = newTestCtx(http.MethodPost, "/api/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`, 0, "")
	require.NoError(t, auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	uid, _, err := utils.ParseAuthToken("test-secret", login.Token)
	require.NoError(t, err)
	require.Equal(t, reg.ID, uid)

	store.users[uid] = model.User{ID: uid, Name: "Alice", Email: "alice@example.com", Role: model.RoleUser}

	// Alice books the tour for a future date.
	body := fmt.Sprintf(`{"tourId":1,"date":%q}`, futureDate())
	c, rec = newTestCtx(http.MethodPost, "/api/bookings", body, uid, model.RoleUser)
	require.NoError(t, bookings.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, model.BookingPending, created.Status)

	// Bob cannot cancel alice's booking.
	bobID := uid + 1
	c, rec = cancelCtx(fmt.Sprint(created.ID), bobID, model.RoleUser)
	require.NoError(t, bookings.Cancel(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Alice cancels her own booking.
	c, rec = cancelCtx(fmt.Sprint(created.ID), uid, model.RoleUser)
	require.NoError(t, bookings.Cancel(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.BookingCancelled, store.bookings[created.ID].Status)

	// The admin overview shows the booking with owner and tour expanded.
	c, rec = newTestCtx(http.MethodGet, "/api/bookings/admin/all", "", 99, model.RoleAdmin)
	require.NoError(t, bookings.ListAll(c))
	require.Equal(t, http.StatusOK, rec.Code)
	var all []model.AdminBooking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "Alice", all[0].User.Name)
	assert.Equal(t, "City Walk", all[0].Tour.Title)
	assert.Equal(t, model.BookingCancelled, all[0].Status)
}
