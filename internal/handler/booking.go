package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/model"
	"github.com/roamly/tour-booking-api/internal/queue"
	"github.com/roamly/tour-booking-api/internal/repository"
)

// BookingStore is the booking persistence surface used by
// BookingHandler.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (model.Booking, error)
	SetStatus(ctx context.Context, id uint64, status string) error
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingWithTour, error)
	ListAll(ctx context.Context) ([]model.AdminBooking, error)
}

// EventPublisher emits booking lifecycle events.  Publishing is
// best-effort: a broker outage never fails the request.
type EventPublisher interface {
	PublishBookingEvent(ctx context.Context, ev queue.BookingEvent) error
}

// BookingHandler implements the booking lifecycle: create, list own,
// cancel, and the admin overview.
type BookingHandler struct {
	Bookings BookingStore
	Events   EventPublisher
}

func NewBookingHandler(bookings BookingStore, events EventPublisher) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Events: events}
}

type createBookingReq struct {
	TourID uint64 `json:"tourId"`
	Date   string `json:"date"`
}

// parseBookingDate accepts YYYY-MM-DD (primary wire format) or
// RFC3339 and returns the normalized date.
func parseBookingDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse("2006-01-02", s); err == nil {
		return d, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Create handles POST /api/bookings.  The date must be strictly in
// the future; that is the only validation — the tour reference, its
// available dates and group capacity are deliberately not checked
// here.  New bookings start as pending/unpaid.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if req.TourID == 0 || strings.TrimSpace(req.Date) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Tour ID and date are required"})
	}
	date, err := parseBookingDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date format"})
	}
	if !date.After(time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Booking date must be in the future"})
	}

	booking := model.Booking{
		UserID:        uid,
		TourID:        req.TourID,
		Date:          date.Format("2006-01-02"),
		Status:        model.BookingPending,
		PaymentStatus: model.PaymentUnpaid,
	}
	if err := h.Bookings.Create(c.Request().Context(), &booking); err != nil {
		c.Logger().Errorf("bookings: create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create booking"})
	}

	h.publish(c, queue.ActionCreated, booking)
	return c.JSON(http.StatusCreated, booking)
}

// ListMine handles GET /api/bookings and returns the requester's own
// bookings with tours expanded.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	bookings, err := h.Bookings.ListByUser(c.Request().Context(), uid)
	if err != nil {
		c.Logger().Errorf("bookings: list for user %d: %v", uid, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch bookings"})
	}
	if bookings == nil {
		bookings = []model.BookingWithTour{}
	}
	return c.JSON(http.StatusOK, bookings)
}

// Cancel handles PUT /api/bookings/:id.  Only the owner may cancel —
// the admin role is deliberately no bypass here, unlike tour updates.
// Cancelling an already cancelled booking rewrites the terminal state
// and succeeds.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
	}

	ctx := c.Request().Context()
	booking, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Booking not found"})
		}
		c.Logger().Errorf("bookings: load %d for cancel: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to cancel booking"})
	}
	if booking.UserID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized to cancel this booking"})
	}

	if err := h.Bookings.SetStatus(ctx, id, model.BookingCancelled); err != nil {
		c.Logger().Errorf("bookings: cancel %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to cancel booking"})
	}
	// Mirror the repository's updated_at write so the returned record
	// is current without a second read.
	booking.Status = model.BookingCancelled
	booking.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	h.publish(c, queue.ActionCancelled, booking)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Booking cancelled",
		"booking": booking,
	})
}

// ListAll handles GET /api/bookings/admin/all (admin only, enforced
// by the route) and returns every booking with owner and tour
// expanded.
func (h *BookingHandler) ListAll(c echo.Context) error {
	bookings, err := h.Bookings.ListAll(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("bookings: list all: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch all bookings"})
	}
	if bookings == nil {
		bookings = []model.AdminBooking{}
	}
	return c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) publish(c echo.Context, action string, b model.Booking) {
	if h.Events == nil {
		return
	}
	ev := queue.BookingEvent{
		Action:     action,
		BookingID:  b.ID,
		UserID:     b.UserID,
		TourID:     b.TourID,
		Date:       b.Date,
		Status:     b.Status,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Events.PublishBookingEvent(c.Request().Context(), ev); err != nil {
		c.Logger().Warnf("bookings: publish %s event for %d: %v", action, b.ID, err)
	}
}
