package model

import "time"

// Booking status values.  The only implemented transition is
// pending/confirmed -> cancelled; confirmation happens outside this
// system.  Cancelled is terminal and re-cancelling simply rewrites it.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Payment status values.  No transition logic exists in this service;
// payment state is driven externally.
const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

// Booking ties a user to a tour on a requested date.  The owner
// (UserID) is set at creation and never changes.  Bookings are never
// physically deleted; cancellation is a status write.
type Booking struct {
	ID            uint64    `json:"id"`
	UserID        uint64    `json:"userId"`
	TourID        uint64    `json:"tourId"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BookingWithTour is a booking with its tour expanded inline, as
// returned by the per-user listing.  The tour is zero-valued when the
// referenced tour no longer exists.
type BookingWithTour struct {
	Booking
	Tour Tour `json:"tour"`
}

// AdminBooking expands both owner and tour for the admin overview.
type AdminBooking struct {
	Booking
	User User `json:"user"`
	Tour Tour `json:"tour"`
}
