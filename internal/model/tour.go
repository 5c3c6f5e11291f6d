package model

import "time"

// Tour is a catalog entry in the `tours` table.  Images and
// AvailableDates are stored as JSON columns; dates use the
// YYYY-MM-DD wire format throughout.
//
// CreatedBy references the admin who created the tour.  Updates are
// allowed for the creator or any admin; create and delete are
// admin-only (enforced in the handler/route layer).
type Tour struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	Duration       string    `json:"duration"`
	Price          float64   `json:"price"`
	Images         []string  `json:"images"`
	MaxGroupSize   int       `json:"maxGroupSize"`
	AvailableDates []string  `json:"availableDates"`
	CreatedBy      uint64    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TourUpdate carries a partial update for a tour.  Nil fields are
// left untouched so PUT bodies may contain any subset of fields.
type TourUpdate struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Location       *string   `json:"location"`
	Duration       *string   `json:"duration"`
	Price          *float64  `json:"price"`
	Images         *[]string `json:"images"`
	MaxGroupSize   *int      `json:"maxGroupSize"`
	AvailableDates *[]string `json:"availableDates"`
}
