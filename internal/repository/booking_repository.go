package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/roamly/tour-booking-api/internal/model"
)

// ErrBookingNotFound is returned when no booking matches the given id.
var ErrBookingNotFound = errors.New("booking not found")

type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const dateLayout = "2006-01-02"

// Create inserts a booking and fills in its generated ID and
// timestamps.  The caller decides status and payment status; new
// bookings arrive here as pending/unpaid.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO bookings (user_id,tour_id,date,status,payment_status) VALUES (?,?,?,?,?)",
		b.UserID, b.TourID, b.Date, b.Status, b.PaymentStatus)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	now := time.Now().UTC().Truncate(time.Second)
	b.CreatedAt, b.UpdatedAt = now, now
	return nil
}

// GetByID fetches a single booking without expanding references.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	var (
		b    model.Booking
		date time.Time
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,tour_id,date,status,payment_status,created_at,updated_at FROM bookings WHERE id=? LIMIT 1",
		id).Scan(&b.ID, &b.UserID, &b.TourID, &date, &b.Status, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Booking{}, ErrBookingNotFound
	}
	if err != nil {
		return model.Booking{}, err
	}
	b.Date = date.Format(dateLayout)
	return b, nil
}

// SetStatus writes a booking's status.  The write is a single-row
// atomic update; rewriting the current status is allowed, so
// cancelling twice succeeds and leaves the terminal state in place.
func (r *BookingRepo) SetStatus(ctx context.Context, id uint64, status string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=?, updated_at=NOW() WHERE id=?", status, id)
	return err
}

// ListByUser returns all bookings owned by userID in insertion order,
// each with its tour expanded.  A LEFT JOIN keeps bookings visible
// even when the referenced tour has been deleted.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingWithTour, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id,b.user_id,b.tour_id,b.date,b.status,b.payment_status,b.created_at,b.updated_at,
		       t.id,t.title,t.description,t.location,t.duration,t.price,t.images,t.max_group_size,t.available_dates,t.created_by,t.created_at,t.updated_at
		FROM bookings b
		LEFT JOIN tours t ON t.id = b.tour_id
		WHERE b.user_id=?
		ORDER BY b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookingWithTour
	for rows.Next() {
		var (
			item model.BookingWithTour
			date time.Time
		)
		tour := nullableTour{}
		dest := []any{
			&item.ID, &item.UserID, &item.TourID, &date, &item.Status, &item.PaymentStatus, &item.CreatedAt, &item.UpdatedAt,
		}
		dest = append(dest, tour.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		item.Date = date.Format(dateLayout)
		item.Tour = tour.tour()
		out = append(out, item)
	}
	return out, rows.Err()
}

// ListAll returns every booking with both owner and tour expanded.
// Used by the admin overview; no filtering or pagination.
func (r *BookingRepo) ListAll(ctx context.Context) ([]model.AdminBooking, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id,b.user_id,b.tour_id,b.date,b.status,b.payment_status,b.created_at,b.updated_at,
		       u.id,u.name,u.email,u.role,u.created_at,u.updated_at,
		       t.id,t.title,t.description,t.location,t.duration,t.price,t.images,t.max_group_size,t.available_dates,t.created_by,t.created_at,t.updated_at
		FROM bookings b
		LEFT JOIN users u ON u.id = b.user_id
		LEFT JOIN tours t ON t.id = b.tour_id
		ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AdminBooking
	for rows.Next() {
		var (
			item model.AdminBooking
			date time.Time
			uID  sql.NullInt64
			uCr  sql.NullTime
			uUp  sql.NullTime
			name sql.NullString
			mail sql.NullString
			role sql.NullString
		)
		tour := nullableTour{}
		dest := []any{
			&item.ID, &item.UserID, &item.TourID, &date, &item.Status, &item.PaymentStatus, &item.CreatedAt, &item.UpdatedAt,
			&uID, &name, &mail, &role, &uCr, &uUp,
		}
		dest = append(dest, tour.dest()...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		item.Date = date.Format(dateLayout)
		if uID.Valid {
			item.User = model.User{
				ID:        uint64(uID.Int64),
				Name:      name.String,
				Email:     mail.String,
				Role:      role.String,
				CreatedAt: uCr.Time,
				UpdatedAt: uUp.Time,
			}
		}
		item.Tour = tour.tour()
		out = append(out, item)
	}
	return out, rows.Err()
}

// nullableTour collects the LEFT JOINed tour columns, all of which
// may be NULL when the tour row is gone.
type nullableTour struct {
	id    sql.NullInt64
	title sql.NullString
	desc  sql.NullString
	loc   sql.NullString
	dur   sql.NullString
	price sql.NullFloat64
	imgs  sql.NullString
	size  sql.NullInt64
	dates sql.NullString
	by    sql.NullInt64
	cr    sql.NullTime
	up    sql.NullTime
}

func (n *nullableTour) dest() []any {
	return []any{&n.id, &n.title, &n.desc, &n.loc, &n.dur, &n.price,
		&n.imgs, &n.size, &n.dates, &n.by, &n.cr, &n.up}
}

func (n *nullableTour) tour() model.Tour {
	if !n.id.Valid {
		return model.Tour{}
	}
	t := model.Tour{
		ID:           uint64(n.id.Int64),
		Title:        n.title.String,
		Description:  n.desc.String,
		Location:     n.loc.String,
		Duration:     n.dur.String,
		Price:        n.price.Float64,
		MaxGroupSize: int(n.size.Int64),
		CreatedBy:    uint64(n.by.Int64),
		CreatedAt:    n.cr.Time,
		UpdatedAt:    n.up.Time,
	}
	if n.imgs.Valid && n.imgs.String != "" {
		_ = json.Unmarshal([]byte(n.imgs.String), &t.Images)
	}
	if n.dates.Valid && n.dates.String != "" {
		_ = json.Unmarshal([]byte(n.dates.String), &t.AvailableDates)
	}
	return t
}
