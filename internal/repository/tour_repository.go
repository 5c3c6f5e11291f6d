package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/roamly/tour-booking-api/internal/model"
)

// ErrTourNotFound is returned when no tour matches the given id.
var ErrTourNotFound = errors.New("tour not found")

type TourRepo struct{ DB *sql.DB }

func NewTourRepo(db *sql.DB) *TourRepo { return &TourRepo{DB: db} }

const tourColumns = "id,title,description,location,duration,price,images,max_group_size,available_dates,created_by,created_at,updated_at"

// scanTour reads one tour row.  Images and available_dates live in
// JSON columns and may be NULL for tours created without them.
func scanTour(row interface{ Scan(...any) error }) (model.Tour, error) {
	var (
		t     model.Tour
		imgs  sql.NullString
		dates sql.NullString
	)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Location, &t.Duration,
		&t.Price, &imgs, &t.MaxGroupSize, &dates, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return model.Tour{}, err
	}
	if imgs.Valid && imgs.String != "" {
		if err := json.Unmarshal([]byte(imgs.String), &t.Images); err != nil {
			return model.Tour{}, fmt.Errorf("decode images for tour %d: %w", t.ID, err)
		}
	}
	if dates.Valid && dates.String != "" {
		if err := json.Unmarshal([]byte(dates.String), &t.AvailableDates); err != nil {
			return model.Tour{}, fmt.Errorf("decode available_dates for tour %d: %w", t.ID, err)
		}
	}
	return t, nil
}

// List returns every tour, newest first.
func (r *TourRepo) List(ctx context.Context) ([]model.Tour, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+tourColumns+" FROM tours ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []model.Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, rows.Err()
}

// GetByID fetches a single tour.
func (r *TourRepo) GetByID(ctx context.Context, id uint64) (model.Tour, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+tourColumns+" FROM tours WHERE id=? LIMIT 1", id)
	t, err := scanTour(row)
	if err == sql.ErrNoRows {
		return model.Tour{}, ErrTourNotFound
	}
	return t, err
}

// Create inserts a tour and fills in its generated ID.
func (r *TourRepo) Create(ctx context.Context, t *model.Tour) error {
	imgs, err := json.Marshal(t.Images)
	if err != nil {
		return err
	}
	dates, err := json.Marshal(t.AvailableDates)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO tours (title,description,location,duration,price,images,max_group_size,available_dates,created_by)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		t.Title, t.Description, t.Location, t.Duration, t.Price,
		string(imgs), t.MaxGroupSize, string(dates), t.CreatedBy)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	now := time.Now().UTC().Truncate(time.Second)
	t.CreatedAt, t.UpdatedAt = now, now
	return nil
}

// Update applies a partial update and returns the fresh row.  Only
// non-nil fields of upd are written; an empty update is a no-op read.
func (r *TourRepo) Update(ctx context.Context, id uint64, upd model.TourUpdate) (model.Tour, error) {
	sets := make([]string, 0, 8)
	args := make([]any, 0, 9)
	if upd.Title != nil {
		sets, args = append(sets, "title=?"), append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets, args = append(sets, "description=?"), append(args, *upd.Description)
	}
	if upd.Location != nil {
		sets, args = append(sets, "location=?"), append(args, *upd.Location)
	}
	if upd.Duration != nil {
		sets, args = append(sets, "duration=?"), append(args, *upd.Duration)
	}
	if upd.Price != nil {
		sets, args = append(sets, "price=?"), append(args, *upd.Price)
	}
	if upd.MaxGroupSize != nil {
		sets, args = append(sets, "max_group_size=?"), append(args, *upd.MaxGroupSize)
	}
	if upd.Images != nil {
		b, err := json.Marshal(*upd.Images)
		if err != nil {
			return model.Tour{}, err
		}
		sets, args = append(sets, "images=?"), append(args, string(b))
	}
	if upd.AvailableDates != nil {
		b, err := json.Marshal(*upd.AvailableDates)
		if err != nil {
			return model.Tour{}, err
		}
		sets, args = append(sets, "available_dates=?"), append(args, string(b))
	}
	if len(sets) > 0 {
		args = append(args, id)
		q := "UPDATE tours SET " + strings.Join(sets, ",") + ", updated_at=NOW() WHERE id=?"
		if _, err := r.DB.ExecContext(ctx, q, args...); err != nil {
			return model.Tour{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a tour.  Bookings referencing it are kept; their
// expanded tour simply comes back empty in listings.
func (r *TourRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tours WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTourNotFound
	}
	return nil
}
