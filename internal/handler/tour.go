package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roamly/tour-booking-api/internal/model"
	"github.com/roamly/tour-booking-api/internal/repository"
)

// TourStore is the catalog persistence surface used by TourHandler.
type TourStore interface {
	List(ctx context.Context) ([]model.Tour, error)
	GetByID(ctx context.Context, id uint64) (model.Tour, error)
	Create(ctx context.Context, t *model.Tour) error
	Update(ctx context.Context, id uint64, upd model.TourUpdate) (model.Tour, error)
	Delete(ctx context.Context, id uint64) error
}

// TourHandler implements the public catalog reads and the
// admin-gated catalog writes.
type TourHandler struct {
	Tours TourStore
}

func NewTourHandler(tours TourStore) *TourHandler {
	return &TourHandler{Tours: tours}
}

// List handles GET /api/tours.  An empty catalog is reported as 404,
// which the client treats as "nothing to show".
func (h *TourHandler) List(c echo.Context) error {
	tours, err := h.Tours.List(c.Request().Context())
	if err != nil {
		c.Logger().Errorf("tours: list: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch tours"})
	}
	if len(tours) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "No tours available"})
	}
	return c.JSON(http.StatusOK, tours)
}

// Get handles GET /api/tours/:id.
func (h *TourHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Tour not found"})
	}
	tour, err := h.Tours.GetByID(c.Request().Context(), id)
	if err != nil {
		if err == repository.ErrTourNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Tour not found"})
		}
		c.Logger().Errorf("tours: get %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch tour"})
	}
	return c.JSON(http.StatusOK, tour)
}

// Create handles POST /api/tours (admin only, enforced by the route).
// The authenticated admin becomes the tour's creator.
func (h *TourHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	var tour model.Tour
	if err := c.Bind(&tour); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	tour.Title = strings.TrimSpace(tour.Title)
	if tour.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title is required"})
	}
	if tour.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Price must not be negative"})
	}
	tour.ID = 0
	tour.CreatedBy = uid

	if err := h.Tours.Create(c.Request().Context(), &tour); err != nil {
		c.Logger().Errorf("tours: create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create tour"})
	}
	return c.JSON(http.StatusCreated, tour)
}

// Update handles PUT /api/tours/:id.  Only the creator or an admin
// may update; this is the one place where the admin role bypasses
// ownership.
func (h *TourHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Tour not found"})
	}

	ctx := c.Request().Context()
	tour, err := h.Tours.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrTourNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Tour not found"})
		}
		c.Logger().Errorf("tours: load %d for update: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update tour"})
	}
	if tour.CreatedBy != uid && getRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Not authorized to update this tour"})
	}

	var upd model.TourUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Title is required"})
	}
	if upd.Price != nil && *upd.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Price must not be negative"})
	}

	updated, err := h.Tours.Update(ctx, id, upd)
	if err != nil {
		c.Logger().Errorf("tours: update %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update tour"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/tours/:id (admin only, enforced by the
// route).
func (h *TourHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Tour not found"})
	}
	if err := h.Tours.Delete(c.Request().Context(), id); err != nil {
		if err == repository.ErrTourNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Tour not found"})
		}
		c.Logger().Errorf("tours: delete %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete tour"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Tour deleted successfully"})
}
