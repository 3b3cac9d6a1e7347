package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/roamnest/apiserver/internal/services"
	"github.com/roamnest/apiserver/internal/store"
	"github.com/roamnest/apiserver/types"
)

const bookingDateLayout = "2006-01-02"

// BookingHandler provides HTTP handlers for bookings.
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler constructs a handler with the provided service.
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookingRouter registers booking routes on the given router. Both creation
// and read-back require a verified identity.
func BookingRouter(r chi.Router, bookingService *services.BookingService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewBookingHandler(bookingService)

	r.With(authMiddleware).Post("/bookings", handler.CreateBooking)
	r.With(authMiddleware).Get("/bookings", handler.ListMyBookings)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	checkIn, err := time.Parse(bookingDateLayout, req.CheckIn)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid check-in date")
		return
	}
	checkOut, err := time.Parse(bookingDateLayout, req.CheckOut)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid check-out date")
		return
	}

	created, err := h.bookingService.Create(r.Context(), identity.UserID, types.Booking{
		PlaceID:        req.PlaceID,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumberOfGuests: req.NumberOfGuests,
		Name:           req.Name,
		Mobile:         req.Mobile,
		Price:          req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "place not found")
		case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrPriceMismatch):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create booking")
		}
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// ListMyBookings returns the caller's bookings joined with their places.
func (h *BookingHandler) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	bookings, err := h.bookingService.ListMine(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// BookingRequest is the JSON payload for creating a booking. Dates use the
// 2006-01-02 layout. Price is optional; when present it must match the
// server-computed total.
type BookingRequest struct {
	PlaceID        int     `json:"place_id"`
	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	NumberOfGuests int     `json:"number_of_guests"`
	Name           string  `json:"name"`
	Mobile         string  `json:"mobile"`
	Price          float64 `json:"price"`
}
