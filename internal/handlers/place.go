package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/roamnest/apiserver/internal/services"
	"github.com/roamnest/apiserver/internal/store"
	"github.com/roamnest/apiserver/types"
)

// PlaceHandler provides HTTP handlers for place listings.
type PlaceHandler struct {
	placeService *services.PlaceService
}

// NewPlaceHandler constructs a handler with the provided service.
func NewPlaceHandler(placeService *services.PlaceService) *PlaceHandler {
	return &PlaceHandler{placeService: placeService}
}

// PlaceRouter registers place routes on the given router. Reads are public;
// every mutation goes through authMiddleware first.
func PlaceRouter(r chi.Router, placeService *services.PlaceService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewPlaceHandler(placeService)

	r.Get("/places", handler.ListPlaces)
	r.With(authMiddleware).Post("/places", handler.CreatePlace)
	r.With(authMiddleware).Get("/user-places", handler.ListUserPlaces)
	r.Get("/places/{placeID}", handler.GetPlace)
	r.With(authMiddleware).Put("/places/{placeID}", handler.UpdatePlace)
}

// ListPlaces returns every place in the system.
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	places, err := h.placeService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list places")
		return
	}
	writeJSON(w, http.StatusOK, places)
}

// ListUserPlaces returns the places owned by the caller.
func (h *PlaceHandler) ListUserPlaces(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	places, err := h.placeService.ListByOwner(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list places")
		return
	}
	writeJSON(w, http.StatusOK, places)
}

func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, err := parsePlaceID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	place, err := h.placeService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "place not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch place")
		return
	}

	writeJSON(w, http.StatusOK, place)
}

func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	created, err := h.placeService.Create(r.Context(), identity.UserID, req.toPlace())
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create place")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parsePlaceID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.placeService.Update(r.Context(), identity.UserID, id, req.toPlace())
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "place not found")
		case errors.Is(err, services.ErrForbidden):
			writeError(w, http.StatusForbidden, "you do not own this place")
		case errors.Is(err, services.ErrInvalidInput):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update place")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// PlaceRequest is the JSON payload for creating or updating a place.
type PlaceRequest struct {
	Title       string   `json:"title"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Photos      []string `json:"photos"`
	Perks       []string `json:"perks"`
	ExtraInfo   string   `json:"extra_info"`
	CheckIn     string   `json:"check_in"`
	CheckOut    string   `json:"check_out"`
	MaxGuests   int      `json:"max_guests"`
	Price       float64  `json:"price"`
}

func (req PlaceRequest) toPlace() types.Place {
	return types.Place{
		Title:       req.Title,
		Address:     req.Address,
		Description: req.Description,
		Photos:      req.Photos,
		Perks:       req.Perks,
		ExtraInfo:   req.ExtraInfo,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		MaxGuests:   req.MaxGuests,
		Price:       req.Price,
	}
}

func parsePlaceID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "placeID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid place id")
	}
	return id, nil
}
