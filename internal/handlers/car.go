package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/car-service/apiserver/internal/services"
	"github.com/car-service/apiserver/types"
)

// CarHandler provides HTTP handlers for cars.
type CarHandler struct {
	carService *services.CarService
}

func NewCarHandler(carService *services.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// CarRouter registers car routes on the given router.
func CarRouter(r chi.Router, carService *services.CarService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewCarHandler(carService)

	r.Use(authMiddleware)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{carID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

type CreateCarRequest struct {
	UserID      int    `json:"user_id"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	PlateNumber string `json:"plate_number"`
	VIN         string `json:"vin"`
}

func (h *CarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCarRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.PlateNumber = strings.TrimSpace(req.PlateNumber)
	req.VIN = strings.TrimSpace(req.VIN)
	if req.UserID < 1 || req.Brand == "" || req.Model == "" || req.PlateNumber == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	car, err := h.carService.Create(r.Context(), types.Car{
		UserID:      req.UserID,
		Brand:       req.Brand,
		Model:       req.Model,
		Year:        req.Year,
		PlateNumber: req.PlateNumber,
		VIN:         req.VIN,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, car)
}

func (h *CarHandler) List(w http.ResponseWriter, r *http.Request) {
	cars, err := h.carService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cars")
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

func (h *CarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "carID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	car, err := h.carService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "carID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.CarPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	car, err := h.carService.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

func (h *CarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "carID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.carService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
