package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/car-service/apiserver/internal/services"
	"github.com/car-service/apiserver/types"
)

// AppointmentHandler provides HTTP handlers for appointments.
type AppointmentHandler struct {
	appointments *services.AppointmentService
}

func NewAppointmentHandler(appointments *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// AppointmentRouter registers appointment routes on the given router.
func AppointmentRouter(r chi.Router, appointments *services.AppointmentService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewAppointmentHandler(appointments)

	r.Use(authMiddleware)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{appointmentID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Patch("/status", handler.UpdateStatus)
		r.Delete("/", handler.Delete)
	})
}

type CreateAppointmentRequest struct {
	UserID     int    `json:"user_id"`
	CarID      int    `json:"car_id"`
	ServiceID  int    `json:"service_id"`
	MechanicID *int   `json:"mechanic_id"`
	Date       string `json:"appointment_date"`
	Status     string `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.UserID < 1 || req.CarID < 1 || req.ServiceID < 1 || strings.TrimSpace(req.Date) == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	appointment, err := h.appointments.Create(r.Context(), services.CreateAppointment{
		UserID:     req.UserID,
		CarID:      req.CarID,
		ServiceID:  req.ServiceID,
		MechanicID: req.MechanicID,
		Date:       req.Date,
		Status:     req.Status,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, appointment)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointments.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list appointments")
		return
	}
	writeJSON(w, http.StatusOK, appointments)
}

func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "appointmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	appointment, err := h.appointments.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "appointmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.AppointmentPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	appointment, err := h.appointments.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "appointmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	appointment, err := h.appointments.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "appointmentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.appointments.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
