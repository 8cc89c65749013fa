package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/car-service/apiserver/internal/services"
	"github.com/car-service/apiserver/types"
)

// MechanicHandler provides HTTP handlers for mechanics.
type MechanicHandler struct {
	mechanicService *services.MechanicService
}

func NewMechanicHandler(mechanicService *services.MechanicService) *MechanicHandler {
	return &MechanicHandler{mechanicService: mechanicService}
}

// MechanicRouter registers mechanic routes on the given router.
func MechanicRouter(r chi.Router, mechanicService *services.MechanicService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewMechanicHandler(mechanicService)

	r.Use(authMiddleware)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{mechanicID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

type CreateMechanicRequest struct {
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"`
	Login     string `json:"login"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Position  string `json:"position"`
}

func (h *MechanicHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMechanicRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Login = strings.TrimSpace(req.Login)
	if req.Name == "" || req.Login == "" || req.Password == "" || req.Position == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	birthDate, err := time.ParseInLocation(services.BirthDateFormat, req.BirthDate, time.UTC)
	if err != nil {
		writeServiceError(w, services.ErrInvalidBirthDate)
		return
	}

	mechanic, err := h.mechanicService.Create(r.Context(), types.Mechanic{
		Name:      req.Name,
		BirthDate: birthDate,
		Login:     req.Login,
		Role:      req.Role,
		Position:  req.Position,
	}, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mechanic)
}

func (h *MechanicHandler) List(w http.ResponseWriter, r *http.Request) {
	mechanics, err := h.mechanicService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list mechanics")
		return
	}
	writeJSON(w, http.StatusOK, mechanics)
}

func (h *MechanicHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "mechanicID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mechanic, err := h.mechanicService.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mechanic)
}

func (h *MechanicHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "mechanicID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.MechanicPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	mechanic, err := h.mechanicService.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mechanic)
}

func (h *MechanicHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "mechanicID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.mechanicService.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
