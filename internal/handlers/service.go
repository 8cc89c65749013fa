package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/car-service/apiserver/internal/services"
	"github.com/car-service/apiserver/types"
)

// ServiceHandler provides HTTP handlers for the service catalog.
type ServiceHandler struct {
	catalog *services.CatalogService
}

func NewServiceHandler(catalog *services.CatalogService) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// ServiceRouter registers service-catalog routes on the given router.
func ServiceRouter(r chi.Router, catalog *services.CatalogService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewServiceHandler(catalog)

	r.Use(authMiddleware)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{serviceID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

type CreateServiceRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"`
}

func (h *ServiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	service, err := h.catalog.Create(r.Context(), types.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, service)
}

func (h *ServiceHandler) List(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list services")
		return
	}
	writeJSON(w, http.StatusOK, catalog)
}

func (h *ServiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "serviceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	service, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func (h *ServiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "serviceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var patch types.ServicePatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	service, err := h.catalog.Update(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, service)
}

func (h *ServiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "serviceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
