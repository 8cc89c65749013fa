package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/car-service/apiserver/internal/services"
)

const (
	maxMultipartMemory = 32 << 20
	maxDocumentBytes   = 64 << 20

	formFieldMechanicID = "mechanic_id"
	formFieldType       = "type"
	formFieldFile       = "file"
)

// DocumentFile represents an uploaded document file.
type DocumentFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// DocumentHandler provides HTTP handlers for mechanic documents.
type DocumentHandler struct {
	documents *services.DocumentService
}

func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// DocumentRouter registers document routes on the given router.
func DocumentRouter(r chi.Router, documents *services.DocumentService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewDocumentHandler(documents)

	r.Use(authMiddleware)
	r.Get("/", handler.List)
	r.Post("/", handler.Create)
	r.Route("/{documentID}", func(r chi.Router) {
		r.Get("/", handler.Get)
		r.Get("/file", handler.Download)
		r.Put("/", handler.Update)
		r.Delete("/", handler.Delete)
	})
}

// DocumentUpsertRequest represents the parsed multipart form payload.
type DocumentUpsertRequest struct {
	MechanicID int
	Type       string
	File       DocumentFile
}

func (h *DocumentHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := parseDocumentForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.documents.Create(r.Context(), services.DocumentUpload{
		MechanicID:  req.MechanicID,
		Type:        req.Type,
		FileKey:     req.File.Filename,
		Content:     bytes.NewReader(req.File.Data),
		Size:        int64(len(req.File.Data)),
		ContentType: req.File.ContentType,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	documents, err := h.documents.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	writeJSON(w, http.StatusOK, documents)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "documentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	document, err := h.documents.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, document)
}

func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "documentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, document, err := h.documents.Download(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(filepath.Ext(document.FileKey))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.FileKey))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}

func (h *DocumentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "documentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	req, err := parseDocumentForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.documents.Update(r.Context(), id, services.DocumentUpload{
		MechanicID:  req.MechanicID,
		Type:        req.Type,
		FileKey:     req.File.Filename,
		Content:     bytes.NewReader(req.File.Data),
		Size:        int64(len(req.File.Data)),
		ContentType: req.File.ContentType,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "documentID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.documents.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseDocumentForm(r *http.Request) (DocumentUpsertRequest, error) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return DocumentUpsertRequest{}, errors.New("invalid multipart form")
	}

	mechanicID, err := strconv.Atoi(strings.TrimSpace(r.FormValue(formFieldMechanicID)))
	if err != nil || mechanicID < 1 {
		return DocumentUpsertRequest{}, errors.New("invalid mechanic id")
	}

	docType := strings.TrimSpace(r.FormValue(formFieldType))
	if docType == "" {
		return DocumentUpsertRequest{}, errors.New("type is required")
	}

	file, err := parseDocumentFile(r.MultipartForm)
	if err != nil {
		return DocumentUpsertRequest{}, err
	}

	return DocumentUpsertRequest{
		MechanicID: mechanicID,
		Type:       docType,
		File:       file,
	}, nil
}

func parseDocumentFile(form *multipart.Form) (DocumentFile, error) {
	if form == nil {
		return DocumentFile{}, errors.New("missing form data")
	}

	files := form.File[formFieldFile]
	if len(files) == 0 {
		return DocumentFile{}, errors.New("file is required")
	}
	if len(files) > 1 {
		return DocumentFile{}, errors.New("only one file is allowed")
	}

	fileHeader := files[0]
	filename := filepath.Base(fileHeader.Filename)
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		return DocumentFile{}, errors.New("invalid file name")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return DocumentFile{}, fmt.Errorf("failed to read file: %w", err)
	}

	data, err := readFileLimited(file, maxDocumentBytes)
	_ = file.Close()
	if err != nil {
		return DocumentFile{}, err
	}

	return DocumentFile{
		Filename:    filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func readFileLimited(file multipart.File, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return nil, errors.New("failed to read file")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("file is too large")
	}
	return data, nil
}
