package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/roamnest/apiserver/internal/services"
)

const (
	maxMultipartMemory = 128 << 20
	formFieldPhotos    = "photos"
)

// UploadHandler provides the photo ingestion endpoints.
type UploadHandler struct {
	photoService *services.PhotoService
	maxFiles     int
	maxFileBytes int64
}

// NewUploadHandler constructs a handler with the provided pipeline.
func NewUploadHandler(photoService *services.PhotoService, maxFiles int, maxFileBytes int64) *UploadHandler {
	if maxFiles <= 0 {
		maxFiles = 100
	}
	if maxFileBytes <= 0 {
		maxFileBytes = 32 << 20
	}
	return &UploadHandler{
		photoService: photoService,
		maxFiles:     maxFiles,
		maxFileBytes: maxFileBytes,
	}
}

// UploadRouter registers upload routes on the given router.
func UploadRouter(r chi.Router, photoService *services.PhotoService, maxFiles int, maxFileBytes int64) {
	handler := NewUploadHandler(photoService, maxFiles, maxFileBytes)

	r.Post("/upload-by-link", handler.UploadByLink)
	r.Post("/upload", handler.Upload)
}

// UploadByLink fetches a photo from a remote URL and returns its reference.
func (h *UploadHandler) UploadByLink(w http.ResponseWriter, r *http.Request) {
	var req UploadByLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	ref, err := h.photoService.IngestFromURL(r.Context(), req.Link)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch photo")
		return
	}

	writeJSON(w, http.StatusOK, ref)
}

// Upload ingests a multipart batch of photos and returns their references
// in submission order.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	fileHeaders := r.MultipartForm.File[formFieldPhotos]
	if len(fileHeaders) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "no photos provided")
		return
	}
	if len(fileHeaders) > h.maxFiles {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("at most %d photos per request", h.maxFiles))
		return
	}

	files := make([]services.UploadFile, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read upload")
			return
		}
		data, err := readFileLimited(file, h.maxFileBytes)
		_ = file.Close()
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		files = append(files, services.UploadFile{
			Name:        fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	refs, err := h.photoService.IngestUploads(r.Context(), files)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to store photos")
		return
	}

	writeJSON(w, http.StatusOK, refs)
}

// UploadByLinkRequest is the JSON payload for URL-based ingestion.
type UploadByLinkRequest struct {
	Link string `json:"link"`
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
