package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pawtalk/pet-translator/internal/config"
	"github.com/pawtalk/pet-translator/internal/metrics"
	"github.com/pawtalk/pet-translator/internal/models"
	"go.uber.org/zap"
)

const (
	msgNoFile        = "No file uploaded."
	msgFileTooLarge  = "File too large."
	msgInternalError = "Internal Server Error"
	msgUnknownError  = "Unknown error"
)

type translateService interface {
	Translate(ctx context.Context, img models.Image) (string, error)
}

type UploadHandler struct {
	service  translateService
	logger   *zap.SugaredLogger
	maxBytes int64
	field    string
}

func NewUploadHandler(service translateService, logger *zap.SugaredLogger, cfg config.UploadConfig) *UploadHandler {
	return &UploadHandler{
		service:  service,
		logger:   logger,
		maxBytes: cfg.MaxBytes,
		field:    cfg.FieldName,
	}
}

// Upload godoc
// @Summary Translate a pet photo
// @Description Upload one photo as multipart field "image"; the model answers with what the pet is thinking.
// @Tags translate
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Pet photo (JPEG)"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/upload [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	var text string
	img, err := h.readImage(w, r)
	if err == nil {
		metrics.UploadSize(len(img.Data))
		h.logger.Debugw("file received",
			"filename", img.Filename,
			"content_type", img.MIMEType,
			"size", len(img.Data),
		)
		text, err = h.service.Translate(r.Context(), img)
	}
	h.respond(w, text, err)
}

// Options answers preflight requests that carry no CORS headers.
func (h *UploadHandler) Options(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *UploadHandler) readImage(w http.ResponseWriter, r *http.Request) (models.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile(h.field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return models.Image{}, fmt.Errorf("%w: limit is %d bytes", models.ErrFileTooLarge, tooLarge.Limit)
		case errors.Is(err, http.ErrMissingFile),
			errors.Is(err, http.ErrNotMultipart),
			errors.Is(err, http.ErrMissingBoundary):
			return models.Image{}, models.ErrNoFile
		}
		return models.Image{}, fmt.Errorf("parse multipart form: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.Image{}, fmt.Errorf("read %s: %w", header.Filename, err)
	}
	if len(data) == 0 {
		return models.Image{}, models.ErrNoFile
	}

	return models.Image{
		Data:     data,
		Filename: header.Filename,
		MIMEType: header.Header.Get("Content-Type"),
	}, nil
}

// respond is the only place an upload outcome becomes an HTTP response.
func (h *UploadHandler) respond(w http.ResponseWriter, text string, err error) {
	switch {
	case err == nil:
		h.logger.Debugw("result ready", "result_len", len(text))
		writeJSON(w, http.StatusOK, models.UploadResponse{Result: text})
	case errors.Is(err, models.ErrNoFile):
		h.logger.Infow("rejected upload", "reason", msgNoFile)
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: msgNoFile})
	case errors.Is(err, models.ErrFileTooLarge):
		h.logger.Infow("rejected upload", "reason", err.Error())
		writeJSON(w, http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: msgFileTooLarge})
	default:
		h.logger.Errorw("error during request", "error", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: msgInternalError})
	}
}
