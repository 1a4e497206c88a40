package screening

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/extract"
	"resume-screener/internal/shared/server/respond"
	"resume-screener/internal/suitability"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc     *Service
	Timeout time.Duration
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, timeout time.Duration) *Handler {
	return &Handler{Svc: svc, Timeout: timeout}
}

// RegisterRoutes attaches the versioned screening routes to the router group.
// upload runs before the upload handler, typically a rate limiter.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, upload ...gin.HandlerFunc) {
	rg.POST("/screenings", append(upload, h.Upload)...)
	rg.GET("/screenings", h.list)
	rg.GET("/screenings/:id", h.get)
}

// Upload screens a multipart résumé upload.
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds 10MB", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	var years *float64
	if raw := strings.TrimSpace(c.PostForm("experience_years")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "experience_years must be a number", nil)
			return
		}
		years = &v
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	result, err := h.Svc.Upload(ctx, UploadRequest{
		FileName:        fileHeader.Filename,
		Body:            file,
		ExperienceYears: years,
	})
	if err != nil {
		writeError(c, err, "failed to screen resume")
		return
	}

	respond.SetScreeningID(c, result.ID)
	respond.OK(c, toResponse(result))
}

func (h *Handler) get(c *gin.Context) {
	result, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed to fetch screening")
		return
	}
	respond.SetScreeningID(c, result.ID)
	respond.OK(c, toResponse(result))
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0

	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list screenings")
		return
	}

	resp := make([]screeningResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toResponse(item))
	}
	respond.List(c, resp, limit, offset)
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "screening not found", nil)
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, extract.ErrNotFound),
		errors.Is(err, extract.ErrEmptyInput),
		errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, extract.ErrExtractionFailure):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", err.Error(), nil)
	case errors.Is(err, suitability.ErrModelUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "model_unavailable", "suitability model is not available", nil)
	case errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusGatewayTimeout, "timeout", "screening timed out", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
