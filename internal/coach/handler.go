package coach

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"career-coach/internal/shared/server/middleware"
	"career-coach/internal/shared/server/respond"
	"career-coach/internal/shared/telemetry"
	"career-coach/internal/shared/util"
	"career-coach/letter/render"
)

const defaultMaxUpload = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUpload
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches the settings route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.settings)
}

// RegisterRunRoutes attaches the model and document routes. They are grouped apart so the
// router can rate limit them.
func (h *Handler) RegisterRunRoutes(rg *gin.RouterGroup) {
	rg.POST("/coach", h.coach)
	rg.POST("/letters/docx", h.renderLetter)
}

func (h *Handler) settings(c *gin.Context) {
	title := h.Svc.Title
	if strings.TrimSpace(title) == "" {
		title = render.DefaultTitle
	}
	respond.OK(c, SettingsResponse{
		Model:       h.Svc.Defaults.Model,
		Temperature: h.Svc.Defaults.Temperature,
		Language:    h.Svc.Defaults.Language,
		LetterTitle: title,
	})
}

func (h *Handler) coach(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "upload exceeds the size limit", gin.H{"limitBytes": tooLarge.Limit})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	settings := Settings{
		Model:       c.PostForm("model"),
		Temperature: h.Svc.Defaults.Temperature,
		Language:    c.PostForm("language"),
	}
	if raw := strings.TrimSpace(c.PostForm("temperature")); raw != "" {
		temp, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "temperature must be a number", nil)
			return
		}
		settings.Temperature = temp
	}

	res, err := h.Svc.Run(c.Request.Context(), Input{
		ResumeFileName: fileName,
		ResumeData:     data,
		JobDescription: c.PostForm("jobDescription"),
		Settings:       settings,
	})
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	respond.OK(c, toResponse(res))
}

func (h *Handler) renderLetter(c *gin.Context) {
	var req renderLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}

	doc, err := h.Svc.RenderLetter(req.Title, req.Text)
	if err != nil {
		h.writeRunError(c, err)
		return
	}

	respond.Attachment(c, doc.FileName, doc.MimeType, doc.Data)
}

// writeRunError maps a pipeline error to a response. The raw error is only logged.
func (h *Handler) writeRunError(c *gin.Context, err error) {
	var validationErr *ValidationError
	switch {
	case errors.As(err, &validationErr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request", validationErr.Fields)
		return
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	telemetry.Error("coach.failed", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"error":      err,
	})

	stage, _ := StageOf(err)
	switch stage {
	case StageExtract:
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "could not read the résumé", nil)
	case StageAnalyze, StageLetter:
		respond.Error(c, http.StatusBadGateway, "model_failed", "the language model request failed", nil)
	case StageDocument:
		respond.Error(c, http.StatusInternalServerError, "document_failed", "could not build the letter document", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
