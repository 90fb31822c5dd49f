package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/icp-generator/internal/inflight"
	"github.com/BerylCAtieno/icp-generator/internal/logger"
	"github.com/BerylCAtieno/icp-generator/internal/metrics"
	"github.com/BerylCAtieno/icp-generator/internal/models"
	"github.com/BerylCAtieno/icp-generator/internal/presenter"
	"github.com/BerylCAtieno/icp-generator/internal/profiler"
	"github.com/BerylCAtieno/icp-generator/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Error codes returned by the JSON API.
const (
	CodeInputRequired      = "INPUT_REQUIRED"
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeSubmissionInFlight = "SUBMISSION_IN_FLIGHT"
	CodeGenerationFailed   = "GENERATION_FAILED"
	CodeInvalidProfile     = "INVALID_PROFILE"
)

const (
	inputRequiredTitle   = "Input Required"
	inputRequiredMessage = "Please describe your product or service first."

	sessionHeader = "X-Session-ID"
	sessionCookie = "icp_session"
)

//go:embed templates/*.html
var templateFS embed.FS

// GenerateRequest is the body of the profile endpoints. Both JSON and form
// encodings are accepted.
type GenerateRequest struct {
	Description string `json:"description" form:"description"`
}

type Notice struct {
	Title   string
	Message string
}

type pageData struct {
	Description string
	View        presenter.ViewMode
	Notice      *Notice
	Result      *models.ProfileResponse
	JSON        string
}

type Handler struct {
	generator profiler.Generator
	guard     inflight.Guard
	logger    logger.Logger
}

func NewHandler(generator profiler.Generator, guard inflight.Guard, log logger.Logger) *Handler {
	return &Handler{
		generator: generator,
		guard:     guard,
		logger:    log.With(map[string]interface{}{"component": "web"}),
	}
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"inc":         func(i int) int { return i + 1 },
		"join":        func(items []string) string { return strings.Join(items, ", ") },
		"filterLabel": presenter.FilterLabel,
	}).ParseFS(templateFS, "templates/*.html")
}

// Register mounts the form and API routes.
func (h *Handler) Register(router *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	router.SetHTMLTemplate(tmpl)

	router.GET("/", h.ShowForm)
	router.POST("/", h.SubmitForm)

	api := router.Group("/api")
	api.POST("/icp", h.GenerateProfile)
	api.POST("/icp/download", h.DownloadProfile)
	api.GET("/icp/schema", h.ProfileSchema)
	return nil
}

func (h *Handler) ShowForm(c *gin.Context) {
	ensureSession(c)
	c.HTML(http.StatusOK, "index.html", pageData{
		View: presenter.ParseViewMode(c.Query("view")),
	})
}

func (h *Handler) SubmitForm(c *gin.Context) {
	data := pageData{
		Description: c.PostForm("description"),
		View:        presenter.ParseViewMode(c.PostForm("view")),
	}

	resp, status, err := h.generate(c, ensureSession(c), data.Description)
	if err != nil {
		data.Notice = noticeFor(err)
		c.HTML(status, "index.html", data)
		return
	}

	encoded, err := presenter.Encode(resp.Profile)
	if err != nil {
		h.logger.WithError(err).Error("failed to encode profile", nil)
		data.Notice = &Notice{Title: "Generation Failed", Message: "Please try again."}
		c.HTML(http.StatusInternalServerError, "index.html", data)
		return
	}

	data.Result = resp
	data.JSON = string(encoded)
	c.HTML(http.StatusOK, "index.html", data)
}

// GenerateProfile handles POST /api/icp.
func (h *Handler) GenerateProfile(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBind(&req); err != nil {
		metrics.RecordRejection(metrics.ReasonInvalidInput)
		h.logger.Warn("invalid request body", map[string]interface{}{"error": err.Error()})
		sendError(c, http.StatusBadRequest, CodeInvalidRequest, "Request body must be JSON with a description field.")
		return
	}

	resp, status, err := h.generate(c, sessionKey(c), req.Description)
	if err != nil {
		sendError(c, status, errorCode(err), errorMessage(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DownloadProfile handles POST /api/icp/download. The body is an already
// generated profile: raw JSON, or the "profile" field of a form post. It is
// validated and returned in the canonical encoding as an attachment.
func (h *Handler) DownloadProfile(c *gin.Context) {
	document, err := downloadDocument(c)
	if err != nil || len(bytes.TrimSpace(document)) == 0 {
		metrics.RecordRejection(metrics.ReasonInvalidInput)
		sendError(c, http.StatusBadRequest, CodeInvalidRequest, "Request body must be a customer profile.")
		return
	}

	profile, err := decodeProfile(document)
	if err != nil {
		metrics.RecordRejection(metrics.ReasonInvalidInput)
		h.logger.Warn("invalid profile for download", map[string]interface{}{"error": err.Error()})
		sendError(c, http.StatusUnprocessableEntity, CodeInvalidProfile, "Profile does not match the customer profile schema.")
		return
	}

	encoded, err := presenter.Encode(profile)
	if err != nil {
		h.logger.WithError(err).Error("failed to encode profile", nil)
		sendError(c, http.StatusInternalServerError, CodeGenerationFailed, "Failed to encode profile.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+presenter.DownloadFilename+`"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", encoded)
}

// ProfileSchema serves the JSON schema downloads are validated against.
func (h *Handler) ProfileSchema(c *gin.Context) {
	c.Data(http.StatusOK, "application/schema+json", validation.SchemaJSON())
}

func downloadDocument(c *gin.Context) ([]byte, error) {
	switch c.ContentType() {
	case gin.MIMEPOSTForm, gin.MIMEMultipartPOSTForm:
		return []byte(c.PostForm("profile")), nil
	default:
		return c.GetRawData()
	}
}

func decodeProfile(document []byte) (models.CustomerProfile, error) {
	if err := validation.ValidateProfile(document); err != nil {
		return models.CustomerProfile{}, err
	}
	return presenter.Decode(document)
}

// generate validates the description, holds the session's in-flight slot
// and runs the generator. The returned status is meaningful only with a
// non-nil error.
func (h *Handler) generate(c *gin.Context, key, description string) (*models.ProfileResponse, int, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		metrics.RecordRejection(metrics.ReasonEmptyInput)
		h.logger.Warn("empty description rejected", nil)
		return nil, http.StatusUnprocessableEntity, profiler.ErrEmptyDescription
	}

	release, err := h.guard.Acquire(c.Request.Context(), key)
	if err != nil {
		if errors.Is(err, inflight.ErrInFlight) {
			metrics.RecordRejection(metrics.ReasonInFlight)
			h.logger.Warn("duplicate submission rejected", map[string]interface{}{"session": key})
			return nil, http.StatusConflict, err
		}
		h.logger.WithError(err).Error("in-flight guard unavailable", map[string]interface{}{"session": key})
		return nil, http.StatusServiceUnavailable, err
	}
	defer release()

	start := time.Now()
	resp, err := h.generator.GenerateCustomerProfile(c.Request.Context(), description)
	if err != nil {
		if errors.Is(err, profiler.ErrEmptyDescription) {
			return nil, http.StatusUnprocessableEntity, err
		}
		h.logger.WithError(err).Error("profile generation failed", map[string]interface{}{"session": key})
		return nil, http.StatusBadGateway, err
	}

	elapsed := time.Since(start)
	metrics.ObserveGeneration(string(resp.Template), elapsed)
	h.logger.Info("profile generated", map[string]interface{}{
		"session":  key,
		"template": string(resp.Template),
		"signals":  resp.Signals,
		"elapsed":  elapsed.String(),
	})
	return resp, http.StatusOK, nil
}

// sessionKey identifies the caller for the in-flight guard: the
// X-Session-ID header, then the browser session cookie, then the client IP.
func sessionKey(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(sessionHeader)); id != "" {
		return id
	}
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	return c.ClientIP()
}

// ensureSession returns the browser session id, issuing a new cookie when
// the request carries none.
func ensureSession(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.New().String()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

func noticeFor(err error) *Notice {
	switch {
	case errors.Is(err, profiler.ErrEmptyDescription):
		return &Notice{Title: inputRequiredTitle, Message: inputRequiredMessage}
	case errors.Is(err, inflight.ErrInFlight):
		return &Notice{Title: "Generation In Progress", Message: "Your previous request is still being generated."}
	default:
		return &Notice{Title: "Generation Failed", Message: "Please try again."}
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, profiler.ErrEmptyDescription):
		return CodeInputRequired
	case errors.Is(err, inflight.ErrInFlight):
		return CodeSubmissionInFlight
	default:
		return CodeGenerationFailed
	}
}

func errorMessage(err error) string {
	n := noticeFor(err)
	return n.Message
}

func sendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
