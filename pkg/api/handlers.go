package api

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/nikogura/resume-studio/pkg/extract"
	"github.com/nikogura/resume-studio/pkg/llm"
	"github.com/nikogura/resume-studio/pkg/renderer"
	"github.com/pkg/errors"
)

// DocumentService is the generation backend behind the handlers.
type DocumentService interface {
	GenerateDocuments(ctx context.Context, req llm.Request) (docs llm.Documents, err error)
	ParseResume(ctx context.Context, text string) (parsed llm.ParsedResume, err error)
	ParseJobLink(ctx context.Context, url string) (parsed llm.ParsedJob, err error)
}

// Features is advertised by /health.
//
//nolint:gochecknoglobals // static feature list
var Features = []string{
	"Resume Generation",
	"Cover Letter",
	"Keyword Extraction",
	"ATS Optimization",
	"PDF Export",
	"Resume Upload",
	"Job Link Parsing",
}

// Handlers holds the endpoint implementations.
type Handlers struct {
	service DocumentService
	pdf     renderer.Options
	logger  *slog.Logger
	now     func() time.Time
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(service DocumentService, pdf renderer.Options, logger *slog.Logger) (h *Handlers) {
	h = &Handlers{
		service: service,
		pdf:     pdf,
		logger:  logger,
		now:     time.Now,
	}
	return h
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Message:  "Resume Generator Service is running",
		Features: Features,
	})
}

// Generate writes the requested documents.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	var req llm.Request
	err := readJSON(r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	docs, err := h.service.GenerateDocuments(r.Context(), req)
	if err != nil {
		if llm.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logFailure(r, "generate failed", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate documents: "+err.Error())
		return
	}

	writeData(w, docs)
}

type parseResumeBody struct {
	Text string `json:"text"`
}

// ParseResume extracts form fields from resume text sent as JSON or from an
// uploaded PDF or text file.
func (h *Handlers) ParseResume(w http.ResponseWriter, r *http.Request) {
	text, err := h.resumeText(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	parsed, err := h.service.ParseResume(r.Context(), text)
	if err != nil {
		if llm.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logFailure(r, "parse resume failed", err)
		writeError(w, http.StatusBadRequest, "Failed to parse resume: "+err.Error())
		return
	}

	writeData(w, parsed)
}

// resumeText reads the resume from a multipart "file" field or a JSON body.
func (h *Handlers) resumeText(r *http.Request) (text string, err error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if mediaType != "multipart/form-data" {
		var body parseResumeBody
		err = readJSON(r, &body)
		if err != nil {
			err = errors.Wrap(err, "Invalid request")
			return text, err
		}
		text = body.Text
		return text, err
	}

	err = r.ParseMultipartForm(maxBodyBytes)
	if err != nil {
		err = errors.Wrap(err, "Invalid upload")
		return text, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		err = errors.New("No file uploaded")
		return text, err
	}
	defer file.Close()

	var data []byte
	data, err = io.ReadAll(file)
	if err != nil {
		err = errors.Wrap(err, "failed to read upload")
		return text, err
	}

	text, err = extract.Text(header.Filename, data)
	return text, err
}

type parseJobLinkBody struct {
	URL string `json:"url"`
}

// ParseJobLink extracts a job description from a posting URL.
func (h *Handlers) ParseJobLink(w http.ResponseWriter, r *http.Request) {
	var body parseJobLinkBody
	err := readJSON(r, &body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	parsed, err := h.service.ParseJobLink(r.Context(), body.URL)
	if err != nil {
		if llm.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logFailure(r, "parse job link failed", err)
		writeError(w, http.StatusBadRequest, "Failed to parse job link: "+err.Error())
		return
	}

	writeData(w, parsed)
}

type generatePDFBody struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// GeneratePDF lays out markdown content and returns it as a PDF download.
func (h *Handlers) GeneratePDF(w http.ResponseWriter, r *http.Request) {
	var body generatePDFBody
	err := readJSON(r, &body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if body.Content == "" {
		writeError(w, http.StatusBadRequest, "Missing content")
		return
	}

	opts := h.pdf
	opts.Created = h.now()

	data, err := renderer.Export(body.Content, opts)
	if err != nil {
		h.logFailure(r, "pdf export failed", err)
		writeError(w, http.StatusBadRequest, "Failed to generate PDF: "+err.Error())
		return
	}

	err = writePDF(w, renderer.Filename(body.Type, opts.Created), data)
	if err != nil {
		h.logFailure(r, "writing pdf response", err)
	}
}

func (h *Handlers) logFailure(r *http.Request, msg string, err error) {
	h.logger.ErrorContext(r.Context(), msg,
		"request_id", RequestIDFrom(r.Context()),
		"error", err,
	)
}
