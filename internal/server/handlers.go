package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aescanero/dago-prompt-dashboard/internal/dashboard"
	"github.com/aescanero/dago-prompt-dashboard/internal/prompt"
	"github.com/aescanero/dago-prompt-dashboard/internal/view"
	"go.uber.org/zap"
)

var (
	errNoFile   = errors.New("no CSV file uploaded")
	errNoPrompt = errors.New("no prompt to download")
)

// uploadError marks a request whose form could not be read
type uploadError struct {
	err error
}

func (e *uploadError) Error() string {
	return fmt.Sprintf("failed to read upload: %v", e.err)
}

func (e *uploadError) Unwrap() error {
	return e.err
}

// upload is a parsed multipart dashboard submission
type upload struct {
	req  dashboard.Request
	file io.ReadCloser
}

// parseUpload reads the form fields and the uploaded file
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) (*upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		return nil, &uploadError{err: err}
	}

	u := &upload{
		req: dashboard.Request{
			Request: prompt.Request{
				Template: r.FormValue("template"),
				Custom:   normalizeNewlines(r.FormValue("custom")),
			},
			FilterValue: strings.TrimSpace(r.FormValue("filter_value")),
		},
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return u, errNoFile
		}
		return u, &uploadError{err: err}
	}
	u.file = file

	return u, nil
}

// handleIndex serves the empty dashboard
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := view.NewPage(s.pipeline.Definition(), s.pipeline.Catalog(), dashboard.Request{})
	s.writePage(w, http.StatusOK, page)
}

// handleRender renders the dashboard for an upload
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	u, err := s.parseUpload(w, r)
	req := dashboard.Request{}
	if u != nil {
		req = u.req
	}
	page := view.NewPage(s.pipeline.Definition(), s.pipeline.Catalog(), req)
	if err != nil {
		s.writePage(w, statusFor(err), page.WithError(err))
		return
	}
	defer u.file.Close()

	v, _, err := s.generate(r.Context(), u.file, u.req)
	if err != nil {
		s.writePage(w, statusFor(err), page.WithError(err))
		return
	}

	s.writePage(w, http.StatusOK, page.WithView(v, s.opts.Filename))
}

// handleDownload returns the prompt shown on the page as a text file.
// The prompt was already published when the page was rendered.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		err = &uploadError{err: err}
		http.Error(w, err.Error(), statusFor(err))
		return
	}
	if !r.PostForm.Has("prompt") {
		http.Error(w, errNoPrompt.Error(), statusFor(errNoPrompt))
		return
	}
	text := normalizeNewlines(r.PostForm.Get("prompt"))

	s.logger.Debug("prompt downloaded", zap.Int("prompt_bytes", len(text)))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.opts.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, text); err != nil {
		s.logger.Error("failed to write download", zap.Error(err))
	}
}

// TemplateInfo describes a catalog entry
type TemplateInfo struct {
	Name     string `json:"name"`
	Freeform bool   `json:"freeform"`
}

// handleTemplates lists the template catalog
func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	templates := s.pipeline.Catalog().Templates()
	out := make([]TemplateInfo, len(templates))
	for i, t := range templates {
		out[i] = TemplateInfo{Name: t.Name, Freeform: t.Freeform()}
	}
	s.respondJSON(w, http.StatusOK, out)
}

// PromptRequest is the JSON body of /api/prompt
type PromptRequest struct {
	CSV         string `json:"csv"`
	Template    string `json:"template"`
	Custom      string `json:"custom,omitempty"`
	FilterValue string `json:"filter_value,omitempty"`
}

// PromptResponse is the JSON answer of /api/prompt
type PromptResponse struct {
	RequestID  string      `json:"request_id"`
	Template   string      `json:"template"`
	Mode       prompt.Mode `json:"mode"`
	Prompt     string      `json:"prompt"`
	Rows       int         `json:"rows"`
	Charts     []string    `json:"charts"`
	Advisories []string    `json:"advisories"`
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Error string `json:"error"`
}

// handlePrompt renders a prompt from a JSON request
func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)

	var body PromptRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		status := http.StatusBadRequest
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
		}
		s.respondJSON(w, status, ErrorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	v, requestID, err := s.generate(r.Context(), bytes.NewReader([]byte(body.CSV)), dashboard.Request{
		Request:     prompt.Request{Template: body.Template, Custom: body.Custom},
		FilterValue: body.FilterValue,
	})
	if err != nil {
		s.respondJSON(w, statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	charts := make([]string, len(v.Charts))
	for i, c := range v.Charts {
		charts[i] = c.Title
	}
	advisories := v.Advisories
	if advisories == nil {
		advisories = []string{}
	}

	s.respondJSON(w, http.StatusOK, PromptResponse{
		RequestID:  requestID,
		Template:   v.Prompt.Template,
		Mode:       v.Prompt.Mode,
		Prompt:     v.Prompt.Text,
		Rows:       v.Rows,
		Charts:     charts,
		Advisories: advisories,
	})
}

// writePage renders a dashboard page
func (s *Server) writePage(w http.ResponseWriter, status int, page view.Page) {
	var buf bytes.Buffer
	if err := s.pages.Dashboard(&buf, page); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("failed to write page", zap.Error(err))
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// normalizeNewlines converts browser CRLF line endings in form fields
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
