package server

import (
	_ "embed"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/resume-reviewer/internal/extract"
	"github.com/jonathan/resume-reviewer/internal/feedback"
	"github.com/jonathan/resume-reviewer/internal/rendering"
	"github.com/jonathan/resume-reviewer/internal/session"
)

//go:embed static/index.html
var indexHTML []byte

// extractionWarning is shown when an uploaded PDF yields no text.
const extractionWarning = "Could not extract text from PDF."

// maxUploadBytes caps the parsed multipart form size.
const maxUploadBytes = 32 << 20

// AnalyzeRequest represents the form fields of /api/analyze. The resume text
// is either pasted directly or extracted from the uploaded PDF beforehand.
type AnalyzeRequest struct {
	ResumeText string `validate:"required"`
	JobRole    string `validate:"required"`
	JobDesc    string
	Mock       bool
}

// AnalyzeResponse represents the response for /api/analyze
type AnalyzeResponse struct {
	SessionID string           `json:"session_id"`
	Result    *feedback.Result `json:"result"`
	Source    feedback.Source  `json:"source"`
	Raw       string           `json:"raw,omitempty"`
	Notice    string           `json:"notice,omitempty"`
	Warning   string           `json:"warning,omitempty"`
}

// ExtractResponse represents the response for /api/extract
type ExtractResponse struct {
	Text    string `json:"text"`
	Warning string `json:"warning,omitempty"`
}

// UpdateResumeRequest represents the body of PUT /api/sessions/{id}/resume
type UpdateResumeRequest struct {
	ImprovedResume string `json:"improved_resume"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

// handleExtract pulls text out of an uploaded PDF so the UI can show it before
// analysis. Extraction never errors; an unreadable PDF yields a warning.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	text := extract.Text(data)
	resp := ExtractResponse{Text: text}
	if text == "" {
		resp.Warning = extractionWarning
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyze runs one review: extract (if a PDF was uploaded), validate,
// generate feedback, and open a session holding the improved resume.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "form", Message: "invalid multipart form"})
		return
	}

	req := AnalyzeRequest{
		ResumeText: r.FormValue("resume_text"),
		JobRole:    r.FormValue("job_role"),
		JobDesc:    r.FormValue("job_desc"),
	}
	if mock, err := strconv.ParseBool(r.FormValue("mock")); err == nil {
		req.Mock = mock
	}

	var warning string
	if file, _, err := r.FormFile("resume"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			s.errorResponse(w, &ErrValidation{Field: "resume", Message: "failed to read upload"})
			return
		}
		req.ResumeText = extract.Text(data)
		if req.ResumeText == "" {
			warning = extractionWarning
		}
	}

	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			msg := "please provide both resume and target job role"
			// An upload that yielded no text trips the resume-required rule;
			// tell the caller the real cause.
			if warning != "" {
				msg = warning + " " + msg
			}
			s.errorResponse(w, &ErrValidation{
				Field:   verrs[0].Field(),
				Message: msg,
			})
			return
		}
		s.errorResponse(w, err)
		return
	}

	resp := s.reviewer.Review(r.Context(), feedback.Request{
		ResumeText: req.ResumeText,
		JobRole:    req.JobRole,
		JobDesc:    req.JobDesc,
		Mock:       req.Mock,
	})

	sess := s.sessions.Create(req.JobRole, resp.Source, resp.Result.ImprovedResume)

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		SessionID: sess.ID.String(),
		Result:    resp.Result,
		Source:    resp.Source,
		Raw:       resp.Raw,
		Notice:    resp.Notice,
		Warning:   warning,
	})
}

// handleUpdateResume stores the user-edited improved resume for a session.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return
	}

	var req UpdateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "body", Message: "invalid JSON body"})
		return
	}

	if !s.sessions.UpdateResume(id, req.ImprovedResume) {
		s.errorResponse(w, &ErrSessionNotFound{ID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "saved"})
}

// handleDownloadTXT streams the session's current improved resume as a text
// file named from the user-supplied base name.
func (s *Server) handleDownloadTXT(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	name := baseName(r.URL.Query().Get("name"))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.txt"`)
	_, _ = w.Write([]byte(sess.ImprovedResume))
}

// handleDownloadPDF renders the session's current improved resume to PDF.
func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	data, err := rendering.ResumePDF(sess.ImprovedResume, "Improved Resume - "+sess.JobRole)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	name := baseName(r.URL.Query().Get("name"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.pdf"`)
	_, _ = w.Write(data)
}

// readUpload reads the "resume" file from a multipart request.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.errorResponse(w, &ErrValidation{Field: "form", Message: "invalid multipart form"})
		return nil, false
	}

	file, _, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "resume", Message: "resume file is required"})
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "resume", Message: "failed to read upload"})
		return nil, false
	}
	return data, true
}

// sessionID parses the {id} path segment.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, &ErrValidation{Field: "id", Message: "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

// session resolves the {id} path segment to a snapshot of a live session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	id, ok := s.sessionID(w, r)
	if !ok {
		return session.Session{}, false
	}
	sess, found := s.sessions.Get(id)
	if !found {
		s.errorResponse(w, &ErrSessionNotFound{ID: id})
		return session.Session{}, false
	}
	return sess, true
}

var (
	baseNamePattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	baseNameLeading = regexp.MustCompile(`^[._]+`)
)

// baseName sanitizes the user-supplied download file base name.
func baseName(name string) string {
	name = baseNamePattern.ReplaceAllString(name, "_")
	name = baseNameLeading.ReplaceAllString(name, "")
	if name == "" {
		return "improved_resume"
	}
	return name
}
