package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/feedback"
)

// fakeClient implements llm.Client for handler tests.
type fakeClient struct {
	reply string
	err   error
	calls int
}

func (f *fakeClient) Complete(context.Context, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeClient) Close() error { return nil }

func newTestServer(t *testing.T, client *fakeClient) *Server {
	t.Helper()
	cfg := &config.Config{Provider: config.ProviderGroq, APIKey: "gsk-test"}
	reviewer := feedback.NewReviewer(cfg, client, nil)
	srv := New(Config{Port: 0, Reviewer: reviewer})
	t.Cleanup(srv.sessions.Stop)
	return srv
}

// analyzeForm builds the multipart body the UI sends.
func analyzeForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doAnalyze(t *testing.T, srv *Server, fields map[string]string) (*httptest.ResponseRecorder, AnalyzeResponse) {
	t.Helper()
	body, contentType := analyzeForm(t, fields)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var resp AnalyzeResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestAnalyzeMockMode(t *testing.T) {
	client := &fakeClient{}
	srv := newTestServer(t, client)

	rec, resp := doAnalyze(t, srv, map[string]string{
		"resume_text": "Experienced engineer.",
		"job_role":    "Backend Engineer",
		"mock":        "true",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, feedback.SourceMock, resp.Source)
	assert.Equal(t, feedback.Mock("Backend Engineer"), resp.Result)
	assert.Equal(t, "Backend Engineer", resp.Result.Highlights[len(resp.Result.Highlights)-1])
	assert.NotEmpty(t, resp.SessionID)
	assert.Zero(t, client.calls)
}

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
	}{
		{
			name:   "Empty resume text",
			fields: map[string]string{"resume_text": "", "job_role": "Backend Engineer"},
		},
		{
			name:   "Empty job role",
			fields: map[string]string{"resume_text": "Experienced engineer.", "job_role": ""},
		},
		{
			name:   "Both empty",
			fields: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{reply: "should not be called"}
			srv := newTestServer(t, client)

			rec, _ := doAnalyze(t, srv, tt.fields)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "resume and target job role")
			assert.Zero(t, client.calls) // no provider call on validation failure
		})
	}
}

func TestAnalyzeProviderFailureFallsBack(t *testing.T) {
	client := &fakeClient{err: errors.New("dial tcp: connection refused")}
	srv := newTestServer(t, client)

	rec, resp := doAnalyze(t, srv, map[string]string{
		"resume_text": "Experienced engineer.",
		"job_role":    "Backend Engineer",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, feedback.SourceFallback, resp.Source)
	assert.Equal(t, feedback.Mock("Backend Engineer"), resp.Result)
	assert.NotEmpty(t, resp.Notice)
	assert.Equal(t, 1, client.calls)
}

func TestAnalyzeLivePath(t *testing.T) {
	reply := `{"skills":["Go"],"improvements":["x"],"tailored_examples":["a"],"scoring":{"relevance":9,"clarity":8,"format":8,"overall":9},"improved_resume":"Jane Doe","highlights":["Go"]}`
	srv := newTestServer(t, &fakeClient{reply: reply})

	rec, resp := doAnalyze(t, srv, map[string]string{
		"resume_text": "Experienced engineer.",
		"job_role":    "Backend Engineer",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, feedback.SourceModel, resp.Source)
	assert.Equal(t, "Jane Doe", resp.Result.ImprovedResume)
	assert.Equal(t, reply, resp.Raw)
}

func TestDownloadsUseEditedText(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	_, resp := doAnalyze(t, srv, map[string]string{
		"resume_text": "Experienced engineer.",
		"job_role":    "Backend Engineer",
		"mock":        "true",
	})

	// TXT download equals the generated text first.
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/sessions/"+resp.SessionID+"/download/txt?name=my_resume", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, feedback.Mock("Backend Engineer").ImprovedResume, rec.Body.String())
	assert.Equal(t, `attachment; filename="my_resume.txt"`, rec.Header().Get("Content-Disposition"))

	// Edit the resume.
	edit := bytes.NewBufferString(`{"improved_resume":"Edited by the user"}`)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut,
		"/api/sessions/"+resp.SessionID+"/resume", edit))
	require.Equal(t, http.StatusOK, rec.Code)

	// Downloads now reflect the edit, not the original output.
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/sessions/"+resp.SessionID+"/download/txt", nil))
	assert.Equal(t, "Edited by the user", rec.Body.String())
	assert.Equal(t, `attachment; filename="improved_resume.txt"`, rec.Header().Get("Content-Disposition"))

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/sessions/"+resp.SessionID+"/download/pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))
}

func TestDownloadUnknownSession(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/sessions/7f1c9e52-0000-0000-0000-000000000000/download/txt", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/sessions/not-a-uuid/download/txt", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExtractWarnsOnUnreadablePDF(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("not really a pdf"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/extract", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ExtractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Text)
	assert.Equal(t, extractionWarning, resp.Warning)
}

func TestAnalyzeUnreadablePDFExplainsValidationFailure(t *testing.T) {
	client := &fakeClient{reply: "should not be called"}
	srv := newTestServer(t, client)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("job_role", "Backend Engineer"))
	fw, err := mw.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("not really a pdf"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	// The 400 names extraction as the cause, not just the missing field.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), extractionWarning)
	assert.Contains(t, rec.Body.String(), "resume and target job role")
	assert.Zero(t, client.calls)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestIndexServed(t *testing.T) {
	srv := newTestServer(t, &fakeClient{})
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Smart Resume Reviewer")
}

func TestIndexRendersDataAsText(t *testing.T) {
	// Model replies and error bodies reach the page; the script must place
	// them as text nodes, never as markup.
	page := string(indexHTML)
	assert.NotContains(t, page, "innerHTML")
	assert.Contains(t, page, "textContent")
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"", "improved_resume"},
		{"my_resume", "my_resume"},
		{"my resume (final)", "my_resume_final_"},
		{"../../etc/passwd", "etc_passwd"},
		{"...", "improved_resume"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, baseName(tt.in), "input %q", tt.in)
	}
}
