// Package backend calls the external resume backend: tailored resume
// generation and uploads to job boards.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/resume-editor/internal/resume"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 60 * time.Second

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 4 << 10

// Error represents a failed backend call.
type Error struct {
	Op         string
	StatusCode int // 0 when no response was received
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("backend %s failed: %s", e.Op, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("backend %s failed with status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// GenerateRequest asks the backend to tailor a resume to a job.
type GenerateRequest struct {
	Resume         resume.Document `json:"resume"`
	JobURL         string          `json:"jobUrl,omitempty" validate:"omitempty,url"`
	JobDescription string          `json:"jobDescription,omitempty"`
}

// UploadRequest sends a rendered resume to an external job board.
type UploadRequest struct {
	Board    string `json:"board" validate:"required"`
	JobURL   string `json:"jobUrl,omitempty" validate:"omitempty,url"`
	Filename string `json:"filename"`
	PDF      []byte `json:"-"`
}

// Response carries the backend's identifiers. The editor passes them back to
// the caller without interpreting them.
type Response struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Client is an HTTP client for the backend API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for baseURL that authenticates with token.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{Op: "configure", Message: fmt.Sprintf("invalid base URL %q", baseURL), Cause: err}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Generate submits a generation request.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*Response, error) {
	body, err := json.Marshal(GenerateRequest{
		Resume:         resume.Normalize(req.Resume),
		JobURL:         req.JobURL,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		return nil, &Error{Op: "generate", Message: "failed to encode request", Cause: err}
	}
	return c.do(ctx, "generate", "/resumes/generate", "application/json", bytes.NewReader(body))
}

// Upload sends the PDF as multipart form data.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*Response, error) {
	if len(req.PDF) == 0 {
		return nil, &Error{Op: "upload", Message: "empty PDF"}
	}
	filename := req.Filename
	if filename == "" {
		filename = "resume.pdf"
	}

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	_ = form.WriteField("board", req.Board)
	if req.JobURL != "" {
		_ = form.WriteField("jobUrl", req.JobURL)
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, &Error{Op: "upload", Message: "failed to build form", Cause: err}
	}
	if _, err := part.Write(req.PDF); err != nil {
		return nil, &Error{Op: "upload", Message: "failed to build form", Cause: err}
	}
	if err := form.Close(); err != nil {
		return nil, &Error{Op: "upload", Message: "failed to build form", Cause: err}
	}

	return c.do(ctx, "upload", "/uploads", form.FormDataContentType(), &buf)
}

func (c *Client) do(ctx context.Context, op, path, contentType string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, &Error{Op: op, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{Op: op, StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return &out, nil
}
