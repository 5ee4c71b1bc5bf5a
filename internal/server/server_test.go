package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-editor/internal/backend"
	"github.com/jonathan/resume-editor/internal/db"
	"github.com/jonathan/resume-editor/internal/resume"
	"github.com/jonathan/resume-editor/internal/server/middleware"
	"github.com/jonathan/resume-editor/internal/server/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore keeps documents and preferences in memory.
type mockStore struct {
	mu       sync.Mutex
	resumes  map[uuid.UUID]*db.StoredResume
	prefs    map[uuid.UUID]*db.Preferences
	saves    int
	pingErr  error
	loadErr  error
	clockNow time.Time
}

func newMockStore() *mockStore {
	return &mockStore{
		resumes:  make(map[uuid.UUID]*db.StoredResume),
		prefs:    make(map[uuid.UUID]*db.Preferences),
		clockNow: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (m *mockStore) GetResume(_ context.Context, userID uuid.UUID) (*db.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	stored, ok := m.resumes[userID]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (m *mockStore) SaveResume(_ context.Context, userID uuid.UUID, doc resume.Document) (*db.StoredResume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	created := m.clockNow
	if existing, ok := m.resumes[userID]; ok {
		created = existing.CreatedAt
	}
	stored := &db.StoredResume{Document: doc, CreatedAt: created, UpdatedAt: m.clockNow}
	m.resumes[userID] = stored
	cp := *stored
	return &cp, nil
}

func (m *mockStore) GetPreferences(_ context.Context, userID uuid.UUID) (*db.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefs, ok := m.prefs[userID]
	if !ok {
		return nil, nil
	}
	cp := *prefs
	return &cp, nil
}

func (m *mockStore) SavePreferences(_ context.Context, userID uuid.UUID, prefs db.Preferences) (*db.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefs.UpdatedAt = m.clockNow
	m.prefs[userID] = &prefs
	cp := prefs
	return &cp, nil
}

func (m *mockStore) Ping(context.Context) error {
	return m.pingErr
}

// mockCache is an in-memory RenderCache.
type mockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string][]byte)}
}

func (c *mockCache) Get(_ context.Context, format, fingerprint string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[format+":"+fingerprint], nil
}

func (c *mockCache) Set(_ context.Context, format, fingerprint string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[format+":"+fingerprint] = data
	return nil
}

// mockPDF records the HTML it was asked to print.
type mockPDF struct {
	mu    sync.Mutex
	calls int
	html  string
	err   error
}

func (p *mockPDF) RenderPDF(_ context.Context, html string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.html = html
	if p.err != nil {
		return nil, p.err
	}
	return []byte("%PDF-1.4 test"), nil
}

// mockBackend records the last request of each kind.
type mockBackend struct {
	generated *backend.GenerateRequest
	uploaded  *backend.UploadRequest
	err       error
}

func (b *mockBackend) Generate(_ context.Context, req backend.GenerateRequest) (*backend.Response, error) {
	b.generated = &req
	if b.err != nil {
		return nil, b.err
	}
	return &backend.Response{ID: "gen-1", Status: "queued"}, nil
}

func (b *mockBackend) Upload(_ context.Context, req backend.UploadRequest) (*backend.Response, error) {
	b.uploaded = &req
	if b.err != nil {
		return nil, b.err
	}
	return &backend.Response{ID: "up-1", Status: "submitted"}, nil
}

// mockLimiter allows everything unless deny is set.
type mockLimiter struct {
	deny    bool
	stopped bool
}

func (l *mockLimiter) Allow(_ context.Context, _, _, _ string) ratelimit.Info {
	if l.deny {
		return ratelimit.Info{
			Allowed:    false,
			Limit:      5,
			Remaining:  0,
			ResetTime:  time.Now().Add(time.Minute),
			RetryAfter: 30 * time.Second,
		}
	}
	return ratelimit.Info{Allowed: true}
}

func (l *mockLimiter) Stop() { l.stopped = true }

// staticTokens accepts a single token for a single user.
type staticTokens struct {
	token  string
	userID uuid.UUID
}

type staticClaims uuid.UUID

func (c staticClaims) GetUserID() uuid.UUID { return uuid.UUID(c) }

func (v staticTokens) ValidateToken(token string) (middleware.UserIDGetter, error) {
	if token != v.token {
		return nil, errors.New("invalid token")
	}
	return staticClaims(v.userID), nil
}

const testToken = "test-token"

type testServer struct {
	*Server
	handler http.Handler
	store   *mockStore
	cache   *mockCache
	pdf     *mockPDF
	backend *mockBackend
	limiter *mockLimiter
	userID  uuid.UUID
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ts := &testServer{
		store:   newMockStore(),
		cache:   newMockCache(),
		pdf:     &mockPDF{},
		backend: &mockBackend{},
		limiter: &mockLimiter{},
		userID:  uuid.New(),
	}
	tokens := staticTokens{token: testToken, userID: ts.userID}

	s, err := New(Config{}, Deps{
		Store:   ts.store,
		Tokens:  tokens,
		Cache:   ts.cache,
		PDF:     ts.pdf,
		Backend: ts.backend,
		Limiter: ts.limiter,
	})
	require.NoError(t, err)
	ts.Server = s
	ts.handler = s.Handler(tokens)
	return ts
}

// do sends an authenticated request through the full middleware chain.
func (ts *testServer) do(method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+testToken)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testServer) doJSON(method, path string, v any) *httptest.ResponseRecorder {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return ts.do(method, path, "application/json", data)
}

func (ts *testServer) seed(doc resume.Document) {
	_, _ = ts.store.SaveResume(context.Background(), ts.userID, doc)
	ts.store.saves = 0
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func sampleDocument() resume.Document {
	doc := resume.New()
	doc.Basic.Name = "Jane Doe"
	doc.Basic.Email = "jane@example.com"
	doc.Objective = "Build reliable systems."
	doc.Experiences = []resume.Experience{{
		Company:    "Acme",
		Location:   "Springfield",
		Titles:     []resume.Title{{Name: "Engineer", StartDate: "2020", EndDate: "Present"}},
		Highlights: []string{"Shipped the thing"},
	}}
	return doc
}

func TestNew_RequiresStoreAndTokens(t *testing.T) {
	_, err := New(Config{}, Deps{Tokens: staticTokens{}})
	assert.Error(t, err)

	_, err = New(Config{}, Deps{Store: newMockStore()})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestHealthEndpoint_Degraded(t *testing.T) {
	ts := newTestServer(t)
	ts.store.pingErr = errors.New("connection refused")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", decodeBody(t, w)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(sampleDocument())
	require.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/resume/preview?format=text", "", nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `resume_editor_renders_total{format="text"} 1`)
	assert.Contains(t, body, "resume_editor_http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/resume", "/resume/export", "/resume/preview", "/preferences"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		ts.handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/resume", nil)
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRateLimitExceeded(t *testing.T) {
	ts := newTestServer(t)
	ts.limiter.deny = true

	w := ts.do(http.MethodGet, "/resume/pdf", "", nil)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "rate_limit_exceeded", decodeBody(t, w)["error"])
	assert.Equal(t, 0, ts.pdf.calls)
}

func TestClose_StopsLimiter(t *testing.T) {
	ts := newTestServer(t)
	ts.Close()
	assert.True(t, ts.limiter.stopped)
}

func TestExtractClientID(t *testing.T) {
	s := &Server{}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:51234"
	assert.Equal(t, "203.0.113.7", s.extractClientID(req))

	req.RemoteAddr = "not-an-address"
	assert.Equal(t, "not-an-address", s.extractClientID(req))
}
