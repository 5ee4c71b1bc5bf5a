package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator accepts only the tokens registered with it.
type testTokenValidator struct {
	validTokens map[string]uuid.UUID
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: make(map[string]uuid.UUID)}
}

func (v *testTokenValidator) addValidToken(token string, userID uuid.UUID) {
	v.validTokens[token] = userID
}

func (v *testTokenValidator) ValidateToken(tokenString string) (UserIDGetter, error) {
	userID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &testClaims{userID: userID}, nil
}

type testClaims struct {
	userID uuid.UUID
}

func (c *testClaims) GetUserID() uuid.UUID {
	return c.userID
}

func serve(t *testing.T, validator TokenValidator, authHeader string) (*httptest.ResponseRecorder, bool, uuid.UUID) {
	t.Helper()
	called := false
	var seen uuid.UUID
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		id, err := GetUserID(r)
		require.NoError(t, err)
		seen = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/resume", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	AuthMiddleware(validator)(handler).ServeHTTP(w, req)
	return w, called, seen
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := newTestTokenValidator()
	userID := uuid.New()
	validator.addValidToken("valid-test-token-123", userID)

	w, called, seen := serve(t, validator, "Bearer valid-test-token-123")

	assert.True(t, called, "handler should be called")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, seen)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	w, called, _ := serve(t, newTestTokenValidator(), "")

	assert.False(t, called, "handler should not be called")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "missing bearer token", body["error"])
}

func TestAuthMiddleware_HeaderFormats(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("token123", uuid.New())

	tests := []struct {
		name       string
		authHeader string
		wantCode   int
	}{
		{name: "missing Bearer prefix", authHeader: "token123", wantCode: http.StatusUnauthorized},
		{name: "empty token", authHeader: "Bearer ", wantCode: http.StatusUnauthorized},
		{name: "only Bearer", authHeader: "Bearer", wantCode: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic token123", wantCode: http.StatusUnauthorized},
		{name: "multiple spaces", authHeader: "Bearer  token123", wantCode: http.StatusOK},
		{name: "lowercase bearer", authHeader: "bearer token123", wantCode: http.StatusOK},
		{name: "mixed case bearer", authHeader: "BeArEr token123", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, _ := serve(t, validator, tt.authHeader)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	w, called, _ := serve(t, newTestTokenValidator(), "Bearer forged")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestAuthMiddleware_NilUser(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("anonymous", uuid.Nil)

	w, called, _ := serve(t, validator, "Bearer anonymous")

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserID_Success(t *testing.T) {
	userID := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/resume", nil)
	req = req.WithContext(WithUserID(req.Context(), userID))

	got, err := GetUserID(req)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestGetUserID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/resume", nil)

	_, err := GetUserID(req)
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestGetUserID_InvalidType(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/resume", nil)
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, "not-a-uuid"))

	_, err := GetUserID(req)
	assert.ErrorIs(t, err, ErrNoUser)
}
