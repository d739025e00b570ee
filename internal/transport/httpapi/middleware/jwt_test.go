package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmantri/spendwise/internal/transport/httpapi/middleware"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTService_RoundTrip(t *testing.T) {
	svc := middleware.NewJWTService(testSecret)

	token, err := svc.GenerateToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID, "tokens carry a unique jti")
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := middleware.NewJWTService(testSecret).GenerateToken("alice")
	require.NoError(t, err)

	other := middleware.NewJWTService("ffffffffffffffffffffffffffffffff")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTMiddleware(t *testing.T) {
	svc := middleware.NewJWTService(testSecret)
	token, err := svc.GenerateToken("alice")
	require.NoError(t, err)

	var gotUser string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = middleware.GetUsernameFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	protected := middleware.JWTMiddleware(svc)(next)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUser   string
	}{
		{name: "valid token", authHeader: "Bearer " + token, wantStatus: http.StatusOK, wantUser: "alice"},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", authHeader: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUser = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUser, gotUser)
		})
	}
}
