package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
)

type fakeAuthenticator struct {
	gotToken string
	p        models.Principal
	err      error
}

func (f *fakeAuthenticator) Authenticate(token string) (models.Principal, error) {
	f.gotToken = token
	return f.p, f.err
}

func TestRequireAuthenticatedUser(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		authErr    error
		wantStatus int
		wantToken  string
	}{
		{"ok", "Bearer abc", nil, http.StatusOK, "abc"},
		{"lower-case scheme", "bearer abc", nil, http.StatusOK, "abc"},
		{"missing header", "", nil, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized, ""},
		{"no token", "Bearer", nil, http.StatusUnauthorized, ""},
		{"extra parts", "Bearer a b", nil, http.StatusUnauthorized, ""},
		{"rejected token", "Bearer abc", common.ErrTokenExpired, http.StatusUnauthorized, "abc"},
		{"misconfigured", "Bearer abc", common.ErrorConfiguration, http.StatusInternalServerError, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeAuthenticator{p: models.Principal{ID: "u-1"}, err: tt.authErr}

			var seen models.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = principalFrom(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/u-1/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			requireAuthenticatedUser(a, logging.Nop{}, next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantToken, a.gotToken)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "u-1", seen.ID)
			}
		})
	}
}

func TestEnableCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := enableCORS([]string{"http://localhost:3000"}, next)

	t.Run("trusted origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("untrusted origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/u/tasks", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "DELETE")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})
}

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l := newIPRateLimiter(1, 2)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("1.1.1.1"))
	assert.True(t, l.allow("1.1.1.1"))
	assert.False(t, l.allow("1.1.1.1"), "burst exhausted")
	assert.True(t, l.allow("2.2.2.2"), "other clients have their own bucket")

	now = now.Add(time.Second)
	assert.True(t, l.allow("1.1.1.1"), "bucket refills")

	now = now.Add(limiterIdleAfter + time.Second)
	l.allow("3.3.3.3")
	_, kept := l.visitors["1.1.1.1"]
	assert.False(t, kept, "idle visitor swept")
}

func TestIPRateLimiter_Middleware(t *testing.T) {
	l := newIPRateLimiter(0.001, 1)
	h := l.middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())
}

func TestLogRequests_RecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	h := logRequests(logging.Nop{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, logging.Nop{}, errors.New("boom"))
	}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
