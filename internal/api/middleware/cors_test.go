package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name          string
		origins       []string
		method        string
		origin        string
		preflight     bool
		wantStatus    int
		wantAllowOrig string
	}{
		{
			name:       "disabled without origins",
			method:     http.MethodGet,
			origin:     "http://localhost:5173",
			wantStatus: http.StatusOK,
		},
		{
			name:          "allowed origin",
			origins:       []string{"http://localhost:5173"},
			method:        http.MethodGet,
			origin:        "http://localhost:5173",
			wantStatus:    http.StatusOK,
			wantAllowOrig: "http://localhost:5173",
		},
		{
			name:       "unknown origin gets no headers",
			origins:    []string{"http://localhost:5173"},
			method:     http.MethodGet,
			origin:     "http://evil.example",
			wantStatus: http.StatusOK,
		},
		{
			name:          "preflight",
			origins:       []string{" http://localhost:5173 "},
			method:        http.MethodOptions,
			origin:        "http://localhost:5173",
			preflight:     true,
			wantStatus:    http.StatusNoContent,
			wantAllowOrig: "http://localhost:5173",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/tasks", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPut)
			}
			rr := httptest.NewRecorder()

			CORS(tt.origins)(ok).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantAllowOrig, rr.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllowOrig != "" {
				assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
			}
			if tt.preflight {
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
			}
		})
	}
}
