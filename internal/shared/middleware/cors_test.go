package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsOriginAllowed(t *testing.T) {
	tests := []struct {
		name         string
		origin       string
		allowedHosts []string
		want         bool
	}{
		{"Exact Match With Port", "http://fintrack.app:8080", []string{"fintrack.app:8080"}, true},
		{"Bare Host Matches Any Port", "http://fintrack.app:3000", []string{"fintrack.app"}, true},
		{"Unknown Origin", "http://evil.example", []string{"fintrack.app"}, false},
		{"Case Insensitive", "http://FinTrack.APP", []string{"fintrack.app"}, true},
		{"Unparseable Origin", "://invalid", []string{"fintrack.app"}, false},
		{"Subdomain Is Not The Host", "http://api.fintrack.app", []string{"fintrack.app"}, false},
		{"Localhost", "http://localhost:5173", []string{"localhost"}, true},
		{"Entry With Whitespace", "http://fintrack.app", []string{"  fintrack.app  "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isOriginAllowed(tt.origin, tt.allowedHosts); got != tt.want {
				t.Errorf("isOriginAllowed(%q, %v) = %v, want %v", tt.origin, tt.allowedHosts, got, tt.want)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedHosts   []string
		origin         string
		expectedStatus int
		expectedAllow  string
		expectedCreds  string
	}{
		{
			name:           "Open When Unconfigured",
			allowedHosts:   []string{},
			origin:         "http://anywhere.example",
			expectedStatus: http.StatusOK,
			expectedAllow:  "*",
		},
		{
			name:           "Allowed Origin Echoed With Credentials",
			allowedHosts:   []string{"fintrack.app"},
			origin:         "http://fintrack.app",
			expectedStatus: http.StatusOK,
			expectedAllow:  "http://fintrack.app",
			expectedCreds:  "true",
		},
		{
			name:           "Disallowed Origin Rejected",
			allowedHosts:   []string{"fintrack.app"},
			origin:         "http://evil.example",
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Same-Origin Request Without Origin Header",
			allowedHosts:   []string{"fintrack.app"},
			origin:         "",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			handler := CORS(tt.allowedHosts)(next)

			req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.expectedAllow {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.expectedAllow)
			}
			if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != tt.expectedCreds {
				t.Errorf("Allow-Credentials = %q, want %q", got, tt.expectedCreds)
			}
		})
	}
}

func TestCORS_Preflight(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not run for preflight")
	})
	handler := CORS(nil)(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/accounts", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("expected Allow-Methods header on preflight response")
	}
}
