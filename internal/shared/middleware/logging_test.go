package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStatusRecorder(t *testing.T) {
	tests := []struct {
		name           string
		write          func(rec *statusRecorder)
		expectedStatus int
		expectedBytes  int
	}{
		{
			name:           "Explicit Status",
			write:          func(rec *statusRecorder) { rec.WriteHeader(http.StatusNotFound) },
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Second WriteHeader Ignored",
			write: func(rec *statusRecorder) {
				rec.WriteHeader(http.StatusNotFound)
				rec.WriteHeader(http.StatusOK)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Implicit 200 On Write",
			write:          func(rec *statusRecorder) { rec.Write([]byte("hello")) },
			expectedStatus: http.StatusOK,
			expectedBytes:  5,
		},
		{
			name:           "Default Before Any Write",
			write:          func(rec *statusRecorder) {},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newStatusRecorder(httptest.NewRecorder())
			tt.write(rec)

			if rec.Status() != tt.expectedStatus {
				t.Errorf("Status() = %d, want %d", rec.Status(), tt.expectedStatus)
			}
			if rec.bytes != tt.expectedBytes {
				t.Errorf("bytes = %d, want %d", rec.bytes, tt.expectedBytes)
			}
		})
	}
}

func TestLogging_PassesThrough(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/accounts", nil)
	rr := httptest.NewRecorder()
	Logging(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusCreated)
	}
	if rr.Body.String() != "created" {
		t.Errorf("body = %q, want %q", rr.Body.String(), "created")
	}
}
