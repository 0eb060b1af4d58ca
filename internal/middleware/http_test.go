package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})
	handler := Logging(CORS("https://tabsplit.app")(next))

	tests := []struct {
		name       string
		method     string
		wantStatus int
		wantCalled bool
	}{
		{"preflight short-circuits", http.MethodOptions, http.StatusOK, false},
		{"post reaches handler", http.MethodPost, http.StatusTeapot, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, "/tabsplit.v1.SplitService/CalculateSplit", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://tabsplit.app" {
				t.Errorf("Access-Control-Allow-Origin = %q", got)
			}
		})
	}
}
