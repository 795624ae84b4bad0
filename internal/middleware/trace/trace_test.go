package trace

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cashdrawer/internal/log"
)

type recordingObserver struct {
	method string
	status int
	calls  int
}

func (o *recordingObserver) ObserveRequest(method string, status int, _ time.Duration) {
	o.method, o.status = method, status
	o.calls++
}

func TestMiddlewareAssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	obs := &recordingObserver{}
	m := NewMiddleware(func(*http.Request) string { return "203.0.113.7" },
		log.NewWriter(&buf, slog.LevelInfo, log.ComponentApp), obs)

	var seen string
	var ctxLogger *log.Logger
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		ctxLogger = log.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/drawer/quantity", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Fatalf("expected generated request id, got %q", seen)
	}
	if rec.Header().Get(HeaderRequestID) != seen {
		t.Errorf("response header %q != context id %q", rec.Header().Get(HeaderRequestID), seen)
	}
	if ctxLogger.Component() != log.ComponentTrace {
		t.Errorf("expected request logger in context, got component %q", ctxLogger.Component())
	}
	if obs.calls != 1 || obs.method != http.MethodPost || obs.status != http.StatusTeapot {
		t.Errorf("unexpected observation %+v", obs)
	}

	out := buf.String()
	if !strings.Contains(out, "HTTP request completed") || !strings.Contains(out, "status_code=418") {
		t.Errorf("missing completion log in %q", out)
	}
	if !strings.Contains(out, "client_ip=203.0.113.7") {
		t.Errorf("missing client ip in %q", out)
	}
}

func TestMiddlewareDefaultsStatusToOK(t *testing.T) {
	obs := &recordingObserver{}
	m := NewMiddleware(nil, log.NewWriter(&bytes.Buffer{}, slog.LevelInfo, log.ComponentApp), obs)

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if obs.status != http.StatusOK {
		t.Errorf("expected 200, got %d", obs.status)
	}
}

func TestIncomingRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"valid id kept", "abc-123_DEF", true},
		{"empty replaced", "", false},
		{"spaces replaced", "abc 123", false},
		{"newline replaced", "abc\nlevel=ERROR", false},
		{"too long replaced", strings.Repeat("a", 65), false},
	}
	m := NewMiddleware(nil, log.NewWriter(&bytes.Buffer{}, slog.LevelInfo, log.ComponentApp), nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(HeaderRequestID, tt.incoming)
			h.ServeHTTP(httptest.NewRecorder(), req)

			if (seen == tt.incoming) != tt.keep {
				t.Errorf("incoming %q, context id %q, keep=%v", tt.incoming, seen, tt.keep)
			}
		})
	}
}
