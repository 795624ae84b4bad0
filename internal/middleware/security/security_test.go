package security

import (
	"bytes"
	"crypto/tls"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cashdrawer/internal/log"
)

type suspicionCounter struct{ n int }

func (c *suspicionCounter) IncSuspicious() { c.n++ }

func newTestDetector(obs SuspicionObserver) (*Detector, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewDetector(obs, log.NewWriter(&buf, slog.LevelInfo, log.ComponentApp)), &buf
}

func TestDetectSuspiciousRequest(t *testing.T) {
	d, _ := newTestDetector(nil)
	tests := []struct {
		name   string
		method string
		target string
		agent  string
		want   string
	}{
		{"drawer post", http.MethodPost, "/drawer/quantity", "Mozilla/5.0", ""},
		{"cli summary via curl", http.MethodGet, "/drawer/summary", "curl/8.5.0", ""},
		{"dotenv probe", http.MethodGet, "/.env", "", "path:.env"},
		{"traversal in query", http.MethodGet, "/?f=../../etc/passwd", "", "query:../"},
		{"scanner agent", http.MethodGet, "/", "sqlmap/1.7", "agent:sqlmap"},
		{"trace method", "TRACE", "/", "", "method:TRACE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.agent != "" {
				r.Header.Set("User-Agent", tt.agent)
			}
			if got := d.DetectSuspiciousRequest(r); got != tt.want {
				t.Errorf("DetectSuspiciousRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectorMiddleware(t *testing.T) {
	counter := &suspicionCounter{}
	d, logs := newTestDetector(counter)
	reached := 0
	h := d.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached++
	}))

	probe := httptest.NewRecorder()
	h.ServeHTTP(probe, httptest.NewRequest(http.MethodGet, "/wp-admin/", nil))
	if probe.Code != http.StatusNotFound {
		t.Errorf("expected probe to get 404, got %d", probe.Code)
	}

	scanner := httptest.NewRequest(http.MethodGet, "/", nil)
	scanner.Header.Set("User-Agent", "Nikto")
	h.ServeHTTP(httptest.NewRecorder(), scanner)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if counter.n != 2 {
		t.Errorf("expected 2 suspicious requests counted, got %d", counter.n)
	}
	if reached != 2 {
		t.Errorf("expected scanner and clean request to reach handler, got %d", reached)
	}
	if !strings.Contains(logs.String(), "component=security") {
		t.Errorf("expected security log, got %q", logs.String())
	}
}

func TestExtractClientIP(t *testing.T) {
	d, _ := newTestDetector(nil)
	tests := []struct {
		name   string
		remote string
		xff    string
		xri    string
		want   string
	}{
		{"direct", "198.51.100.4:5555", "", "", "198.51.100.4"},
		{"untrusted peer ignores xff", "198.51.100.4:5555", "1.2.3.4", "", "198.51.100.4"},
		{"trusted proxy xff", "10.0.0.2:80", "203.0.113.9, 10.0.0.2", "", "203.0.113.9"},
		{"trusted proxy real ip", "127.0.0.1:80", "", "203.0.113.10", "203.0.113.10"},
		{"garbage xff falls back", "10.0.0.2:80", "not-an-ip", "", "10.0.0.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := d.ExtractClientIP(r); got != tt.want {
				t.Errorf("ExtractClientIP() = %q, want %q", got, tt.want)
			}
		})
	}

	if err := d.AddTrustedProxy("not-a-cidr"); err == nil {
		t.Error("expected error for invalid CIDR")
	}
}

func TestHeadersMiddleware(t *testing.T) {
	h := NewHeadersMiddleware(DefaultHeadersConfig()).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if csp := rec.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "https://unpkg.com") {
		t.Errorf("CSP should allow htmx from unpkg: %q", csp)
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, tlsReq)
	if got := rec.Header().Get("Strict-Transport-Security"); got != "max-age=31536000; includeSubDomains" {
		t.Errorf("HSTS = %q", got)
	}
}
