package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cashdrawer/internal/core"
)

func newPost(body, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/drawer/quantity", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestRequestBodyParser_JSON(t *testing.T) {
	parser := NewRequestBodyParser(newPost(`{"value": 50000, "quantity": "2", "note": "ca sáng"}`, "application/json"))
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !parser.IsJSON() {
		t.Error("Expected IsJSON() to be true")
	}
	if v := parser.Get("value"); v != "50000" {
		t.Errorf("Get('value') = %q, want '50000'", v)
	}
	if q := parser.Get("quantity"); q != "2" {
		t.Errorf("Get('quantity') = %q, want '2'", q)
	}
	if n := parser.Get("note"); n != "ca sáng" {
		t.Errorf("Get('note') = %q, want 'ca sáng'", n)
	}
	if m := parser.Get("missing"); m != "" {
		t.Errorf("Get('missing') = %q, want empty", m)
	}
}

func TestRequestBodyParser_FormData(t *testing.T) {
	parser := NewRequestBodyParser(newPost("value=100000&quantity=+3+&register_amount=1.000.000", "application/x-www-form-urlencoded"))
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if parser.IsJSON() {
		t.Error("Expected IsJSON() to be false for form data")
	}
	if q := parser.Get("quantity"); q != "3" {
		t.Errorf("Get('quantity') = %q, want '3'", q)
	}
	if r := parser.Get("register_amount"); r != "1.000.000" {
		t.Errorf("Get('register_amount') = %q, want '1.000.000'", r)
	}
}

func TestRequestBodyParser_EmptyBody(t *testing.T) {
	parser := NewRequestBodyParser(newPost("", ""))
	if err := parser.Parse(); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if val := parser.Get("nonexistent"); val != "" {
		t.Errorf("Get('nonexistent') = %q, want empty string", val)
	}
}

func TestRequestBodyParser_Errors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"broken json", `{"value": `, "application/json"},
		{"oversized body", "quantity=" + strings.Repeat("9", maxBodyBytes), "application/x-www-form-urlencoded"},
		{"bad escape", "quantity=%zz", "application/x-www-form-urlencoded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewRequestBodyParser(newPost(tt.body, tt.contentType))
			if err := parser.Parse(); err == nil {
				t.Fatal("expected error")
			}
			// Parse is idempotent
			if err := parser.Parse(); err == nil {
				t.Fatal("expected cached error")
			}
		})
	}
}

func TestParseDenomination(t *testing.T) {
	tests := []struct {
		body    string
		want    core.Amount
		wantErr bool
	}{
		{"value=50000", 50000, false},
		{"value=+1000+", 1000, false},
		{"value=3000", 3000, false}, // catalog membership is checked later
		{"", 0, true},
		{"value=abc", 0, true},
		{"value=-1000", 0, true},
		{"value=0", 0, true},
	}
	for _, tt := range tests {
		parser := NewRequestBodyParser(newPost(tt.body, "application/x-www-form-urlencoded"))
		if err := parser.Parse(); err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.body, err)
		}
		got, err := ParseDenomination(parser)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDenomination(%q) error = %v, wantErr %v", tt.body, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDenomination(%q) = %d, want %d", tt.body, got, tt.want)
		}
	}
}

func TestParseBodyOrFail(t *testing.T) {
	if _, fail := ParseBodyOrFail(newPost("quantity=1", "application/x-www-form-urlencoded")); fail != nil {
		t.Fatal("expected success for valid form")
	}

	_, fail := ParseBodyOrFail(newPost(`{"broken`, "application/json"))
	if fail == nil {
		t.Fatal("expected error response")
	}
	w := httptest.NewRecorder()
	fail.Write(w)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  12\x00\x07 "); got != "12" {
		t.Errorf("sanitizeInput() = %q, want %q", got, "12")
	}
}

func TestEchoQuantity(t *testing.T) {
	tests := []struct {
		raw    string
		stored int64
		want   bool
	}{
		{"", 0, false},
		{"3", 3, false},
		{" 3 ", 3, false},
		{"-5", 0, true},
		{"abc", 0, true},
		{"007", 7, true},
	}
	for _, tt := range tests {
		if got := echoQuantity(tt.raw, tt.stored); got != tt.want {
			t.Errorf("echoQuantity(%q, %d) = %v, want %v", tt.raw, tt.stored, got, tt.want)
		}
	}
}
