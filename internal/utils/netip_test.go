package utils

import (
	"net/http/httptest"
	"testing"
)

func TestHostNoPort(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.2.3.4:5678", "1.2.3.4"},
		{"1.2.3.4", "1.2.3.4"},
		{"[::1]:8080", "::1"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := HostNoPort(tt.input); got != tt.want {
			t.Errorf("HostNoPort(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.2")
	req.Header.Set("X-Real-IP", "203.0.113.8")

	if got := ClientIP(req, false); got != "10.0.0.1" {
		t.Errorf("untrusted ClientIP = %q, want RemoteAddr host", got)
	}
	if got := ClientIP(req, true); got != "203.0.113.7" {
		t.Errorf("trusted ClientIP = %q, want left-most XFF", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := ClientIP(req, true); got != "203.0.113.8" {
		t.Errorf("trusted ClientIP without XFF = %q, want X-Real-IP", got)
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"192.168.1.10", "10.0.0.0/8", " ", "garbage"})

	if m.IsEmpty() {
		t.Fatal("matcher with entries reports empty")
	}
	tests := []struct {
		ip   string
		want bool
	}{
		{"192.168.1.10", true},
		{"192.168.1.11", false},
		{"10.42.0.1", true},
		{"11.0.0.1", false},
		{"not-an-ip", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if !NewIPMatcher(nil).IsEmpty() {
		t.Error("empty matcher reports non-empty")
	}
}
