package adapthttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestExtractBearer(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc", "abc"},
		{"BEARER abc", "abc"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"", ""},
		{"Bearer   spaced  ", "spaced"},
	}
	for _, tc := range cases {
		if got := extractBearer(tc.header); got != tc.want {
			t.Errorf("extractBearer(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestRequestIDMiddlewareGeneratesUniqueIDs(t *testing.T) {
	var seen []string
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, requestIDFrom(r.Context()))
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Header().Get("X-Request-ID") != seen[i] {
			t.Errorf("header should match context id")
		}
	}
	if seen[0] == seen[1] {
		t.Error("request ids should differ per request")
	}
}

func TestIPLimiterIsolatesClients(t *testing.T) {
	limiter := newIPLimiter(time.Minute, 2)

	if !limiter.allow("10.0.0.1") || !limiter.allow("10.0.0.1") {
		t.Fatal("first two calls should pass")
	}
	if limiter.allow("10.0.0.1") {
		t.Error("third call within the window should be rejected")
	}
	if !limiter.allow("10.0.0.2") {
		t.Error("another client should have its own budget")
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.9:4412"
	if got := clientIP(req); got != "203.0.113.9" {
		t.Errorf("clientIP = %q", got)
	}

	req.RemoteAddr = "bad-addr"
	if got := clientIP(req); got != "bad-addr" {
		t.Errorf("clientIP fallback = %q", got)
	}
}
