package lookup

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestGetJSON_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"asn2ip","version":1}`))
	}))
	defer srv.Close()

	c := NewClient()
	var dest struct {
		Name    string `json:"name"`
		Version int    `json:"version"`
	}
	if err := c.GetJSON(context.Background(), srv.URL+"/info", nil, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.Name != "asn2ip" || dest.Version != 1 {
		t.Fatalf("unexpected result: %+v", dest)
	}
}

func TestGetJSON_Headers(t *testing.T) {
	var gotUA, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCT = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("test-agent/2.0"))
	if err := c.GetJSON(context.Background(), srv.URL, nil, &struct{}{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "test-agent/2.0" {
		t.Errorf("User-Agent = %q, want %q", gotUA, "test-agent/2.0")
	}
	if gotCT != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotCT)
	}
}

func TestGetJSON_StatusError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(503)
		w.Write([]byte(strings.Repeat("x", 600)))
	}))
	defer srv.Close()

	c := NewClient()
	err := c.GetJSON(context.Background(), srv.URL, nil, &struct{}{})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", statusErr.StatusCode)
	}
	if len(statusErr.Body) != 512 {
		t.Errorf("body should be truncated to 512 bytes, got %d", len(statusErr.Body))
	}
	if calls != 1 {
		t.Errorf("expected exactly 1 call (no retry), got %d", calls)
	}
}

func TestStatusError_BodyKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantLen int
	}{
		{"ascii at limit", strings.Repeat("x", 512), 512},
		{"ascii over limit", strings.Repeat("x", 600), 512},
		{"two-byte rune across limit", strings.Repeat("x", 511) + "éé", 511},
		{"three-byte rune across limit", strings.Repeat("x", 510) + "€€", 510},
		{"multibyte ending on limit", strings.Repeat("x", 510) + "é" + "tail", 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient().GetJSON(context.Background(), srv.URL, nil, &struct{}{})
			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %T: %v", err, err)
			}
			if len(statusErr.Body) != tt.wantLen {
				t.Errorf("body length = %d, want %d", len(statusErr.Body), tt.wantLen)
			}
			if !utf8.ValidString(statusErr.Body) {
				t.Errorf("body is not valid UTF-8: %q", statusErr.Body[len(statusErr.Body)-4:])
			}
		})
	}
}

func TestGetJSON_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	err := NewClient().GetJSON(context.Background(), srv.URL, nil, &struct{}{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestGetJSON_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(WithTimeout(20 * time.Millisecond))
	if err := c.GetJSON(context.Background(), srv.URL, nil, &struct{}{}); err == nil {
		t.Fatal("expected timeout error")
	}
}
