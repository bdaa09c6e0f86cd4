package netprobe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestProbe_Reachable(t *testing.T) {
	var method string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	if !New(zerolog.Nop(), ts.URL, time.Second).Reachable(context.Background()) {
		t.Fatalf("expected reachable even on 403")
	}
	if method != http.MethodHead {
		t.Fatalf("expected HEAD, got %s", method)
	}
}

func TestProbe_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	if New(zerolog.Nop(), url, time.Second).Reachable(context.Background()) {
		t.Fatalf("expected unreachable after close")
	}
	if New(zerolog.Nop(), "", time.Second).Reachable(context.Background()) {
		t.Fatalf("expected unreachable without url")
	}
}
