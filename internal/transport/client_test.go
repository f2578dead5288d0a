package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func fastPolicy(attempts uint) RetryPolicy {
	return RetryPolicy{Attempts: &attempts, Delay: time.Millisecond, MaxDelay: 5 * time.Millisecond}
}

func TestClientRetriesUntilSuccess(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	client := NewClient(fastPolicy(5), nil)
	body, contentType, err := client.GetTyped(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetTyped failed: %v", err)
	}
	if string(body) != "payload" {
		t.Errorf("body = %q, want %q", body, "payload")
	}
	if contentType != "image/jpeg" {
		t.Errorf("contentType = %q, want image/jpeg", contentType)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

func TestClientSurfacesNetworkErrorWhenExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(fastPolicy(2), nil)
	_, err := client.Get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error after retry exhaustion")
	}
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("error %v is not ErrNetwork", err)
	}
}

func TestClientStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Unbounded policy: only the context stops the retry loop.
	client := NewClient(RetryPolicy{Delay: 10 * time.Millisecond, MaxDelay: 10 * time.Millisecond}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := client.Get(ctx, srv.URL)
		done <- err
	}()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected error from cancelled retry loop")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("retry loop did not stop after context cancellation")
	}
}

func TestClientGetString(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	client := NewClient(fastPolicy(1), nil)
	body, err := client.GetString(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if body != "<html></html>" {
		t.Errorf("body = %q", body)
	}
}
