package mastodon

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUploadMediaSendsMultipartAndParsesID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/media" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token-123" {
			t.Fatalf("unexpected authorization header: %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file field: %v", err)
		}
		defer file.Close()
		if header.Filename != "a.jpg" {
			t.Fatalf("unexpected filename: %q", header.Filename)
		}
		if got := r.FormValue("description"); got != "a bird" {
			t.Fatalf("unexpected description: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"42","url":"https://files.example/42.jpg"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token-123")
	media, err := client.UploadMedia(context.Background(), "a.jpg", []byte("jpeg-bytes"), "a bird")
	if err != nil {
		t.Fatalf("UploadMedia returned error: %v", err)
	}
	if media.ID != "42" {
		t.Fatalf("unexpected media id: %q", media.ID)
	}
}

func TestUploadMediaRejectsMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"https://files.example/x.jpg"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token")
	if _, err := client.UploadMedia(context.Background(), "a.jpg", []byte("x"), ""); err == nil {
		t.Fatal("expected error for response without id")
	}
}

func TestUploadMediaReturnsAPIErrorWithStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"The access token is invalid"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-token")
	_, err := client.UploadMedia(context.Background(), "a.jpg", []byte("x"), "")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unexpected status code: %d", apiErr.StatusCode)
	}
	if apiErr.Body == "" {
		t.Fatal("expected response body captured")
	}
}

func TestCreateStatusSendsJSONWithMediaIDs(t *testing.T) {
	var idempotencyKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/statuses" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("unexpected content type: %q", got)
		}
		idempotencyKey = r.Header.Get("Idempotency-Key")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		payload := string(body)
		for _, want := range []string{`"status":"#photo #bot"`, `"media_ids":["42"]`, `"visibility":"unlisted"`} {
			if !strings.Contains(payload, want) {
				t.Fatalf("payload %q missing %q", payload, want)
			}
		}
		w.Write([]byte(`{"id":"100","url":"https://mastodon.example/@bot/100"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", WithIdempotencyKeyFunc(func() string { return "fixed-key" }))
	status, err := client.CreateStatus(context.Background(), "#photo #bot", []string{"42"}, "unlisted")
	if err != nil {
		t.Fatalf("CreateStatus returned error: %v", err)
	}
	if status.ID != "100" {
		t.Fatalf("unexpected status id: %q", status.ID)
	}
	if idempotencyKey != "fixed-key" {
		t.Fatalf("unexpected idempotency key: %q", idempotencyKey)
	}
}

func TestCheckInstance(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/instance" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"title":"example"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	if err := client.CheckInstance(context.Background()); err != nil {
		t.Fatalf("CheckInstance returned error: %v", err)
	}
}

func TestClientRequiresBaseURL(t *testing.T) {
	client := NewClient("", "token")
	if _, err := client.UploadMedia(context.Background(), "a.jpg", nil, ""); err == nil {
		t.Fatal("expected error without base url")
	}
	if _, err := client.CreateStatus(context.Background(), "hi", nil, ""); err == nil {
		t.Fatal("expected error without base url")
	}
}
