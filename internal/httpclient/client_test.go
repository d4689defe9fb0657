package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestNextRequestIDIsUUIDv4(t *testing.T) {
	id := nextRequestID()

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("request_id must be a valid UUID, got %q: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("request_id must be UUID v4, got version %d (%q)", parsed.Version(), id)
	}
	if parsed.Variant() != uuid.RFC4122 {
		t.Fatalf("request_id must use RFC4122 variant, got %v (%q)", parsed.Variant(), id)
	}
}

func TestPostFormSendsFormEncodedBody(t *testing.T) {
	var gotContentType, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotContentType = r.Header.Get("Content-Type")
		if r.Header.Get("x-request-id") == "" {
			t.Errorf("request must carry x-request-id")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c := New(nil, nil, nil, false)
	resp, err := c.PostForm(context.Background(), ts.URL, "a=1&b=two%20words")
	if err != nil {
		t.Fatalf("post form: %v", err)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type: %q", gotContentType)
	}
	if gotBody != "a=1&b=two%20words" {
		t.Fatalf("unexpected body: %q", gotBody)
	}
	if !resp.IsJSON() {
		t.Fatalf("expected JSON classification, got %q", resp.ContentType)
	}
}

func TestPostFormReturnsHTTPStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"bad amount"}`))
	}))
	defer ts.Close()

	c := New(nil, nil, nil, false)
	resp, err := c.PostForm(context.Background(), ts.URL, "a=1")
	if err == nil {
		t.Fatalf("expected error for 400 response")
	}
	var hs *HTTPStatusError
	if !errors.As(err, &hs) {
		t.Fatalf("expected HTTPStatusError, got %T (%v)", err, err)
	}
	if hs.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status code: %d", hs.StatusCode)
	}
	if string(hs.Body) != `{"error":"bad amount"}` {
		t.Fatalf("unexpected body: %q", hs.Body)
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("response must still be returned alongside the error")
	}
}

func TestResponseClassificationHandlesParameters(t *testing.T) {
	r := &Response{ContentType: "application/json; charset=utf-8"}
	if !r.IsJSON() {
		t.Fatalf("json with charset parameter must classify as JSON")
	}
	r = &Response{ContentType: "text/html; charset=utf-8"}
	if !r.IsHTML() {
		t.Fatalf("html with charset parameter must classify as HTML")
	}
	r = &Response{ContentType: "text/plain"}
	if r.IsJSON() || r.IsHTML() {
		t.Fatalf("text/plain must classify as neither")
	}
}
