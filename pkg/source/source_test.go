package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/matzehuels/appgraph/pkg/errors"
)

const sampleJSON = `[
  {"appId": "A", "name": "Core", "isPrimary": true},
  {"appId": "B", "name": "Billing", "isPrimary": false}
]`

func TestHTTP_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(sampleJSON))
	}))
	defer server.Close()

	records, err := (&HTTP{URL: server.URL}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 || records[0].AppID != "A" || !records[0].IsPrimary {
		t.Errorf("records = %+v", records)
	}
}

func TestHTTP_StatusErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCalls int32
	}{
		{"NotFound", http.StatusNotFound, 1},
		{"Forbidden", http.StatusForbidden, 1},
		{"ServerError", http.StatusInternalServerError, 3},
		{"Unavailable", http.StatusServiceUnavailable, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			src := &HTTP{URL: server.URL, Retries: 3, RetryDelay: time.Millisecond}
			_, err := src.Fetch(context.Background())
			if !apperrors.Is(err, apperrors.ErrCodeFetch) {
				t.Fatalf("error = %v, want FETCH_FAILED", err)
			}
			var fe *apperrors.FetchError
			if !errors.As(err, &fe) || fe.StatusCode != tt.status {
				t.Errorf("FetchError = %+v, want status %d", fe, tt.status)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("server hit %d times, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestHTTP_RecoversAfterTransientFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(sampleJSON))
	}))
	defer server.Close()

	records, err := (&HTTP{URL: server.URL, RetryDelay: time.Millisecond}).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 || calls.Load() != 2 {
		t.Errorf("records = %d, calls = %d", len(records), calls.Load())
	}
}

func TestHTTP_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"appId": "A"}`))
	}))
	defer server.Close()

	_, err := (&HTTP{URL: server.URL}).Fetch(context.Background())
	if !apperrors.Is(err, apperrors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestHTTP_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := (&HTTP{URL: url, Retries: 2, RetryDelay: time.Millisecond}).Fetch(context.Background())
	if !apperrors.Is(err, apperrors.ErrCodeNetwork) {
		t.Errorf("error = %v, want NETWORK_ERROR", err)
	}
	var fe *apperrors.FetchError
	if !errors.As(err, &fe) || fe.StatusCode != 0 {
		t.Errorf("FetchError = %+v", fe)
	}
}

func TestHTTP_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&HTTP{URL: server.URL}).Fetch(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFile_Fetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json")
	if err := os.WriteFile(path, []byte(sampleJSON), 0644); err != nil {
		t.Fatal(err)
	}

	records, err := File{Path: path}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d, want 2", len(records))
	}

	_, err = File{Path: filepath.Join(dir, "missing.json")}.Fetch(context.Background())
	if !apperrors.Is(err, apperrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestStatic_FetchReturnsCopy(t *testing.T) {
	s := Static{{AppID: "A", IsPrimary: true}}
	records, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	records[0].AppID = "changed"
	if s[0].AppID != "A" {
		t.Error("Fetch exposed the underlying slice")
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		location string
		wantHTTP bool
		wantErr  bool
	}{
		{"https://example.com/app.json", true, false},
		{"http://localhost:8080/app.json", true, false},
		{"testdata/app.json", false, false},
		{"", false, true},
	}
	for _, tt := range tests {
		src, err := Open(tt.location, Options{})
		if (err != nil) != tt.wantErr {
			t.Errorf("Open(%q) error = %v", tt.location, err)
			continue
		}
		if err != nil {
			continue
		}
		_, isHTTP := src.(*HTTP)
		if isHTTP != tt.wantHTTP {
			t.Errorf("Open(%q) = %T", tt.location, src)
		}
		if src.String() != tt.location {
			t.Errorf("String() = %q, want %q", src.String(), tt.location)
		}
	}
}

