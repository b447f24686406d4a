package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dm/mistinfo/internal/model"
)

// newTestClient creates a DefaultClient pointed at the given test server URL.
func newTestClient(t *testing.T, baseURL string) *DefaultClient {
	t.Helper()
	c, err := NewDefaultClient(ClientConfig{
		BaseURL:        baseURL + "/api/v1/",
		Token:          "T",
		SiteID:         "S1",
		RequestTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	return c
}

func TestNewDefaultClient_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		cfg  ClientConfig
	}{
		{"missing base url", ClientConfig{Token: "T", SiteID: "S1"}},
		{"missing token", ClientConfig{BaseURL: "https://api.mist.com/api/v1/", SiteID: "S1"}},
		{"missing site", ClientConfig{BaseURL: "https://api.mist.com/api/v1/", Token: "T"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewDefaultClient(tc.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestResourceURL(t *testing.T) {
	c, err := NewDefaultClient(ClientConfig{
		BaseURL: "https://api.mist.com/api/v1/",
		Token:   "T",
		SiteID:  "S1",
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}

	tests := []struct {
		kind model.ResourceKind
		want string
	}{
		{model.KindDevices, "https://api.mist.com/api/v1/sites/S1/devices"},
		{model.KindDeviceStats, "https://api.mist.com/api/v1/sites/S1/stats/devices"},
		{model.KindWLANs, "https://api.mist.com/api/v1/sites/S1/wlans"},
		{model.KindBeacons, "https://api.mist.com/api/v1/sites/S1/beacons"},
		{model.KindClients, "https://api.mist.com/api/v1/sites/S1/stats/clients"},
	}
	for _, tc := range tests {
		t.Run(string(tc.kind), func(t *testing.T) {
			got, err := c.ResourceURL(tc.kind)
			if err != nil {
				t.Fatalf("ResourceURL: %v", err)
			}
			if got != tc.want {
				t.Errorf("ResourceURL(%s) = %q, want %q", tc.kind, got, tc.want)
			}
		})
	}

	if _, err := c.ResourceURL("rf_stats"); err == nil {
		t.Error("expected error for unknown kind, got nil")
	}
}

func TestGetResource_AllKinds(t *testing.T) {
	for _, kind := range model.AllKinds() {
		t.Run(string(kind), func(t *testing.T) {
			wantPath := "/api/v1/sites/S1/" + kind.Path()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("method = %q, want GET", r.Method)
				}
				if r.URL.Path != wantPath {
					t.Errorf("path = %q, want %q", r.URL.Path, wantPath)
				}
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"id":"` + string(kind) + `","num":3}]`))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			got, err := c.GetResource(context.Background(), kind)
			if err != nil {
				t.Fatalf("GetResource: %v", err)
			}
			want := []any{map[string]any{"id": string(kind), "num": json.Number("3")}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("GetResource = %#v, want %#v", got, want)
			}
		})
	}
}

func TestGetResource_Headers(t *testing.T) {
	var gotAuth, gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotCT = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	if _, err := c.GetResource(context.Background(), model.KindDevices); err != nil {
		t.Fatalf("GetResource: %v", err)
	}
	if gotAuth != "Token T" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Token T")
	}
	if gotCT != "application/json" {
		t.Errorf("Content-Type = %q, want %q", gotCT, "application/json")
	}
}

func TestGetResource_StatusError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"unauthorized", http.StatusUnauthorized},
		{"no content", http.StatusNoContent},
		{"created", http.StatusCreated},
		{"server error", http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"detail":"nope"}`))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			v, err := c.GetResource(context.Background(), model.KindWLANs)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if v != nil {
				t.Errorf("value = %v, want nil", v)
			}
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("error %T is not *StatusError", err)
			}
			if se.Kind != model.KindWLANs {
				t.Errorf("Kind = %q, want %q", se.Kind, model.KindWLANs)
			}
			if se.StatusCode != tc.status {
				t.Errorf("StatusCode = %d, want %d", se.StatusCode, tc.status)
			}
			if !strings.Contains(err.Error(), "wlans") {
				t.Errorf("error %q does not mention the kind", err.Error())
			}
		})
	}
}

func TestGetResource_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetResource(context.Background(), model.KindBeacons)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error %T is not *DecodeError", err)
	}
	if de.Kind != model.KindBeacons {
		t.Errorf("Kind = %q, want %q", de.Kind, model.KindBeacons)
	}
	var se *StatusError
	if errors.As(err, &se) {
		t.Error("decode failure must not be reported as a status error")
	}
}

func TestGetResource_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetResource(context.Background(), model.KindClients)
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected *DecodeError for empty body, got %v", err)
	}
}

func TestGetResource_SiteIDEscaped(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewDefaultClient(ClientConfig{
		BaseURL: srv.URL + "/",
		Token:   "T",
		SiteID:  "a/b",
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	if _, err := c.GetResource(context.Background(), model.KindDevices); err != nil {
		t.Fatalf("GetResource: %v", err)
	}
	if gotPath != "/sites/a%2Fb/devices" {
		t.Errorf("path = %q, want %q", gotPath, "/sites/a%2Fb/devices")
	}
}

func TestContextCancellation(t *testing.T) {
	started := make(chan struct{})
	var once sync.Once
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		// Block until the client disconnects
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := c.GetResource(ctx, model.KindDevices)
		done <- err
	}()

	<-started
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected error after context cancellation, got nil")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for cancelled request to return")
	}
}

func TestTLSSkipVerify(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	// Without InsecureSkipVerify, TLS handshake should fail (self-signed cert).
	c, err := NewDefaultClient(ClientConfig{
		BaseURL:        srv.URL + "/",
		Token:          "T",
		SiteID:         "S1",
		RequestTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	if _, err := c.GetResource(context.Background(), model.KindDevices); err == nil {
		t.Error("expected TLS certificate error without InsecureSkipVerify, got nil")
	}

	c2, err := NewDefaultClient(ClientConfig{
		BaseURL:            srv.URL + "/",
		Token:              "T",
		SiteID:             "S1",
		InsecureSkipVerify: true,
		RequestTimeout:     5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewDefaultClient: %v", err)
	}
	if _, err := c2.GetResource(context.Background(), model.KindDevices); err != nil {
		t.Errorf("GetResource with InsecureSkipVerify: %v", err)
	}
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Kind: model.KindWLANs, StatusCode: 404}
	if got, want := err.Error(), "failed to get wlans: status code 404"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate([]byte("abc"), 5); got != "abc" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate([]byte("abcdef"), 3); got != "abc..." {
		t.Errorf("truncate long = %q", got)
	}
}
