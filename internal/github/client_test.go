package github

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClient_NilContext(t *testing.T) {
	//nolint:staticcheck // passing nil ctx on purpose
	if _, err := NewClient(nil, ""); err == nil {
		t.Fatal("expected error for nil context")
	}
}

func TestNewClient_ProvidesHTTPClient(t *testing.T) {
	c, err := NewClient(context.Background(), "")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if c.Client == nil || c.HTTP == nil {
		t.Fatal("expected both API and HTTP clients to be set")
	}
}

func TestNewClient_VerboseLogsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	c, err := NewClient(context.Background(), "", WithVerbose(true, &buf))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	resp, err := c.HTTP.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	logs := buf.String()
	if !strings.Contains(logs, "github api: GET "+server.URL) {
		t.Fatalf("expected request log line; got:\n%s", logs)
	}
	if !strings.Contains(logs, "200 OK") {
		t.Fatalf("expected response log line; got:\n%s", logs)
	}
}
