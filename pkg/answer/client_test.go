package answer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	client := NewClient("", 0)

	if client.Endpoint != DefaultEndpoint {
		t.Errorf("Expected endpoint %s, got %s", DefaultEndpoint, client.Endpoint)
	}
	if client.HTTPClient == nil {
		t.Fatal("Expected HTTP client to be set")
	}
	if client.HTTPClient.Timeout != 0 {
		t.Errorf("Expected no client timeout, got %v", client.HTTPClient.Timeout)
	}
	if !strings.HasPrefix(client.UserAgent, "knowva_cli/") {
		t.Errorf("Unexpected user agent %q", client.UserAgent)
	}

	timed := NewClient("https://example.com/chat", 5*time.Second)
	if timed.HTTPClient.Timeout != 5*time.Second {
		t.Errorf("Expected 5s timeout, got %v", timed.HTTPClient.Timeout)
	}
}

func TestAsk_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST method, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("Expected X-Request-ID header")
		}

		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(body) != 1 || body["question"] != "What is term insurance?" {
			t.Errorf("Unexpected request body %v", body)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"answer":"Term insurance covers a fixed period.","sources":[{"filename":"policy.pdf"},{"filename":"faq.pdf"}],"confidence":"high"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, 0)
	ans, err := client.Ask(context.Background(), "What is term insurance?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if ans.Text != "Term insurance covers a fixed period." {
		t.Errorf("Unexpected answer text %q", ans.Text)
	}
	wantSources := []Source{{Filename: "policy.pdf"}, {Filename: "faq.pdf"}}
	if !reflect.DeepEqual(ans.Sources, wantSources) {
		t.Errorf("Expected sources %v, got %v", wantSources, ans.Sources)
	}
	if ans.Confidence != "high" {
		t.Errorf("Expected confidence 'high', got %q", ans.Confidence)
	}
}

func TestAsk_OptionalFields(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantSources []Source
		wantNil     bool
		wantConf    string
	}{
		{name: "no sources", body: `{"answer":"ok"}`, wantNil: true},
		{name: "null sources", body: `{"answer":"ok","sources":null}`, wantNil: true},
		{name: "empty sources", body: `{"answer":"ok","sources":[]}`, wantSources: []Source{}},
		{name: "numeric confidence ignored", body: `{"answer":"ok","confidence":0.9}`, wantNil: true},
		{name: "empty answer accepted", body: `{"answer":""}`, wantNil: true},
		{name: "extra fields ignored", body: `{"answer":"ok","model":"x","confidence":"low"}`, wantNil: true, wantConf: "low"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(func(req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusOK, "application/json", []byte(tt.body)), nil
			})

			ans, err := client.Ask(context.Background(), "q")
			if err != nil {
				t.Fatalf("Ask failed: %v", err)
			}
			if tt.wantNil {
				if ans.Sources != nil {
					t.Errorf("Expected nil sources, got %#v", ans.Sources)
				}
			} else if !reflect.DeepEqual(ans.Sources, tt.wantSources) {
				t.Errorf("Expected sources %#v, got %#v", tt.wantSources, ans.Sources)
			}
			if ans.Confidence != tt.wantConf {
				t.Errorf("Expected confidence %q, got %q", tt.wantConf, ans.Confidence)
			}
		})
	}
}

func TestAsk_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler func(t *testing.T, req *http.Request) (*http.Response, error)
	}{
		{
			name: "network error",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		},
		{
			name: "server error",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newJSONResponse(t, req, http.StatusInternalServerError, map[string]string{"detail": "boom"}), nil
			},
		},
		{
			name: "not found",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusNotFound, "text/plain", []byte("missing")), nil
			},
		},
		{
			name: "invalid json",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusOK, "application/json", []byte("<html>")), nil
			},
		},
		{
			name: "missing answer",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newJSONResponse(t, req, http.StatusOK, map[string]any{"sources": []any{}}), nil
			},
		},
		{
			name: "answer wrong type",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newJSONResponse(t, req, http.StatusOK, map[string]any{"answer": 42}), nil
			},
		},
		{
			name: "sources wrong shape",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newJSONResponse(t, req, http.StatusOK, map[string]any{"answer": "ok", "sources": "policy.pdf"}), nil
			},
		},
		{
			name: "json array body",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusOK, "application/json", []byte(`["answer"]`)), nil
			},
		},
		{
			name: "null body",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusOK, "application/json", []byte(`null`)), nil
			},
		},
		{
			name: "source missing filename",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusOK, "application/json", []byte(`{"answer":"ok","sources":[{}]}`)), nil
			},
		},
		{
			name: "null source",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusOK, "application/json", []byte(`{"answer":"ok","sources":[null]}`)), nil
			},
		},
		{
			name: "null filename",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusOK, "application/json", []byte(`{"answer":"ok","sources":[{"filename":null}]}`)), nil
			},
		},
		{
			name: "source with other key",
			handler: func(t *testing.T, req *http.Request) (*http.Response, error) {
				return newHTTPResponse(req, http.StatusOK, "application/json", []byte(`{"answer":"ok","sources":[{"name":"x"}]}`)), nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(func(req *http.Request) (*http.Response, error) {
				return tt.handler(t, req)
			})

			_, err := client.Ask(context.Background(), "q")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, ErrRequestFailed) {
				t.Errorf("Expected ErrRequestFailed, got %v", err)
			}
		})
	}
}

func TestAsk_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.Ask(context.Background(), "slow question")
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("Expected ErrRequestFailed on timeout, got %v", err)
	}
}

func TestAsk_ContextCanceled(t *testing.T) {
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Ask(ctx, "q")
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("Expected ErrRequestFailed, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected wrapped context.Canceled, got %v", err)
	}
}

func TestAsk_InvalidEndpoint(t *testing.T) {
	client := &Client{Endpoint: "://bad"}
	_, err := client.Ask(context.Background(), "q")
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("Expected ErrRequestFailed, got %v", err)
	}
}
