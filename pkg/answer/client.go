// Package answer talks to the remote question-answering service.
package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"knowva_cli/pkg/version"

	"github.com/google/uuid"
)

// DefaultEndpoint is used when a Client is built with an empty URL.
const DefaultEndpoint = "http://localhost:8000/chat"

const maxErrorPreview = 200

// ErrRequestFailed covers every way a question can fail to produce an answer:
// transport errors, non-2xx statuses and responses of the wrong shape.
var ErrRequestFailed = errors.New("request failed")

// Source is a document citation attached to an answer.
type Source struct {
	Filename string `json:"filename"`
}

// Answer is the decoded success response of the service.
type Answer struct {
	Text       string
	Sources    []Source
	Confidence string
}

// Asker is the single operation the conversation view needs.
type Asker interface {
	Ask(ctx context.Context, question string) (Answer, error)
}

type request struct {
	Question string `json:"question"`
}

type response struct {
	Answer     *string         `json:"answer"`
	Sources    *[]*wireSource  `json:"sources"`
	Confidence json.RawMessage `json:"confidence"`
}

type wireSource struct {
	Filename *string `json:"filename"`
}

// Client posts questions to the answer service.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient creates a client for endpoint. A zero timeout leaves the
// transport default in place.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  version.UserAgent(),
	}
}

// Ask sends question and decodes the answer. All failures wrap ErrRequestFailed.
func (c *Client) Ask(ctx context.Context, question string) (Answer, error) {
	requestID := uuid.NewString()
	logger := slog.Default().With("request_id", requestID)

	body, err := json.Marshal(request{Question: question})
	if err != nil {
		return Answer{}, fail("marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return Answer{}, fail("create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}

	logger.Debug("answer_request_start",
		"endpoint", c.Endpoint,
		"question_length", len(question))

	start := time.Now()
	resp, err := c.httpClient().Do(httpReq)
	if err != nil {
		logger.Warn("answer_request_send_error", "error", err)
		return Answer{}, fail("send request", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("answer_response_read_error", "error", err)
		return Answer{}, fail("read response", err)
	}

	logger.Debug("answer_response_received",
		"status_code", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
		"response_size", len(data),
		"elapsed_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview := string(data)
		if len(preview) > maxErrorPreview {
			preview = preview[:maxErrorPreview] + "..."
		}
		logger.Warn("answer_response_status",
			"status_code", resp.StatusCode,
			"response_preview", preview)
		return Answer{}, fmt.Errorf("%w: unexpected status %d", ErrRequestFailed, resp.StatusCode)
	}

	ans, err := decode(data)
	if err != nil {
		logger.Warn("answer_response_malformed", "error", err)
		return Answer{}, err
	}

	logger.Info("answer_request_done",
		"answer_length", len(ans.Text),
		"sources", len(ans.Sources),
		"elapsed_ms", time.Since(start).Milliseconds())
	return ans, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func decode(data []byte) (Answer, error) {
	var raw response
	if err := json.Unmarshal(data, &raw); err != nil {
		return Answer{}, fail("decode response", err)
	}
	if raw.Answer == nil {
		return Answer{}, fmt.Errorf("%w: response has no answer field", ErrRequestFailed)
	}

	ans := Answer{Text: *raw.Answer}
	// confidence is informational; a non-string value is dropped, not rejected.
	if len(raw.Confidence) > 0 {
		var confidence string
		if json.Unmarshal(raw.Confidence, &confidence) == nil {
			ans.Confidence = confidence
		}
	}
	if raw.Sources != nil {
		ans.Sources = make([]Source, len(*raw.Sources))
		for i, src := range *raw.Sources {
			if src == nil || src.Filename == nil {
				return Answer{}, fmt.Errorf("%w: source %d has no filename", ErrRequestFailed, i)
			}
			ans.Sources[i] = Source{Filename: *src.Filename}
		}
	}
	return ans, nil
}

func fail(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRequestFailed, step, err)
}
