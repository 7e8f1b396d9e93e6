package submit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// SubmissionIDHeader carries the envelope id on outgoing requests so the
// receiver can de-duplicate retries.
const SubmissionIDHeader = "X-Submission-ID"

// StatusError reports a non-2xx response from the submission endpoint.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("submit: endpoint returned %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("submit: endpoint returned %d %s: %s", e.Code, http.StatusText(e.Code), body)
}

// StatusCode returns the HTTP status.
func (e *StatusError) StatusCode() int { return e.Code }

// HTTPOption configures an HTTPSubmitter.
type HTTPOption func(*HTTPSubmitter)

// WithHTTPClient overrides the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSubmitter) {
		if client != nil {
			s.client = client
		}
	}
}

// WithHTTPFormat selects the request body encoding.
func WithHTTPFormat(format Format) HTTPOption {
	return func(s *HTTPSubmitter) {
		if format != "" {
			s.format = format
		}
	}
}

// WithHeader adds a static request header.
func WithHeader(name, value string) HTTPOption {
	return func(s *HTTPSubmitter) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		s.headers.Set(name, value)
	}
}

// WithIDGenerator overrides the submission id source.
func WithIDGenerator(fn func() uuid.UUID) HTTPOption {
	return func(s *HTTPSubmitter) {
		if fn != nil {
			s.stamp.newID = fn
		}
	}
}

// HTTPSubmitter POSTs the encoded record to a fixed endpoint.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
	format   Format
	headers  http.Header
	stamp    stamper
}

const maxErrorBody = 4 << 10

// NewHTTPSubmitter returns a submitter posting to endpoint.
func NewHTTPSubmitter(endpoint string, options ...HTTPOption) (*HTTPSubmitter, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("submit: endpoint is required")
	}
	s := &HTTPSubmitter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		format:   FormatJSON,
		headers:  make(http.Header),
		stamp:    defaultStamper(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Submit implements wizard.Submitter.
func (s *HTTPSubmitter) Submit(ctx context.Context, record wizard.FormRecord) error {
	env := s.stamp.wrap(record)
	payload, err := Encode(s.format, env.Record)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("submit: build request: %w", err)
	}
	for name, values := range s.headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	req.Header.Set("Content-Type", s.format.ContentType())
	req.Header.Set(SubmissionIDHeader, env.ID.String())

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit: post %s: %w", s.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
