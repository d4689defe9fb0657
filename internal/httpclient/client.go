package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stremovskyy/go-payhost/consts"
	"github.com/stremovskyy/go-payhost/log"
	"github.com/stremovskyy/recorder"
)

// Client is a small HTTP helper that posts form-encoded payloads.
// It is internal on purpose: the public API lives in the root package.
//
// Each call is exactly one round trip. The gateway contract leaves retry
// policy to the caller, informed by the status code on the returned error.
type Client struct {
	httpClient *http.Client
	logger     log.Logger
	logBodies  bool
	recorder   recorder.Recorder
}

// Response is a classified gateway response.
type Response struct {
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
}

// IsJSON reports whether the declared content type is JSON.
func (r *Response) IsJSON() bool {
	return r != nil && mediaType(r.ContentType) == consts.ContentTypeJSON
}

// IsHTML reports whether the declared content type is HTML.
func (r *Response) IsHTML() bool {
	return r != nil && mediaType(r.ContentType) == consts.ContentTypeHTML
}

// New creates an internal HTTP client.
func New(httpClient *http.Client, logger log.Logger, rec recorder.Recorder, logBodies bool) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = log.NopLogger{}
	}
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		logBodies:  logBodies,
		recorder:   rec,
	}
}

// PostForm sends one form-encoded POST to url and returns the raw response.
//
// A non-2xx status is returned as *HTTPStatusError together with the
// response, so callers can still inspect the body.
func (c *Client) PostForm(ctx context.Context, url string, form string) (*Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := nextRequestID()

	body := []byte(form)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.recordError(ctx, requestID, err)
		return nil, err
	}
	req.Header.Set(consts.HeaderContentType, consts.ContentTypeForm)
	req.Header.Set(consts.HeaderAccept, consts.ContentTypeJSON)
	req.Header.Set(consts.HeaderXRequestID, requestID)

	c.logger.Debugf("[PayHost HTTP] request prepared: request_id=%s url=%s payload=%s", requestID, url, logBody(body, c.logBodies))
	c.recordRequest(ctx, requestID, body)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("[PayHost HTTP] request failed: request_id=%s url=%s err=%v", requestID, url, err)
		c.recordError(ctx, requestID, err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordError(ctx, requestID, err)
		return nil, err
	}
	c.recordResponse(ctx, requestID, raw)

	out := &Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		ContentType: resp.Header.Get(consts.HeaderContentType),
		Body:        raw,
	}

	c.logger.Debugf("[PayHost HTTP] response received: request_id=%s url=%s status=%d content_type=%s response=%s",
		requestID, url, out.StatusCode, out.ContentType, logBody(raw, c.logBodies))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &HTTPStatusError{StatusCode: out.StatusCode, Status: out.Status, ContentType: out.ContentType, Body: raw}
		c.recordError(ctx, requestID, statusErr)
		return out, statusErr
	}
	return out, nil
}

// HTTPStatusError indicates a non-2xx response.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "http status error"
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("unexpected status: %s", e.Status)
	}
	// Limit in error string.
	b := e.Body
	if len(b) > 512 {
		b = b[:512]
	}
	return fmt.Sprintf("unexpected status: %s: %s", e.Status, string(b))
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func nextRequestID() string {
	return uuid.NewString()
}

func (c *Client) recordRequest(ctx context.Context, requestID string, body []byte) {
	if c == nil || c.recorder == nil {
		return
	}
	if err := c.recorder.RecordRequest(ctx, nil, requestID, body, nil); err != nil {
		c.logger.Warnf("[PayHost HTTP] cannot record request: %v", err)
	}
}

func (c *Client) recordResponse(ctx context.Context, requestID string, body []byte) {
	if c == nil || c.recorder == nil {
		return
	}
	if err := c.recorder.RecordResponse(ctx, nil, requestID, body, nil); err != nil {
		c.logger.Warnf("[PayHost HTTP] cannot record response: %v", err)
	}
}

func (c *Client) recordError(ctx context.Context, requestID string, err error) {
	if c == nil || c.recorder == nil || err == nil {
		return
	}
	if recErr := c.recorder.RecordError(ctx, nil, requestID, err, nil); recErr != nil {
		c.logger.Warnf("[PayHost HTTP] cannot record error: %v", recErr)
	}
}

func summarizeBytes(b []byte) string {
	return fmt.Sprintf("size=%d bytes", len(b))
}

func logBody(b []byte, verbose bool) string {
	if !verbose {
		return summarizeBytes(b)
	}

	if pretty, ok := prettyJSONPreview(b); ok {
		return pretty
	}
	return previewBytes(b)
}

func prettyJSONPreview(b []byte) (string, bool) {
	if len(b) == 0 || !json.Valid(b) {
		return "", false
	}

	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "  "); err != nil {
		return "", false
	}
	return truncate(out.String(), 4096), true
}

func previewBytes(b []byte) string {
	if len(b) == 0 {
		return "<empty>"
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "<empty>"
	}
	if !utf8.ValidString(s) {
		return fmt.Sprintf("<binary size=%d bytes>", len(b))
	}
	return truncate(s, 4096)
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
