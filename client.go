package go_payhost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/stremovskyy/go-payhost/consts"
	"github.com/stremovskyy/go-payhost/internal/httpclient"
	"github.com/stremovskyy/go-payhost/log"
	"github.com/stremovskyy/go-payhost/payment"
	"github.com/stremovskyy/go-payhost/preauth"
	"github.com/stremovskyy/recorder"
)

// Client is the main PayHost SDK client.
//
// It supports:
//   - Payment gateway API: purchase, check-transaction, transaction-list
//   - Merchant portal API: pre-auth completion / completion-with-payout / cancellation
//
// Builder methods produce signed Payloads without touching the network;
// Execute optionally sends one and classifies the response.
type Client struct {
	cfg config

	http *httpclient.Client

	payments *PaymentService
	preAuth  *PreAuthService
}

func NewClient(opts ...Option) (PayHost, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	c := &Client{cfg: cfg}
	c.http = httpclient.New(cfg.httpClient, cfg.logger, cfg.recorder, cfg.logBodies)

	c.payments = &PaymentService{c: c}
	c.preAuth = &PreAuthService{c: c}
	return c, nil
}

// NewDefaultClient is a convenience wrapper around NewClient() with default configuration.
func NewDefaultClient() (PayHost, error) {
	return NewClient()
}

// NewClientWithRecorder attaches a recorder to every request/response pair.
func NewClientWithRecorder(rec recorder.Recorder, opts ...Option) (PayHost, error) {
	opts = append([]Option{WithRecorder(rec)}, opts...)
	return NewClient(opts...)
}

func (c *Client) Payments() *PaymentService { return c.payments }
func (c *Client) PreAuth() *PreAuthService  { return c.preAuth }

// SetLogLevel updates SDK log level when current logger supports it.
func (c *Client) SetLogLevel(level log.Level) {
	if c == nil || c.cfg.logger == nil {
		return
	}
	if l, ok := c.cfg.logger.(interface{ SetLevel(log.Level) }); ok {
		l.SetLevel(level)
	}
}

// Sign computes the gateway hash over raw bytes with the configured secret.
func (c *Client) Sign(body []byte) (string, error) {
	if c == nil || c.cfg.signer == nil {
		return "", errors.New("client is not initialized")
	}
	return c.cfg.signer.Sign(body)
}

func joinURL(base string, p string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	u.Path = path.Join(u.Path, p)
	return u.String(), nil
}

// =========================
// Payment gateway API
// =========================

type PaymentService struct{ c *Client }

// Purchase builds a signed create-transaction payload.
func (s *PaymentService) Purchase(req *payment.PurchaseRequest) (*Payload, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validatePurchase(req); err != nil {
		return nil, err
	}
	return s.c.buildPurchase(req)
}

// CheckTransaction builds a signed transaction status payload.
func (s *PaymentService) CheckTransaction(req *payment.CheckTransactionRequest) (*Payload, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validateCheckTransaction(req); err != nil {
		return nil, err
	}
	return s.c.buildCheckTransaction(req)
}

// TransactionList builds a signed transaction listing payload.
func (s *PaymentService) TransactionList(req *payment.TransactionListRequest) (*Payload, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		req = &payment.TransactionListRequest{}
	}
	return s.c.buildTransactionList(req)
}

// =========================
// Merchant portal (pre-authorization) API
// =========================

type PreAuthService struct{ c *Client }

// Complete builds a pre-auth completion payload (captures reserved funds).
func (s *PreAuthService) Complete(req *preauth.CompleteRequest) (*Payload, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validatePreAuth(req.TransactionID, req.Amount, nil); err != nil {
		return nil, err
	}
	return s.c.buildPreAuth(req, consts.PreAuthCompletionPath)
}

// CompleteWithPayout builds a pre-auth completion payload with a payout distribution.
func (s *PreAuthService) CompleteWithPayout(req *preauth.CompleteWithPayoutRequest) (*Payload, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validatePreAuth(req.TransactionID, req.Amount, req.Payout); err != nil {
		return nil, err
	}
	return s.c.buildPreAuth(req, consts.PreAuthCompletionWithPayoutPath)
}

// Cancel builds a pre-auth cancellation payload (releases reserved funds).
func (s *PreAuthService) Cancel(req *preauth.CancelRequest) (*Payload, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "request", Message: "is nil"}}}
	}
	if err := validatePreAuth(req.TransactionID, req.Amount, nil); err != nil {
		return nil, err
	}
	return s.c.buildPreAuth(req, consts.PreAuthCancellationPath)
}

// =========================
// Execution
// =========================

// Result is a classified 2xx gateway response.
//
// Exactly one of JSON or HTML is populated; Raw always carries the body bytes.
type Result struct {
	StatusCode  int
	ContentType string
	JSON        json.RawMessage
	HTML        string
	Raw         []byte
}

// Decode unmarshals the JSON result into out.
func (r *Result) Decode(out any) error {
	if r == nil || len(r.JSON) == 0 {
		return errors.New("result is not JSON")
	}
	return json.Unmarshal(r.JSON, out)
}

// Execute sends a built payload as one form-encoded POST and classifies the
// response by declared content type.
//
// Payloads whose payment option is consts.PaymentOptionWeb come back as a
// rendered checkout page; Execute refuses them before any network call unless
// WithAllowHTML is given.
func (c *Client) Execute(ctx context.Context, p *Payload, runOpts ...RunOption) (*Result, error) {
	if c == nil {
		return nil, errors.New("client is nil")
	}
	if p == nil || p.Fields == nil {
		return nil, &ValidationError{Fields: []FieldError{{Field: "payload", Message: "is nil"}}}
	}

	opts := collectRunOptions(runOpts)
	if ps, ok := p.PaymentOption(); ok && ps == consts.PaymentOptionWeb && !opts.allowsHTML() {
		return nil, &UnsupportedOperationError{PaymentOption: ps}
	}
	if opts.isDryRun() {
		opts.handleDryRun(p.Method, p.URL, p.Fields.Map())
		return nil, nil
	}

	resp, err := c.http.PostForm(ctx, p.URL, p.Fields.Encode())
	if err != nil {
		return nil, wrapAPIError(err)
	}
	return classify(resp, opts.allowsHTML())
}

// classify applies the content-type policy to a 2xx response.
func classify(resp *httpclient.Response, allowHTML bool) (*Result, error) {
	res := &Result{
		StatusCode:  resp.StatusCode,
		ContentType: resp.ContentType,
		Raw:         resp.Body,
	}
	switch {
	case resp.IsJSON():
		res.JSON = resp.Body
		return res, nil
	case resp.IsHTML():
		if !allowHTML {
			return nil, &UnexpectedContentTypeError{ContentType: resp.ContentType, Body: resp.Body}
		}
		res.HTML = string(resp.Body)
		return res, nil
	default:
		// Undeclared content type: trust the bytes if they parse as JSON,
		// otherwise fall back to the HTML policy.
		if json.Valid(resp.Body) {
			res.JSON = resp.Body
			return res, nil
		}
		if !allowHTML {
			return nil, &UnexpectedContentTypeError{ContentType: resp.ContentType, Body: resp.Body}
		}
		res.HTML = string(resp.Body)
		return res, nil
	}
}

func wrapAPIError(err error) error {
	if err == nil {
		return nil
	}
	var hs *httpclient.HTTPStatusError
	if errors.As(err, &hs) {
		apiErr := &APIError{StatusCode: hs.StatusCode, Status: hs.Status, Body: hs.Body}
		if json.Valid(hs.Body) {
			apiErr.JSON = hs.Body
		}
		return apiErr
	}
	return err
}

// =========================
// Validation
// =========================

func validatePurchase(req *payment.PurchaseRequest) error {
	ve := &ValidationError{}
	if req.TransactionID == "" {
		ve.Add("transaction_id", "is required")
	}
	if req.Amount <= 0 {
		ve.Add("amount", "must be > 0")
	}
	for i, it := range req.Items {
		if it.Name == "" {
			ve.Add(fmt.Sprintf("items[%d].name", i), "is required")
		}
		if it.Count <= 0 {
			ve.Add(fmt.Sprintf("items[%d].count", i), "must be > 0")
		}
		if it.Price <= 0 {
			ve.Add(fmt.Sprintf("items[%d].price", i), "must be > 0")
		}
	}
	validatePayoutEntries(ve, req.Payout)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateCheckTransaction(req *payment.CheckTransactionRequest) error {
	ve := &ValidationError{}
	if req.TransactionID == "" {
		ve.Add("transaction_id", "is required")
	}
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validatePreAuth(transactionID string, amount int64, payout []payment.PayoutEntry) error {
	ve := &ValidationError{}
	if transactionID == "" {
		ve.Add("transaction_id", "is required")
	}
	if amount <= 0 {
		ve.Add("amount", "must be > 0")
	}
	validatePayoutEntries(ve, payout)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validatePayoutEntries(ve *ValidationError, payout []payment.PayoutEntry) {
	for i, p := range payout {
		if p.Account == "" {
			ve.Add(fmt.Sprintf("payout[%d].account", i), "is required")
		}
		if p.Amount <= 0 {
			ve.Add(fmt.Sprintf("payout[%d].amount", i), "must be > 0")
		}
	}
}
