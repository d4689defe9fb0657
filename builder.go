package go_payhost

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/stremovskyy/go-payhost/consts"
	"github.com/stremovskyy/go-payhost/internal/jsonutil"
	"github.com/stremovskyy/go-payhost/payment"
	"github.com/stremovskyy/go-payhost/preauth"
)

// builder accumulates request fields together with the ordered value
// sequence the hash is computed over. The two diverge only for unsigned
// presentation fields (view_mode) and the hash itself.
type builder struct {
	fields *Fields
	signed []string
}

func newBuilder() *builder {
	return &builder{fields: NewFields()}
}

// add places a field and appends its value to the signed sequence.
func (b *builder) add(key, value string) {
	b.fields.Set(key, value)
	b.signed = append(b.signed, value)
}

// addOpt adds the field only when the value is present. Absent values are
// dropped entirely: no key in the request, nothing in the signed sequence.
func (b *builder) addOpt(key string, value *string) {
	if value == nil {
		return
	}
	b.add(key, *value)
}

// addTrimmed is addOpt for customer identity fields, which the gateway
// expects without surrounding whitespace.
func (b *builder) addTrimmed(key string, value *string) {
	if value == nil {
		return
	}
	b.add(key, strings.TrimSpace(*value))
}

func (b *builder) addInt(key string, value int64) {
	b.add(key, strconv.FormatInt(value, 10))
}

func (b *builder) addOptInt(key string, value *int64) {
	if value == nil {
		return
	}
	b.addInt(key, *value)
}

func (b *builder) addOptBool(key string, value *bool) {
	if value == nil {
		return
	}
	b.add(key, strconv.FormatBool(*value))
}

// addBase64 adds a URL-bearing field: UTF-8 bytes, standard base64 with padding.
func (b *builder) addBase64(key string, value *string) {
	if value == nil {
		return
	}
	b.add(key, base64.StdEncoding.EncodeToString([]byte(*value)))
}

// addJSON serializes a compound value (items, payout, custom fields) with the
// exact-byte encoder and adds it as a plain string field.
func (b *builder) addJSON(key string, value any) error {
	raw, err := jsonutil.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", key, err)
	}
	b.add(key, string(raw))
	return nil
}

// sign computes the hash over the concatenated signed sequence and appends it
// as the final signed-bearing field. Fields added after sign are unsigned.
func (b *builder) sign(c *Client) error {
	hash, err := c.cfg.signer.Sign([]byte(strings.Join(b.signed, "")))
	if err != nil {
		return err
	}
	b.fields.Set(consts.FieldHash, hash)
	return nil
}

func (b *builder) payload(c *Client, endpointPath string) (*Payload, error) {
	full, err := joinURL(c.cfg.baseURL, endpointPath)
	if err != nil {
		return nil, err
	}
	hash, _ := b.fields.Get(consts.FieldHash)
	return &Payload{
		Fields: b.fields,
		Hash:   hash,
		URL:    full,
		Method: "POST",
	}, nil
}

// requestTime formats the build timestamp. Host-local time; pin a zone with
// WithClock if the gateway account is configured for a specific one.
func (c *Client) requestTime() string {
	return c.cfg.now().Format(consts.RequestTimeLayout)
}

func (c *Client) ensureCredentials() error {
	if c.cfg.merchantID == "" {
		return &ConfigurationError{Message: "merchant id is not configured; use WithMerchantID(...)"}
	}
	if c.cfg.signer == nil || len(c.cfg.signer.Key) == 0 {
		return &ConfigurationError{Message: "secret key is not configured; use WithSecretKey(...)"}
	}
	return nil
}

// newSignedBuilder seeds the builder with the two values every non-pre-auth
// operation signs first: request time, then merchant id.
func (c *Client) newSignedBuilder() *builder {
	b := newBuilder()
	b.add(consts.FieldRequestTime, c.requestTime())
	b.add(consts.FieldMerchantID, c.cfg.merchantID)
	return b
}

func (c *Client) buildPurchase(req *payment.PurchaseRequest) (*Payload, error) {
	if err := c.ensureCredentials(); err != nil {
		return nil, err
	}

	b := c.newSignedBuilder()
	b.add("transaction_id", req.TransactionID)
	b.addInt("amount", req.Amount)

	if len(req.Items) > 0 {
		if err := b.addJSON("items", req.Items); err != nil {
			return nil, err
		}
	}
	if req.Shipping != nil {
		if err := b.addJSON("shipping", req.Shipping); err != nil {
			return nil, err
		}
	}

	b.addTrimmed("firstname", req.FirstName)
	b.addTrimmed("lastname", req.LastName)
	b.addTrimmed("email", req.Email)
	b.addTrimmed("phone", req.Phone)

	b.addOpt("type", req.Type)
	b.addOpt("ps", req.PaymentOption)

	b.addBase64("return_url", req.ReturnURL)
	b.addBase64("cancel_url", req.CancelURL)
	b.addBase64("continue_url", req.ContinueURL)
	if req.ReturnDeeplink != nil {
		target := req.ReturnDeeplink.URL
		if target == "" {
			raw, err := jsonutil.Marshal(req.ReturnDeeplink)
			if err != nil {
				return nil, fmt.Errorf("serialize return_deeplink: %w", err)
			}
			target = string(raw)
		}
		b.addBase64("return_deeplink", &target)
	}

	b.addOpt("currency", req.Currency)
	if len(req.CustomFields) > 0 {
		if err := b.addJSON("custom_fields", req.CustomFields); err != nil {
			return nil, err
		}
	}
	b.addOpt("return_params", req.ReturnParams)
	if len(req.Payout) > 0 {
		if err := b.addJSON("payout", req.Payout); err != nil {
			return nil, err
		}
	}
	b.addOptInt("lifetime", req.Lifetime)
	if len(req.AdditionalParams) > 0 {
		if err := b.addJSON("additional_params", req.AdditionalParams); err != nil {
			return nil, err
		}
	}
	b.addOpt("wallet_token", req.WalletToken)
	b.addOptBool("skip_success_page", req.SkipSuccessPage)

	if err := b.sign(c); err != nil {
		return nil, err
	}

	// view_mode only affects how the hosted page renders; the gateway
	// excludes it from request integrity.
	if req.ViewMode != nil {
		b.fields.Set(consts.FieldViewMode, *req.ViewMode)
	}

	return b.payload(c, consts.PurchasePath)
}

func (c *Client) buildCheckTransaction(req *payment.CheckTransactionRequest) (*Payload, error) {
	if err := c.ensureCredentials(); err != nil {
		return nil, err
	}

	b := c.newSignedBuilder()
	b.add("transaction_id", req.TransactionID)
	if err := b.sign(c); err != nil {
		return nil, err
	}
	return b.payload(c, consts.CheckTransactionPath)
}

func (c *Client) buildTransactionList(req *payment.TransactionListRequest) (*Payload, error) {
	if err := c.ensureCredentials(); err != nil {
		return nil, err
	}

	b := c.newSignedBuilder()
	b.addOpt("date_from", req.DateFrom)
	b.addOpt("date_to", req.DateTo)
	b.addOptInt("amount_from", req.AmountFrom)
	b.addOptInt("amount_to", req.AmountTo)
	b.addOpt("status", req.Status)
	if err := b.sign(c); err != nil {
		return nil, err
	}
	return b.payload(c, consts.TransactionListPath)
}

// preAuthRequest is implemented by all pre-authorization operation records.
type preAuthRequest interface {
	AuthPayload() any
}

var (
	_ preAuthRequest = (*preauth.CompleteRequest)(nil)
	_ preAuthRequest = (*preauth.CompleteWithPayoutRequest)(nil)
	_ preAuthRequest = (*preauth.CancelRequest)(nil)
)

// buildPreAuth builds any of the three pre-authorization payloads. The signed
// sequence leads with the encrypted merchant_auth value, then request time,
// then merchant id — the reverse-ordered scheme of the merchant portal API.
func (c *Client) buildPreAuth(req preAuthRequest, endpointPath string) (*Payload, error) {
	if err := c.ensureCredentials(); err != nil {
		return nil, err
	}
	if c.cfg.encryptor == nil {
		return nil, &ConfigurationError{Message: "asymmetric key required for pre-authorization; use WithPublicKeyPEM(...)"}
	}

	plaintext, err := jsonutil.Marshal(req.AuthPayload())
	if err != nil {
		return nil, fmt.Errorf("serialize merchant_auth: %w", err)
	}
	encrypted, err := c.cfg.encryptor.Encrypt(plaintext)
	if err != nil {
		return nil, &EncryptionError{Err: err}
	}

	b := newBuilder()
	b.add(consts.FieldMerchantAuth, encrypted)
	b.add(consts.FieldRequestTime, c.requestTime())
	b.add(consts.FieldMerchantID, c.cfg.merchantID)
	if err := b.sign(c); err != nil {
		return nil, err
	}
	return b.payload(c, endpointPath)
}
