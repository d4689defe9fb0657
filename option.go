package go_payhost

import (
	"crypto/rsa"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/stremovskyy/go-payhost/consts"
	"github.com/stremovskyy/go-payhost/internal/signature"
	"github.com/stremovskyy/go-payhost/log"
	"github.com/stremovskyy/recorder"
)

type Option func(*config) error

type config struct {
	baseURL    string
	merchantID string

	httpClient *http.Client
	logger     log.Logger
	logBodies  bool
	recorder   recorder.Recorder

	signer    *signature.HMACSigner
	encryptor *signature.RSAEncryptor

	now func() time.Time
}

func defaultConfig() config {
	return config{
		baseURL:    consts.DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.NewDefault(),
		signer:     &signature.HMACSigner{},
		now:        time.Now,
	}
}

// WithBaseURL sets the gateway origin. It must end with the path segment the
// operation paths are joined onto (e.g. "https://gw.payhost.io/").
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		if baseURL == "" {
			return errors.New("base url is empty")
		}
		cfg.baseURL = baseURL
		return nil
	}
}

// WithMerchantID sets the merchant identifier signed into every request.
func WithMerchantID(merchantID string) Option {
	return func(cfg *config) error {
		merchantID = strings.TrimSpace(merchantID)
		if merchantID == "" {
			return errors.New("merchant id is empty")
		}
		cfg.merchantID = merchantID
		return nil
	}
}

// WithSecretKey sets the API secret used as the HMAC key.
func WithSecretKey(secret string) Option {
	return func(cfg *config) error {
		if secret == "" {
			return errors.New("secret key is empty")
		}
		cfg.signer = &signature.HMACSigner{Key: []byte(secret)}
		return nil
	}
}

// WithMerchant sets merchant id and secret key in one go.
func WithMerchant(m Merchant) Option {
	return func(cfg *config) error {
		if err := WithMerchantID(m.ID)(cfg); err != nil {
			return err
		}
		return WithSecretKey(m.SecretKey)(cfg)
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			return errors.New("http client is nil")
		}
		cfg.httpClient = client
		return nil
	}
}

// WithClient is an alias of WithHTTPClient.
func WithClient(client *http.Client) Option {
	return WithHTTPClient(client)
}

// WithTimeout sets http client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) error {
		if timeout <= 0 {
			return errors.New("timeout must be > 0")
		}
		cfg.httpClient.Timeout = timeout
		return nil
	}
}

func WithLogger(logger log.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			cfg.logger = log.NopLogger{}
			return nil
		}
		cfg.logger = logger
		return nil
	}
}

// WithLogHTTPBodies enables verbose request/response body logging for debugging.
//
// Disabled by default because bodies may contain sensitive data.
func WithLogHTTPBodies(enabled bool) Option {
	return func(cfg *config) error {
		cfg.logBodies = enabled
		return nil
	}
}

// WithRecorder attaches a request/response recorder.
func WithRecorder(r recorder.Recorder) Option {
	return func(cfg *config) error {
		cfg.recorder = r
		return nil
	}
}

// WithClock overrides the clock used for the request_time field.
//
// Useful in tests, and for pinning a timezone:
//
//	WithClock(func() time.Time { return time.Now().In(loc) })
func WithClock(now func() time.Time) Option {
	return func(cfg *config) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		cfg.now = now
		return nil
	}
}

// WithPublicKeyPEM configures the gateway-issued RSA public key that enables
// pre-authorization operations.
func WithPublicKeyPEM(pemBytes []byte) Option {
	return func(cfg *config) error {
		k, err := signature.ParseRSAPublicKeyPEM(pemBytes)
		if err != nil {
			return err
		}
		cfg.encryptor = &signature.RSAEncryptor{PublicKey: k}
		return nil
	}
}

// WithPublicKeyFile reads a PEM file and sets it as the pre-authorization key.
func WithPublicKeyFile(path string) Option {
	return func(cfg *config) error {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return WithPublicKeyPEM(b)(cfg)
	}
}

// WithPublicKey allows setting an already parsed RSA public key.
func WithPublicKey(key *rsa.PublicKey) Option {
	return func(cfg *config) error {
		if key == nil {
			return errors.New("public key is nil")
		}
		cfg.encryptor = &signature.RSAEncryptor{PublicKey: key}
		return nil
	}
}
