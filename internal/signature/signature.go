package signature

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha512"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
)

// HMACSigner produces the PayHost hash field value using HMAC-SHA512.
//
// The gateway signs the concatenation of the ordered request values with the
// merchant API secret as the key. Output is standard base64 with padding.
type HMACSigner struct {
	Key []byte
}

func (s *HMACSigner) Sign(body []byte) (string, error) {
	if s == nil || len(s.Key) == 0 {
		return "", errors.New("signature: secret key is not configured")
	}
	mac := hmac.New(sha512.New, s.Key)
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// MaxChunkSize is the plaintext chunk size for merchant_auth encryption.
//
// 117 bytes is the maximum PKCS#1 v1.5 block for 1024-bit RSA keys; the
// gateway decryptor expects exactly this split and rejects anything else.
const MaxChunkSize = 117

// RSAEncryptor encrypts the pre-authorization merchant_auth payload under the
// merchant's gateway-issued public key.
//
// Plaintext is split into MaxChunkSize chunks, each chunk is encrypted
// independently with PKCS#1 v1.5 and the ciphertext chunks are concatenated
// (no delimiter) before base64 encoding. Decryption happens only on the
// gateway side.
type RSAEncryptor struct {
	PublicKey *rsa.PublicKey
}

func (e *RSAEncryptor) Encrypt(plaintext []byte) (string, error) {
	if e == nil || e.PublicKey == nil {
		return "", errors.New("signature: public key is not configured")
	}
	var out []byte
	for len(plaintext) > 0 {
		n := len(plaintext)
		if n > MaxChunkSize {
			n = MaxChunkSize
		}
		chunk, err := rsa.EncryptPKCS1v15(rand.Reader, e.PublicKey, plaintext[:n])
		if err != nil {
			return "", fmt.Errorf("signature: rsa encrypt: %w", err)
		}
		out = append(out, chunk...)
		plaintext = plaintext[n:]
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

// ParseRSAPublicKeyPEM parses a PEM encoded RSA public key.
// It supports both PKIX ("PUBLIC KEY") and PKCS#1 ("RSA PUBLIC KEY").
func ParseRSAPublicKeyPEM(pemBytes []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("signature: invalid PEM (no block)")
	}
	switch block.Type {
	case "PUBLIC KEY":
		keyAny, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("signature: parse PKIX public key: %w", err)
		}
		k, ok := keyAny.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("signature: PKIX key is not RSA (got %T)", keyAny)
		}
		return k, nil
	case "RSA PUBLIC KEY":
		k, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("signature: parse PKCS#1 public key: %w", err)
		}
		return k, nil
	default:
		return nil, fmt.Errorf("signature: unsupported public key type: %q", block.Type)
	}
}
