package signature

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"strings"
	"testing"
)

func TestHMACSignerIsDeterministic(t *testing.T) {
	signer := &HMACSigner{Key: []byte("k1")}

	first, err := signer.Sign([]byte("20240102030405m1ORDER-123"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	second, err := signer.Sign([]byte("20240102030405m1ORDER-123"))
	if err != nil {
		t.Fatalf("sign again: %v", err)
	}
	if first != second {
		t.Fatalf("signature not deterministic: %q vs %q", first, second)
	}
}

func TestHMACSignerGoldenVector(t *testing.T) {
	signer := &HMACSigner{Key: []byte("k1")}

	got, err := signer.Sign([]byte("20240102030405m1ORDER-123"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	want := "PC4JQRQ+Pov+ZERUcSiFm23bYuHBKv5z1brjW/143bKyVMQhLkAfXUXbDSwn2caPZZwrX71nD06U0xHPVywlmA=="
	if got != want {
		t.Fatalf("golden signature mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestHMACSignerIsOrderSensitive(t *testing.T) {
	signer := &HMACSigner{Key: []byte("k1")}

	a, err := signer.Sign([]byte("20240102030405m1ORDER-123"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	b, err := signer.Sign([]byte("m120240102030405ORDER-123"))
	if err != nil {
		t.Fatalf("sign permuted: %v", err)
	}
	if a == b {
		t.Fatalf("permuting the value order must change the signature")
	}
}

func TestHMACSignerRequiresKey(t *testing.T) {
	signer := &HMACSigner{}
	if _, err := signer.Sign([]byte("x")); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestRSAEncryptorChunkBoundaries(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	enc := &RSAEncryptor{PublicKey: &key.PublicKey}
	blockSize := key.PublicKey.Size()

	tests := []struct {
		name       string
		plainLen   int
		wantChunks int
	}{
		{name: "one byte", plainLen: 1, wantChunks: 1},
		{name: "exact chunk", plainLen: MaxChunkSize, wantChunks: 1},
		{name: "one over", plainLen: MaxChunkSize + 1, wantChunks: 2},
		{name: "three chunks", plainLen: 2*MaxChunkSize + 5, wantChunks: 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			plaintext := bytes.Repeat([]byte("a"), tc.plainLen)
			blob, err := enc.Encrypt(plaintext)
			if err != nil {
				t.Fatalf("encrypt: %v", err)
			}
			raw, err := base64.StdEncoding.DecodeString(blob)
			if err != nil {
				t.Fatalf("blob is not valid base64: %v", err)
			}
			if len(raw)%blockSize != 0 {
				t.Fatalf("ciphertext length %d is not a multiple of block size %d", len(raw), blockSize)
			}
			if chunks := len(raw) / blockSize; chunks != tc.wantChunks {
				t.Fatalf("expected %d ciphertext chunks, got %d", tc.wantChunks, chunks)
			}

			// PKCS#1 v1.5 is randomized, so assert the round trip instead
			// of byte equality.
			var decrypted []byte
			for i := 0; i < len(raw); i += blockSize {
				part, err := rsa.DecryptPKCS1v15(nil, key, raw[i:i+blockSize])
				if err != nil {
					t.Fatalf("decrypt chunk %d: %v", i/blockSize, err)
				}
				decrypted = append(decrypted, part...)
			}
			if !bytes.Equal(decrypted, plaintext) {
				t.Fatalf("round trip mismatch: got %d bytes, want %d", len(decrypted), len(plaintext))
			}
		})
	}
}

func TestRSAEncryptorRequiresKey(t *testing.T) {
	enc := &RSAEncryptor{}
	if _, err := enc.Encrypt([]byte("x")); err == nil {
		t.Fatalf("expected error for missing public key")
	}
}

func TestParseRSAPublicKeyPEM(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 1024)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	pkix, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal pkix: %v", err)
	}
	pkixPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pkix})
	if _, err := ParseRSAPublicKeyPEM(pkixPEM); err != nil {
		t.Fatalf("parse PKIX public key: %v", err)
	}

	pkcs1PEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&key.PublicKey)})
	if _, err := ParseRSAPublicKeyPEM(pkcs1PEM); err != nil {
		t.Fatalf("parse PKCS#1 public key: %v", err)
	}

	if _, err := ParseRSAPublicKeyPEM([]byte("not a pem")); err == nil || !strings.Contains(err.Error(), "invalid PEM") {
		t.Fatalf("expected invalid PEM error, got %v", err)
	}
}
