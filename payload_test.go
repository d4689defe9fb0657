package go_payhost

import (
	"net/url"
	"reflect"
	"testing"
)

func TestFieldsPreserveInsertionOrder(t *testing.T) {
	f := NewFields()
	f.Set("zeta", "1")
	f.Set("alpha", "2")
	f.Set("mid", "3")

	if got := f.Keys(); !reflect.DeepEqual(got, []string{"zeta", "alpha", "mid"}) {
		t.Fatalf("unexpected key order: %v", got)
	}
	if got := f.Encode(); got != "zeta=1&alpha=2&mid=3" {
		t.Fatalf("unexpected encoding: %q", got)
	}
}

func TestFieldsSetOverwritesInPlace(t *testing.T) {
	f := NewFields()
	f.Set("a", "1")
	f.Set("b", "2")
	f.Set("a", "changed")

	if got := f.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("overwrite must not reorder keys: %v", got)
	}
	if v, _ := f.Get("a"); v != "changed" {
		t.Fatalf("unexpected value: %q", v)
	}
	if f.Len() != 2 {
		t.Fatalf("unexpected length: %d", f.Len())
	}
}

func TestFieldsEncodeEscapesValues(t *testing.T) {
	f := NewFields()
	f.Set("hash", "ab+/cd==")
	f.Set("note", "two words & more")

	encoded := f.Encode()
	parsed, err := url.ParseQuery(encoded)
	if err != nil {
		t.Fatalf("encoded form must parse back: %v", err)
	}
	if parsed.Get("hash") != "ab+/cd==" {
		t.Fatalf("hash round trip mismatch: %q", parsed.Get("hash"))
	}
	if parsed.Get("note") != "two words & more" {
		t.Fatalf("note round trip mismatch: %q", parsed.Get("note"))
	}
}

func TestPayloadPaymentOption(t *testing.T) {
	f := NewFields()
	f.Set("ps", "WEB")
	p := &Payload{Fields: f}

	ps, ok := p.PaymentOption()
	if !ok || ps != "WEB" {
		t.Fatalf("unexpected payment option: %q (%v)", ps, ok)
	}

	if _, ok := (&Payload{Fields: NewFields()}).PaymentOption(); ok {
		t.Fatalf("missing ps must report false")
	}
}
