package go_payhost

import (
	"net/url"
	"strings"
)

// Fields is an insertion-ordered string:string mapping.
//
// Order matters twice: it is the order the values were signed in, and the
// order the form body is encoded in.
type Fields struct {
	keys   []string
	values map[string]string
}

func NewFields() *Fields {
	return &Fields{values: map[string]string{}}
}

// Set appends key with value, or overwrites it in place if already present.
func (f *Fields) Set(key, value string) {
	if f.values == nil {
		f.values = map[string]string{}
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

func (f *Fields) Get(key string) (string, bool) {
	if f == nil || f.values == nil {
		return "", false
	}
	v, ok := f.values[key]
	return v, ok
}

func (f *Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Keys returns the field keys in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Encode serializes the fields as an application/x-www-form-urlencoded body,
// preserving insertion order (url.Values would sort keys).
func (f *Fields) Encode() string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	for i, k := range f.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(f.values[k]))
	}
	return b.String()
}

// Map returns a plain copy of the fields, losing order.
func (f *Fields) Map() map[string]string {
	if f == nil {
		return nil
	}
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// Payload is a fully built, ready-to-send gateway request.
//
// It is immutable after construction: Fields contains every request key
// including hash (and, for purchases, the unsigned view_mode), Hash always
// equals the value stored under the hash key, and URL is the absolute
// endpoint. Send it with Client.Execute or any transport that can POST a
// form-encoded body.
type Payload struct {
	Fields *Fields
	Hash   string
	URL    string
	Method string
}

// PaymentOption returns the ps field value, if present.
func (p *Payload) PaymentOption() (string, bool) {
	if p == nil {
		return "", false
	}
	return p.Fields.Get("ps")
}
