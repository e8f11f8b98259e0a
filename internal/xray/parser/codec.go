package parser

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
	"unicode/utf8"
)

// DecodeBase64 attempts to decode standard and URL-safe base64 strings,
// automatically fixing missing padding.
func DecodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	// Fix padding
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}

	// Try Standard
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}

	// Try URL-Safe
	b, err = base64.URLEncoding.DecodeString(s)
	if err == nil {
		return b, nil
	}

	return nil, err
}

// PercentDecode decodes every well-formed %XX escape. Malformed escapes and
// '+' are kept literally. A result that is not valid UTF-8 yields "".
func PercentDecode(s string) string {
	decoded, ok := decodePercent(s)
	if !ok {
		return ""
	}
	return decoded
}

// percentDecodePtr decodes an optional value; invalid UTF-8 makes it absent.
func percentDecodePtr(s *string) *string {
	if s == nil {
		return nil
	}
	decoded, ok := decodePercent(*s)
	if !ok {
		return nil
	}
	return strPtr(decoded)
}

func decodePercent(s string) (string, bool) {
	if !strings.Contains(s, "%") {
		return s, utf8.ValidString(s)
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			if v, err := hex.DecodeString(s[i+1 : i+3]); err == nil {
				b.WriteByte(v[0])
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}

	out := b.String()
	return out, utf8.ValidString(out)
}

// QueryPair is one raw key/value token of a query string.
type QueryPair struct {
	Key   string
	Value string
}

// Query is a tokenized query string. Order is preserved and the first
// occurrence of a key wins on lookup.
type Query []QueryPair

// ParseQuery splits a raw query on '&' and each token on its first '='.
// Values stay percent-encoded.
func ParseQuery(raw string) Query {
	var q Query
	if raw == "" {
		return q
	}
	for _, token := range strings.Split(raw, "&") {
		if token == "" {
			continue
		}
		key, value, _ := strings.Cut(token, "=")
		q = append(q, QueryPair{Key: key, Value: value})
	}
	return q
}

// Get returns the raw value for key, or nil when the key is absent.
func (q Query) Get(key string) *string {
	for _, pair := range q {
		if pair.Key == key {
			return strPtr(pair.Value)
		}
	}
	return nil
}
