package schema

import (
	"bytes"
	"encoding/json"
)

// Marshal renders v as single-line JSON. HTML characters are left unescaped
// so paths and query strings survive byte for byte.
func Marshal(v interface{}) (string, error) {
	b, err := marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
