package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// parseVMess handles both the legacy base64 JSON form and the
// "uuid@host:port?query#name" form. The JSON form wins whenever the payload
// is valid base64; a base64 payload that is not JSON is an error, not a
// reason to try the URI form.
func parseVMess(raw string) (*Profile, error) {
	data := payload(raw)

	decoded, err := DecodeBase64(PercentDecode(data))
	if err != nil || len(decoded) == 0 {
		return parseVMessURI(data)
	}
	return parseVMessJSON(decoded)
}

func parseVMessURI(data string) (*Profile, error) {
	l, err := splitLink(data, true)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Protocol: VMess,
		Remarks:  l.name,
		Address:  l.host,
		Port:     l.port,
		UUID:     percentDecodePtr(l.userinfo),
	}
	applyQuery(p, l.query)
	return p, nil
}

func parseVMessJSON(decoded []byte) (*Profile, error) {
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("%w: base64 payload is not valid utf-8", ErrInvalidEncoding)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(decoded, &obj); err != nil {
		return nil, fmt.Errorf("%w: vmess json: %v", ErrInvalidEncoding, err)
	}

	str := func(key string) *string {
		if v, ok := obj[key].(string); ok {
			return strPtr(v)
		}
		return nil
	}
	decodedStr := func(key string) *string {
		return percentDecodePtr(str(key))
	}

	p := &Profile{
		Protocol:      VMess,
		Remarks:       Str(decodedStr("ps")),
		Address:       Str(str("add")),
		UUID:          str("id"),
		ALPN:          decodedStr("alpn"),
		Path:          decodedStr("path"),
		Authority:     decodedStr("host"),
		Security:      str("tls"),
		VnextSecurity: str("scy"),
		SNI:           str("sni"),
		Fingerprint:   decodedStr("fp"),
		Network:       decodedStr("net"),
		HeaderType:    decodedStr("type"),
		Host:          decodedStr("host"),
		Mode:          decodedStr("type"),
		ServiceName:   decodedStr("path"),

		// Not part of the usual vmess JSON; present only in hand-made links.
		PublicKey: decodedStr("pbk"),
		ShortID:   decodedStr("sid"),
		Flow:      decodedStr("flow"),
		Seed:      decodedStr("seed"),
		ShortALPN: decodedStr("slpn"),
		SpiderX:   decodedStr("spx"),
		Extra:     decodedStr("extra"),
	}

	port, err := jsonPort(obj["port"])
	if err != nil {
		return nil, err
	}
	p.Port = port

	return p, nil
}

// jsonPort accepts the port as a JSON string or number. Absence yields 0,
// which the required-field check reports; an explicit 0 is malformed.
func jsonPort(v interface{}) (uint16, error) {
	var s string
	switch t := v.(type) {
	case nil:
		return 0, nil
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return 0, fmt.Errorf("%w: port has unexpected type %T", ErrMalformedAddress, v)
	}

	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil || port == 0 {
		return 0, fmt.Errorf("%w: port %q is not a number", ErrMalformedAddress, s)
	}
	return uint16(port), nil
}
