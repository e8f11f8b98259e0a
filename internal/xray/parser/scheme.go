package parser

import (
	"fmt"
	"strings"
)

// Protocol identifies one of the supported outbound protocols.
type Protocol string

const (
	VLESS       Protocol = "vless"
	VMess       Protocol = "vmess"
	Trojan      Protocol = "trojan"
	Shadowsocks Protocol = "shadowsocks"
	Socks       Protocol = "socks"
)

type schemePrefix struct {
	prefix   string
	protocol Protocol
}

// Order matters only for readability; no prefix is a prefix of another.
var schemes = []schemePrefix{
	{"vmess://", VMess},
	{"vless://", VLESS},
	{"ss://", Shadowsocks},
	{"socks5://", Socks},
	{"socks4://", Socks},
	{"socks://", Socks},
	{"trojan://", Trojan},
}

// Recognized but not convertible.
var unsupportedSchemes = []string{"http://"}

// Classify maps the URI prefix to a protocol. Matching is case-sensitive and
// anchored at the start, so anything in front of the scheme fails.
func Classify(uri string) (Protocol, error) {
	for _, s := range schemes {
		if strings.HasPrefix(uri, s.prefix) {
			return s.protocol, nil
		}
	}
	for _, prefix := range unsupportedSchemes {
		if strings.HasPrefix(uri, prefix) {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, strings.TrimSuffix(prefix, "://"))
		}
	}
	return "", ErrUnrecognizedScheme
}

// payload returns everything after the first "://".
func payload(uri string) string {
	_, rest, _ := strings.Cut(uri, "://")
	return rest
}
