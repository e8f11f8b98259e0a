package parser

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Parse classifies the link and decodes it into a Profile.
func Parse(raw string) (*Profile, error) {
	raw = FixIllegalUrl(raw)

	protocol, err := Classify(raw)
	if err != nil {
		return nil, err
	}

	var p *Profile
	switch protocol {
	case VLESS:
		p, err = parseVLESS(raw)
	case VMess:
		p, err = parseVMess(raw)
	case Trojan:
		p, err = parseTrojan(raw)
	case Shadowsocks:
		p, err = parseShadowsocks(raw)
	case Socks:
		p, err = parseSocks(raw)
	default:
		return nil, ErrUnrecognizedScheme
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", protocol, err)
	}

	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%s: %w: %v", protocol, ErrMissingRequiredField, err)
	}
	return p, nil
}

// FixIllegalUrl cleans up common issues in pasted links.
func FixIllegalUrl(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return s
}

// link is a share-link payload split into its parts.
type link struct {
	name     string
	query    Query
	userinfo *string
	host     string
	port     uint16
}

// splitLink separates "userinfo@host:port?query#name". The fragment is cut at
// the last '#', the query at the first '?', the userinfo at the first '@'.
func splitLink(data string, requireUserinfo bool) (*link, error) {
	l := &link{}

	if i := strings.LastIndex(data, "#"); i >= 0 {
		l.name = PercentDecode(data[i+1:])
		data = data[:i]
	}

	if before, rawQuery, found := strings.Cut(data, "?"); found {
		l.query = ParseQuery(rawQuery)
		data = before
	}

	if userinfo, hostPort, found := strings.Cut(data, "@"); found {
		l.userinfo = strPtr(userinfo)
		data = hostPort
	} else if requireUserinfo {
		return nil, fmt.Errorf("%w: no '@' found in the address", ErrMalformedAddress)
	}

	host, port, err := parseAuthority(strings.TrimSuffix(data, "/"))
	if err != nil {
		return nil, err
	}
	l.host = host
	l.port = port
	return l, nil
}

// parseAuthority reads "host:port" (IPv6 hosts in brackets). Port is mandatory
// and must be in 1-65535.
func parseAuthority(authority string) (string, uint16, error) {
	u, err := url.Parse("//" + authority)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q: %v", ErrMalformedAddress, authority, err)
	}
	if u.User != nil || (u.Path != "" && u.Path != "/") {
		return "", 0, fmt.Errorf("%w: %q is not host:port", ErrMalformedAddress, authority)
	}

	host := u.Hostname()
	if host == "" {
		return "", 0, fmt.Errorf("%w: missing host in %q", ErrMalformedAddress, authority)
	}

	portStr := u.Port()
	if portStr == "" {
		return "", 0, fmt.Errorf("%w: missing port in %q", ErrMalformedAddress, authority)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil || port == 0 {
		return "", 0, fmt.Errorf("%w: invalid port %q", ErrMalformedAddress, portStr)
	}
	return host, uint16(port), nil
}

// applyQuery copies the recognized query parameters into the profile.
// Unknown parameters are ignored so links from newer generators still work.
func applyQuery(p *Profile, q Query) {
	fields := map[string]**string{
		"security":      &p.Security,
		"sni":           &p.SNI,
		"fp":            &p.Fingerprint,
		"pbk":           &p.PublicKey,
		"sid":           &p.ShortID,
		"flow":          &p.Flow,
		"type":          &p.Network,
		"encryption":    &p.Encryption,
		"headerType":    &p.HeaderType,
		"host":          &p.Host,
		"path":          &p.Path,
		"alpn":          &p.ALPN,
		"authority":     &p.Authority,
		"seed":          &p.Seed,
		"quicSecurity":  &p.QuicSecurity,
		"key":           &p.Key,
		"mode":          &p.Mode,
		"serviceName":   &p.ServiceName,
		"slpn":          &p.ShortALPN,
		"spx":           &p.SpiderX,
		"extra":         &p.Extra,
		"allowInsecure": &p.AllowInsecure,
	}
	for key, dst := range fields {
		*dst = percentDecodePtr(q.Get(key))
	}
}

// --- VLESS / Trojan ---

func parseVLESS(raw string) (*Profile, error) {
	l, err := splitLink(payload(raw), true)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Protocol: VLESS,
		Remarks:  l.name,
		Address:  l.host,
		Port:     l.port,
		UUID:     percentDecodePtr(l.userinfo),
	}
	applyQuery(p, l.query)
	return p, nil
}

func parseTrojan(raw string) (*Profile, error) {
	l, err := splitLink(payload(raw), true)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Protocol: Trojan,
		Remarks:  l.name,
		Address:  l.host,
		Port:     l.port,
		UUID:     l.userinfo,
	}
	applyQuery(p, l.query)
	return p, nil
}

// --- Shadowsocks ---

func parseShadowsocks(raw string) (*Profile, error) {
	l, err := splitLink(payload(raw), true)
	if err != nil {
		return nil, err
	}

	decoded, err := DecodeBase64(PercentDecode(*l.userinfo))
	if err != nil {
		return nil, fmt.Errorf("%w: user info is not base64: %v", ErrInvalidEncoding, err)
	}
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("%w: user info is not valid utf-8", ErrInvalidEncoding)
	}
	method, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return nil, fmt.Errorf("%w: no ':' found in the decoded user info", ErrInvalidEncoding)
	}

	// SIP002 plugin parameters are not forwarded.
	return &Profile{
		Protocol:   Shadowsocks,
		Remarks:    l.name,
		Address:    l.host,
		Port:       l.port,
		Method:     strPtr(PercentDecode(method)),
		UUID:       strPtr(PercentDecode(password)),
		Network:    strPtr("tcp"),
		HeaderType: strPtr("none"),
	}, nil
}

// --- Socks ---

func parseSocks(raw string) (*Profile, error) {
	l, err := splitLink(payload(raw), false)
	if err != nil {
		return nil, err
	}

	p := &Profile{
		Protocol: Socks,
		Remarks:  l.name,
		Address:  l.host,
		Port:     l.port,
		Network:  strPtr("tcp"),
	}

	if l.userinfo == nil {
		return p, nil
	}

	userinfo := PercentDecode(*l.userinfo)
	// Either base64("user:pass") or the literal form
	if decoded, err := DecodeBase64(userinfo); err == nil && utf8.Valid(decoded) && strings.Contains(string(decoded), ":") {
		userinfo = string(decoded)
	}

	username, password, found := strings.Cut(userinfo, ":")
	if !found {
		return nil, fmt.Errorf("%w: socks user info must be user:pass", ErrMalformedAddress)
	}
	p.Username = strPtr(PercentDecode(username))
	p.UUID = strPtr(PercentDecode(password))
	return p, nil
}
