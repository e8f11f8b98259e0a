package xray

import (
	"encoding/json"
	"fmt"

	"v2parser/internal/logger"
	"v2parser/internal/xray/parser"
	"v2parser/internal/xray/schema"
)

// OutboundTag is the routing tag of the generated outbound.
const OutboundTag = "proxy"

// ToOutbound converts a raw link string into an xray outbound.
func ToOutbound(raw string) (*schema.Outbound, error) {
	// 1. Parse into normalized Profile
	p, err := parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	logger.Log.Debugf("Decoded %s link for %s:%d", p.Protocol, p.Address, p.Port)

	return BuildOutbound(p)
}

// BuildOutbound maps a decoded profile onto the outbound schema.
func BuildOutbound(p *parser.Profile) (*schema.Outbound, error) {
	var settings schema.OutboundSettings

	switch p.Protocol {
	case parser.VLESS:
		settings = buildVnext(p, false)
	case parser.VMess:
		settings = buildVnext(p, true)
	case parser.Trojan:
		settings = buildTrojan(p)
	case parser.Shadowsocks:
		settings = buildShadowsocks(p)
	case parser.Socks:
		settings = buildSocks(p)
	default:
		return nil, fmt.Errorf("protocol conversion not implemented: %s", p.Protocol)
	}

	return &schema.Outbound{
		Protocol:       string(p.Protocol),
		Tag:            OutboundTag,
		StreamSettings: buildStreamSettings(p),
		Settings:       settings,
	}, nil
}

// --- Settings Builders ---

// buildVnext serves VLESS and VMess; only VMess carries the per-user security.
func buildVnext(p *parser.Profile, withSecurity bool) *schema.VnextSettings {
	encryption := "none"
	if p.Encryption != nil {
		encryption = *p.Encryption
	}

	user := schema.VnextUser{
		ID:         p.UUID,
		Flow:       p.Flow,
		Encryption: encryption,
		Level:      0,
	}
	if withSecurity {
		user.Security = p.VnextSecurity
	}

	return &schema.VnextSettings{
		Vnext: []schema.VnextServer{{
			Address: p.Address,
			Port:    p.Port,
			Users:   []schema.VnextUser{user},
		}},
	}
}

func buildTrojan(p *parser.Profile) *schema.TrojanSettings {
	return &schema.TrojanSettings{
		Servers: []schema.TrojanServer{{
			Address:  p.Address,
			Port:     p.Port,
			Password: p.UUID,
			Level:    0,
		}},
	}
}

func buildShadowsocks(p *parser.Profile) *schema.ShadowsocksSettings {
	return &schema.ShadowsocksSettings{
		Servers: []schema.ShadowsocksServer{{
			Address:  p.Address,
			Port:     p.Port,
			Password: p.UUID,
			Level:    0,
			Method:   p.Method,
		}},
	}
}

func buildSocks(p *parser.Profile) *schema.SocksSettings {
	server := schema.SocksServer{
		Address: p.Address,
		Port:    p.Port,
		Level:   0,
	}
	// Anonymous unless both halves of the credential are present
	if p.Username != nil && p.UUID != nil {
		server.Users = []schema.SocksUser{{User: *p.Username, Pass: *p.UUID}}
	}

	return &schema.SocksSettings{
		Servers: []schema.SocksServer{server},
	}
}

// --- Stream Settings ---

func buildStreamSettings(p *parser.Profile) schema.StreamSettings {
	return schema.StreamSettings{
		Network:           p.Network,
		Security:          p.Security,
		TransportSettings: buildTransport(p),
		SecuritySettings:  buildSecurity(p),
	}
}

func buildTransport(p *parser.Profile) schema.Transport {
	switch parser.Str(p.Network) {
	case "tcp":
		header := "none"
		if p.HeaderType != nil {
			header = *p.HeaderType
		}
		return &schema.TCPSettings{
			Header: &schema.HeaderObject{Type: &header},
		}
	case "ws":
		return &schema.WSSettings{
			Host: p.Host,
			Path: p.Path,
		}
	case "grpc":
		return &schema.GRPCSettings{
			Authority:   p.Authority,
			MultiMode:   false,
			ServiceName: p.ServiceName,
		}
	case "quic":
		// Link-supplied QUIC details are not forwarded
		none := "none"
		return &schema.QUICSettings{
			Header:   schema.HeaderObject{Type: &none},
			Security: "none",
			Key:      "",
		}
	case "kcp":
		return &schema.KCPSettings{
			Seed: p.Seed,
		}
	case "xhttp":
		return &schema.XHTTPSettings{
			Host:  p.Host,
			Path:  p.Path,
			Mode:  p.Mode,
			Extra: jsonObject(p.Extra),
		}
	}
	return nil
}

func buildSecurity(p *parser.Profile) schema.Security {
	switch parser.Str(p.Security) {
	case "tls":
		tls := &schema.TLSSettings{
			ServerName:    p.SNI,
			Fingerprint:   p.Fingerprint,
			AllowInsecure: isTruthy(p.AllowInsecure),
		}
		if p.ALPN != nil {
			tls.ALPN = []string{*p.ALPN}
		}
		return tls
	case "reality":
		return &schema.RealitySettings{
			PublicKey:   p.PublicKey,
			ServerName:  p.SNI,
			ShortID:     p.ShortID,
			SpiderX:     "",
			Fingerprint: p.Fingerprint,
		}
	}
	return nil
}

// --- Internal Helper Functions ---

func isTruthy(s *string) bool {
	v := parser.Str(s)
	return v == "true" || v == "1"
}

// jsonObject returns s when it holds a JSON object, nil otherwise.
func jsonObject(s *string) json.RawMessage {
	if s == nil {
		return nil
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(*s), &obj); err != nil || obj == nil {
		logger.Log.Debugf("Dropping xhttp extra: not a JSON object")
		return nil
	}
	return json.RawMessage(*s)
}
