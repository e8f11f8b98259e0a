package xray

import "v2parser/internal/xray/schema"

const (
	ListenAddress = "127.0.0.1"
	SocksInTag    = "socks-in"
	HTTPInTag     = "http-in"
)

// InboundOptions selects the local listeners. A nil port means no listener.
type InboundOptions struct {
	SocksPort *uint16
	HTTPPort  *uint16
}

// GenerateInbounds returns the requested listeners, SOCKS first.
func GenerateInbounds(opts InboundOptions) []schema.Inbound {
	inbounds := []schema.Inbound{}
	if opts.SocksPort != nil {
		inbounds = append(inbounds, socksInbound(*opts.SocksPort))
	}
	if opts.HTTPPort != nil {
		inbounds = append(inbounds, httpInbound(*opts.HTTPPort))
	}
	return inbounds
}

func socksInbound(port uint16) schema.Inbound {
	return schema.Inbound{
		Protocol: "socks",
		Port:     port,
		Tag:      SocksInTag,
		Listen:   ListenAddress,
		Settings: &schema.InboundSettings{UDP: true},
		Sniffing: sniffing(),
	}
}

func httpInbound(port uint16) schema.Inbound {
	return schema.Inbound{
		Protocol: "http",
		Port:     port,
		Tag:      HTTPInTag,
		Listen:   ListenAddress,
		Sniffing: sniffing(),
	}
}

func sniffing() *schema.SniffingSettings {
	return &schema.SniffingSettings{
		Enabled:      true,
		RouteOnly:    true,
		MetadataOnly: false,
		DestOverride: []string{"http", "tls", "quic"},
	}
}
