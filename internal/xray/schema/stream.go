package schema

import "encoding/json"

// Transport is one of the mutually exclusive transport blocks of streamSettings.
// A nil Transport emits no block.
type Transport interface {
	transportKey() string
}

// Security is one of the mutually exclusive security blocks of streamSettings.
// A nil Security emits no block.
type Security interface {
	securityKey() string
}

// StreamSettings holds at most one transport and at most one security block
// by construction.
type StreamSettings struct {
	Network           *string
	Security          *string
	TransportSettings Transport
	SecuritySettings  Security
}

func (s StreamSettings) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{}
	if s.Network != nil {
		out["network"] = *s.Network
	}
	if s.Security != nil {
		out["security"] = *s.Security
	}
	if s.TransportSettings != nil {
		out[s.TransportSettings.transportKey()] = s.TransportSettings
	}
	if s.SecuritySettings != nil {
		out[s.SecuritySettings.securityKey()] = s.SecuritySettings
	}
	return marshal(out)
}

// --- Transports ---

type HeaderObject struct {
	Type *string `json:"type,omitempty"`
}

type TCPSettings struct {
	Header              *HeaderObject `json:"header,omitempty"`
	AcceptProxyProtocol *bool         `json:"acceptProxyProtocol,omitempty"`
}

func (*TCPSettings) transportKey() string { return "tcpSettings" }

type WSSettings struct {
	// Capitalized key is what the engine schema expects here.
	Host                *string `json:"Host,omitempty"`
	Path                *string `json:"path,omitempty"`
	AcceptProxyProtocol *bool   `json:"acceptProxyProtocol,omitempty"`
}

func (*WSSettings) transportKey() string { return "wsSettings" }

type GRPCSettings struct {
	Authority   *string `json:"authority,omitempty"`
	MultiMode   bool    `json:"multiMode"`
	ServiceName *string `json:"serviceName,omitempty"`
}

func (*GRPCSettings) transportKey() string { return "grpcSettings" }

type QUICSettings struct {
	Header   HeaderObject `json:"header"`
	Security string       `json:"security"`
	Key      string       `json:"key"`
}

func (*QUICSettings) transportKey() string { return "quicSettings" }

// KCPSettings leaves every tuning knob unset so the engine defaults apply.
type KCPSettings struct {
	MTU              *uint32 `json:"mtu,omitempty"`
	TTI              *uint32 `json:"tti,omitempty"`
	UplinkCapacity   *uint32 `json:"uplinkCapacity,omitempty"`
	DownlinkCapacity *uint32 `json:"downlinkCapacity,omitempty"`
	Congestion       *bool   `json:"congestion,omitempty"`
	ReadBufferSize   *uint32 `json:"readBufferSize,omitempty"`
	WriteBufferSize  *uint32 `json:"writeBufferSize,omitempty"`
	Seed             *string `json:"seed,omitempty"`
}

func (*KCPSettings) transportKey() string { return "kcpSettings" }

type XHTTPSettings struct {
	Host  *string         `json:"host,omitempty"`
	Path  *string         `json:"path,omitempty"`
	Mode  *string         `json:"mode,omitempty"`
	Extra json.RawMessage `json:"extra,omitempty"`
}

func (*XHTTPSettings) transportKey() string { return "xhttpSettings" }

// --- Security ---

type TLSSettings struct {
	ServerName    *string  `json:"serverName,omitempty"`
	AllowInsecure bool     `json:"allowInsecure"`
	ALPN          []string `json:"alpn,omitempty"`
	Fingerprint   *string  `json:"fingerprint,omitempty"`
}

func (*TLSSettings) securityKey() string { return "tlsSettings" }

type RealitySettings struct {
	PublicKey   *string `json:"publicKey,omitempty"`
	ServerName  *string `json:"serverName,omitempty"`
	ShortID     *string `json:"shortId,omitempty"`
	SpiderX     string  `json:"spiderX"`
	Fingerprint *string `json:"fingerprint,omitempty"`
}

func (*RealitySettings) securityKey() string { return "realitySettings" }
