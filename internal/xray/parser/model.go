package parser

// Profile is the normalized record decoded from any share link.
// It sits between raw URIs and the xray outbound config.
//
// Optional fields are pointers: nil means the link did not carry the value,
// a pointer to "" means it carried an empty one. Downstream builders treat
// the two differently.
type Profile struct {
	Protocol Protocol
	Remarks  string

	// Connection Details
	Address string `validate:"required"`
	Port    uint16 `validate:"required"`

	// Authentication
	UUID          *string // VLESS/VMess id, Trojan/SS/Socks password
	Username      *string // Socks
	Method        *string // SS cipher
	Encryption    *string // VLESS encryption
	VnextSecurity *string // VMess "scy"
	Flow          *string // xtls-rprx-vision

	// Transport (streamSettings)
	Network      *string // tcp, ws, grpc, quic, kcp, xhttp
	HeaderType   *string
	Host         *string
	Path         *string
	Authority    *string // gRPC authority
	ServiceName  *string // gRPC serviceName
	Mode         *string // XHTTP mode
	Extra        *string // XHTTP extra, raw JSON
	Seed         *string // KCP seed
	QuicSecurity *string
	Key          *string // QUIC key

	// Security (TLS/REALITY)
	Security      *string // tls, reality
	SNI           *string
	Fingerprint   *string // fp
	ALPN          *string
	ShortALPN     *string // slpn
	AllowInsecure *string // "true" or "1" is truthy

	// REALITY
	PublicKey *string // pbk
	ShortID   *string // sid
	SpiderX   *string // spx
}

// Str returns the value of an optional field, or "" when absent.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	return &s
}
