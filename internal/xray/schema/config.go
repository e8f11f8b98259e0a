package schema

// Config is the document handed to the engine via -config.
type Config struct {
	Outbounds []Outbound `json:"outbounds"`
	Inbounds  []Inbound  `json:"inbounds"`
}

type Outbound struct {
	Protocol       string           `json:"protocol"`
	Tag            string           `json:"tag"`
	StreamSettings StreamSettings   `json:"streamSettings"`
	Settings       OutboundSettings `json:"settings"`
}

// OutboundSettings is the protocol-specific server list. The set of
// implementations is closed.
type OutboundSettings interface {
	outboundSettings()
}

// --- vless / vmess ---

type VnextSettings struct {
	Vnext []VnextServer `json:"vnext"`
}

type VnextServer struct {
	Address string      `json:"address"`
	Port    uint16      `json:"port"`
	Users   []VnextUser `json:"users,omitempty"`
}

type VnextUser struct {
	ID         *string `json:"id,omitempty"`
	Flow       *string `json:"flow,omitempty"`
	Encryption string  `json:"encryption"`
	Level      int     `json:"level"`
	Security   *string `json:"security,omitempty"`
}

func (*VnextSettings) outboundSettings() {}

// --- shadowsocks ---

type ShadowsocksSettings struct {
	Servers []ShadowsocksServer `json:"servers"`
}

type ShadowsocksServer struct {
	Address  string  `json:"address"`
	Port     uint16  `json:"port"`
	Password *string `json:"password,omitempty"`
	Level    int     `json:"level"`
	Method   *string `json:"method,omitempty"`
}

func (*ShadowsocksSettings) outboundSettings() {}

// --- trojan ---

type TrojanSettings struct {
	Servers []TrojanServer `json:"servers"`
}

type TrojanServer struct {
	Address  string  `json:"address"`
	Port     uint16  `json:"port"`
	Password *string `json:"password,omitempty"`
	Level    int     `json:"level"`
}

func (*TrojanSettings) outboundSettings() {}

// --- socks ---

type SocksSettings struct {
	Servers []SocksServer `json:"servers"`
}

type SocksServer struct {
	Address string      `json:"address"`
	Port    uint16      `json:"port"`
	Level   int         `json:"level"`
	Users   []SocksUser `json:"users,omitempty"`
}

type SocksUser struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

func (*SocksSettings) outboundSettings() {}

// --- inbounds ---

type Inbound struct {
	Protocol string            `json:"protocol"`
	Port     uint16            `json:"port"`
	Tag      string            `json:"tag"`
	Listen   string            `json:"listen"`
	Settings *InboundSettings  `json:"settings,omitempty"`
	Sniffing *SniffingSettings `json:"sniffing,omitempty"`
}

type InboundSettings struct {
	UDP bool `json:"udp"`
}

type SniffingSettings struct {
	Enabled         bool     `json:"enabled"`
	RouteOnly       bool     `json:"routeOnly"`
	MetadataOnly    bool     `json:"metadataOnly"`
	DestOverride    []string `json:"destOverride,omitempty"`
	DomainsExcluded []string `json:"domainsExcluded,omitempty"`
}

// Metadata is the preview view of a link, without settings.
type Metadata struct {
	Name     string  `json:"name"`
	Host     *string `json:"host"`
	Address  string  `json:"address"`
	Port     uint16  `json:"port"`
	Protocol string  `json:"protocol"`
}
