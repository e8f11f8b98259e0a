package xray

import (
	"v2parser/internal/xray/parser"
	"v2parser/internal/xray/schema"
)

// BuildConfig produces the full engine config for one link.
func BuildConfig(raw string, opts InboundOptions) (*schema.Config, error) {
	outbound, err := ToOutbound(raw)
	if err != nil {
		return nil, err
	}

	return &schema.Config{
		Outbounds: []schema.Outbound{*outbound},
		Inbounds:  GenerateInbounds(opts),
	}, nil
}

// BuildMetadata produces the preview view of a link.
func BuildMetadata(raw string) (*schema.Metadata, error) {
	p, err := parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	return MetadataOf(p), nil
}

// MetadataOf projects a decoded profile. Host is the link's host value,
// falling back to the SNI when the link has none, and null when both are absent.
func MetadataOf(p *parser.Profile) *schema.Metadata {
	host := p.Host
	if host == nil {
		host = p.SNI
	}
	return &schema.Metadata{
		Name:     p.Remarks,
		Host:     host,
		Address:  p.Address,
		Port:     p.Port,
		Protocol: string(p.Protocol),
	}
}

// GenerateJSON is BuildConfig followed by serialization.
func GenerateJSON(raw string, opts InboundOptions) (string, error) {
	cfg, err := BuildConfig(raw, opts)
	if err != nil {
		return "", err
	}
	return schema.Marshal(cfg)
}

// GenerateMetadataJSON is BuildMetadata followed by serialization.
func GenerateMetadataJSON(raw string) (string, error) {
	meta, err := BuildMetadata(raw)
	if err != nil {
		return "", err
	}
	return schema.Marshal(meta)
}
