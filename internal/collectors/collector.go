package collectors

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"v2parser/internal/xray"
	"v2parser/internal/xray/parser"
)

// Options tune how a collector reaches its source.
type Options struct {
	Timeout time.Duration
	// Proxy is an optional http://, https:// or socks5:// URL used for remote sources.
	Proxy string
}

// Collector reads share links from one kind of source.
type Collector interface {
	Collect(ctx context.Context, target string, opts Options) ([]string, error)
}

type Factory func() Collector

var registry = make(map[string]Factory)

func Register(name string, factory Factory) {
	registry[name] = factory
}

func Get(name string) (Collector, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("collector plugin '%s' not found", name)
	}
	return factory(), nil
}

// KindOf names the collector that handles target.
func KindOf(target string) string {
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return "http"
	}
	return "file"
}

// ExtractFromBody returns the links in a subscription body. Bodies that are a
// single base64 blob (the usual subscription format) are decoded first.
func ExtractFromBody(body []byte) []string {
	text := strings.TrimSpace(string(body))
	if !strings.Contains(text, "://") {
		compact := strings.Join(strings.Fields(text), "")
		if decoded, err := parser.DecodeBase64(compact); err == nil && utf8.Valid(decoded) {
			text = string(decoded)
		}
	}
	return xray.ExtractLinks(text)
}
