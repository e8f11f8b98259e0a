package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"v2parser/internal/collectors"
	"v2parser/internal/logger"

	"golang.org/x/net/proxy"
)

const defaultTimeout = 120 * time.Second

// maxBodySize caps subscription downloads.
const maxBodySize = 16 << 20

type URLCollector struct{}

func (c *URLCollector) Collect(ctx context.Context, target string, opts collectors.Options) ([]string, error) {
	// 1. Setup Client
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := &http.Client{
		Timeout: timeout,
	}

	// 2. Route through a proxy if asked
	if opts.Proxy != "" {
		transport, err := proxyTransport(opts.Proxy)
		if err != nil {
			return nil, err
		}
		client.Transport = transport
		logger.Log.Debugf("HTTP Collector using proxy: %s", opts.Proxy)
	}

	// 3. Fetch
	logger.Log.Debugf("Fetching URL: %s", target)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status code: %d", resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return collectors.ExtractFromBody(bodyBytes), nil
}

// proxyTransport uses net/http's own proxy support for http(s) proxies and
// an x/net SOCKS dialer for socks5 ones.
func proxyTransport(proxyURL string) (*http.Transport, error) {
	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy url: %w", err)
	}

	switch u.Scheme {
	case "http", "https":
		return &http.Transport{Proxy: http.ProxyURL(u)}, nil
	case "socks5", "socks5h":
		d, err := proxy.FromURL(u, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url: %w", err)
		}
		transport := &http.Transport{}
		if cd, ok := d.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return d.Dial(network, addr)
			}
		}
		return transport, nil
	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %q", u.Scheme)
	}
}

func init() {
	collectors.Register("http", func() collectors.Collector {
		return &URLCollector{}
	})
}
