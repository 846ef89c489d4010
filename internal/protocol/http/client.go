package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"github.com/sadopc/nanoman/internal/protocol"
)

// DefaultTimeout bounds a request when the context carries no deadline.
const DefaultTimeout = 10 * time.Second

// ProxyConfig holds proxy settings.
type ProxyConfig struct {
	URL     string // http://, https://, socks5:// or socks5h:// proxy URL
	NoProxy string // comma-separated list of hosts to bypass proxy
}

// Client implements protocol.Transport over net/http. It follows the
// standard library's default redirect policy and keeps no cookies.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout time.Duration
	proxy   *ProxyConfig
}

// WithTimeout sets the fallback timeout used when the context has no
// deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithProxy routes requests through proxyURL unless the host matches
// noProxy. An empty proxyURL disables proxying.
func WithProxy(proxyURL, noProxy string) Option {
	return func(o *clientOptions) {
		if proxyURL == "" {
			o.proxy = nil
			return
		}
		o.proxy = &ProxyConfig{URL: proxyURL, NoProxy: noProxy}
	}
}

// New creates a new HTTP client.
func New(opts ...Option) (*Client, error) {
	o := clientOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	transport, err := buildTransport(o.proxy)
	if err != nil {
		return nil, fmt.Errorf("configuring transport: %w", err)
	}
	return &Client{
		httpClient: &http.Client{Transport: transport},
		timeout:    o.timeout,
	}, nil
}

// Do sends req and reads the full response. Headers are added in order and
// repeated names are all sent. A Host header overrides the request host.
func (c *Client) Do(ctx context.Context, req protocol.Request) (*protocol.Response, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if req.Body != nil {
		body = strings.NewReader(*req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(req.Method), req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for _, h := range req.Headers {
		if strings.EqualFold(h.Name, "Host") {
			if httpReq.Host == httpReq.URL.Host {
				httpReq.Host = h.Value
			}
			continue
		}
		httpReq.Header.Add(h.Name, h.Value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	return &protocol.Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		Elapsed:     duration,
		Headers:     flattenHeaders(resp.Header),
		Body:        respBody,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        int64(len(respBody)),
		Proto:       resp.Proto,
	}, nil
}

// flattenHeaders converts a header map into an ordered list. net/http does
// not keep wire order across names, so names are sorted; values of one name
// keep their received order.
func flattenHeaders(h http.Header) protocol.Headers {
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	var out protocol.Headers
	for _, name := range names {
		for _, v := range h[name] {
			out = append(out, protocol.Header{Name: name, Value: v})
		}
	}
	return out
}

// buildTransport creates an http.Transport configured with proxy settings.
func buildTransport(conf *ProxyConfig) (http.RoundTripper, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	if conf == nil {
		return transport, nil
	}

	parsed, err := url.Parse(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy URL: %w", err)
	}
	noProxyHosts := parseNoProxy(conf.NoProxy)

	switch parsed.Scheme {
	case "socks5", "socks5h":
		var auth *proxy.Auth
		if parsed.User != nil {
			password, _ := parsed.User.Password()
			auth = &proxy.Auth{
				User:     parsed.User.Username(),
				Password: password,
			}
		}
		dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("creating SOCKS5 dialer: %w", err)
		}
		direct := &net.Dialer{Timeout: 30 * time.Second}
		transport.Proxy = nil
		transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, _, _ := net.SplitHostPort(addr)
			if shouldBypassProxy(host, noProxyHosts) {
				return direct.DialContext(ctx, network, addr)
			}
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, addr)
			}
			return dialer.Dial(network, addr)
		}
	case "http", "https":
		transport.Proxy = func(r *http.Request) (*url.URL, error) {
			if shouldBypassProxy(r.URL.Hostname(), noProxyHosts) {
				return nil, nil
			}
			return parsed, nil
		}
	default:
		return nil, fmt.Errorf("unsupported proxy scheme: %s", parsed.Scheme)
	}
	return transport, nil
}

// parseNoProxy splits a comma-separated no-proxy string into trimmed host entries.
func parseNoProxy(noProxy string) []string {
	parts := strings.Split(noProxy, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			hosts = append(hosts, strings.ToLower(p))
		}
	}
	return hosts
}

// shouldBypassProxy checks whether a host should bypass the proxy.
func shouldBypassProxy(host string, noProxyHosts []string) bool {
	host = strings.ToLower(host)
	for _, h := range noProxyHosts {
		if h == host {
			return true
		}
		// Support wildcard suffix matching (e.g., .example.com)
		if strings.HasPrefix(h, ".") && strings.HasSuffix(host, h) {
			return true
		}
	}
	return false
}
