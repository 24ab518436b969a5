package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/uniedit/anet/internal/infra/config"
)

// New creates an HTTP client with pooled connections. A positive timeout
// overrides the configured response timeout.
func New(cfg config.HTTPClientConfig, timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: cfg.KeepAlive,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}

	if timeout <= 0 {
		timeout = cfg.ResponseTimeout
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
