package factory

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"horoscopo/internal/config"
	openaiProvider "horoscopo/internal/provider/openai"
)

const (
	providerName = "openai"

	defaultDialTimeout     = 10 * time.Second
	defaultKeepAlive       = 30 * time.Second
	defaultIdleConnTimeout = 90 * time.Second
)

// NewChatClient constructs the configured chat-completion provider. The
// returned client is shared by all requests.
func NewChatClient(cfg config.ProviderConfig) (*openaiProvider.Provider, error) {
	p, err := openaiProvider.New(providerName, cfg, newHTTPClient(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("initialise %s provider: %w", providerName, err)
	}
	return p, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: defaultDialTimeout, KeepAlive: defaultKeepAlive}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          50,
		IdleConnTimeout:       defaultIdleConnTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
