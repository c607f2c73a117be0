package customHttpClient

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/quizcrafter/internal/config"
)

var (
	once   sync.Once
	client *http.Client
)

// Client returns the shared client used by the Ollama and OpenAI backends so
// embedding and generation calls reuse connections. It sets no overall
// timeout, generation is bounded by its own context.
func Client() *http.Client {
	once.Do(func() {
		client = &http.Client{Transport: newTransport()}
	})
	return client
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
	}
}
