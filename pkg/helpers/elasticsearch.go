package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

const esTimeout = 5 * time.Second

// NewESClient builds the client backing the user search index. Retries are
// limited to transient statuses so a degraded cluster fails fast instead of
// stalling request handlers; indexing callers already treat failures as
// best-effort.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses:           addrs,
		Username:            username,
		Password:            password,
		MaxRetries:          2,
		RetryOnStatus:       []int{http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout},
		CompressRequestBody: true,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: esTimeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: esTimeout}).DialContext,
		},
	})
}
