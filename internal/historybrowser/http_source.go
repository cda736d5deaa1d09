package historybrowser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrTransport wraps every failure to obtain a decoded page: network errors,
// timeouts, non-2xx replies and malformed bodies.
var ErrTransport = errors.New("history transport failure")

const (
	DefaultTimeout = 5 * time.Second

	maxErrorBody = 512
)

// HTTPSource reads pages from the gateway's GET /api/history endpoint.
type HTTPSource struct {
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// NewHTTPSource reads from endpoint, e.g. http://host:8081/api/history.
// A non-positive timeout means DefaultTimeout.
func NewHTTPSource(endpoint string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPSource{
		endpoint: endpoint,
		timeout:  timeout,
		client:   &http.Client{},
	}
}

// FetchHistory GETs one page. Every failure wraps ErrTransport.
func (s *HTTPSource) FetchHistory(ctx context.Context, q url.Values) (HistoryResponse, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return HistoryResponse{}, fmt.Errorf("%w: endpoint: %w", ErrTransport, err)
	}
	u.RawQuery = q.Encode()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return HistoryResponse{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return HistoryResponse{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return HistoryResponse{}, fmt.Errorf("%w: status %d: %s", ErrTransport, resp.StatusCode, body)
	}

	var out HistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return HistoryResponse{}, fmt.Errorf("%w: decode: %w", ErrTransport, err)
	}
	return out, nil
}
