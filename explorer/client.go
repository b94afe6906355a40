// Package explorer consumes the block-explorer transaction history API.
package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	logging "github.com/ipfs/go-log/v2"
)

var logger = logging.Logger("explorer")

// FetchError means the explorer was never reached or the body could not be
// read: DNS, connect, timeout.
type FetchError struct {
	Cause error
}

func (e *FetchError) Error() string { return e.Cause.Error() }
func (e *FetchError) Unwrap() error { return e.Cause }

// ParseError means the explorer answered but the body is not JSON.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string { return e.Cause.Error() }
func (e *ParseError) Unwrap() error { return e.Cause }

// Client fetches transfer history for a token. The token identifier is an
// opaque string passed through verbatim, and so is the response body.
type Client interface {
	TokenTransfers(ctx context.Context, token string, limit int) (json.RawMessage, error)
}

type HTTPClient struct {
	endpoint string
	client   *http.Client
}

func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// TokenTransfers relays GET /token/transfers. Whatever JSON the explorer
// returns is handed back untouched, whatever its HTTP status was.
func (h *HTTPClient) TokenTransfers(ctx context.Context, token string, limit int) (json.RawMessage, error) {
	reqURL := fmt.Sprintf("%s/token/transfers?token=%s&limit=%d",
		h.endpoint, url.QueryEscape(token), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Cause: err}
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &FetchError{Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Cause: err}
	}
	logger.Debugf("explorer answered %d with %d bytes for token %s", resp.StatusCode, len(body), token)

	var data json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, &ParseError{Cause: err}
	}
	return data, nil
}
