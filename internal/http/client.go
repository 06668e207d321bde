// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package http

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"runtime"
	"time"

	"github.com/wneessen/mapviewer/internal/logger"
)

const (
	// DefaultTimeout is the default timeout value for the HTTPClient
	DefaultTimeout = time.Second * 10

	// MaxBodySize limits the amount of data read from a single response
	MaxBodySize = 16 << 20
)

var (
	// version is the version of the application (will be set at build time)
	version = "dev"
	// UserAgent is the User-Agent that the HTTP client sends with API requests
	UserAgent = fmt.Sprintf("Mozilla/5.0 (%s; %s) mapviewer/%s (+https://github.com/wneessen/mapviewer/)",
		runtime.GOOS,
		runtime.GOARCH,
		version,
	)

	ErrNonPointerTarget = errors.New("target must be a non-nil pointer")
	// ErrNetwork is wrapped by all errors caused by the transport, i.e. the request never
	// produced an HTTP response.
	ErrNetwork = errors.New("network error")
	// ErrDecode is wrapped by errors caused by a response body that could not be decoded.
	ErrDecode = errors.New("failed to decode response")
	// ErrEmptyBody is returned if a binary response did not carry any data.
	ErrEmptyBody = errors.New("empty response body")
)

// StatusError is returned if the server answered with a non-2xx status code.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("unexpected HTTP status: %s", e.Status)
	}
	return fmt.Sprintf("unexpected HTTP status: %d", e.StatusCode)
}

// Temporary reports whether the status indicates a condition worth retrying.
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// Client is a type wrapper for the Go stdlib http.Client and the Logger
type Client struct {
	*http.Client
	logger *logger.Logger
}

// New returns a new HTTP client
func New(logger *logger.Logger) *Client {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
	httpTransport := &http.Transport{TLSClientConfig: tlsConfig, Proxy: http.ProxyFromEnvironment}
	httpClient := &http.Client{
		Timeout:   DefaultTimeout,
		Transport: httpTransport,
	}
	return &Client{httpClient, logger}
}

// Get performs a HTTP GET request for the given URL and json-unmarshals the response
// into target
func (h *Client) Get(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string) (int, error) {
	return h.GetWithTimeout(ctx, endpoint, target, query, headers, DefaultTimeout)
}

// GetWithTimeout performs a HTTP GET request for the given URL and timeout and JSON-unmarshals
// the response into target. Non-2xx responses are returned as *StatusError.
func (h *Client) GetWithTimeout(ctx context.Context, endpoint string, target any, query url.Values, headers map[string]string, timeout time.Duration) (int, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return 0, ErrNonPointerTarget
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	response, err := h.do(ctx, endpoint, query, headers)
	if err != nil {
		return 0, err
	}
	defer h.closeBody(response.Body)

	if err = checkStatus(response); err != nil {
		return response.StatusCode, err
	}

	// Unmarshal the JSON API response into target
	if err = json.NewDecoder(io.LimitReader(response.Body, MaxBodySize)).Decode(target); err != nil {
		return response.StatusCode, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return response.StatusCode, nil
}

// GetBytes performs a single HTTP GET request for the given URL and returns the raw
// response body.
func (h *Client) GetBytes(ctx context.Context, endpoint string, query url.Values, headers map[string]string) ([]byte, error) {
	return h.GetBytesWithTimeout(ctx, endpoint, query, headers, DefaultTimeout)
}

// GetBytesWithTimeout is GetBytes with a custom timeout for the request.
func (h *Client) GetBytesWithTimeout(ctx context.Context, endpoint string, query url.Values, headers map[string]string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	response, err := h.do(ctx, endpoint, query, headers)
	if err != nil {
		return nil, err
	}
	defer h.closeBody(response.Body)

	if err = checkStatus(response); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyBody
	}
	return data, nil
}

func (h *Client) do(ctx context.Context, endpoint string, query url.Values, headers map[string]string) (*http.Response, error) {
	// Prepare URL and query parameters
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if len(query) > 0 {
		reqURL.RawQuery = query.Encode()
	}

	// Prepare HTTP request
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed create new HTTP request with context: %w", err)
	}
	request.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		request.Header.Set(k, v)
	}

	// Execute HTTP request
	response, err := h.Do(request)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to perform HTTP request: %w", ErrNetwork, err)
	}
	if response == nil {
		return nil, fmt.Errorf("%w: nil response received", ErrNetwork)
	}
	return response, nil
}

func (h *Client) closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		h.logger.Error("failed to close HTTP request body", logger.Err(err))
	}
}

func checkStatus(response *http.Response) error {
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	// Drain a bit of the body so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, 4096))
	return &StatusError{StatusCode: response.StatusCode, Status: response.Status}
}
