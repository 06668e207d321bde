// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper contains helpers shared by the package tests.
package testhelper

import (
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
)

// TestOnlineAPIURL is a reachable URL used by integration tests.
const TestOnlineAPIURL = "https://httpbin.org/get"

// MockRoundTripper is a http.RoundTripper that hands every request to Fn.
type MockRoundTripper struct {
	Fn func(req *http.Request) (*http.Response, error)
}

func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// NewResponse returns a response with the given status code and body.
func NewResponse(status int, body io.Reader) *http.Response {
	if body == nil {
		body = strings.NewReader("")
	}
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(body),
		Header:     make(http.Header),
	}
}

// FileResponse returns a 200 response serving the content of the given file.
func FileResponse(t *testing.T, path string) *http.Response {
	t.Helper()
	data, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open response file: %s", err)
	}
	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		Body:       data,
		Header:     make(http.Header),
	}
}

// PerformIntegrationTests skips the test unless PERFORM_INTEGRATION_TEST is set to true.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if val := os.Getenv("PERFORM_INTEGRATION_TEST"); !strings.EqualFold(val, "true") {
		t.Skip("skipping integration test")
	}
}
