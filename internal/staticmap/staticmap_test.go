// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package staticmap

import (
	"bytes"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wneessen/mapviewer/internal/geo"
	"github.com/wneessen/mapviewer/internal/http"
	"github.com/wneessen/mapviewer/internal/logger"
	"github.com/wneessen/mapviewer/internal/testhelper"
	"github.com/wneessen/mapviewer/internal/vartype"
)

var (
	testCenter = geo.Coordinate{Lon: 37.977751, Lat: 55.757718}
	testPolicy = http.RetryPolicy{
		MaxAttempts:        10,
		MaxConnectAttempts: 5,
		InitialBackoff:     time.Millisecond,
		MaxBackoff:         time.Millisecond,
	}
	testImage = []byte("\x89PNG\r\n\x1a\nimage")
)

func TestRequest_Query(t *testing.T) {
	t.Run("query without marker", func(t *testing.T) {
		req := Request{Center: testCenter, Zoom: 5, Layer: LayerMap}
		query := req.Query()
		if query.Get("ll") != "37.977751,55.757718" {
			t.Errorf("expected ll to be 37.977751,55.757718, got %q", query.Get("ll"))
		}
		if query.Get("l") != "map" {
			t.Errorf("expected l to be map, got %q", query.Get("l"))
		}
		if query.Get("z") != "5" {
			t.Errorf("expected z to be 5, got %q", query.Get("z"))
		}
		if query.Has("pt") {
			t.Errorf("expected no pt parameter, got %q", query.Get("pt"))
		}
	})
	t.Run("query with marker", func(t *testing.T) {
		req := Request{
			Center: geo.Coordinate{Lon: 37.6208, Lat: 55.7539},
			Zoom:   17,
			Layer:  LayerSkeleton,
			Marker: vartype.NewVariable(geo.Coordinate{Lon: 37.6208, Lat: 55.7539}),
		}
		query := req.Query()
		if query.Get("pt") != "37.6208,55.7539,pm2dgl" {
			t.Errorf("expected pt to be 37.6208,55.7539,pm2dgl, got %q", query.Get("pt"))
		}
		if query.Get("l") != "skl" {
			t.Errorf("expected l to be skl, got %q", query.Get("l"))
		}
	})
}

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"min zoom", Request{Zoom: MinZoom, Layer: LayerMap}, false},
		{"max zoom", Request{Zoom: MaxZoom, Layer: LayerMap}, false},
		{"zoom below range", Request{Zoom: -1, Layer: LayerMap}, true},
		{"zoom above range", Request{Zoom: 18, Layer: LayerMap}, true},
		{"missing layer", Request{Zoom: 5}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation to fail")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected validation to succeed, got %s", err)
			}
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	t.Run("fetching an image succeeds", func(t *testing.T) {
		var gotURL *url.URL
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotURL = req.URL
			return testhelper.NewResponse(stdhttp.StatusOK, bytes.NewReader(testImage)), nil
		}
		client := testClient(rtFn)

		data, err := client.Fetch(t.Context(), Request{Center: testCenter, Zoom: 5, Layer: LayerMap})
		if err != nil {
			t.Fatalf("failed to fetch image: %s", err)
		}
		if !bytes.Equal(data, testImage) {
			t.Errorf("unexpected image data: %q", data)
		}
		if gotURL.Host != "static-maps.yandex.ru" || gotURL.Path != "/1.x/" {
			t.Errorf("unexpected request URL: %s", gotURL)
		}
	})
	t.Run("server errors are retried ten times", func(t *testing.T) {
		var calls atomic.Int32
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			calls.Add(1)
			return testhelper.NewResponse(stdhttp.StatusInternalServerError, nil), nil
		}
		client := testClient(rtFn)

		_, err := client.Fetch(t.Context(), Request{Center: testCenter, Zoom: 5, Layer: LayerMap})
		var statusErr *http.StatusError
		if !errors.As(err, &statusErr) {
			t.Fatalf("expected error to be a StatusError, got %v", err)
		}
		if calls.Load() != 10 {
			t.Errorf("expected 10 attempts, got %d", calls.Load())
		}
	})
	t.Run("invalid request is not sent", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			t.Error("expected no request to be sent")
			return nil, errors.New("unexpected request")
		}
		client := testClient(rtFn)

		_, err := client.Fetch(t.Context(), Request{Center: testCenter, Zoom: 18, Layer: LayerMap})
		if !errors.Is(err, ErrInvalidZoom) {
			t.Errorf("expected error to be %s, got %v", ErrInvalidZoom, err)
		}
	})
}

func TestNew(t *testing.T) {
	client := New(http.New(logger.New(slog.LevelInfo)), "", 0, http.DefaultRetryPolicy())
	if client.endpoint != APIEndpoint {
		t.Errorf("expected default endpoint, got %q", client.endpoint)
	}
	if client.timeout != APITimeout {
		t.Errorf("expected default timeout, got %s", client.timeout)
	}
}

func testClient(fn func(req *stdhttp.Request) (*stdhttp.Response, error)) *Client {
	httpClient := http.New(logger.New(slog.LevelError))
	httpClient.Transport = testhelper.MockRoundTripper{Fn: fn}
	return New(httpClient, APIEndpoint, time.Second, testPolicy)
}
