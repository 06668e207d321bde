// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package service connects the map view state with the geocoder, the static map API and
// the window that renders it. Network calls never run on the caller's goroutine.
package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"sync"
	"time"

	"github.com/vorlif/spreak"

	"github.com/wneessen/mapviewer/internal/config"
	"github.com/wneessen/mapviewer/internal/geo"
	"github.com/wneessen/mapviewer/internal/geocode"
	"github.com/wneessen/mapviewer/internal/http"
	"github.com/wneessen/mapviewer/internal/job"
	"github.com/wneessen/mapviewer/internal/logger"
	"github.com/wneessen/mapviewer/internal/mapview"
	"github.com/wneessen/mapviewer/internal/presenter"
	"github.com/wneessen/mapviewer/internal/staticmap"
)

const (
	jobGeocode   = "geocode_lookup_job"
	jobStaticMap = "staticmap_fetch_job"
)

// Renderer displays the results of the service. Its methods are called while the view
// state is locked, so they must not block and must not call back into the Service.
type Renderer interface {
	ShowMap(img image.Image)
	ShowText(address, title string)
	ClearSearch()
}

// Runner executes tasks asynchronously.
type Runner interface {
	Run(ctx context.Context, name string, task func(context.Context)) error
	Shutdown() error
}

type mapFetcher interface {
	Fetch(ctx context.Context, req staticmap.Request) ([]byte, error)
}

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	presenter *presenter.Presenter
	geocoder  geocode.Geocoder
	maps      mapFetcher
	runner    Runner

	mu        sync.Mutex
	renderer  Renderer
	state     mapview.State
	mapSeq    uint64
	shownSeq  uint64
	searchGen uint64
}

func New(conf *config.Config, log *logger.Logger, localizer *spreak.Localizer) (*Service, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if localizer == nil {
		return nil, fmt.Errorf("localizer is required")
	}

	httpClient := http.New(log)
	geocoder, err := selectGeocodeProvider(conf, httpClient, localizer.Language())
	if err != nil {
		return nil, fmt.Errorf("failed to create geocode provider: %w", err)
	}

	center := geo.Coordinate{Lon: *conf.Map.Lon, Lat: *conf.Map.Lat}
	style, err := mapview.ParseStyle(conf.Map.Style, center, time.Now())
	if err != nil {
		return nil, err
	}

	runner, err := job.New(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create job runner: %w", err)
	}

	return &Service{
		config:    conf,
		logger:    log,
		presenter: presenter.New(localizer),
		geocoder:  geocoder,
		maps:      newStaticMapClient(conf, httpClient),
		runner:    runner,
		state:     mapview.New(center, *conf.Map.Zoom, style),
	}, nil
}

// Presenter returns the presenter used for the window texts.
func (s *Service) Presenter() *presenter.Presenter {
	return s.presenter
}

// State returns a copy of the current view state.
func (s *Service) State() mapview.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start attaches the renderer and requests the initial map image.
func (s *Service) Start(ctx context.Context, renderer Renderer) {
	s.mu.Lock()
	s.renderer = renderer
	s.logger.Info("starting map view", slog.String("center", s.state.Center.String()),
		slog.Int("zoom", s.state.Zoom), slog.String("style", s.state.Style.String()),
		slog.String("geocoder", s.geocoder.Name()))
	s.renderText()
	seq, req := s.nextMapRequest()
	s.mu.Unlock()

	s.refreshMap(ctx, seq, req)
}

// Shutdown stops the task runner and waits for running tasks.
func (s *Service) Shutdown() error {
	return s.runner.Shutdown()
}

// Handle applies the command to the view state, updates the texts and, if the command
// changes the visible map, fetches a new image in the background.
func (s *Service) Handle(ctx context.Context, cmd mapview.Command) {
	s.handle(ctx, cmd, nil)
}

// Search resolves the query in the background and moves the map to the result. Empty
// queries are ignored without contacting the geocoder. Failed lookups are logged and
// leave the view untouched.
func (s *Service) Search(ctx context.Context, query string) {
	query, err := geocode.NormalizeQuery(query)
	if err != nil {
		s.logger.Debug("ignoring search", logger.Err(err))
		return
	}

	s.mu.Lock()
	s.searchGen++
	gen := s.searchGen
	s.mu.Unlock()

	if err = s.runner.Run(ctx, jobGeocode, func(ctx context.Context) {
		s.search(ctx, query, gen)
	}); err != nil {
		s.logger.Error("failed to schedule address lookup", logger.Err(err))
	}
}

// Reset removes the search result from the view.
func (s *Service) Reset(ctx context.Context) {
	s.Handle(ctx, mapview.Reset())
}

func (s *Service) search(ctx context.Context, query string, gen uint64) {
	result, err := s.geocoder.Geocode(ctx, query)
	if err != nil {
		s.logger.Warn("address lookup failed", slog.String("query", query), logger.Err(err))
		return
	}

	postcode, err := s.geocoder.Postcode(ctx, result.FormattedAddress)
	switch {
	case err != nil:
		s.logger.Warn("postal code lookup failed", slog.String("address", result.FormattedAddress),
			logger.Err(err))
	case postcode != "":
		result.PostalCode = postcode
	}

	applied := s.handle(ctx, mapview.ApplySearchResult(result), func() bool {
		return s.searchGen == gen
	})
	if !applied {
		s.logger.Debug("discarding outdated search result", slog.String("query", query))
	}
}

// handle applies cmd if valid, which is evaluated with the state locked, is nil or
// returns true.
func (s *Service) handle(ctx context.Context, cmd mapview.Command, valid func() bool) bool {
	s.mu.Lock()
	if valid != nil && !valid() {
		s.mu.Unlock()
		return false
	}
	s.state = mapview.Update(s.state, cmd)
	s.logger.Debug("applied command", slog.String("command", cmd.Kind.String()),
		slog.String("center", s.state.Center.String()), slog.Int("zoom", s.state.Zoom))

	if cmd.Kind == mapview.CmdReset {
		s.searchGen++
		if s.renderer != nil {
			s.renderer.ClearSearch()
		}
	}
	s.renderText()
	if !cmd.RefreshesMap() {
		s.mu.Unlock()
		return true
	}
	seq, req := s.nextMapRequest()
	s.mu.Unlock()

	s.refreshMap(ctx, seq, req)
	return true
}

// renderText requires s.mu to be held.
func (s *Service) renderText() {
	if s.renderer == nil {
		return
	}
	s.renderer.ShowText(s.presenter.AddressText(s.state), s.presenter.WindowTitle(s.state))
}

// nextMapRequest requires s.mu to be held.
func (s *Service) nextMapRequest() (uint64, staticmap.Request) {
	s.mapSeq++
	return s.mapSeq, s.state.MapRequest()
}

func (s *Service) refreshMap(ctx context.Context, seq uint64, req staticmap.Request) {
	if err := s.runner.Run(ctx, jobStaticMap, func(ctx context.Context) {
		s.fetchMap(ctx, seq, req)
	}); err != nil {
		s.logger.Error("failed to schedule map fetch", logger.Err(err))
	}
}

// fetchMap fetches and decodes the map image. On failure the image on screen stays as
// it is. Images older than the one on screen are dropped.
func (s *Service) fetchMap(ctx context.Context, seq uint64, req staticmap.Request) {
	data, err := s.maps.Fetch(ctx, req)
	if err != nil {
		s.logger.Error("failed to fetch map image", logger.Err(err), slog.Uint64("seq", seq))
		return
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		s.logger.Error("failed to decode map image", logger.Err(err), slog.Uint64("seq", seq))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.shownSeq {
		s.logger.Debug("discarding outdated map image", slog.Uint64("seq", seq),
			slog.Uint64("shown", s.shownSeq))
		return
	}
	s.shownSeq = seq
	if s.renderer != nil {
		s.logger.Debug("showing map image", slog.Uint64("seq", seq), slog.String("format", format),
			slog.Int("bytes", len(data)))
		s.renderer.ShowMap(img)
	}
}
