// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geo holds the coordinate type shared by the geocoders, the map view and the
// static map client.
package geo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidPos is returned if a position string can not be parsed into a Coordinate.
var ErrInvalidPos = errors.New("invalid position")

// Coordinate represents a geographic coordinate. Yandex APIs order the values as
// longitude first, so the type does the same.
type Coordinate struct {
	Lon float64
	Lat float64
}

// ParsePos parses a space separated "lon lat" pair as returned by the Yandex geocoder
// in the Point.pos field.
func ParsePos(pos string) (Coordinate, error) {
	fields := strings.Fields(pos)
	if len(fields) != 2 {
		return Coordinate{}, fmt.Errorf("%w: expected 2 values, got %d in %q", ErrInvalidPos, len(fields), pos)
	}
	lon, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: failed to parse longitude: %w", ErrInvalidPos, err)
	}
	lat, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: failed to parse latitude: %w", ErrInvalidPos, err)
	}
	return Coordinate{Lon: lon, Lat: lat}, nil
}

// String returns the coordinate in the "lon,lat" notation used by the static map API.
func (c Coordinate) String() string {
	return formatFloat(c.Lon) + "," + formatFloat(c.Lat)
}

// Offset returns a copy of the coordinate moved by the given deltas. No wrapping or
// clamping is applied, the map provider handles out of range values itself.
func (c Coordinate) Offset(dLon, dLat float64) Coordinate {
	return Coordinate{Lon: c.Lon + dLon, Lat: c.Lat + dLat}
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
