// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

import (
	"fmt"
	"strings"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/wneessen/mapviewer/internal/geo"
	"github.com/wneessen/mapviewer/internal/staticmap"
)

// Style is the visual theme of the map image.
type Style int

const (
	StyleLight Style = iota
	StyleDark
)

// Layer returns the static map layer code for the style.
func (s Style) Layer() staticmap.Layer {
	if s == StyleDark {
		return staticmap.LayerSkeleton
	}
	return staticmap.LayerMap
}

func (s Style) String() string {
	if s == StyleDark {
		return "dark"
	}
	return "light"
}

// ParseStyle parses a configured style name. "auto" is resolved with StyleAt for the
// given center and time.
func ParseStyle(name string, center geo.Coordinate, now time.Time) (Style, error) {
	switch strings.ToLower(name) {
	case "light", "":
		return StyleLight, nil
	case "dark":
		return StyleDark, nil
	case "auto":
		return StyleAt(center, now), nil
	default:
		return StyleLight, fmt.Errorf("unknown map style: %q", name)
	}
}

// StyleAt returns StyleDark if the sun is down at the given place and time. Where the
// sun neither rises nor sets on that day, StyleLight is returned.
//
// The day is taken from local solar time at the center's longitude, not from UTC.
func StyleAt(center geo.Coordinate, now time.Time) Style {
	now = now.UTC()
	day := now.Add(time.Duration(center.Lon / 15 * float64(time.Hour)))
	rise, set := sunrise.SunriseSunset(center.Lat, center.Lon, day.Year(), day.Month(), day.Day())
	if rise.IsZero() || set.IsZero() {
		return StyleLight
	}
	if now.Before(rise) || now.After(set) {
		return StyleDark
	}
	return StyleLight
}
