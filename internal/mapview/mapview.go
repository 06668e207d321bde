// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package mapview holds the state of the displayed map and the rules for changing it.
// Every user action is expressed as a Command and applied with Update, so the whole
// transition table can be tested without a GUI.
package mapview

import (
	"github.com/wneessen/mapviewer/internal/geo"
	"github.com/wneessen/mapviewer/internal/geocode"
	"github.com/wneessen/mapviewer/internal/staticmap"
	"github.com/wneessen/mapviewer/internal/vartype"
)

const (
	// PanStep is the distance in degrees the center moves per pan command
	PanStep = 0.1

	MinZoom = staticmap.MinZoom
	MaxZoom = staticmap.MaxZoom
)

// State is the mutable view of the map window.
type State struct {
	Center geo.Coordinate
	Zoom   int
	Style  Style
	// Marker is only set after a successful search, its presence is what shows the marker
	Marker       vartype.Variable[geo.Coordinate]
	Address      vartype.Variable[string]
	Postcode     vartype.Variable[string]
	ShowPostcode bool
}

// New returns the initial state. The zoom level is clamped to the supported range.
func New(center geo.Coordinate, zoom int, style Style) State {
	return State{
		Center: center,
		Zoom:   clampZoom(zoom),
		Style:  style,
	}
}

// ShowMarker reports whether a marker is drawn on the map.
func (s State) ShowMarker() bool {
	return s.Marker.IsSet()
}

// MapRequest returns the static map request that renders the state.
func (s State) MapRequest() staticmap.Request {
	return staticmap.Request{
		Center: s.Center,
		Zoom:   s.Zoom,
		Layer:  s.Style.Layer(),
		Marker: s.Marker,
	}
}

// Update applies the command to the state and returns the new state. Unknown commands
// leave the state unchanged.
func Update(state State, cmd Command) State {
	switch cmd.Kind {
	case CmdPanLeft:
		state.Center = state.Center.Offset(-PanStep, 0)
	case CmdPanRight:
		state.Center = state.Center.Offset(PanStep, 0)
	case CmdPanUp:
		state.Center = state.Center.Offset(0, PanStep)
	case CmdPanDown:
		state.Center = state.Center.Offset(0, -PanStep)
	case CmdZoomIn:
		state.Zoom = clampZoom(state.Zoom + 1)
	case CmdZoomOut:
		state.Zoom = clampZoom(state.Zoom - 1)
	case CmdSetStyle:
		state.Style = cmd.Style
	case CmdApplySearchResult:
		state = applySearchResult(state, cmd.Result)
	case CmdReset:
		state.Marker.Reset()
		state.Address.Reset()
		state.Postcode.Reset()
	case CmdTogglePostcode:
		state.ShowPostcode = cmd.Enabled
	}
	return state
}

func applySearchResult(state State, result geocode.Result) State {
	state.Center = result.Coordinate
	state.Marker.Set(result.Coordinate)
	state.Address.Set(result.FormattedAddress)
	if result.PostalCode != "" {
		state.Postcode.Set(result.PostalCode)
	} else {
		state.Postcode.Reset()
	}
	return state
}

func clampZoom(zoom int) int {
	return max(MinZoom, min(zoom, MaxZoom))
}
