// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

import (
	"github.com/wneessen/mapviewer/internal/geocode"
)

// CommandKind enumerates the state transitions.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdPanLeft
	CmdPanRight
	CmdPanUp
	CmdPanDown
	CmdZoomIn
	CmdZoomOut
	CmdSetStyle
	CmdApplySearchResult
	CmdReset
	CmdTogglePostcode
)

var commandNames = map[CommandKind]string{
	CmdNone:              "none",
	CmdPanLeft:           "pan-left",
	CmdPanRight:          "pan-right",
	CmdPanUp:             "pan-up",
	CmdPanDown:           "pan-down",
	CmdZoomIn:            "zoom-in",
	CmdZoomOut:           "zoom-out",
	CmdSetStyle:          "set-style",
	CmdApplySearchResult: "apply-search-result",
	CmdReset:             "reset",
	CmdTogglePostcode:    "toggle-postcode",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a single state transition together with its argument, if any.
type Command struct {
	Kind CommandKind
	// Style is used by CmdSetStyle
	Style Style
	// Result is used by CmdApplySearchResult
	Result geocode.Result
	// Enabled is used by CmdTogglePostcode
	Enabled bool
}

// RefreshesMap reports whether the command changes what the map image shows.
func (c Command) RefreshesMap() bool {
	switch c.Kind {
	case CmdNone, CmdTogglePostcode:
		return false
	default:
		return true
	}
}

func PanLeft() Command  { return Command{Kind: CmdPanLeft} }
func PanRight() Command { return Command{Kind: CmdPanRight} }
func PanUp() Command    { return Command{Kind: CmdPanUp} }
func PanDown() Command  { return Command{Kind: CmdPanDown} }
func ZoomIn() Command   { return Command{Kind: CmdZoomIn} }
func ZoomOut() Command  { return Command{Kind: CmdZoomOut} }
func Reset() Command    { return Command{Kind: CmdReset} }

func SetStyle(style Style) Command {
	return Command{Kind: CmdSetStyle, Style: style}
}

func ApplySearchResult(result geocode.Result) Command {
	return Command{Kind: CmdApplySearchResult, Result: result}
}

func TogglePostcode(enabled bool) Command {
	return Command{Kind: CmdTogglePostcode, Enabled: enabled}
}
