// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package ui

import (
	"fyne.io/fyne/v2"

	"github.com/wneessen/mapviewer/internal/mapview"
)

var keyCommands = map[fyne.KeyName]func() mapview.Command{
	fyne.KeyPageUp:   mapview.ZoomIn,
	fyne.KeyPageDown: mapview.ZoomOut,
	fyne.KeyLeft:     mapview.PanLeft,
	fyne.KeyRight:    mapview.PanRight,
	fyne.KeyUp:       mapview.PanUp,
	fyne.KeyDown:     mapview.PanDown,
}

func commandForKey(key fyne.KeyName) (mapview.Command, bool) {
	newCmd, ok := keyCommands[key]
	if !ok {
		return mapview.Command{}, false
	}
	return newCmd(), true
}
