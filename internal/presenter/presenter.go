// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package presenter turns the map view state into the texts shown by the main window.
package presenter

import (
	"github.com/mattn/go-runewidth"
	"github.com/vorlif/spreak"

	"github.com/wneessen/mapviewer/internal/mapview"
)

const (
	// TitleWidth is the maximum display width of the address in the window title
	TitleWidth = 48
	titleTail  = "…"
)

type Presenter struct {
	localizer *spreak.Localizer
}

func New(localizer *spreak.Localizer) *Presenter {
	return &Presenter{localizer: localizer}
}

// Label returns the localized text of a window label.
func (p *Presenter) Label(label Label) string {
	raw, ok := Labels[label]
	if !ok {
		return ""
	}
	return p.localizer.Get(raw)
}

// AddressText returns the text of the address output. The postal code is appended only if
// one is known and the user asked for it.
func (p *Presenter) AddressText(state mapview.State) string {
	address, ok := state.Address.Get()
	if !ok {
		return ""
	}
	postcode, ok := state.Postcode.Get()
	if !ok || !state.ShowPostcode {
		return address
	}
	return p.localizer.Getf("%s (postal code: %s)", address, postcode)
}

// WindowTitle returns the window title. After a search the title carries the address,
// shortened to TitleWidth terminal cells.
func (p *Presenter) WindowTitle(state mapview.State) string {
	address, ok := state.Address.Get()
	if !ok || address == "" {
		return p.Label(LabelTitle)
	}
	return p.localizer.Getf("%s - Map viewer", runewidth.Truncate(address, TitleWidth, titleTail))
}
