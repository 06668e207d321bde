// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import "github.com/vorlif/spreak/localize"

// Label identifies a static text of the main window.
type Label int

const (
	LabelTitle Label = iota
	LabelSearchPlaceholder
	LabelSearch
	LabelReset
	LabelLight
	LabelDark
	LabelShowPostcode
)

// Labels maps the window labels to their translatable source texts
var Labels = map[Label]localize.MsgID{
	LabelTitle:             "Map viewer",
	LabelSearchPlaceholder: "Enter an address",
	LabelSearch:            "Search",
	LabelReset:             "Reset",
	LabelLight:             "Light",
	LabelDark:              "Dark",
	LabelShowPostcode:      "Show postal code",
}
