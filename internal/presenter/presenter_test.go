// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/wneessen/mapviewer/internal/geo"
	"github.com/wneessen/mapviewer/internal/geocode"
	"github.com/wneessen/mapviewer/internal/i18n"
	"github.com/wneessen/mapviewer/internal/mapview"
)

var (
	center = geo.Coordinate{Lon: 37.977751, Lat: 55.757718}
	result = geocode.Result{
		Coordinate:       geo.Coordinate{Lon: 37.6208, Lat: 55.7539},
		FormattedAddress: "Россия, Москва, Красная площадь",
		PostalCode:       "109012",
	}
)

func TestPresenter_Label(t *testing.T) {
	t.Run("english labels", func(t *testing.T) {
		p := testPresenter(t, "en")
		for label, raw := range Labels {
			if got := p.Label(label); got != raw {
				t.Errorf("expected label %d to be %q, got %q", label, raw, got)
			}
		}
	})
	t.Run("all labels are translated to russian", func(t *testing.T) {
		p := testPresenter(t, "ru")
		for label, raw := range Labels {
			if got := p.Label(label); got == raw || got == "" {
				t.Errorf("expected label %q to be translated, got %q", raw, got)
			}
		}
	})
	t.Run("unknown label", func(t *testing.T) {
		p := testPresenter(t, "en")
		if got := p.Label(Label(99)); got != "" {
			t.Errorf("expected empty label, got %q", got)
		}
	})
}

func TestPresenter_AddressText(t *testing.T) {
	p := testPresenter(t, "en")
	initial := mapview.New(center, 5, mapview.StyleLight)
	searched := mapview.Update(initial, mapview.ApplySearchResult(result))
	noPostcode := result
	noPostcode.PostalCode = ""
	searchedNoPostcode := mapview.Update(initial, mapview.ApplySearchResult(noPostcode))

	tests := []struct {
		name  string
		state mapview.State
		want  string
	}{
		{"initial state has no text", initial, ""},
		{"address only", searched, result.FormattedAddress},
		{
			"address with postcode",
			mapview.Update(searched, mapview.TogglePostcode(true)),
			result.FormattedAddress + " (postal code: 109012)",
		},
		{
			"postcode requested but unknown",
			mapview.Update(searchedNoPostcode, mapview.TogglePostcode(true)),
			result.FormattedAddress,
		},
		{
			"reset clears the text",
			mapview.Update(mapview.Update(searched, mapview.TogglePostcode(true)), mapview.Reset()),
			"",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.AddressText(tc.state); got != tc.want {
				t.Errorf("expected address text to be %q, got %q", tc.want, got)
			}
		})
	}
	t.Run("russian postcode suffix", func(t *testing.T) {
		ru := testPresenter(t, "ru")
		state := mapview.Update(searched, mapview.TogglePostcode(true))
		want := result.FormattedAddress + " (индекс: 109012)"
		if got := ru.AddressText(state); got != want {
			t.Errorf("expected address text to be %q, got %q", want, got)
		}
	})
}

// Toggling the postcode display without a known postcode leaves the text unchanged.
func TestScenario_togglePostcodeWithoutPostcode(t *testing.T) {
	p := testPresenter(t, "en")
	noPostcode := result
	noPostcode.PostalCode = ""
	state := mapview.Update(mapview.New(center, 5, mapview.StyleLight), mapview.ApplySearchResult(noPostcode))
	before := p.AddressText(state)
	after := p.AddressText(mapview.Update(state, mapview.TogglePostcode(true)))
	if before != after {
		t.Errorf("expected text to stay %q, got %q", before, after)
	}
}

func TestPresenter_WindowTitle(t *testing.T) {
	p := testPresenter(t, "en")
	t.Run("title without address", func(t *testing.T) {
		state := mapview.New(center, 5, mapview.StyleLight)
		if got := p.WindowTitle(state); got != "Map viewer" {
			t.Errorf("expected title to be %q, got %q", "Map viewer", got)
		}
	})
	t.Run("title with address", func(t *testing.T) {
		state := mapview.Update(mapview.New(center, 5, mapview.StyleLight), mapview.ApplySearchResult(result))
		want := result.FormattedAddress + " - Map viewer"
		if got := p.WindowTitle(state); got != want {
			t.Errorf("expected title to be %q, got %q", want, got)
		}
	})
	t.Run("long address is truncated", func(t *testing.T) {
		long := result
		long.FormattedAddress = strings.Repeat("Улица Строителей, ", 10)
		state := mapview.Update(mapview.New(center, 5, mapview.StyleLight), mapview.ApplySearchResult(long))
		title := p.WindowTitle(state)
		address := strings.TrimSuffix(title, " - Map viewer")
		if address == title {
			t.Fatalf("expected title suffix, got %q", title)
		}
		if width := runewidth.StringWidth(address); width > TitleWidth {
			t.Errorf("expected address width to be at most %d, got %d", TitleWidth, width)
		}
		if !strings.HasSuffix(address, "…") {
			t.Errorf("expected truncated address to end with an ellipsis, got %q", address)
		}
	})
}

func testPresenter(t *testing.T, lang string) *Presenter {
	t.Helper()
	localizer, err := i18n.New(lang)
	if err != nil {
		t.Fatalf("failed to create localizer: %s", err)
	}
	return New(localizer)
}
