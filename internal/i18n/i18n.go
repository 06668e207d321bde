// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package i18n

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/Xuanwo/go-locale"
	"github.com/vorlif/spreak"
	"golang.org/x/text/language"
)

// DefaultLanguage is used when no locale is configured and none can be detected.
var DefaultLanguage = language.Russian

//go:embed locale/*
var locales embed.FS

// detect is replaced in tests.
var detect = locale.Detect

// New returns a localizer for the UI catalog in the language Resolve picks for loc.
// Texts without a translation are shown in English.
func New(loc string) (*spreak.Localizer, error) {
	tag := Resolve(loc)

	localeFS, err := fs.Sub(locales, "locale")
	if err != nil {
		return nil, fmt.Errorf("failed to load locales: %w", err)
	}

	bundle, err := spreak.NewBundle(
		spreak.WithSourceLanguage(language.English),
		spreak.WithFallbackLanguage(language.English),
		spreak.WithDomainFs("", localeFS),
		spreak.WithLanguage(tag),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create i18n bundle: %w", err)
	}
	return spreak.NewLocalizer(bundle, tag), nil
}

// Resolve maps a configured locale string to a language tag. An empty string is
// detected from the environment. DefaultLanguage is returned if neither yields a
// known language.
func Resolve(loc string) language.Tag {
	if loc != "" {
		if tag := language.Make(loc); tag != language.Und {
			return tag
		}
		return DefaultLanguage
	}
	tag, err := detect()
	if err != nil || tag == language.Und {
		return DefaultLanguage
	}
	return tag
}
