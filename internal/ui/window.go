// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package ui implements the main window of the map viewer.
package ui

import (
	"context"
	"image"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/wneessen/mapviewer/internal/logger"
	"github.com/wneessen/mapviewer/internal/mapview"
	"github.com/wneessen/mapviewer/internal/presenter"
)

// Controller receives the user actions of the window.
type Controller interface {
	Handle(ctx context.Context, cmd mapview.Command)
	Search(ctx context.Context, query string)
}

// Window is the main window. It implements the service's Renderer.
type Window struct {
	ctx        context.Context
	controller Controller
	logger     *logger.Logger

	window   fyne.Window
	image    *canvas.Image
	entry    *widget.Entry
	address  *widget.Label
	postcode *widget.Check
}

// New creates the main window. ctx is handed to the controller with every action and
// should live as long as the application.
func New(ctx context.Context, app fyne.App, size fyne.Size, controller Controller,
	pres *presenter.Presenter, log *logger.Logger,
) *Window {
	w := &Window{
		ctx:        ctx,
		controller: controller,
		logger:     log,
		window:     app.NewWindow(pres.Label(presenter.LabelTitle)),
	}

	w.image = canvas.NewImageFromImage(nil)
	w.image.FillMode = canvas.ImageFillContain
	w.image.ScaleMode = canvas.ImageScaleSmooth

	w.entry = widget.NewEntry()
	w.entry.SetPlaceHolder(pres.Label(presenter.LabelSearchPlaceholder))
	w.entry.OnSubmitted = w.search

	w.address = widget.NewLabel("")
	w.address.Wrapping = fyne.TextWrapWord

	w.postcode = widget.NewCheck(pres.Label(presenter.LabelShowPostcode), func(checked bool) {
		w.handle(mapview.TogglePostcode(checked))
	})

	searchButton := widget.NewButton(pres.Label(presenter.LabelSearch), func() { w.search(w.entry.Text) })
	searchButton.Importance = widget.HighImportance
	resetButton := widget.NewButton(pres.Label(presenter.LabelReset), func() { w.handle(mapview.Reset()) })
	lightButton := widget.NewButton(pres.Label(presenter.LabelLight), func() {
		w.handle(mapview.SetStyle(mapview.StyleLight))
	})
	darkButton := widget.NewButton(pres.Label(presenter.LabelDark), func() {
		w.handle(mapview.SetStyle(mapview.StyleDark))
	})

	top := container.NewBorder(nil, nil, nil, container.NewHBox(searchButton, resetButton), w.entry)
	bottom := container.NewVBox(container.NewHBox(lightButton, darkButton, w.postcode), w.address)
	w.window.SetContent(container.NewBorder(top, bottom, nil, nil, w.image))
	w.window.Resize(size)
	w.window.Canvas().SetOnTypedKey(w.typedKey)

	return w
}

// ShowAndRun shows the window and runs the application event loop.
func (w *Window) ShowAndRun() {
	w.window.ShowAndRun()
}

// Close closes the window, which ends the event loop of ShowAndRun.
func (w *Window) Close() {
	fyne.Do(w.window.Close)
}

func (w *Window) ShowMap(img image.Image) {
	fyne.Do(func() {
		w.image.Image = img
		w.image.Refresh()
	})
}

func (w *Window) ShowText(address, title string) {
	fyne.Do(func() {
		w.address.SetText(address)
		w.window.SetTitle(title)
	})
}

// ClearSearch empties the search entry and hands the keyboard back to the map.
func (w *Window) ClearSearch() {
	fyne.Do(func() {
		w.entry.SetText("")
		w.window.Canvas().Unfocus()
	})
}

func (w *Window) search(query string) {
	w.logger.Debug("search requested", slog.String("query", query))
	w.window.Canvas().Unfocus()
	w.controller.Search(w.ctx, query)
}

func (w *Window) handle(cmd mapview.Command) {
	w.controller.Handle(w.ctx, cmd)
}

// typedKey receives the keys that are not consumed by a focused widget.
func (w *Window) typedKey(event *fyne.KeyEvent) {
	if cmd, ok := commandForKey(event.Name); ok {
		w.handle(cmd)
	}
}
