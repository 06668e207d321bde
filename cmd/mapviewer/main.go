// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the mapviewer desktop application.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/wneessen/mapviewer/internal/config"
	"github.com/wneessen/mapviewer/internal/i18n"
	"github.com/wneessen/mapviewer/internal/logger"
	"github.com/wneessen/mapviewer/internal/service"
	"github.com/wneessen/mapviewer/internal/ui"
)

const appID = "dev.neessen.mapviewer"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.NewLogger(slog.LevelError)

	// Read config
	confRead := false
	confPath := flag.String("config", "", "path to the config file")
	flag.Parse()

	// Read default config
	conf, err := config.New()
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	// If config file was specified, read it
	if *confPath != "" {
		file := filepath.Base(*confPath)
		path := filepath.Dir(*confPath)
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
		confRead = true
	}

	// Check if we have a config file in the default location
	if path, file := findConfigFile(); !confRead && (path != "" && file != "") {
		conf, err = config.NewFromFile(path, file)
		if err != nil {
			log.Error("failed to load config from file", logger.Err(err))
			os.Exit(1)
		}
	}

	log = logger.NewLogger(conf.LogLevel)
	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	// Initialize the service
	serv, err := service.New(conf, log, t)
	if err != nil {
		log.Error(t.Get("failed to start map viewer"), logger.Err(err))
		os.Exit(1)
	}

	log.Info(t.Get("starting map viewer"), slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))

	mapApp := app.NewWithID(appID)
	window := ui.New(ctx, mapApp, fyne.NewSize(conf.Window.Width, conf.Window.Height), serv,
		serv.Presenter(), log)
	serv.Start(ctx, window)

	// Close the window on termination signals, which ends the event loop
	stop := context.AfterFunc(ctx, window.Close)
	window.ShowAndRun()
	stop()
	cancel()

	log.Info(t.Get("shutting down map viewer"))
	if err = serv.Shutdown(); err != nil {
		log.Error("failed to shut down background jobs", logger.Err(err))
	}
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "mapviewer", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
