package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"runtime"

	"github.com/tinyrange/learngl/internal/app"
	"github.com/tinyrange/learngl/internal/config"
	"github.com/tinyrange/learngl/internal/diag"
)

func init() {
	// Window messages and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		// Without a console the alert is the only place the error shows up.
		diag.Fatal(diag.NewLogger(slog.LevelInfo), "Configuration Error", err)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := diag.NewLogger(level)
	slog.SetDefault(log)

	if err := app.Run(cfg, log); err != nil {
		diag.Fatal(log, app.Caption(err), err)
	}
}
