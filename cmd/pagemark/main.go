// Package main is the entry point for the pagemark editor.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ljosa/pagemark/internal/app"
	"github.com/ljosa/pagemark/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("pagemark %s (%s)\n", version, commit)
		return 0
	}

	path := flag.Arg(0)
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid path %q: %v\n", path, err)
			return 1
		}
		path = abs
	}

	// Preferences are loaded once at startup and written back at
	// shutdown; the core never persists continuously.
	store, err := session.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: preferences unavailable: %v\n", err)
	}
	prefs := session.Defaults()
	if store != nil && path != "" {
		if p, err := store.Load(path); err == nil {
			prefs = p
		} else {
			fmt.Fprintf(os.Stderr, "Warning: could not load preferences: %v\n", err)
		}
	}

	application, err := app.New(app.Options{Path: path, Prefs: prefs})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if store != nil && path != "" {
		if err := store.Save(path, prefs); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save preferences: %v\n", err)
		}
	}
	return 0
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pagemark [flags] [file]\n\nFlags:\n")
	flag.PrintDefaults()
}
