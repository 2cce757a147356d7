package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/web3live/cms"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "seed":
		if err := runSeed(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "init":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: web3live init <dir>")
			os.Exit(1)
		}
		if err := runInit(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("web3live %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`web3live - content-management backend for the web3live site

Usage:
  web3live <command> [arguments]

Commands:
  serve         Start the HTTP server (default)
  seed          Insert demo posts and placeholder cover images
  init <dir>    Write a starter static site into <dir>
  version       Print the version
  help          Show this help message

Configuration is read from the environment: ADMIN_USERNAME,
ADMIN_PASSWORD, ADMIN_TOKEN, PORT, DATABASE_PATH, UPLOAD_DIR,
SITE_DIR, CONFIG_PATH.`)
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func runServe() error {
	cfg, err := cms.LoadConfig()
	if err != nil {
		return err
	}
	app, err := cms.NewApp(cfg, newLogger())
	if err != nil {
		return err
	}
	defer app.Close()
	return app.Start()
}

func runSeed() error {
	cfg, err := cms.LoadConfig()
	if err != nil {
		return err
	}
	log := newLogger()

	store, err := cms.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	uploads, err := cms.NewUploads(cfg.UploadDir)
	if err != nil {
		return err
	}

	if err := cms.SeedDemo(store, uploads); err != nil {
		return err
	}
	log.Info().Str("database", cfg.DatabasePath).Str("uploads", cfg.UploadDir).Msg("demo content seeded")
	return nil
}
