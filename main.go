package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/kelime/internal/cli"
	"github.com/mrlokans/kelime/internal/config"
	"github.com/mrlokans/kelime/internal/entrypoint"
	"github.com/mrlokans/kelime/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		log, err := logging.New(cfg.App.Env)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()

		if err := entrypoint.Run(cfg, log, Version); err != nil {
			log.Fatal("Server failed", "error", err, "commit", Commit)
		}
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "seed":
		cfg := config.NewConfig()
		cmd := cli.NewSeedCommand(cfg.Database)
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "purge-deleted":
		cfg := config.NewConfig()
		cmd := cli.NewPurgeDeletedCommand(cfg.Database, cfg.TrashPurge.Retention)
		if err := cmd.ParseFlags(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := cmd.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve           Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  seed            Insert sample words\n")
	fmt.Fprintf(os.Stderr, "  purge-deleted   Permanently remove words deleted longer ago than -older-than\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
