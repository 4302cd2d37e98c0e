package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/kelime/internal/config"
	"github.com/mrlokans/kelime/internal/database"
	"github.com/mrlokans/kelime/internal/database/words"
	"github.com/mrlokans/kelime/internal/logging"
)

// PurgeDeletedCommand permanently removes words that have sat in the trash
// longer than OlderThan.
type PurgeDeletedCommand struct {
	Database  config.Database
	OlderThan time.Duration
	Out       io.Writer

	now func() time.Time
}

// NewPurgeDeletedCommand creates a PurgeDeletedCommand with the configured retention as default
func NewPurgeDeletedCommand(db config.Database, retention time.Duration) *PurgeDeletedCommand {
	return &PurgeDeletedCommand{
		Database:  db,
		OlderThan: retention,
		Out:       os.Stdout,
		now:       time.Now,
	}
}

// ParseFlags parses command line flags
func (cmd *PurgeDeletedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("purge-deleted", flag.ExitOnError)

	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "Path to the sqlite database file")
	fs.DurationVar(&cmd.OlderThan, "older-than", cmd.OlderThan, "Only purge words deleted longer ago than this (e.g. 720h)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s purge-deleted [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Permanently remove soft-deleted words. This cannot be undone.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Empty the whole trash:\n")
		fmt.Fprintf(os.Stderr, "  %s purge-deleted -older-than 0s\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.OlderThan < 0 {
		return fmt.Errorf("-older-than must not be negative")
	}
	return nil
}

// Run executes the purge command
func (cmd *PurgeDeletedCommand) Run() error {
	db, err := database.NewDatabase(cmd.Database, logging.NewNop())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	now := cmd.now
	if now == nil {
		now = time.Now
	}
	cutoff := now().Add(-cmd.OlderThan)

	purged, err := words.NewRepository(db.DB).PurgeDeleted(context.Background(), cutoff)
	if err != nil {
		return fmt.Errorf("failed to purge deleted words: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Purged %d words deleted before %s\n", purged, cutoff.UTC().Format(time.RFC3339))
	return nil
}
