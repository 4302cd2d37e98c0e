package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/kelime/internal/config"
	"github.com/mrlokans/kelime/internal/database"
	"github.com/mrlokans/kelime/internal/database/words"
	"github.com/mrlokans/kelime/internal/entities"
	"github.com/mrlokans/kelime/internal/logging"
)

// WordCreator inserts a single word.
type WordCreator interface {
	Create(ctx context.Context, word *entities.Word) (uint, error)
}

// SeedCommand fills an empty database with a few sample words
type SeedCommand struct {
	Database config.Database
	Out      io.Writer
}

// NewSeedCommand creates a SeedCommand using the database settings from the environment
func NewSeedCommand(db config.Database) *SeedCommand {
	return &SeedCommand{Database: db, Out: os.Stdout}
}

// ParseFlags parses command line flags
func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "Path to the sqlite database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Insert sample words (hello, beautiful, understand). Words that already exist are skipped.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

// Run executes the seed command
func (cmd *SeedCommand) Run() error {
	db, err := database.NewDatabase(cmd.Database, logging.NewNop())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	added, skipped, err := SeedWords(context.Background(), words.NewRepository(db.DB), SampleWords(), cmd.Out)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Seeded %d words (%d already present)\n", added, skipped)
	return nil
}

// SeedWords creates each word, skipping the ones that already exist.
func SeedWords(ctx context.Context, creator WordCreator, list []entities.Word, out io.Writer) (added, skipped int, err error) {
	for i := range list {
		word := list[i]
		id, err := creator.Create(ctx, &word)
		switch {
		case errors.Is(err, words.ErrDuplicateWord):
			fmt.Fprintf(out, "  skip %q: already exists\n", word.EnglishWord)
			skipped++
		case err != nil:
			return added, skipped, fmt.Errorf("seed %q: %w", word.EnglishWord, err)
		default:
			fmt.Fprintf(out, "  add  %q (id %d)\n", word.EnglishWord, id)
			added++
		}
	}
	return added, skipped, nil
}

// SampleWords returns the words inserted by the seed command.
func SampleWords() []entities.Word {
	sample := func(text string, meanings []string, sentence, translation, level string) entities.Word {
		return entities.Word{
			EnglishWord:        text,
			TurkishMeanings:    meanings,
			ExampleSentence:    &sentence,
			ExampleTranslation: &translation,
			CEFRLevel:          &level,
		}
	}

	return []entities.Word{
		sample("hello", []string{"merhaba", "selam"},
			"Hello, how are you?", "Merhaba, nasılsın?", "A1"),
		sample("beautiful", []string{"güzel", "hoş"},
			"She has a beautiful smile.", "Onun güzel bir gülümsemesi var.", "A2"),
		sample("understand", []string{"anlamak", "kavramak"},
			"I understand your problem.", "Problemini anlıyorum.", "B1"),
	}
}
