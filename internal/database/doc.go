// Package database provides the data access layer for the application.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres) and migrations
//	└── words/           # Word store: lifecycle, lookups and statistics
//
// # Using Sub-packages
//
//	// Initialize database connection
//	db, err := database.NewDatabase(cfg.Database, logger)
//
//	// Create the word repository on top of the shared handle
//	wordsRepo := words.NewRepository(db.DB)
//
//	id, err := wordsRepo.Create(ctx, &entities.Word{...})
//	word, err := wordsRepo.GetByWord(ctx, "hello")
//
// # Interface Implementations
//
//   - words.Repository: implements http.WordStore, tasks.DeletedWordsPurger
//     and cli.WordCreator
//
// # Backends
//
// sqlite is the default and needs only a file path. postgres is selected with
// DATABASE_DRIVER=postgres and DATABASE_DSN. Both run with gorm's
// TranslateError enabled so unique violations arrive as gorm.ErrDuplicatedKey.
package database
