// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - WordStore: every word operation the API exposes (internal/http/words.go)
//   - Pinger: storage reachability for /health (internal/http/health.go)
//   - WordCreator: inserts used by the seed command (internal/cli/seed.go)
//
// ## Background Job Interfaces
//
//   - DeletedWordsPurger: removes words that sat in the trash too long (internal/tasks/purge_deleted.go)
//   - PurgeEnqueuer: hands scheduled purges to the task queue (internal/scheduler/trash_purge.go)
//
// # Implementations
//
// words.Repository implements WordStore, Pinger, WordCreator and
// DeletedWordsPurger. database.Database implements Pinger and tasks.Client
// implements PurgeEnqueuer. See checks.go for the compile-time assertions.
//
// # Adding a Storage Backend
//
// A new backend only has to satisfy WordStore and translate its errors into
// the sentinels in internal/database/words (ErrDuplicateWord, ErrNotFound,
// ErrStorageUnavailable, ErrInvalidWord) so the HTTP layer maps them to the
// right status codes.
package interfaces
