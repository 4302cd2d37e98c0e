package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/kelime/internal/cli"
	"github.com/mrlokans/kelime/internal/database"
	"github.com/mrlokans/kelime/internal/database/words"
	"github.com/mrlokans/kelime/internal/http"
	"github.com/mrlokans/kelime/internal/scheduler"
	"github.com/mrlokans/kelime/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// WordStore implementations
var _ http.WordStore = (*words.Repository)(nil)

// Health checks
var _ http.Pinger = (*database.Database)(nil)
var _ http.Pinger = (*words.Repository)(nil)

// Seeding
var _ cli.WordCreator = (*words.Repository)(nil)

// =============================================================================
// Background Jobs
// =============================================================================

// Trash purge
var _ tasks.DeletedWordsPurger = (*words.Repository)(nil)
var _ scheduler.PurgeEnqueuer = (*tasks.Client)(nil)
