package http

import (
	"github.com/mrlokans/kelime/internal/logging"
	"github.com/mrlokans/kelime/internal/readonly"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	WordStore WordStore
	Health    Pinger
	Logger    *logging.Logger

	// Application info
	Version string

	// CORS origins; "*" or an empty list allows any origin
	CORSAllowOrigins []string

	// Rejects mutating requests when enabled (optional)
	ReadOnly *readonly.Middleware
}
