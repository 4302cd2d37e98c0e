package config

const (
	// DefaultDatabasePath is the default path for the sqlite word database
	DefaultDatabasePath = "./kelimeler.db"

	// DefaultPort is the port the flashcard client expects
	DefaultPort = 3000

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
