// Package database handles database connections for the diary store.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// configure MySQL connections based on the application's configuration, and
// an in-memory/on-disk SQLite driver used primarily by tests.
//
// # Connect
//
// The generic Connect function establishes a connection to the database and
// verifies it with a bounded ping.
//
// # Lazy
//
// Lazy wraps Connect behind a once-guarded handle: the connection is made
// on first use and shared for the life of the process. The diary engine
// receives the resolved handle at construction; nothing in this layer ever
// closes it.
//
// # Usage
//
//	handle := database.NewLazy(cfg.Database)
//	db, err := handle.Get()
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
