package database

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect establishes a connection to the configured database and verifies
// it with a ping. It returns a *gorm.DB or an error if the connection fails.
func Connect(cfg Config) (*gorm.DB, error) {
	// Suppress GORM's own logging; the application logger reports errors.
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	if cfg.Driver == DriverSQLite {
		db, err := gorm.Open(sqlite.Open(cfg.Name), gormConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil
	}

	// Special characters in the password must be URL encoded in the DSN;
	// url.UserPassword handles that.
	userInfo := url.UserPassword(cfg.User, cfg.Password).String()

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	// timeout: connection setup; readTimeout/writeTimeout: I/O deadlines.
	dsn := fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		userInfo, cfg.Host, cfg.Port, cfg.Name, timeout, timeout, timeout)

	db, err := gorm.Open(mysql.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Lazy is a lazily initialized, process-wide shared database handle. The
// first Get performs the connection; every later Get returns the same
// handle (or the same error). It is never torn down by this layer.
//
// This replaces ambient global connection state with an explicitly owned
// value: construct one Lazy, pass it to whoever needs the handle.
type Lazy struct {
	cfg  Config
	once sync.Once
	db   *gorm.DB
	err  error
}

// NewLazy returns a Lazy handle for cfg without connecting yet.
func NewLazy(cfg Config) *Lazy {
	return &Lazy{cfg: cfg}
}

// Get returns the shared handle, connecting on first use. Concurrent
// callers block until the single connection attempt finishes.
func (l *Lazy) Get() (*gorm.DB, error) {
	l.once.Do(func() {
		l.db, l.err = Connect(l.cfg)
	})
	return l.db, l.err
}
