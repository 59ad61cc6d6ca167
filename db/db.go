package db

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/carsawa/site/logger"
)

var (
	db   *sql.DB
	once sync.Once
)

// Init opens the sqlite catalog at databaseURL. Later calls are no-ops.
func Init(databaseURL string) error {
	var err error
	once.Do(func() {
		log := logger.Named("db")

		db, err = sql.Open("sqlite3", dsn(databaseURL))
		if err != nil {
			err = fmt.Errorf("open database: %w", err)
			return
		}
		// sqlite serialises writers; one connection avoids SQLITE_BUSY under load.
		db.SetMaxOpenConns(1)

		if err = db.Ping(); err != nil {
			err = fmt.Errorf("ping database: %w", err)
			return
		}
		log.Info("database initialized", zap.String("path", databaseURL))
	})
	return err
}

func dsn(path string) string {
	return "file:" + path + "?_busy_timeout=5000&_journal_mode=WAL"
}

// Get returns the database connection
func Get() *sql.DB {
	if db == nil {
		panic("Database not initialized. Call db.Init() first.")
	}
	return db
}

// SetForTesting sets the database connection for testing
func SetForTesting(database *sql.DB) {
	db = database
}

func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}
