package db

import (
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var DB *sqlx.DB

// InitPostgres connects the sqlx handle used by the transactional store.
// Retries cover the container-orchestration window where Postgres is
// still coming up.
func InitPostgres(dsn string) error {
	var err error
	for i := 0; i < 10; i++ {
		DB, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			DB.SetMaxOpenConns(20)
			DB.SetMaxIdleConns(5)
			DB.SetConnMaxLifetime(30 * time.Minute)
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return err
}
