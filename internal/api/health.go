package api

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
)

type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// HealthCheckHandler reports process and database liveness.
func HealthCheckHandler(db *sqlx.DB, upSince time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{
			Status:   "ok",
			Database: "ok",
			Uptime:   time.Since(upSince).Truncate(time.Second).String(),
		}

		code := http.StatusOK
		if db == nil || db.PingContext(r.Context()) != nil {
			status.Status = "degraded"
			status.Database = "unreachable"
			code = http.StatusServiceUnavailable
		}

		respondWithSuccess(w, code, &status)
	}
}
