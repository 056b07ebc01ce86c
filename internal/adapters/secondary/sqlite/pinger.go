package sqlite

import (
	"context"
	"database/sql"
)

// Pinger adapts *sql.DB to the health check interface.
type Pinger struct {
	DB *sql.DB
}

func (p Pinger) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}
