package sqlite

import (
	"context"
	"database/sql"

	"github.com/lorrc/agent-toolbar-backend/internal/core/domain"
	"github.com/lorrc/agent-toolbar-backend/internal/core/ports"
)

const anchorKey = "rollover_anchor"

// AnchorRepository stores the UTC rollover anchor as a bare string in
// app_state. No read cache: it is consulted under the rollover mutex.
type AnchorRepository struct {
	db *sql.DB
}

var _ ports.AnchorRepository = (*AnchorRepository)(nil)

func NewAnchorRepository(db *sql.DB) *AnchorRepository {
	return &AnchorRepository{db: db}
}

func (r *AnchorRepository) Get(ctx context.Context) (domain.UTCDayKey, error) {
	raw, ok, err := getState(ctx, r.db, anchorKey)
	if err != nil || !ok {
		return "", err
	}
	return domain.UTCDayKey(raw), nil
}

func (r *AnchorRepository) Set(ctx context.Context, k domain.UTCDayKey) error {
	return setState(ctx, r.db, anchorKey, string(k))
}
