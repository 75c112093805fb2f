package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartAssignmentSweeper periodically removes contact_tags rows whose contact
// or tag no longer exists. Such rows only appear on SQLite files that were
// written with foreign keys disabled. A non-positive interval disables it.
func StartAssignmentSweeper(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    DELETE FROM contact_tags
                     WHERE contact_id NOT IN (SELECT id FROM contacts)
                        OR tag_id NOT IN (SELECT id FROM tags)
                `)
				if err != nil {
					log.Error("failed to sweep dangling assignments", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("swept dangling assignments", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
