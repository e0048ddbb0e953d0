package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Reset wipes all rows and keeps the schema, so the server can reseed and
// continue running.
func Reset(ctx context.Context, db *sql.DB) error {
	if err := WithTx(db, func(tx *sql.Tx) error {
		// children first
		tables := []string{
			"chat_messages",
			"chat_sessions",
			"inquiries",
			"wedding_plans",
			"vendors",
			"users",
		}
		for _, t := range tables {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = db.ExecContext(ctx, "VACUUM")
	return nil
}
