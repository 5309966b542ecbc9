package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// withTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise, so cascades either apply fully
// or not at all.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// reference names a foreign key that must resolve before a write.
type reference struct {
	field string // JSON field reported on failure
	table string // referenced table, always a constant
	id    uint64
}

// checkReferences verifies every reference inside tx. The parent rows are
// share-locked so they cannot be deleted before the transaction commits.
func checkReferences(ctx context.Context, q queryer, refs ...reference) error {
	var verr *ValidationError
	for _, ref := range refs {
		var one int
		err := q.QueryRowContext(ctx,
			"SELECT 1 FROM "+ref.table+" WHERE id = ? LOCK IN SHARE MODE", ref.id).Scan(&one)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			if verr == nil {
				verr = &ValidationError{}
			}
			verr.Add(ref.field, fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", ref.id))
		case err != nil:
			return fmt.Errorf("check %s reference: %w", ref.field, err)
		}
	}
	if verr != nil {
		return verr
	}
	return nil
}

// affected converts a zero RowsAffected into ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
