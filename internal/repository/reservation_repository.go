package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/theatre-reservation/internal/model"
)

// ReservationRepo provides CRUD access to the reservations table. The
// created_at column is written once on insert and never updated.
type ReservationRepo struct {
	db  *sql.DB
	now func() time.Time // clock used for created_at
}

func NewReservationRepo(db *sql.DB) *ReservationRepo {
	return &ReservationRepo{db: db, now: time.Now}
}

func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, created_at, user_id FROM reservations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reservation{}
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.CreatedAt, &res.UserID); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *ReservationRepo) Get(ctx context.Context, id uint64) (model.Reservation, error) {
	var res model.Reservation
	err := r.db.QueryRowContext(ctx, `SELECT id, created_at, user_id FROM reservations WHERE id = ?`, id).
		Scan(&res.ID, &res.CreatedAt, &res.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return res, ErrNotFound
	}
	return res, err
}

// Create stamps created_at and inserts the reservation for its user.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	res.CreatedAt = model.NewTimestamp(r.now())
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkReferences(ctx, tx, reference{field: "user", table: "users", id: res.UserID}); err != nil {
			return err
		}
		out, err := tx.ExecContext(ctx,
			`INSERT INTO reservations (created_at, user_id) VALUES (?, ?)`, res.CreatedAt, res.UserID)
		if err != nil {
			return referenceError(err, "user")
		}
		id, err := out.LastInsertId()
		if err != nil {
			return err
		}
		res.ID = uint64(id)
		return nil
	})
}

// Update reassigns the reservation owner. created_at is reloaded from the
// row so callers always see the stored value.
func (r *ReservationRepo) Update(ctx context.Context, id uint64, res *model.Reservation) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkReferences(ctx, tx, reference{field: "user", table: "users", id: res.UserID}); err != nil {
			return err
		}
		out, err := tx.ExecContext(ctx, `UPDATE reservations SET user_id = ? WHERE id = ?`, res.UserID, id)
		if err != nil {
			return referenceError(err, "user")
		}
		if err := affected(out); err != nil {
			return err
		}
		res.ID = id
		return tx.QueryRowContext(ctx, `SELECT created_at FROM reservations WHERE id = ?`, id).Scan(&res.CreatedAt)
	})
}

// Delete removes the reservation and its tickets.
func (r *ReservationRepo) Delete(ctx context.Context, id uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE reservation_id = ?`, id); err != nil {
			return err
		}
		out, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(out)
	})
}
