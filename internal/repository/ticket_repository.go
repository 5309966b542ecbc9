package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/theatre-reservation/internal/model"
)

// TicketRepo provides CRUD access to the tickets table. The columns are
// named row_no and seat_no because ROW is reserved in MySQL 8.
type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo {
	return &TicketRepo{db: db}
}

const ticketColumns = `id, row_no, seat_no, performance_id, reservation_id`

func (r *TicketRepo) List(ctx context.Context) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Ticket{}
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.Row, &t.Seat, &t.PerformanceID, &t.ReservationID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TicketRepo) Get(ctx context.Context, id uint64) (model.Ticket, error) {
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = ?`, id).
		Scan(&t.ID, &t.Row, &t.Seat, &t.PerformanceID, &t.ReservationID)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

func (r *TicketRepo) refs(t *model.Ticket) []reference {
	return []reference{
		{field: "performance", table: "performances", id: t.PerformanceID},
		{field: "reservation", table: "reservations", id: t.ReservationID},
	}
}

func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkReferences(ctx, tx, r.refs(t)...); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO tickets (row_no, seat_no, performance_id, reservation_id) VALUES (?, ?, ?, ?)`,
			t.Row, t.Seat, t.PerformanceID, t.ReservationID)
		if err != nil {
			return referenceError(err, "performance")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		t.ID = uint64(id)
		return nil
	})
}

func (r *TicketRepo) Update(ctx context.Context, id uint64, t *model.Ticket) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkReferences(ctx, tx, r.refs(t)...); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE tickets SET row_no = ?, seat_no = ?, performance_id = ?, reservation_id = ? WHERE id = ?`,
			t.Row, t.Seat, t.PerformanceID, t.ReservationID, id)
		if err != nil {
			return referenceError(err, "performance")
		}
		if err := affected(res); err != nil {
			return err
		}
		t.ID = id
		return nil
	})
}

func (r *TicketRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affected(res)
}
