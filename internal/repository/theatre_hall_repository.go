package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"

	"github.com/iliyamo/theatre-reservation/internal/model"
)

// TheatreHallRepo provides CRUD access to the theatre_halls table.
type TheatreHallRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewTheatreHallRepo constructs a TheatreHallRepo with the given DB handle.
func NewTheatreHallRepo(db *sql.DB) *TheatreHallRepo {
	return &TheatreHallRepo{db: db}
}

const hallColumns = "id, name, `rows`, seats_in_row"

// List returns every hall ordered by id.
func (r *TheatreHallRepo) List(ctx context.Context) ([]model.TheatreHall, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+hallColumns+" FROM theatre_halls ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.TheatreHall{}
	for rows.Next() {
		var h model.TheatreHall
		if err := rows.Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsInRow); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Get fetches a hall by id or returns ErrNotFound.
func (r *TheatreHallRepo) Get(ctx context.Context, id uint64) (model.TheatreHall, error) {
	var h model.TheatreHall
	err := r.db.QueryRowContext(ctx, "SELECT "+hallColumns+" FROM theatre_halls WHERE id = ?", id).
		Scan(&h.ID, &h.Name, &h.Rows, &h.SeatsInRow)
	if errors.Is(err, sql.ErrNoRows) {
		return h, ErrNotFound
	}
	return h, err
}

// Create inserts h and sets its ID.
func (r *TheatreHallRepo) Create(ctx context.Context, h *model.TheatreHall) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO theatre_halls (name, `rows`, seats_in_row) VALUES (?, ?, ?)",
		h.Name, h.Rows, h.SeatsInRow)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return nil
}

// Update overwrites every column of hall id with the values in h.
func (r *TheatreHallRepo) Update(ctx context.Context, id uint64, h *model.TheatreHall) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE theatre_halls SET name = ?, `rows` = ?, seats_in_row = ? WHERE id = ?",
		h.Name, h.Rows, h.SeatsInRow, id)
	if err != nil {
		return err
	}
	if err := affected(res); err != nil {
		return err
	}
	h.ID = id
	return nil
}

// Delete removes a hall together with its performances and their tickets.
func (r *TheatreHallRepo) Delete(ctx context.Context, id uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE t FROM tickets t JOIN performances p ON p.id = t.performance_id WHERE p.theatre_hall_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM performances WHERE theatre_hall_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM theatre_halls WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
