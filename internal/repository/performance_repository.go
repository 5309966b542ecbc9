package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/theatre-reservation/internal/model"
)

// PerformanceRepo provides CRUD access to the performances table. Writes
// verify that the referenced play and hall exist in the same transaction.
type PerformanceRepo struct {
	db *sql.DB
}

func NewPerformanceRepo(db *sql.DB) *PerformanceRepo {
	return &PerformanceRepo{db: db}
}

func (r *PerformanceRepo) List(ctx context.Context) ([]model.Performance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, play_id, theatre_hall_id, show_time FROM performances ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Performance{}
	for rows.Next() {
		var p model.Performance
		if err := rows.Scan(&p.ID, &p.PlayID, &p.TheatreHallID, &p.ShowTime); err != nil {
			return nil, err
		}
		p.ShowTime = p.ShowTime.UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PerformanceRepo) Get(ctx context.Context, id uint64) (model.Performance, error) {
	var p model.Performance
	err := r.db.QueryRowContext(ctx,
		`SELECT id, play_id, theatre_hall_id, show_time FROM performances WHERE id = ?`, id).
		Scan(&p.ID, &p.PlayID, &p.TheatreHallID, &p.ShowTime)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	p.ShowTime = p.ShowTime.UTC()
	return p, err
}

func (r *PerformanceRepo) refs(p *model.Performance) []reference {
	return []reference{
		{field: "play", table: "plays", id: p.PlayID},
		{field: "theatre_hall", table: "theatre_halls", id: p.TheatreHallID},
	}
}

// Create inserts p after checking its play and hall.
func (r *PerformanceRepo) Create(ctx context.Context, p *model.Performance) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkReferences(ctx, tx, r.refs(p)...); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO performances (play_id, theatre_hall_id, show_time) VALUES (?, ?, ?)`,
			p.PlayID, p.TheatreHallID, p.ShowTime.UTC())
		if err != nil {
			return referenceError(err, "play")
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		p.ID = uint64(id)
		return nil
	})
}

func (r *PerformanceRepo) Update(ctx context.Context, id uint64, p *model.Performance) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := checkReferences(ctx, tx, r.refs(p)...); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`UPDATE performances SET play_id = ?, theatre_hall_id = ?, show_time = ? WHERE id = ?`,
			p.PlayID, p.TheatreHallID, p.ShowTime.UTC(), id)
		if err != nil {
			return referenceError(err, "play")
		}
		if err := affected(res); err != nil {
			return err
		}
		p.ID = id
		return nil
	})
}

// Delete removes a performance and its tickets.
func (r *PerformanceRepo) Delete(ctx context.Context, id uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE performance_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM performances WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}

// referenceError turns a late foreign key violation into a ValidationError
// on field. Other errors pass through unchanged.
func referenceError(err error, field string) error {
	if IsMissingReference(err) {
		return NewValidationError(field, "Referenced object does not exist.")
	}
	return err
}
