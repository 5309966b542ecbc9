package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/theatre-reservation/internal/model"
)

// PlayRepo provides CRUD access to the plays table.
type PlayRepo struct {
	db *sql.DB
}

func NewPlayRepo(db *sql.DB) *PlayRepo {
	return &PlayRepo{db: db}
}

func (r *PlayRepo) List(ctx context.Context) ([]model.Play, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, description FROM plays ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Play{}
	for rows.Next() {
		var p model.Play
		if err := rows.Scan(&p.ID, &p.Title, &p.Description); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlayRepo) Get(ctx context.Context, id uint64) (model.Play, error) {
	var p model.Play
	err := r.db.QueryRowContext(ctx, `SELECT id, title, description FROM plays WHERE id = ?`, id).
		Scan(&p.ID, &p.Title, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	return p, err
}

func (r *PlayRepo) Create(ctx context.Context, p *model.Play) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO plays (title, description) VALUES (?, ?)`, p.Title, p.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

func (r *PlayRepo) Update(ctx context.Context, id uint64, p *model.Play) error {
	res, err := r.db.ExecContext(ctx, `UPDATE plays SET title = ?, description = ? WHERE id = ?`, p.Title, p.Description, id)
	if err != nil {
		return err
	}
	if err := affected(res); err != nil {
		return err
	}
	p.ID = id
	return nil
}

// Delete removes a play, its performances and every ticket issued for them.
func (r *PlayRepo) Delete(ctx context.Context, id uint64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE t FROM tickets t JOIN performances p ON p.id = t.performance_id WHERE p.play_id = ?`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM performances WHERE play_id = ?`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM plays WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affected(res)
	})
}
