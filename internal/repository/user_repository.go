package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/theatre-reservation/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, username, email, first_name, last_name, password_hash, is_staff, created_at"

// errUsernameTaken mirrors the message users see for a duplicate username.
const errUsernameTaken = "A user with that username already exists."

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

// Create inserts u (whose PasswordHash must already be set) and returns
// its ID through u.ID. A duplicate username yields a ValidationError.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Username = strings.TrimSpace(u.Username)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, first_name, last_name, password_hash, is_staff) VALUES (?,?,?,?,?,?)",
		u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, u.IsStaff)
	if err != nil {
		if IsDuplicate(err) {
			return NewValidationError("username", errUsernameTaken)
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", strings.TrimSpace(username)))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// Update writes the profile columns and password hash of u.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username=?, email=?, first_name=?, last_name=?, password_hash=? WHERE id=?",
		strings.TrimSpace(u.Username), u.Email, u.FirstName, u.LastName, u.PasswordHash, u.ID)
	if err != nil {
		if IsDuplicate(err) {
			return NewValidationError("username", errUsernameTaken)
		}
		return err
	}
	return affected(res)
}

// SetStaff grants or withdraws staff status.
func (r *UserRepo) SetStaff(ctx context.Context, id uint64, staff bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET is_staff=? WHERE id=?", staff, id)
	if err != nil {
		return err
	}
	return affected(res)
}
