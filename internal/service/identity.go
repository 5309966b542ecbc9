// Package service holds the application logic that sits between the HTTP
// handlers and the repositories: account identity and booking events.
package service

import (
    "context"
    "errors"
    "fmt"
    "unicode/utf8"

    "github.com/iliyamo/theatre-reservation/internal/model"
    "github.com/iliyamo/theatre-reservation/internal/repository"
    "github.com/iliyamo/theatre-reservation/internal/utils"
    "github.com/iliyamo/theatre-reservation/internal/validate"
)

var (
    // ErrInvalidCredentials is returned by Authenticate for an unknown
    // username or a wrong password. The two cases are not distinguished.
    ErrInvalidCredentials = errors.New("unable to log in with provided credentials")
    // ErrInvalidToken is returned by Resolve and Revoke for tokens that are
    // malformed, unknown or revoked.
    ErrInvalidToken = errors.New("invalid token")
)

// UserStore is the subset of repository.UserRepo the identity service needs.
type UserStore interface {
    Create(ctx context.Context, u *model.User) error
    GetByUsername(ctx context.Context, username string) (model.User, error)
    GetByID(ctx context.Context, id uint64) (model.User, error)
    Update(ctx context.Context, u *model.User) error
    SetStaff(ctx context.Context, id uint64, staff bool) error
}

// TokenStore persists hashed token ids.
type TokenStore interface {
    Store(ctx context.Context, userID uint64, tokenHash string) error
    Lookup(ctx context.Context, tokenHash string) (uint64, error)
    Revoke(ctx context.Context, tokenHash string) error
}

// IdentityOptions tunes password handling and token signing.
type IdentityOptions struct {
    Secret            string
    BcryptCost        int
    PasswordMinLength int
}

// Identity registers accounts, issues tokens and resolves them back to users.
type Identity struct {
    users  UserStore
    tokens TokenStore
    opts   IdentityOptions
}

func NewIdentity(users UserStore, tokens TokenStore, opts IdentityOptions) *Identity {
    if opts.PasswordMinLength <= 0 {
        opts.PasswordMinLength = 5
    }
    return &Identity{users: users, tokens: tokens, opts: opts}
}

// checkPassword appends a length message for pw to verr, allocating it
// when needed, and returns the (possibly new) error.
func (s *Identity) checkPassword(pw string, verr *repository.ValidationError) *repository.ValidationError {
    if utf8.RuneCountInString(pw) >= s.opts.PasswordMinLength {
        return verr
    }
    if verr == nil {
        verr = &repository.ValidationError{}
    }
    verr.Add("password", fmt.Sprintf("Ensure this field has at least %d characters.", s.opts.PasswordMinLength))
    return verr
}

// inputErrors runs struct validation and the password rule together so a
// client sees every problem in one response.
func (s *Identity) inputErrors(in model.UserInput, partial bool) error {
    var err error
    if partial {
        err = validate.Partial(in)
    } else {
        err = validate.Struct(in)
    }
    var verr *repository.ValidationError
    if err != nil && !errors.As(err, &verr) {
        return err
    }
    if in.Password != nil {
        verr = s.checkPassword(*in.Password, verr)
    }
    if verr == nil {
        return nil
    }
    return verr
}

// Register creates a new non-staff account.
func (s *Identity) Register(ctx context.Context, in model.UserInput) (model.User, error) {
    if err := s.inputErrors(in, false); err != nil {
        return model.User{}, err
    }
    var u model.User
    in.Apply(&u)
    hash, err := utils.HashPassword(*in.Password, s.opts.BcryptCost)
    if err != nil {
        return model.User{}, fmt.Errorf("hash password: %w", err)
    }
    u.PasswordHash = hash
    if err := s.users.Create(ctx, &u); err != nil {
        return model.User{}, err
    }
    return u, nil
}

// Authenticate checks the credentials and issues a new token. Every call
// yields a distinct token; earlier ones stay valid until revoked.
func (s *Identity) Authenticate(ctx context.Context, username, password string) (string, error) {
    u, err := s.users.GetByUsername(ctx, username)
    if errors.Is(err, repository.ErrNotFound) {
        return "", ErrInvalidCredentials
    }
    if err != nil {
        return "", err
    }
    if !utils.VerifyPassword(u.PasswordHash, password) {
        return "", ErrInvalidCredentials
    }
    tok, err := utils.NewAuthToken(s.opts.Secret, u.ID)
    if err != nil {
        return "", fmt.Errorf("sign token: %w", err)
    }
    if err := s.tokens.Store(ctx, u.ID, utils.HashTokenID(tok.ID)); err != nil {
        return "", fmt.Errorf("store token: %w", err)
    }
    return tok.Token, nil
}

// Resolve maps a raw token to its live user.
func (s *Identity) Resolve(ctx context.Context, raw string) (model.User, error) {
    tok, err := utils.ParseAuthToken(s.opts.Secret, raw)
    if err != nil {
        return model.User{}, ErrInvalidToken
    }
    uid, err := s.tokens.Lookup(ctx, utils.HashTokenID(tok.ID))
    if errors.Is(err, repository.ErrNotFound) {
        return model.User{}, ErrInvalidToken
    }
    if err != nil {
        return model.User{}, err
    }
    if uid != tok.UserID {
        return model.User{}, ErrInvalidToken
    }
    u, err := s.users.GetByID(ctx, uid)
    if errors.Is(err, repository.ErrNotFound) {
        return model.User{}, ErrInvalidToken
    }
    return u, err
}

// User loads the account behind a resolved caller.
func (s *Identity) User(ctx context.Context, id uint64) (model.User, error) {
    return s.users.GetByID(ctx, id)
}

// UpdateSelf applies in to the account userID. With partial set only the
// supplied fields are validated and written; otherwise in must be complete.
func (s *Identity) UpdateSelf(ctx context.Context, userID uint64, in model.UserInput, partial bool) (model.User, error) {
    if err := s.inputErrors(in, partial); err != nil {
        return model.User{}, err
    }
    u, err := s.users.GetByID(ctx, userID)
    if err != nil {
        return model.User{}, err
    }
    in.Apply(&u)
    if in.Password != nil {
        hash, err := utils.HashPassword(*in.Password, s.opts.BcryptCost)
        if err != nil {
            return model.User{}, fmt.Errorf("hash password: %w", err)
        }
        u.PasswordHash = hash
    }
    if err := s.users.Update(ctx, &u); err != nil {
        return model.User{}, err
    }
    return u, nil
}

// Promote makes username a staff member, registering the account first
// when it does not exist yet. The server runs it at startup for
// STAFF_USERNAME.
func (s *Identity) Promote(ctx context.Context, username, password string) (model.User, error) {
    u, err := s.users.GetByUsername(ctx, username)
    if errors.Is(err, repository.ErrNotFound) {
        u, err = s.Register(ctx, model.UserInput{Username: &username, Password: &password})
    }
    if err != nil {
        return model.User{}, err
    }
    if err := s.users.SetStaff(ctx, u.ID, true); err != nil {
        return model.User{}, err
    }
    u.IsStaff = true
    return u, nil
}

// Revoke invalidates raw so later Resolve calls fail.
func (s *Identity) Revoke(ctx context.Context, raw string) error {
    tok, err := utils.ParseAuthToken(s.opts.Secret, raw)
    if err != nil {
        return ErrInvalidToken
    }
    err = s.tokens.Revoke(ctx, utils.HashTokenID(tok.ID))
    if errors.Is(err, repository.ErrNotFound) {
        return ErrInvalidToken
    }
    return err
}
