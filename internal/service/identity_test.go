package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/theatre-reservation/internal/model"
	"github.com/iliyamo/theatre-reservation/internal/repository"
)

type memUsers struct {
	mu   sync.Mutex
	next uint64
	rows map[uint64]model.User
}

func newMemUsers() *memUsers { return &memUsers{rows: map[uint64]model.User{}} }

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Username == u.Username {
			return repository.NewValidationError("username", "A user with that username already exists.")
		}
	}
	m.next++
	u.ID = m.next
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) GetByUsername(_ context.Context, name string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Username == name {
			return r, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return r, nil
}

func (m *memUsers) Update(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[u.ID]; !ok {
		return repository.ErrNotFound
	}
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) SetStaff(_ context.Context, id uint64, staff bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsStaff = staff
	m.rows[id] = u
	return nil
}

type memTokens struct {
	mu      sync.Mutex
	owner   map[string]uint64
	revoked map[string]bool
}

func newMemTokens() *memTokens {
	return &memTokens{owner: map[string]uint64{}, revoked: map[string]bool{}}
}

func (m *memTokens) Store(_ context.Context, uid uint64, h string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owner[h] = uid
	return nil
}

func (m *memTokens) Lookup(_ context.Context, h string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	uid, ok := m.owner[h]
	if !ok || m.revoked[h] {
		return 0, repository.ErrNotFound
	}
	return uid, nil
}

func (m *memTokens) Revoke(_ context.Context, h string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.owner[h]; !ok || m.revoked[h] {
		return repository.ErrNotFound
	}
	m.revoked[h] = true
	return nil
}

func strp(s string) *string { return &s }

func newIdentity() *Identity {
	return NewIdentity(newMemUsers(), newMemTokens(), IdentityOptions{
		Secret:     "test-secret",
		BcryptCost: bcrypt.MinCost,
	})
}

func fieldErrors(t *testing.T, err error) map[string][]string {
	t.Helper()
	var verr *repository.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	return verr.Fields
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	s := newIdentity()

	u, err := s.Register(ctx, model.UserInput{Username: strp("alice"), Password: strp("pass12"), Email: strp("a@example.com")})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == 0 || u.PasswordHash == "" || u.PasswordHash == "pass12" || u.IsStaff {
		t.Fatalf("unexpected user %+v", u)
	}

	tok, err := s.Authenticate(ctx, "alice", "pass12")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	got, err := s.Resolve(ctx, tok)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != u.ID || got.Username != "alice" {
		t.Fatalf("resolved wrong user %+v", got)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	s := newIdentity()

	tests := []struct {
		name   string
		in     model.UserInput
		fields []string
	}{
		{"short password", model.UserInput{Username: strp("bob"), Password: strp("1234")}, []string{"password"}},
		{"missing username", model.UserInput{Password: strp("12345")}, []string{"username"}},
		{"both", model.UserInput{Username: strp(""), Password: strp("1")}, []string{"username", "password"}},
		{"blank username", model.UserInput{Username: strp("   "), Password: strp("12345")}, []string{"username"}},
		{"bad email", model.UserInput{Username: strp("bob"), Password: strp("12345"), Email: strp("nope")}, []string{"email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(ctx, tt.in)
			fields := fieldErrors(t, err)
			if len(fields) != len(tt.fields) {
				t.Fatalf("expected fields %v, got %v", tt.fields, fields)
			}
			for _, f := range tt.fields {
				if _, ok := fields[f]; !ok {
					t.Errorf("missing error for %s in %v", f, fields)
				}
			}
		})
	}
}

func TestRegisterMinimumLengthAccepted(t *testing.T) {
	if _, err := newIdentity().Register(context.Background(), model.UserInput{Username: strp("carol"), Password: strp("12345")}); err != nil {
		t.Fatalf("five character password should be accepted: %v", err)
	}
}

func TestRegisterTrimsUsername(t *testing.T) {
	ctx := context.Background()
	s := newIdentity()
	u, err := s.Register(ctx, model.UserInput{Username: strp("  judy "), Password: strp("12345")})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Username != "judy" {
		t.Fatalf("expected trimmed username, got %q", u.Username)
	}
	if _, err := s.Authenticate(ctx, "judy", "12345"); err != nil {
		t.Fatalf("Authenticate trimmed name: %v", err)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	s := newIdentity()
	in := model.UserInput{Username: strp("dave"), Password: strp("secret")}
	if _, err := s.Register(ctx, in); err != nil {
		t.Fatal(err)
	}
	if fields := fieldErrors(t, mustErr(s.Register(ctx, in))); len(fields["username"]) != 1 {
		t.Fatalf("expected username error, got %v", fields)
	}
}

func mustErr(_ model.User, err error) error { return err }

func TestAuthenticateFailures(t *testing.T) {
	ctx := context.Background()
	s := newIdentity()
	if _, err := s.Register(ctx, model.UserInput{Username: strp("erin"), Password: strp("right1")}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Authenticate(ctx, "erin", "wrong1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := s.Authenticate(ctx, "nobody", "right1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestResolveRejects(t *testing.T) {
	ctx := context.Background()
	s := newIdentity()
	if _, err := s.Resolve(ctx, "garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	other := NewIdentity(newMemUsers(), newMemTokens(), IdentityOptions{Secret: "test-secret", BcryptCost: bcrypt.MinCost})
	if _, err := other.Register(ctx, model.UserInput{Username: strp("frank"), Password: strp("12345")}); err != nil {
		t.Fatal(err)
	}
	tok, err := other.Authenticate(ctx, "frank", "12345")
	if err != nil {
		t.Fatal(err)
	}
	// Same secret, but the token was never stored by s.
	if _, err := s.Resolve(ctx, tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("unknown jti: expected ErrInvalidToken, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	s := newIdentity()
	if _, err := s.Register(ctx, model.UserInput{Username: strp("gina"), Password: strp("12345")}); err != nil {
		t.Fatal(err)
	}
	first, _ := s.Authenticate(ctx, "gina", "12345")
	second, _ := s.Authenticate(ctx, "gina", "12345")

	if err := s.Revoke(ctx, first); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if _, err := s.Resolve(ctx, first); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("revoked token still resolves: %v", err)
	}
	if _, err := s.Resolve(ctx, second); err != nil {
		t.Fatalf("other session should survive: %v", err)
	}
	if err := s.Revoke(ctx, first); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("double revoke: expected ErrInvalidToken, got %v", err)
	}
}

func TestUpdateSelf(t *testing.T) {
	ctx := context.Background()
	s := newIdentity()
	u, err := s.Register(ctx, model.UserInput{Username: strp("hank"), Password: strp("12345"), FirstName: strp("Hank")})
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.UpdateSelf(ctx, u.ID, model.UserInput{LastName: strp("Hill")}, true)
	if err != nil {
		t.Fatalf("partial: %v", err)
	}
	if got.FirstName != "Hank" || got.LastName != "Hill" || got.PasswordHash != u.PasswordHash {
		t.Fatalf("partial update touched the wrong fields: %+v", got)
	}

	if _, err := s.UpdateSelf(ctx, u.ID, model.UserInput{Password: strp("abc")}, true); err == nil {
		t.Fatal("short password accepted on update")
	}

	if _, err := s.UpdateSelf(ctx, u.ID, model.UserInput{Password: strp("newpass")}, true); err != nil {
		t.Fatalf("password change: %v", err)
	}
	if _, err := s.Authenticate(ctx, "hank", "12345"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatal("old password still works")
	}
	if _, err := s.Authenticate(ctx, "hank", "newpass"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if _, err := s.UpdateSelf(ctx, u.ID, model.UserInput{FirstName: strp("H")}, false); err == nil {
		t.Fatal("full update without username and password should fail")
	}
}

func TestPromote(t *testing.T) {
	ctx := context.Background()
	users := newMemUsers()
	s := NewIdentity(users, newMemTokens(), IdentityOptions{Secret: "k", BcryptCost: bcrypt.MinCost})

	u, err := s.Promote(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Promote new: %v", err)
	}
	stored, _ := users.GetByID(ctx, u.ID)
	if !u.IsStaff || !stored.IsStaff {
		t.Fatalf("expected staff, got %+v / %+v", u, stored)
	}

	if _, err := s.Register(ctx, model.UserInput{Username: strp("ivy"), Password: strp("12345")}); err != nil {
		t.Fatal(err)
	}
	if u, err := s.Promote(ctx, "ivy", ""); err != nil || !u.IsStaff {
		t.Fatalf("Promote existing: %+v %v", u, err)
	}

	if _, err := s.Promote(ctx, "short", "123"); err == nil {
		t.Fatal("expected password validation for a new account")
	}
}
