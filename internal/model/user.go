package model

import "time"

// User represents an account as stored in the `users` table.  The
// password hash is excluded from every JSON rendering.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  Email        – optional email address.
//  FirstName    – optional given name.
//  LastName     – optional family name.
//  PasswordHash – bcrypt hash, never serialized.
//  IsStaff      – grants write access to catalog data.
//  CreatedAt    – timestamp of creation.
type User struct {
    ID           uint64    `json:"id"`         // users.id
    Username     string    `json:"username"`   // users.username
    Email        string    `json:"email"`      // users.email
    FirstName    string    `json:"first_name"` // users.first_name
    LastName     string    `json:"last_name"`  // users.last_name
    PasswordHash string    `json:"-"`          // users.password_hash
    IsStaff      bool      `json:"is_staff"`   // users.is_staff
    CreatedAt    time.Time `json:"-"`          // users.created_at
}

// UserInput is the writable representation of a user, used both for
// registration and for updating one's own profile.  Password strength
// is checked by the identity service, not by struct tags, because the
// minimum length is configurable.
type UserInput struct {
    Username  *string `json:"username" validate:"required,notblank,max=150"`
    Password  *string `json:"password" validate:"required"`
    Email     *string `json:"email" validate:"omitempty,email,max=254"`
    FirstName *string `json:"first_name" validate:"omitempty,max=150"`
    LastName  *string `json:"last_name" validate:"omitempty,max=150"`
}

// Apply copies profile fields onto u.  The password is handled
// separately because it must be hashed first.
func (in UserInput) Apply(u *User) {
    if in.Username != nil {
        u.Username = text(in.Username)
    }
    if in.Email != nil {
        u.Email = text(in.Email)
    }
    if in.FirstName != nil {
        u.FirstName = text(in.FirstName)
    }
    if in.LastName != nil {
        u.LastName = text(in.LastName)
    }
}

// Credentials is the body of POST /users/token/.
type Credentials struct {
    Username string `json:"username" validate:"required"`
    Password string `json:"password" validate:"required"`
}
