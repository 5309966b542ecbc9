package model

// Reservation groups the tickets a user books together.  CreatedAt is
// assigned by the store when the row is inserted and is never taken
// from client input.
//
// Fields:
//  ID        – primary key identifier.
//  CreatedAt – creation instant, UTC, second precision.
//  UserID    – user owning the reservation (users.id).
type Reservation struct {
    ID        uint64    `json:"id"`         // reservations.id
    CreatedAt Timestamp `json:"created_at"` // reservations.created_at
    UserID    uint64    `json:"user"`       // reservations.user_id
}

// ReservationInput carries the only writable reservation field.  User
// is optional: when omitted on create the calling user is used.
type ReservationInput struct {
    User *uint64 `json:"user"`
}

func (in ReservationInput) Apply(r *Reservation) {
    if in.User != nil {
        r.UserID = *in.User
    }
}
