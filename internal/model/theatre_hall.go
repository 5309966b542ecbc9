package model

// TheatreHall is a room in which performances take place.  Its seating
// grid is described by Rows and SeatsInRow, both of which must be
// positive.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – human readable hall name.
//  Rows       – number of seating rows.
//  SeatsInRow – number of seats in every row.
type TheatreHall struct {
    ID         uint64 `json:"id"`           // theatre_halls.id
    Name       string `json:"name"`         // theatre_halls.name
    Rows       int    `json:"rows"`         // theatre_halls.rows
    SeatsInRow int    `json:"seats_in_row"` // theatre_halls.seats_in_row
}

// Capacity returns the total number of seats in the hall.
func (h TheatreHall) Capacity() int { return h.Rows * h.SeatsInRow }

// TheatreHallInput is the writable representation of a hall.  Pointer
// fields distinguish "absent" from "zero" so the same type serves full
// and partial updates.
type TheatreHallInput struct {
    Name       *string `json:"name" validate:"required,notblank,max=255"`
    Rows       *int    `json:"rows" validate:"required,gt=0,max=2147483647"`
    SeatsInRow *int    `json:"seats_in_row" validate:"required,gt=0,max=2147483647"`
}

// Apply copies every present field onto h.
func (in TheatreHallInput) Apply(h *TheatreHall) {
    if in.Name != nil {
        h.Name = text(in.Name)
    }
    if in.Rows != nil {
        h.Rows = *in.Rows
    }
    if in.SeatsInRow != nil {
        h.SeatsInRow = *in.SeatsInRow
    }
}
