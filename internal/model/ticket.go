package model

// Ticket is a single seat of a Performance booked under a Reservation.
// No uniqueness is enforced on (performance, row, seat).
//
// Fields:
//  ID            – primary key identifier.
//  Row           – seating row number, starting at 1.
//  Seat          – seat number within the row, starting at 1.
//  PerformanceID – performance the seat belongs to.
//  ReservationID – reservation the ticket was booked under.
type Ticket struct {
    ID            uint64 `json:"id"`          // tickets.id
    Row           int    `json:"row"`         // tickets.row_no
    Seat          int    `json:"seat"`        // tickets.seat_no
    PerformanceID uint64 `json:"performance"` // tickets.performance_id
    ReservationID uint64 `json:"reservation"` // tickets.reservation_id
}

type TicketInput struct {
    Row         *int    `json:"row" validate:"required,gt=0,max=2147483647"`
    Seat        *int    `json:"seat" validate:"required,gt=0,max=2147483647"`
    Performance *uint64 `json:"performance" validate:"required"`
    Reservation *uint64 `json:"reservation" validate:"required"`
}

func (in TicketInput) Apply(t *Ticket) {
    if in.Row != nil {
        t.Row = *in.Row
    }
    if in.Seat != nil {
        t.Seat = *in.Seat
    }
    if in.Performance != nil {
        t.PerformanceID = *in.Performance
    }
    if in.Reservation != nil {
        t.ReservationID = *in.Reservation
    }
}
