// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names. Publishers use them as routing keys on the default exchange.
const (
    ReservationCreatedQueue = "reservation.created"
    TicketIssuedQueue       = "ticket.issued"
)

// ReservationCreatedEvent is published after a reservation row commits.
type ReservationCreatedEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    UserID        uint64 `json:"user_id"`
    CreatedAt     string `json:"created_at"`
}

// TicketIssuedEvent is published after a ticket row commits. It carries
// enough for a downstream consumer to log the seat without a DB lookup.
type TicketIssuedEvent struct {
    TicketID      uint64 `json:"ticket_id"`
    ReservationID uint64 `json:"reservation_id"`
    PerformanceID uint64 `json:"performance_id"`
    Row           int    `json:"row"`
    Seat          int    `json:"seat"`
    IssuedAt      string `json:"issued_at"`
}
