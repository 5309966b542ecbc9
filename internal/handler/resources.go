package handler

import (
    "context"
    "log"
    "time"

    "github.com/iliyamo/theatre-reservation/internal/access"
    "github.com/iliyamo/theatre-reservation/internal/model"
    "github.com/iliyamo/theatre-reservation/internal/queue"
    "github.com/iliyamo/theatre-reservation/internal/repository"
    "github.com/iliyamo/theatre-reservation/internal/service"
)

type (
    TheatreHalls = Resource[model.TheatreHall, model.TheatreHallInput]
    Plays        = Resource[model.Play, model.PlayInput]
    Performances = Resource[model.Performance, model.PerformanceInput]
    Actors       = Resource[model.Actor, model.ActorInput]
    Genres       = Resource[model.Genre, model.GenreInput]
    Reservations = Resource[model.Reservation, model.ReservationInput]
    Tickets      = Resource[model.Ticket, model.TicketInput]
)

func NewTheatreHalls(s Store[model.TheatreHall]) *TheatreHalls   { return &TheatreHalls{Store: s} }
func NewPlays(s Store[model.Play]) *Plays                         { return &Plays{Store: s} }
func NewPerformances(s Store[model.Performance]) *Performances   { return &Performances{Store: s} }
func NewActors(s Store[model.Actor]) *Actors                      { return &Actors{Store: s} }
func NewGenres(s Store[model.Genre]) *Genres                      { return &Genres{Store: s} }

// NewReservations owns new reservations by the caller unless the payload
// names a user, and announces each one on the broker.
func NewReservations(s Store[model.Reservation], pub service.Publisher) *Reservations {
    return &Reservations{
        Store: s,
        BeforeCreate: func(caller access.Caller, r *model.Reservation) error {
            if r.UserID == 0 {
                r.UserID = caller.UserID
            }
            if r.UserID == 0 {
                return repository.NewValidationError("user", "This field is required.")
            }
            return nil
        },
        AfterCreate: func(ctx context.Context, r model.Reservation) {
            publish(ctx, pub, queue.ReservationCreatedQueue, queue.ReservationCreatedEvent{
                ReservationID: r.ID,
                UserID:        r.UserID,
                CreatedAt:     r.CreatedAt.String(),
            })
        },
    }
}

// NewTickets announces each issued ticket on the broker.
func NewTickets(s Store[model.Ticket], pub service.Publisher) *Tickets {
    return &Tickets{
        Store: s,
        AfterCreate: func(ctx context.Context, t model.Ticket) {
            publish(ctx, pub, queue.TicketIssuedQueue, queue.TicketIssuedEvent{
                TicketID:      t.ID,
                ReservationID: t.ReservationID,
                PerformanceID: t.PerformanceID,
                Row:           t.Row,
                Seat:          t.Seat,
                IssuedAt:      model.NewTimestamp(time.Now()).String(),
            })
        },
    }
}

// publish sends in the background; a broker outage must not fail or slow
// the request that produced the event.
func publish(ctx context.Context, pub service.Publisher, q string, event any) {
    if pub == nil {
        return
    }
    ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), requestTimeout)
    go func() {
        defer cancel()
        if err := pub.Publish(ctx, q, event); err != nil {
            log.Printf("publish %s: %v", q, err)
        }
    }()
}
