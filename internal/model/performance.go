package model

import "time"

// Performance is a scheduled showing of a Play in a TheatreHall.  The
// relationships are rendered as bare identifiers.
//
// Fields:
//  ID            – primary key identifier.
//  PlayID        – play being performed (plays.id).
//  TheatreHallID – hall hosting the performance (theatre_halls.id).
//  ShowTime      – start of the performance, UTC with whole seconds.
type Performance struct {
    ID            uint64    `json:"id"`           // performances.id
    PlayID        uint64    `json:"play"`         // performances.play_id
    TheatreHallID uint64    `json:"theatre_hall"` // performances.theatre_hall_id
    ShowTime      time.Time `json:"show_time"`    // performances.show_time
}

type PerformanceInput struct {
    Play        *uint64    `json:"play" validate:"required"`
    TheatreHall *uint64    `json:"theatre_hall" validate:"required"`
    ShowTime    *time.Time `json:"show_time" validate:"required"`
}

func (in PerformanceInput) Apply(p *Performance) {
    if in.Play != nil {
        p.PlayID = *in.Play
    }
    if in.TheatreHall != nil {
        p.TheatreHallID = *in.TheatreHall
    }
    if in.ShowTime != nil {
        p.ShowTime = in.ShowTime.UTC().Truncate(time.Second)
    }
}
