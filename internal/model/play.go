package model

// Play is a stage work that can be scheduled as performances.
type Play struct {
    ID          uint64 `json:"id"`          // plays.id
    Title       string `json:"title"`       // plays.title
    Description string `json:"description"` // plays.description
}

type PlayInput struct {
    Title       *string `json:"title" validate:"required,notblank,max=255"`
    Description *string `json:"description" validate:"required,notblank,max=65535"`
}

func (in PlayInput) Apply(p *Play) {
    if in.Title != nil {
        p.Title = text(in.Title)
    }
    if in.Description != nil {
        p.Description = text(in.Description)
    }
}
