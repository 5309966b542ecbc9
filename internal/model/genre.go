package model

type Genre struct {
    ID   uint64 `json:"id"`   // genres.id
    Name string `json:"name"` // genres.name
}

type GenreInput struct {
    Name *string `json:"name" validate:"required,notblank,max=255"`
}

func (in GenreInput) Apply(g *Genre) {
    if in.Name != nil {
        g.Name = text(in.Name)
    }
}
