package model

type Actor struct {
    ID        uint64 `json:"id"`         // actors.id
    FirstName string `json:"first_name"` // actors.first_name
    LastName  string `json:"last_name"`  // actors.last_name
}

// FullName joins first and last name with a single space.
func (a Actor) FullName() string { return a.FirstName + " " + a.LastName }

type ActorInput struct {
    FirstName *string `json:"first_name" validate:"required,notblank,max=255"`
    LastName  *string `json:"last_name" validate:"required,notblank,max=255"`
}

func (in ActorInput) Apply(a *Actor) {
    if in.FirstName != nil {
        a.FirstName = text(in.FirstName)
    }
    if in.LastName != nil {
        a.LastName = text(in.LastName)
    }
}
