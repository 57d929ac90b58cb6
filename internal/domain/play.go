package domain

import "context"

type Genre struct {
	ID   int
	Name string
}

// GenreDetail is a genre together with the plays filed under it.
type GenreDetail struct {
	Genre
	Plays []Play
}

type Actor struct {
	ID        int
	FirstName string
	LastName  string
	Image     *string
}

func (a Actor) FullName() string {
	return a.FirstName + " " + a.LastName
}

// ActorDetail is an actor together with the plays they appear in.
type ActorDetail struct {
	Actor
	Plays []Play
}

type Play struct {
	ID          int
	Title       string
	Description string
	Image       *string
	ActorIDs    []int
	GenreIDs    []int
}

type PlayDetail struct {
	ID          int
	Title       string
	Description string
	Image       *string
	Actors      []Actor
	Genres      []Genre
}

func (p PlayDetail) ActorIDs() []int {
	ids := make([]int, len(p.Actors))
	for i, a := range p.Actors {
		ids[i] = a.ID
	}

	return ids
}

func (p PlayDetail) GenreIDs() []int {
	ids := make([]int, len(p.Genres))
	for i, g := range p.Genres {
		ids[i] = g.ID
	}

	return ids
}

// PlayFilters narrows the play list. Matching is case-insensitive on the
// title, and a play matches an id list if it has any of the listed ids.
type PlayFilters struct {
	Title    string
	ActorIDs []int
	GenreIDs []int
}

type ActorFilters struct {
	FirstName string
	LastName  string
}

type GenreRepository interface {
	Create(ctx context.Context, genre *Genre) error
	GetAll(ctx context.Context) ([]Genre, error)
	GetById(ctx context.Context, id int) (*Genre, error)
	GetDetailById(ctx context.Context, id int) (*GenreDetail, error)
	Update(ctx context.Context, genre *Genre) error
	Delete(ctx context.Context, id int) error
}

type ActorRepository interface {
	Create(ctx context.Context, actor *Actor) error
	GetAll(ctx context.Context, filters ActorFilters) ([]Actor, error)
	GetById(ctx context.Context, id int) (*Actor, error)
	GetDetailById(ctx context.Context, id int) (*ActorDetail, error)
	Update(ctx context.Context, actor *Actor) error
	UpdateImage(ctx context.Context, id int, image string) error
	Delete(ctx context.Context, id int) error
}

type PlayRepository interface {
	Create(ctx context.Context, play *Play) error
	GetAll(ctx context.Context, filters PlayFilters) ([]Play, error)
	GetDetailById(ctx context.Context, id int) (*PlayDetail, error)
	// Update replaces the title, description and the actor and genre links.
	Update(ctx context.Context, play *Play) error
	UpdateImage(ctx context.Context, id int, image string) error
	Delete(ctx context.Context, id int) error
}
