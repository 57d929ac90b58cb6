package mocks

import (
	"context"

	"github.com/metinatakli/theatre-box-office/internal/domain"
)

type MockTheatreHallRepo struct {
	domain.TheatreHallRepository
	CreateFunc  func(ctx context.Context, hall *domain.TheatreHall) error
	GetAllFunc  func(ctx context.Context) ([]domain.TheatreHall, error)
	GetByIdFunc func(ctx context.Context, id int) (*domain.TheatreHall, error)
	UpdateFunc  func(ctx context.Context, hall *domain.TheatreHall) error
	DeleteFunc  func(ctx context.Context, id int) error
}

func (m *MockTheatreHallRepo) Create(ctx context.Context, hall *domain.TheatreHall) error {
	return m.CreateFunc(ctx, hall)
}

func (m *MockTheatreHallRepo) GetAll(ctx context.Context) ([]domain.TheatreHall, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockTheatreHallRepo) GetById(ctx context.Context, id int) (*domain.TheatreHall, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockTheatreHallRepo) Update(ctx context.Context, hall *domain.TheatreHall) error {
	return m.UpdateFunc(ctx, hall)
}

func (m *MockTheatreHallRepo) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

type MockPlayRepo struct {
	domain.PlayRepository
	CreateFunc        func(ctx context.Context, play *domain.Play) error
	GetAllFunc        func(ctx context.Context, filters domain.PlayFilters) ([]domain.Play, error)
	GetDetailByIdFunc func(ctx context.Context, id int) (*domain.PlayDetail, error)
	UpdateFunc        func(ctx context.Context, play *domain.Play) error
	UpdateImageFunc   func(ctx context.Context, id int, image string) error
}

func (m *MockPlayRepo) Create(ctx context.Context, play *domain.Play) error {
	return m.CreateFunc(ctx, play)
}

func (m *MockPlayRepo) GetAll(ctx context.Context, filters domain.PlayFilters) ([]domain.Play, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockPlayRepo) GetDetailById(ctx context.Context, id int) (*domain.PlayDetail, error) {
	return m.GetDetailByIdFunc(ctx, id)
}

func (m *MockPlayRepo) Update(ctx context.Context, play *domain.Play) error {
	return m.UpdateFunc(ctx, play)
}

func (m *MockPlayRepo) UpdateImage(ctx context.Context, id int, image string) error {
	return m.UpdateImageFunc(ctx, id, image)
}

type MockActorRepo struct {
	domain.ActorRepository
	GetAllFunc        func(ctx context.Context, filters domain.ActorFilters) ([]domain.Actor, error)
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Actor, error)
	GetDetailByIdFunc func(ctx context.Context, id int) (*domain.ActorDetail, error)
	UpdateFunc        func(ctx context.Context, actor *domain.Actor) error
	UpdateImageFunc   func(ctx context.Context, id int, image string) error
}

func (m *MockActorRepo) GetAll(ctx context.Context, filters domain.ActorFilters) ([]domain.Actor, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockActorRepo) GetById(ctx context.Context, id int) (*domain.Actor, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockActorRepo) GetDetailById(ctx context.Context, id int) (*domain.ActorDetail, error) {
	return m.GetDetailByIdFunc(ctx, id)
}

func (m *MockActorRepo) Update(ctx context.Context, actor *domain.Actor) error {
	return m.UpdateFunc(ctx, actor)
}

func (m *MockActorRepo) UpdateImage(ctx context.Context, id int, image string) error {
	return m.UpdateImageFunc(ctx, id, image)
}

type MockGenreRepo struct {
	domain.GenreRepository
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Genre, error)
	GetDetailByIdFunc func(ctx context.Context, id int) (*domain.GenreDetail, error)
	UpdateFunc        func(ctx context.Context, genre *domain.Genre) error
}

func (m *MockGenreRepo) GetById(ctx context.Context, id int) (*domain.Genre, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockGenreRepo) GetDetailById(ctx context.Context, id int) (*domain.GenreDetail, error) {
	return m.GetDetailByIdFunc(ctx, id)
}

func (m *MockGenreRepo) Update(ctx context.Context, genre *domain.Genre) error {
	return m.UpdateFunc(ctx, genre)
}
