package domain

import (
	"context"
	"time"
)

type TheatreHall struct {
	ID         int
	Name       string
	Rows       int
	SeatsInRow int
}

// Capacity is the number of seats in the hall grid.
func (h TheatreHall) Capacity() int {
	if h.Rows < 1 || h.SeatsInRow < 1 {
		return 0
	}

	return h.Rows * h.SeatsInRow
}

func (h TheatreHall) Contains(seat Seat) bool {
	return seat.Row >= 1 && seat.Row <= h.Rows && seat.Number >= 1 && seat.Number <= h.SeatsInRow
}

// Seats lists every seat of the grid in row-major order.
func (h TheatreHall) Seats() []Seat {
	return FreeSeats(h, nil)
}

func (h TheatreHall) ValidateSeat(seat Seat) error {
	return ValidateSeat(seat.Row, h.Rows, seat.Number, h.SeatsInRow)
}

type Performance struct {
	ID       int
	PlayID   int
	Hall     TheatreHall
	ShowTime time.Time
}

// PerformanceSummary is the list view of a performance.
type PerformanceSummary struct {
	ID                  int
	PlayID              int
	PlayTitle           string
	HallID              int
	HallName            string
	HallCapacity        int
	ShowTime            time.Time
	AvailableSeatsCount int
}

// PerformanceDetail is a performance with its play and hall expanded.
type PerformanceDetail struct {
	ID       int
	Play     PlayDetail
	Hall     TheatreHall
	ShowTime time.Time
}

type PerformanceFilters struct {
	PlayID *int
	Date   *time.Time
}

type TheatreHallRepository interface {
	Create(ctx context.Context, hall *TheatreHall) error
	GetAll(ctx context.Context) ([]TheatreHall, error)
	GetById(ctx context.Context, id int) (*TheatreHall, error)
	Update(ctx context.Context, hall *TheatreHall) error
	Delete(ctx context.Context, id int) error
}

type PerformanceRepository interface {
	Create(ctx context.Context, performance *Performance) error
	GetById(ctx context.Context, id int) (*Performance, error)
	GetDetailById(ctx context.Context, id int) (*PerformanceDetail, error)
	GetAll(ctx context.Context, filters PerformanceFilters) ([]PerformanceSummary, error)
	Update(ctx context.Context, performance *Performance) error
	Delete(ctx context.Context, id int) error
}
