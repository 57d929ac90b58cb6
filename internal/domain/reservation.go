package domain

import (
	"context"
	"time"
)

type Reservation struct {
	ID        int
	UserID    int
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID            int
	Row           int
	Seat          int
	PerformanceID int
	ReservationID int
}

func (t Ticket) Coordinate() Seat {
	return Seat{Row: t.Row, Number: t.Seat}
}

// TicketRequest is one seat asked for in a reservation request.
type TicketRequest struct {
	Row           int
	Seat          int
	PerformanceID int
}

type ReservationRepository interface {
	// Create inserts the reservation and all of its tickets in one transaction.
	// A seat collision is reported as a *TicketError wrapping ErrSeatAlreadyTaken
	// and nothing is persisted.
	Create(ctx context.Context, reservation *Reservation) error
	GetTicketsByPerformanceId(ctx context.Context, performanceId int) ([]Ticket, error)
	GetByUserId(ctx context.Context, userId int, pagination Pagination) ([]Reservation, *Metadata, error)
}
