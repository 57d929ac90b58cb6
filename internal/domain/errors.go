package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrRecordNotFound        = errors.New("record not found")
	ErrUnknownReference      = errors.New("referenced record does not exist")
	ErrDuplicateHallName     = errors.New("a theatre hall with this name already exists")
	ErrEmptyTicketList       = errors.New("tickets field is required")
	ErrInvalidSeatCoordinate = errors.New("invalid seat coordinate")
	ErrSeatAlreadyTaken      = errors.New("seat is already taken")
	ErrUnsupportedImageType  = errors.New("unsupported image type")
)

// InvalidSeatError describes a seat that lies outside of a hall's grid.
// Both axes are checked, so RowOutOfRange and SeatOutOfRange may be set at once.
type InvalidSeatError struct {
	Row            int
	Seat           int
	MaxRows        int
	MaxSeatsInRow  int
	RowOutOfRange  bool
	SeatOutOfRange bool
}

func (e *InvalidSeatError) Error() string {
	switch {
	case e.RowOutOfRange && e.SeatOutOfRange:
		return fmt.Sprintf("%s; %s", e.RowIssue(), e.SeatIssue())
	case e.RowOutOfRange:
		return e.RowIssue()
	default:
		return e.SeatIssue()
	}
}

func (e *InvalidSeatError) RowIssue() string {
	return fmt.Sprintf("row must be in range [1, %d], got %d", e.MaxRows, e.Row)
}

func (e *InvalidSeatError) SeatIssue() string {
	return fmt.Sprintf("seat must be in range [1, %d], got %d", e.MaxSeatsInRow, e.Seat)
}

func (e *InvalidSeatError) Is(target error) bool {
	return target == ErrInvalidSeatCoordinate
}

// TicketError ties a failure to one ticket of a reservation request.
// Index is the position of the ticket in the request.
type TicketError struct {
	Index         int
	Row           int
	Seat          int
	PerformanceID int
	Err           error
}

func (e *TicketError) Error() string {
	return fmt.Sprintf("ticket %d (row %d, seat %d, performance %d): %v",
		e.Index, e.Row, e.Seat, e.PerformanceID, e.Err)
}

func (e *TicketError) Unwrap() error {
	return e.Err
}
