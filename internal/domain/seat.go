package domain

import (
	"cmp"
	"slices"
)

// Seat is a coordinate inside a hall grid. Rows and numbers start at 1.
type Seat struct {
	Row    int
	Number int
}

func compareSeats(a, b Seat) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}

	return cmp.Compare(a.Number, b.Number)
}

// SeatSet is an unordered set of seats.
type SeatSet map[Seat]struct{}

func NewSeatSet(seats ...Seat) SeatSet {
	set := make(SeatSet, len(seats))
	for _, s := range seats {
		set.Add(s)
	}

	return set
}

func (s SeatSet) Add(seat Seat) {
	s[seat] = struct{}{}
}

func (s SeatSet) Contains(seat Seat) bool {
	_, ok := s[seat]
	return ok
}

func (s SeatSet) Len() int {
	return len(s)
}

// Within keeps the seats that lie inside the hall grid. Tickets sold before a
// hall was made smaller fall outside it.
func (s SeatSet) Within(hall TheatreHall) SeatSet {
	inside := make(SeatSet, len(s))
	for seat := range s {
		if hall.Contains(seat) {
			inside.Add(seat)
		}
	}

	return inside
}

// Sorted returns the seats in row-major order.
func (s SeatSet) Sorted() []Seat {
	seats := make([]Seat, 0, len(s))
	for seat := range s {
		seats = append(seats, seat)
	}

	slices.SortFunc(seats, compareSeats)

	return seats
}

// ValidateSeat checks a requested coordinate against the bounds of a hall.
// It returns an *InvalidSeatError when either axis falls outside [1, max].
func ValidateSeat(row, maxRows, seat, maxSeatsInRow int) error {
	rowOut := row < 1 || row > maxRows
	seatOut := seat < 1 || seat > maxSeatsInRow

	if !rowOut && !seatOut {
		return nil
	}

	return &InvalidSeatError{
		Row:            row,
		Seat:           seat,
		MaxRows:        maxRows,
		MaxSeatsInRow:  maxSeatsInRow,
		RowOutOfRange:  rowOut,
		SeatOutOfRange: seatOut,
	}
}

// TakenSeats collects the coordinates claimed by the given tickets.
func TakenSeats(tickets []Ticket) SeatSet {
	taken := make(SeatSet, len(tickets))
	for _, t := range tickets {
		taken.Add(t.Coordinate())
	}

	return taken
}

// FreeSeats enumerates the hall grid row by row and leaves out taken seats.
func FreeSeats(hall TheatreHall, taken SeatSet) []Seat {
	free := make([]Seat, 0, max(hall.Capacity()-taken.Len(), 0))

	for row := 1; row <= hall.Rows; row++ {
		for number := 1; number <= hall.SeatsInRow; number++ {
			seat := Seat{Row: row, Number: number}
			if !taken.Contains(seat) {
				free = append(free, seat)
			}
		}
	}

	return free
}

// AvailableSeatCount equals len(FreeSeats(hall, taken)) without building the slice.
func AvailableSeatCount(hall TheatreHall, taken SeatSet) int {
	occupied := 0
	for seat := range taken {
		if hall.Contains(seat) {
			occupied++
		}
	}

	return hall.Capacity() - occupied
}
