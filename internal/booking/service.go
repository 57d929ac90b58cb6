// Package booking holds the seat inventory of performances and the creation
// of reservations. Correctness under concurrent bookings rests on the unique
// (row, seat, performance) constraint of the ticket store; the checks made
// here before writing only reject requests early.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/metinatakli/theatre-box-office/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/metinatakli/theatre-box-office/internal/booking"

const (
	reasonEmpty       = "empty_ticket_list"
	reasonInvalidSeat = "invalid_seat"
	reasonNotFound    = "performance_not_found"
	reasonSeatTaken   = "seat_taken"
)

type Service struct {
	performances domain.PerformanceRepository
	reservations domain.ReservationRepository
	logger       *slog.Logger

	created  metric.Int64Counter
	rejected metric.Int64Counter
}

func NewService(
	performances domain.PerformanceRepository,
	reservations domain.ReservationRepository,
	logger *slog.Logger) *Service {

	s := &Service{
		performances: performances,
		reservations: reservations,
		logger:       logger,
	}

	meter := otel.Meter(meterName)

	var err error

	s.created, err = meter.Int64Counter("reservations.created",
		metric.WithDescription("Reservations committed"))
	if err != nil {
		logger.Warn("failed to create reservations.created counter", "error", err)
		s.created = noop.Int64Counter{}
	}

	s.rejected, err = meter.Int64Counter("reservations.rejected",
		metric.WithDescription("Reservation requests rejected, by reason"))
	if err != nil {
		logger.Warn("failed to create reservations.rejected counter", "error", err)
		s.rejected = noop.Int64Counter{}
	}

	return s
}

// Availability is the seat state of one performance at the time of the call.
type Availability struct {
	Performance *domain.Performance
	Free        []domain.Seat
	Taken       domain.SeatSet
}

func (a Availability) AvailableSeatCount() int {
	return len(a.Free)
}

// Availability reads the performance and its tickets and splits the hall grid
// into free and taken seats. Tickets outside the current grid are left out of
// both. Nothing is cached.
func (s *Service) Availability(ctx context.Context, performanceID int) (*Availability, error) {
	performance, err := s.performances.GetById(ctx, performanceID)
	if err != nil {
		return nil, err
	}

	taken, err := s.takenSeats(ctx, performanceID)
	if err != nil {
		return nil, err
	}

	return &Availability{
		Performance: performance,
		Free:        domain.FreeSeats(performance.Hall, taken),
		Taken:       taken.Within(performance.Hall),
	}, nil
}

func (s *Service) TakenSeats(ctx context.Context, performanceID int) (domain.SeatSet, error) {
	availability, err := s.Availability(ctx, performanceID)
	if err != nil {
		return nil, err
	}

	return availability.Taken, nil
}

func (s *Service) FreeSeats(ctx context.Context, performanceID int) ([]domain.Seat, error) {
	availability, err := s.Availability(ctx, performanceID)
	if err != nil {
		return nil, err
	}

	return availability.Free, nil
}

func (s *Service) AvailableSeatCount(ctx context.Context, performanceID int) (int, error) {
	performance, err := s.performances.GetById(ctx, performanceID)
	if err != nil {
		return 0, err
	}

	taken, err := s.takenSeats(ctx, performanceID)
	if err != nil {
		return 0, err
	}

	return domain.AvailableSeatCount(performance.Hall, taken), nil
}

func (s *Service) takenSeats(ctx context.Context, performanceID int) (domain.SeatSet, error) {
	tickets, err := s.reservations.GetTicketsByPerformanceId(ctx, performanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets of performance %d: %w", performanceID, err)
	}

	return domain.TakenSeats(tickets), nil
}

// CreateReservation books every requested seat for userID or none of them.
// Errors are ErrEmptyTicketList or a *domain.TicketError wrapping
// ErrRecordNotFound, an *InvalidSeatError or ErrSeatAlreadyTaken.
func (s *Service) CreateReservation(
	ctx context.Context,
	userID int,
	requests []domain.TicketRequest) (*domain.Reservation, error) {

	if len(requests) == 0 {
		s.reject(ctx, reasonEmpty)
		return nil, domain.ErrEmptyTicketList
	}

	performances := make(map[int]*domain.Performance)

	for i, req := range requests {
		performance, ok := performances[req.PerformanceID]
		if !ok {
			var err error

			performance, err = s.performances.GetById(ctx, req.PerformanceID)
			if err != nil {
				if errors.Is(err, domain.ErrRecordNotFound) {
					s.reject(ctx, reasonNotFound)
					return nil, ticketError(i, req, err)
				}

				return nil, fmt.Errorf("failed to get performance %d: %w", req.PerformanceID, err)
			}

			performances[req.PerformanceID] = performance
		}

		err := performance.Hall.ValidateSeat(domain.Seat{Row: req.Row, Number: req.Seat})
		if err != nil {
			s.reject(ctx, reasonInvalidSeat)
			return nil, ticketError(i, req, err)
		}
	}

	err := s.checkSeatsFree(ctx, requests)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		UserID:  userID,
		Tickets: make([]domain.Ticket, len(requests)),
	}

	for i, req := range requests {
		reservation.Tickets[i] = domain.Ticket{
			Row:           req.Row,
			Seat:          req.Seat,
			PerformanceID: req.PerformanceID,
		}
	}

	err = s.reservations.Create(ctx, reservation)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyTaken):
			s.logger.WarnContext(ctx, "reservation lost a seat race", "user_id", userID, "error", err)
			s.reject(ctx, reasonSeatTaken)
		case errors.Is(err, domain.ErrRecordNotFound):
			s.reject(ctx, reasonNotFound)
		default:
			return nil, fmt.Errorf("failed to create reservation: %w", err)
		}

		return nil, err
	}

	s.created.Add(ctx, 1)
	s.logger.InfoContext(ctx, "reservation created",
		"reservation_id", reservation.ID,
		"user_id", userID,
		"tickets", len(reservation.Tickets))

	return reservation, nil
}

// checkSeatsFree rejects seats that are already sold or asked for twice in
// the same request.
func (s *Service) checkSeatsFree(ctx context.Context, requests []domain.TicketRequest) error {
	taken := make(map[int]domain.SeatSet)
	requested := make(map[int]domain.SeatSet)

	for i, req := range requests {
		seats, ok := taken[req.PerformanceID]
		if !ok {
			var err error

			seats, err = s.takenSeats(ctx, req.PerformanceID)
			if err != nil {
				return err
			}

			taken[req.PerformanceID] = seats
			requested[req.PerformanceID] = domain.NewSeatSet()
		}

		seat := domain.Seat{Row: req.Row, Number: req.Seat}

		if seats.Contains(seat) || requested[req.PerformanceID].Contains(seat) {
			s.reject(ctx, reasonSeatTaken)
			return ticketError(i, req, domain.ErrSeatAlreadyTaken)
		}

		requested[req.PerformanceID].Add(seat)
	}

	return nil
}

func (s *Service) ListReservations(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.Reservation, *domain.Metadata, error) {

	return s.reservations.GetByUserId(ctx, userID, pagination)
}

func (s *Service) reject(ctx context.Context, reason string) {
	s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func ticketError(index int, req domain.TicketRequest, err error) error {
	return &domain.TicketError{
		Index:         index,
		Row:           req.Row,
		Seat:          req.Seat,
		PerformanceID: req.PerformanceID,
		Err:           err,
	}
}
