package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-box-office/internal/domain"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

func (p *PostgresReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO reservations (user_id)
			VALUES ($1)
			RETURNING id, created_at
		`

		err := tx.QueryRow(ctx, query, reservation.UserID).Scan(&reservation.ID, &reservation.CreatedAt)
		if err != nil {
			return err
		}

		query = `
			INSERT INTO tickets (seat_row, seat_number, performance_id, reservation_id)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`

		// Tickets go in one by one so a collision can be traced back to its ticket.
		for i := range reservation.Tickets {
			ticket := &reservation.Tickets[i]
			ticket.ReservationID = reservation.ID

			err = tx.QueryRow(
				ctx,
				query,
				ticket.Row,
				ticket.Seat,
				ticket.PerformanceID,
				ticket.ReservationID).Scan(&ticket.ID)

			if err != nil {
				return toTicketError(i, *ticket, err)
			}
		}

		return nil
	})

	if err != nil {
		reservation.ID = 0
		for i := range reservation.Tickets {
			reservation.Tickets[i].ID = 0
			reservation.Tickets[i].ReservationID = 0
		}

		return err
	}

	return nil
}

func toTicketError(index int, ticket domain.Ticket, err error) error {
	var cause error

	switch {
	case isUniqueViolation(err, uniqueTicketConstraint):
		cause = domain.ErrSeatAlreadyTaken
	case isForeignKeyViolation(err):
		cause = domain.ErrRecordNotFound
	default:
		return err
	}

	return &domain.TicketError{
		Index:         index,
		Row:           ticket.Row,
		Seat:          ticket.Seat,
		PerformanceID: ticket.PerformanceID,
		Err:           cause,
	}
}

func (p *PostgresReservationRepository) GetTicketsByPerformanceId(
	ctx context.Context,
	performanceId int) ([]domain.Ticket, error) {

	query := `
		SELECT id, seat_row, seat_number, performance_id, reservation_id
		FROM tickets
		WHERE performance_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := p.db.Query(ctx, query, performanceId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)

	for rows.Next() {
		var ticket domain.Ticket

		err = rows.Scan(
			&ticket.ID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.PerformanceID,
			&ticket.ReservationID,
		)

		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresReservationRepository) GetByUserId(
	ctx context.Context,
	userId int,
	pagination domain.Pagination) ([]domain.Reservation, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(), id, user_id, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, userId, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	totalRecords := 0

	for rows.Next() {
		var reservation domain.Reservation

		err := rows.Scan(
			&totalRecords,
			&reservation.ID,
			&reservation.UserID,
			&reservation.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		reservation.Tickets = make([]domain.Ticket, 0)
		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	err = p.attachTickets(ctx, reservations)
	if err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return reservations, metadata, nil
}

func (p *PostgresReservationRepository) attachTickets(ctx context.Context, reservations []domain.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids := make([]int, len(reservations))
	byId := make(map[int]*domain.Reservation, len(reservations))

	for i := range reservations {
		ids[i] = reservations[i].ID
		byId[reservations[i].ID] = &reservations[i]
	}

	query := `
		SELECT id, seat_row, seat_number, performance_id, reservation_id
		FROM tickets
		WHERE reservation_id = ANY($1)
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ticket domain.Ticket

		err := rows.Scan(
			&ticket.ID,
			&ticket.Row,
			&ticket.Seat,
			&ticket.PerformanceID,
			&ticket.ReservationID,
		)
		if err != nil {
			return err
		}

		reservation := byId[ticket.ReservationID]
		reservation.Tickets = append(reservation.Tickets, ticket)
	}

	return rows.Err()
}
