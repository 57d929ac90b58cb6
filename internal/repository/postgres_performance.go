package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-box-office/internal/domain"
)

type PostgresPerformanceRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPerformanceRepository(db *pgxpool.Pool) *PostgresPerformanceRepository {
	return &PostgresPerformanceRepository{
		db: db,
	}
}

func (p *PostgresPerformanceRepository) Create(ctx context.Context, performance *domain.Performance) error {
	query := `
		INSERT INTO performances (play_id, theatre_hall_id, show_time)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := p.db.QueryRow(
		ctx,
		query,
		performance.PlayID,
		performance.Hall.ID,
		performance.ShowTime).Scan(&performance.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUnknownReference
		}

		return err
	}

	return nil
}

func (p *PostgresPerformanceRepository) GetById(ctx context.Context, id int) (*domain.Performance, error) {
	query := `
		SELECT p.id, p.play_id, p.show_time, h.id, h.name, h.rows, h.seats_in_row
		FROM performances p
		JOIN theatre_halls h ON h.id = p.theatre_hall_id
		WHERE p.id = $1
	`

	var performance domain.Performance

	err := p.db.QueryRow(ctx, query, id).Scan(
		&performance.ID,
		&performance.PlayID,
		&performance.ShowTime,
		&performance.Hall.ID,
		&performance.Hall.Name,
		&performance.Hall.Rows,
		&performance.Hall.SeatsInRow,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &performance, nil
}

func (p *PostgresPerformanceRepository) GetDetailById(ctx context.Context, id int) (*domain.PerformanceDetail, error) {
	query := `
		SELECT
			p.id,
			p.show_time,
			h.id,
			h.name,
			h.rows,
			h.seats_in_row,
			pl.id,
			pl.title,
			pl.description,
			pl.image
		FROM performances p
		JOIN theatre_halls h ON h.id = p.theatre_hall_id
		JOIN plays pl ON pl.id = p.play_id
		WHERE p.id = $1
	`

	var detail domain.PerformanceDetail

	err := p.db.QueryRow(ctx, query, id).Scan(
		&detail.ID,
		&detail.ShowTime,
		&detail.Hall.ID,
		&detail.Hall.Name,
		&detail.Hall.Rows,
		&detail.Hall.SeatsInRow,
		&detail.Play.ID,
		&detail.Play.Title,
		&detail.Play.Description,
		&detail.Play.Image,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	detail.Play.Actors, err = retrievePlayActors(ctx, p.db, detail.Play.ID)
	if err != nil {
		return nil, err
	}

	detail.Play.Genres, err = retrievePlayGenres(ctx, p.db, detail.Play.ID)
	if err != nil {
		return nil, err
	}

	return &detail, nil
}

// GetAll lists performances together with the number of free seats. Only
// tickets inside the hall grid count as occupied, matching domain.AvailableSeatCount.
func (p *PostgresPerformanceRepository) GetAll(
	ctx context.Context,
	filters domain.PerformanceFilters) ([]domain.PerformanceSummary, error) {

	query := `
		SELECT
			p.id,
			pl.id,
			pl.title,
			h.id,
			h.name,
			h.rows * h.seats_in_row,
			p.show_time,
			h.rows * h.seats_in_row - (
				SELECT COUNT(*)
				FROM tickets t
				WHERE t.performance_id = p.id
					AND t.seat_row BETWEEN 1 AND h.rows
					AND t.seat_number BETWEEN 1 AND h.seats_in_row
			) AS available_seats_count
		FROM performances p
		JOIN plays pl ON pl.id = p.play_id
		JOIN theatre_halls h ON h.id = p.theatre_hall_id
		WHERE ($1::integer IS NULL OR p.play_id = $1)
			AND ($2::date IS NULL OR p.show_time::date = $2::date)
		ORDER BY p.show_time, p.id
	`

	rows, err := p.db.Query(ctx, query, filters.PlayID, filters.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	performances := make([]domain.PerformanceSummary, 0)

	for rows.Next() {
		var summary domain.PerformanceSummary

		err := rows.Scan(
			&summary.ID,
			&summary.PlayID,
			&summary.PlayTitle,
			&summary.HallID,
			&summary.HallName,
			&summary.HallCapacity,
			&summary.ShowTime,
			&summary.AvailableSeatsCount,
		)
		if err != nil {
			return nil, err
		}

		performances = append(performances, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return performances, nil
}

func (p *PostgresPerformanceRepository) Update(ctx context.Context, performance *domain.Performance) error {
	query := `
		UPDATE performances
		SET play_id = $1, theatre_hall_id = $2, show_time = $3
		WHERE id = $4
	`

	err := execAffectingOne(ctx, p.db, query, performance.PlayID, performance.Hall.ID, performance.ShowTime, performance.ID)
	if isForeignKeyViolation(err) {
		return domain.ErrUnknownReference
	}

	return err
}

func (p *PostgresPerformanceRepository) Delete(ctx context.Context, id int) error {
	return execAffectingOne(ctx, p.db, `DELETE FROM performances WHERE id = $1`, id)
}
