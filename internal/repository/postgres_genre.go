package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-box-office/internal/domain"
)

type PostgresGenreRepository struct {
	db *pgxpool.Pool
}

func NewPostgresGenreRepository(db *pgxpool.Pool) *PostgresGenreRepository {
	return &PostgresGenreRepository{
		db: db,
	}
}

func (p *PostgresGenreRepository) Create(ctx context.Context, genre *domain.Genre) error {
	query := `INSERT INTO genres (name) VALUES ($1) RETURNING id`

	return p.db.QueryRow(ctx, query, genre.Name).Scan(&genre.ID)
}

func (p *PostgresGenreRepository) GetAll(ctx context.Context) ([]domain.Genre, error) {
	rows, err := p.db.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]domain.Genre, 0)

	for rows.Next() {
		var genre domain.Genre

		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return nil, err
		}

		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return genres, nil
}

func (p *PostgresGenreRepository) GetById(ctx context.Context, id int) (*domain.Genre, error) {
	var genre domain.Genre

	err := p.db.QueryRow(ctx, `SELECT id, name FROM genres WHERE id = $1`, id).Scan(&genre.ID, &genre.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &genre, nil
}

func (p *PostgresGenreRepository) GetDetailById(ctx context.Context, id int) (*domain.GenreDetail, error) {
	genre, err := p.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	plays, err := queryPlays(ctx, p.db, domain.PlayFilters{GenreIDs: []int{id}})
	if err != nil {
		return nil, err
	}

	return &domain.GenreDetail{Genre: *genre, Plays: plays}, nil
}

func (p *PostgresGenreRepository) Update(ctx context.Context, genre *domain.Genre) error {
	return execAffectingOne(ctx, p.db, `UPDATE genres SET name = $1 WHERE id = $2`, genre.Name, genre.ID)
}

func (p *PostgresGenreRepository) Delete(ctx context.Context, id int) error {
	return execAffectingOne(ctx, p.db, `DELETE FROM genres WHERE id = $1`, id)
}
