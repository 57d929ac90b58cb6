package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-box-office/internal/domain"
)

type PostgresActorRepository struct {
	db *pgxpool.Pool
}

func NewPostgresActorRepository(db *pgxpool.Pool) *PostgresActorRepository {
	return &PostgresActorRepository{
		db: db,
	}
}

func (p *PostgresActorRepository) Create(ctx context.Context, actor *domain.Actor) error {
	query := `
		INSERT INTO actors (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id
	`

	return p.db.QueryRow(ctx, query, actor.FirstName, actor.LastName).Scan(&actor.ID)
}

func (p *PostgresActorRepository) GetAll(ctx context.Context, filters domain.ActorFilters) ([]domain.Actor, error) {
	query := `
		SELECT id, first_name, last_name, image
		FROM actors
		WHERE ($1 = '' OR first_name ILIKE '%' || $1 || '%')
			AND ($2 = '' OR last_name ILIKE '%' || $2 || '%')
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, filters.FirstName, filters.LastName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	actors := make([]domain.Actor, 0)

	for rows.Next() {
		var actor domain.Actor

		err := rows.Scan(&actor.ID, &actor.FirstName, &actor.LastName, &actor.Image)
		if err != nil {
			return nil, err
		}

		actors = append(actors, actor)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return actors, nil
}

func (p *PostgresActorRepository) GetById(ctx context.Context, id int) (*domain.Actor, error) {
	query := `
		SELECT id, first_name, last_name, image
		FROM actors
		WHERE id = $1
	`

	var actor domain.Actor

	err := p.db.QueryRow(ctx, query, id).Scan(&actor.ID, &actor.FirstName, &actor.LastName, &actor.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &actor, nil
}

func (p *PostgresActorRepository) GetDetailById(ctx context.Context, id int) (*domain.ActorDetail, error) {
	actor, err := p.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	plays, err := queryPlays(ctx, p.db, domain.PlayFilters{ActorIDs: []int{id}})
	if err != nil {
		return nil, err
	}

	return &domain.ActorDetail{Actor: *actor, Plays: plays}, nil
}

func (p *PostgresActorRepository) Update(ctx context.Context, actor *domain.Actor) error {
	query := `
		UPDATE actors
		SET first_name = $1, last_name = $2
		WHERE id = $3
	`

	return execAffectingOne(ctx, p.db, query, actor.FirstName, actor.LastName, actor.ID)
}

func (p *PostgresActorRepository) UpdateImage(ctx context.Context, id int, image string) error {
	return execAffectingOne(ctx, p.db, `UPDATE actors SET image = $1 WHERE id = $2`, image, id)
}

func (p *PostgresActorRepository) Delete(ctx context.Context, id int) error {
	return execAffectingOne(ctx, p.db, `DELETE FROM actors WHERE id = $1`, id)
}
