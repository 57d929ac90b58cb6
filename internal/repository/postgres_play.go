package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/theatre-box-office/internal/domain"
)

type PostgresPlayRepository struct {
	db *pgxpool.Pool
}

func NewPostgresPlayRepository(db *pgxpool.Pool) *PostgresPlayRepository {
	return &PostgresPlayRepository{
		db: db,
	}
}

func (p *PostgresPlayRepository) Create(ctx context.Context, play *domain.Play) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO plays (title, description)
			VALUES ($1, $2)
			RETURNING id
		`

		err := tx.QueryRow(ctx, query, play.Title, play.Description).Scan(&play.ID)
		if err != nil {
			return err
		}

		err = copyPlayLinks(ctx, tx, "play_actors", "actor_id", play.ID, play.ActorIDs)
		if err != nil {
			return err
		}

		return copyPlayLinks(ctx, tx, "play_genres", "genre_id", play.ID, play.GenreIDs)
	})

	if err != nil {
		play.ID = 0

		if isForeignKeyViolation(err) {
			return domain.ErrUnknownReference
		}

		return err
	}

	return nil
}

func copyPlayLinks(ctx context.Context, tx pgx.Tx, table, column string, playId int, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[int]bool, len(ids))
	rows := make([][]any, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}

		seen[id] = true
		rows = append(rows, []any{playId, id})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{table},
		[]string{"play_id", column},
		pgx.CopyFromRows(rows),
	)

	return err
}

func (p *PostgresPlayRepository) GetAll(ctx context.Context, filters domain.PlayFilters) ([]domain.Play, error) {
	return queryPlays(ctx, p.db, filters)
}

// queryPlays lists plays with their actor and genre ids. Genre and actor
// details reuse it to list the plays linked to them.
func queryPlays(ctx context.Context, db *pgxpool.Pool, filters domain.PlayFilters) ([]domain.Play, error) {
	query := `
		SELECT
			p.id,
			p.title,
			p.description,
			p.image,
			COALESCE((SELECT array_agg(pa.actor_id ORDER BY pa.actor_id)
				FROM play_actors pa WHERE pa.play_id = p.id), '{}'),
			COALESCE((SELECT array_agg(pg.genre_id ORDER BY pg.genre_id)
				FROM play_genres pg WHERE pg.play_id = p.id), '{}')
		FROM plays p
		WHERE ($1 = '' OR p.title ILIKE '%' || $1 || '%')
			AND (cardinality($2::integer[]) = 0 OR EXISTS (
				SELECT 1 FROM play_actors pa WHERE pa.play_id = p.id AND pa.actor_id = ANY($2)))
			AND (cardinality($3::integer[]) = 0 OR EXISTS (
				SELECT 1 FROM play_genres pg WHERE pg.play_id = p.id AND pg.genre_id = ANY($3)))
		ORDER BY p.id
	`

	rows, err := db.Query(ctx, query, filters.Title, nonNilIds(filters.ActorIDs), nonNilIds(filters.GenreIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plays := make([]domain.Play, 0)

	for rows.Next() {
		var play domain.Play

		err := rows.Scan(
			&play.ID,
			&play.Title,
			&play.Description,
			&play.Image,
			&play.ActorIDs,
			&play.GenreIDs,
		)
		if err != nil {
			return nil, err
		}

		plays = append(plays, play)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return plays, nil
}

// nonNilIds keeps cardinality() in the filter queries from seeing NULL.
func nonNilIds(ids []int) []int {
	if ids == nil {
		return []int{}
	}

	return ids
}

func (p *PostgresPlayRepository) GetDetailById(ctx context.Context, id int) (*domain.PlayDetail, error) {
	query := `
		SELECT id, title, description, image
		FROM plays
		WHERE id = $1
	`

	var play domain.PlayDetail

	err := p.db.QueryRow(ctx, query, id).Scan(&play.ID, &play.Title, &play.Description, &play.Image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	play.Actors, err = retrievePlayActors(ctx, p.db, id)
	if err != nil {
		return nil, err
	}

	play.Genres, err = retrievePlayGenres(ctx, p.db, id)
	if err != nil {
		return nil, err
	}

	return &play, nil
}

func (p *PostgresPlayRepository) Update(ctx context.Context, play *domain.Play) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			UPDATE plays
			SET title = $1, description = $2
			WHERE id = $3
		`

		tag, err := tx.Exec(ctx, query, play.Title, play.Description, play.ID)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		_, err = tx.Exec(ctx, `DELETE FROM play_actors WHERE play_id = $1`, play.ID)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `DELETE FROM play_genres WHERE play_id = $1`, play.ID)
		if err != nil {
			return err
		}

		err = copyPlayLinks(ctx, tx, "play_actors", "actor_id", play.ID, play.ActorIDs)
		if err != nil {
			return err
		}

		return copyPlayLinks(ctx, tx, "play_genres", "genre_id", play.ID, play.GenreIDs)
	})

	if isForeignKeyViolation(err) {
		return domain.ErrUnknownReference
	}

	return err
}

func (p *PostgresPlayRepository) UpdateImage(ctx context.Context, id int, image string) error {
	return execAffectingOne(ctx, p.db, `UPDATE plays SET image = $1 WHERE id = $2`, image, id)
}

func (p *PostgresPlayRepository) Delete(ctx context.Context, id int) error {
	return execAffectingOne(ctx, p.db, `DELETE FROM plays WHERE id = $1`, id)
}

func retrievePlayActors(ctx context.Context, db *pgxpool.Pool, playId int) ([]domain.Actor, error) {
	query := `
		SELECT a.id, a.first_name, a.last_name, a.image
		FROM actors a
		JOIN play_actors pa ON pa.actor_id = a.id AND pa.play_id = $1
		ORDER BY a.id
	`

	rows, err := db.Query(ctx, query, playId)
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

func retrievePlayGenres(ctx context.Context, db *pgxpool.Pool, playId int) ([]domain.Genre, error) {
	query := `
		SELECT g.id, g.name
		FROM genres g
		JOIN play_genres pg ON pg.genre_id = g.id AND pg.play_id = $1
		ORDER BY g.id
	`

	rows, err := db.Query(ctx, query, playId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]domain.Genre, 0)

	for rows.Next() {
		var genre domain.Genre

		err := rows.Scan(&genre.ID, &genre.Name)
		if err != nil {
			return nil, err
		}

		genres = append(genres, genre)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return genres, nil
}
