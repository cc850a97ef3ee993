package postgresrepo

import (
	"context"

	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *EventRepo) With(db DB) *EventRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *EventRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *EventRepo) List(ctx context.Context) ([]domain.EventItem, error) {
	const op = "postgresrepo.EventRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, title, date, link, image, category, description, price
		 FROM events
		 ORDER BY date, id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	events := []domain.EventItem{}
	for rows.Next() {
		var e domain.EventItem
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Date, &e.Link,
			&e.Image, &e.Category, &e.Description, &e.Price,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return events, nil
}

func (r *EventRepo) Create(ctx context.Context, e domain.EventItem) error {
	const op = "postgresrepo.EventRepo.Create"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`INSERT INTO events(id, title, date, link, image, category, description, price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.Title, e.Date, e.Link, e.Image, e.Category, e.Description, e.Price,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *EventRepo) Delete(ctx context.Context, id string) error {
	const op = "postgresrepo.EventRepo.Delete"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}
