package postgresrepo

import (
	"context"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const bookingColumns = `id, event_type, custom_event_type, date, guests,
	name, email, phone, notes, created_at, status`

func scanBooking(row pgx.Row) (domain.BookingRequest, error) {
	var b domain.BookingRequest
	var createdAt time.Time
	err := row.Scan(
		&b.ID, &b.EventType, &b.CustomEventType, &b.Date, &b.Guests,
		&b.Name, &b.Email, &b.Phone, &b.Notes, &createdAt, &b.Status,
	)
	if err != nil {
		return domain.BookingRequest{}, err
	}
	b.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return b, nil
}

func (r *BookingRepo) List(ctx context.Context) ([]domain.BookingRequest, error) {
	const op = "postgresrepo.BookingRepo.List"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT `+bookingColumns+`
		 FROM bookings
		 ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	bookings := []domain.BookingRequest{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return bookings, nil
}

func (r *BookingRepo) Get(ctx context.Context, id string) (*domain.BookingRequest, error) {
	const op = "postgresrepo.BookingRepo.Get"

	db := r.handle()

	b, err := scanBooking(db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id,
	))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &b, nil
}

func (r *BookingRepo) Create(ctx context.Context, b domain.BookingRequest, createdAt time.Time) error {
	const op = "postgresrepo.BookingRepo.Create"

	db := r.handle()

	if _, err := db.Exec(ctx,
		`INSERT INTO bookings(id, event_type, custom_event_type, date, guests,
		                      name, email, phone, notes, created_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.EventType, b.CustomEventType, b.Date, b.Guests,
		b.Name, b.Email, b.Phone, b.Notes, createdAt, b.Status,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *BookingRepo) Update(ctx context.Context, id string, b domain.BookingRequest) error {
	const op = "postgresrepo.BookingRepo.Update"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE bookings
		 SET event_type = $2, custom_event_type = $3, date = $4, guests = $5,
		     name = $6, email = $7, phone = $8, notes = $9, status = $10
		 WHERE id = $1`,
		id, b.EventType, b.CustomEventType, b.Date, b.Guests,
		b.Name, b.Email, b.Phone, b.Notes, b.Status,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}

func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	const op = "postgresrepo.BookingRepo.Delete"

	db := r.handle()

	tag, err := db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return wrapDBErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, pgx.ErrNoRows)
	}

	return nil
}
