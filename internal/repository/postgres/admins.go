package postgresrepo

import (
	"context"

	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AdminRepo) With(db DB) *AdminRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AdminRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const op = "postgresrepo.AdminRepo.GetByEmail"

	db := r.handle()

	var a domain.Admin
	if err := db.QueryRow(ctx,
		`SELECT id, email, password_hash FROM admins WHERE email = $1`,
		email,
	).Scan(&a.ID, &a.Email, &a.PasswordHash); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &a, nil
}

func (r *AdminRepo) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	const op = "postgresrepo.AdminRepo.Create"

	db := r.handle()

	var id int64
	if err := db.QueryRow(ctx,
		`INSERT INTO admins(email, password_hash)
		 VALUES ($1, $2)
		 RETURNING id`,
		email, passwordHash,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}
