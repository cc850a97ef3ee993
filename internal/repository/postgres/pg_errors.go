package postgresrepo

import (
	"errors"
	"fmt"

	"github.com/arkhive/arkhive-go/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func translateDBErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		// unique_violation
		if pge.Code == "23505" {
			return repository.ErrConflict
		}
	}

	return err
}

func wrapDBErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, translateDBErr(err))
}
