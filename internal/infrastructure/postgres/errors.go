package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// validID rejects identifiers the uuid columns could never hold, so they are
// reported as missing rather than as a driver error.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
