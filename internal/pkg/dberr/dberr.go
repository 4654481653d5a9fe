// Package dberr separates database failures a caller may retry from the ones it may not.
package dberr

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"net"
	"strings"

	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const collaborator = "postgres"

// Classify wraps err as an errs.UnavailableError when the database could not be
// reached, dropped the connection, is shutting down or did not answer in time.
// Any other error, nil included, is returned unchanged.
func Classify(err error) error {
	if err == nil || errs.IsRetryable(err) {
		return err
	}
	if IsTransient(err) {
		return errs.NewUnavailableError(collaborator, err)
	}
	return err
}

// IsTransient reports whether err comes from the connection rather than the statement.
func IsTransient(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return transientCode(pgErr.Code)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	return errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, context.DeadlineExceeded) ||
		pgconn.Timeout(err)
}

// transientCode matches connection exceptions (class 08), operator intervention
// shutdowns and exhausted connection slots.
func transientCode(code string) bool {
	if strings.HasPrefix(code, "08") {
		return true
	}
	switch code {
	case "57P01", "57P02", "57P03", "53300":
		return true
	default:
		return false
	}
}
