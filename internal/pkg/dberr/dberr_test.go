package dberr_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"marketplace/internal/pkg/dberr"
	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"connect error", &pgconn.ConnectError{Config: &pgconn.Config{}}, true},
		{"network error", refused, true},
		{"wrapped network error", fmt.Errorf("begin: %w", refused), true},
		{"bad connection", driver.ErrBadConn, true},
		{"connection done", sql.ErrConnDone, true},
		{"deadline", context.DeadlineExceeded, true},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"record not found", gorm.ErrRecordNotFound, false},
		{"canceled", context.Canceled, false},
		{"state conflict", errs.NewStateConflictError("order", "packed", "update"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dberr.Classify(tt.err)

			assert.Equal(t, tt.retryable, errs.IsRetryable(got))
			if !tt.retryable {
				assert.Equal(t, tt.err, got)
				return
			}
			var unavailable *errs.UnavailableError
			require.ErrorAs(t, got, &unavailable)
			assert.Equal(t, "postgres", unavailable.Collaborator)
			assert.Equal(t, tt.err, unavailable.Cause)
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, dberr.Classify(nil))
}

func TestClassify_KeepsExistingUnavailableError(t *testing.T) {
	err := errs.NewUnavailableError("postgres", driver.ErrBadConn)

	assert.Same(t, err, dberr.Classify(err))
}
