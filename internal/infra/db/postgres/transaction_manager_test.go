//go:build !integration

package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"job-tracker-api/internal/domain"
)

func TestGetExecutor(t *testing.T) {
	if _, err := getExecutor(nil, nil); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("nil pool and nil tx: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := getExecutor(nil, "not-a-tx"); !errors.Is(err, domain.ErrInvalidExecContext) {
		t.Errorf("foreign handle: expected ErrInvalidExecContext, got %v", err)
	}
}

func TestMapPgError(t *testing.T) {
	testCases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"unique", &pgconn.PgError{Code: "23505"}, domain.ErrAlreadyExists},
		{"wrapped fk", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), domain.ErrInvalidArgument},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapPgError(tc.in); !errors.Is(got, tc.want) && got != tc.want {
				t.Errorf("mapPgError() = %v, want %v", got, tc.want)
			}
		})
	}

	other := &pgconn.PgError{Code: "42P01"}
	if got := mapPgError(other); got != other {
		t.Errorf("unknown codes pass through, got %v", got)
	}
}

func TestScanErr(t *testing.T) {
	if !errors.Is(scanErr(pgx.ErrNoRows), domain.ErrNotFound) {
		t.Error("ErrNoRows should map to ErrNotFound")
	}
	boom := errors.New("boom")
	if scanErr(boom) != boom {
		t.Error("other errors pass through")
	}
}
