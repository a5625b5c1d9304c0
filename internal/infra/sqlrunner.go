package infra

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// SQLExecutor defines the contract repositories need for executing SQL.
type SQLExecutor interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
}

// ErrMissingMarker is returned when a statement lacks the sqlinline marker line.
var ErrMissingMarker = errors.New("sql statement missing --sql marker")

var markerRe = regexp.MustCompile(`^--sql [0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// SQLRunner executes sqlinline statements against a pgx pool, logging each
// statement by its marker id so query traffic can be correlated without
// printing SQL text or arguments.
type SQLRunner struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewSQLRunner(pool *pgxpool.Pool, logger zerolog.Logger) *SQLRunner {
	return &SQLRunner{pool: pool, logger: logger}
}

func (r *SQLRunner) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	marker, body, err := splitMarker(query)
	if err != nil {
		return pgconn.CommandTag{}, err
	}
	tag, err := r.pool.Exec(ctx, body, args...)
	r.log(marker, "exec", err)
	return tag, err
}

func (r *SQLRunner) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	marker, body, err := splitMarker(query)
	if err != nil {
		return errRow{err: err}
	}
	r.log(marker, "query_row", nil)
	return r.pool.QueryRow(ctx, body, args...)
}

func (r *SQLRunner) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	marker, body, err := splitMarker(query)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, body, args...)
	r.log(marker, "query", err)
	return rows, err
}

func (r *SQLRunner) log(marker, op string, err error) {
	ev := r.logger.Debug()
	if err != nil {
		ev = r.logger.Error().Err(err)
	}
	ev.Str("sql", marker).Str("op", op).Msg("sql statement")
}

// splitMarker separates the marker line from the statement body. The marker
// id is the short form used in logs.
func splitMarker(query string) (string, string, error) {
	trimmed := strings.TrimSpace(query)
	line, rest, found := strings.Cut(trimmed, "\n")
	if !found || !markerRe.MatchString(strings.TrimSpace(line)) {
		return "", "", ErrMissingMarker
	}
	id := strings.TrimPrefix(strings.TrimSpace(line), "--sql ")
	return id[:8], rest, nil
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
