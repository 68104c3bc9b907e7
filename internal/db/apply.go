package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/vvka-141/metaconv/internal/retry"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// ExecutionError reports the statement that failed inside Apply.
type ExecutionError struct {
	Index     int // 0-based position in the statement list
	Statement string
	Err       error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("statement %d failed: %v\n  %s", e.Index+1, e.Err, firstLine(e.Statement))
}

func (e *ExecutionError) Unwrap() error { return e.Err }

func (e *ExecutionError) Is(target error) bool { return target == metaconv.ErrExecutionFailed }

// Apply runs stmts against the database at connString in a single
// transaction. Either every statement takes effect or none does.
func Apply(ctx context.Context, connString string, logger metaconv.Logger, stmts ...string) error {
	pool, err := Connect(ctx, connString, retry.DefaultPolicy(), logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i, stmt := range stmts {
			logger.Verbose("executing statement %d/%d: %s", i+1, len(stmts), firstLine(stmt))
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return &ExecutionError{Index: i, Statement: stmt, Err: err}
			}
		}
		return nil
	})
	var execErr *ExecutionError
	if err != nil && !errors.As(err, &execErr) {
		// begin or commit failed
		return fmt.Errorf("%w: %w", metaconv.ErrExecutionFailed, err)
	}
	return err
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
