package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/metaconv/internal/retry"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

// Connection pool configuration constants
const (
	// DefaultMaxConns is enough for one transaction plus a spare.
	DefaultMaxConns = 2

	// DefaultConnectTimeout bounds each connection attempt.
	DefaultConnectTimeout = 10 * time.Second
)

func configurePool(poolConfig *pgxpool.Config, logger metaconv.Logger) {
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = 0
	if poolConfig.ConnConfig.ConnectTimeout == 0 {
		poolConfig.ConnConfig.ConnectTimeout = DefaultConnectTimeout
	}
	poolConfig.ConnConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("postgres %s: %s", strings.ToLower(notice.Severity), notice.Message)
	}
}

// Connect opens a pool for connString and verifies it with a ping, retrying
// transient failures under policy.
func Connect(ctx context.Context, connString string, policy retry.Policy, logger metaconv.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid connection string: %v", metaconv.ErrInvalidConfig, err)
	}
	configurePool(poolConfig, logger)

	cc := poolConfig.ConnConfig
	if policy.OnRetry == nil {
		policy.OnRetry = func(attempt int, err error, delay time.Duration) {
			logger.Verbose("connection attempt %d to %s:%d failed, retrying in %s: %v", attempt+1, cc.Host, cc.Port, delay, err)
		}
	}

	var pool *pgxpool.Pool
	err = retry.Do(ctx, policy, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, cc.Host, cc.Port, cc.Database)
	}
	return pool, nil
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
// The result always matches metaconv.ErrConnectionFailed.
func wrapConnectionError(err error, host string, port uint16, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", host, port)

	var msg string
	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		msg = fmt.Sprintf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port in --connection or %s`, addr, host, port, "METACONV_CONNECTION_STRING")

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		msg = fmt.Sprintf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable`, host)

	case strings.Contains(errStr, "password authentication failed"):
		msg = fmt.Sprintf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check $PGPASSWORD or ~/.pgpass)
  - Wrong username`, database)

	case strings.Contains(errStr, "does not exist"):
		msg = fmt.Sprintf(`database "%s" does not exist

To create it:
  createdb %s`, database, database)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		msg = fmt.Sprintf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets`, addr)

	default:
		return fmt.Errorf("%w: %w", metaconv.ErrConnectionFailed, err)
	}
	return fmt.Errorf("%w: %s\n\nOriginal error: %w", metaconv.ErrConnectionFailed, msg, err)
}
