package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/metaconv/internal/db"
	"github.com/vvka-141/metaconv/internal/ddl"
	"github.com/vvka-141/metaconv/internal/document"
	"github.com/vvka-141/metaconv/internal/logging"
	"github.com/vvka-141/metaconv/internal/retry"
	testhelpers "github.com/vvka-141/metaconv/internal/testing"
	"github.com/vvka-141/metaconv/pkg/metaconv"
)

func tableComment(t *testing.T, connString, table string) (string, bool) {
	t.Helper()
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, connString)
	require.NoError(t, err)
	defer conn.Close(ctx)

	var comment *string
	err = conn.QueryRow(ctx, "SELECT obj_description(to_regclass($1), 'pg_class')", table).Scan(&comment)
	require.NoError(t, err)
	if comment == nil {
		return "", false
	}
	return *comment, true
}

func TestApply_CreatesTableAndComment(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	ctx := context.Background()

	doc := document.New().Set("resources", []any{
		document.New().Set("schema", []any{
			document.New().Set("fields", []any{
				document.New().Set("name", "id").Set("type", "bigint"),
				document.New().Set("name", "capacity").Set("type", "double precision"),
				document.New().Set("name", "tags").Set("type", "text array"),
				document.New().Set("name", "geom").Set("type", "geometry point"),
			}),
		}),
	})
	table := "public.metaconv_apply_ok"
	create, err := ddl.Generate(doc, table)
	require.NoError(t, err)

	body := "{\n    \"title\": \"Reiner Lemoine's farms\"}"
	err = db.Apply(ctx, connString, logging.NewNullLogger(),
		"DROP TABLE IF EXISTS "+ddl.Identifier(table),
		create,
		ddl.CommentStatement(table, body),
	)
	require.NoError(t, err)

	comment, ok := tableComment(t, connString, table)
	require.True(t, ok)
	assert.Equal(t, body, comment)
}

func TestApply_RollsBackOnFailure(t *testing.T) {
	connString := testhelpers.RequireDatabase(t)
	ctx := context.Background()
	table := "public.metaconv_apply_rollback"

	require.NoError(t, db.Apply(ctx, connString, logging.NewNullLogger(),
		"DROP TABLE IF EXISTS "+ddl.Identifier(table)))

	err := db.Apply(ctx, connString, logging.NewNullLogger(),
		"CREATE TABLE "+ddl.Identifier(table)+" (id integer)",
		"COMMENT ON TABLE public.metaconv_missing_table IS 'x'",
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, metaconv.ErrExecutionFailed))

	var execErr *db.ExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 1, execErr.Index)

	_, ok := tableComment(t, connString, table)
	assert.False(t, ok)

	// the CREATE TABLE must not have survived
	conn, err := pgx.Connect(ctx, connString)
	require.NoError(t, err)
	defer conn.Close(ctx)
	var exists bool
	require.NoError(t, conn.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists))
	assert.False(t, exists)
}

func TestConnect_InvalidConnectionString(t *testing.T) {
	_, err := db.Connect(context.Background(), "postgres://%zz", retry.Policy{}, logging.NewNullLogger())
	assert.ErrorIs(t, err, metaconv.ErrInvalidConfig)
}

func TestConnect_Unreachable(t *testing.T) {
	testhelpers.SkipIfShort(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// port 1 is reserved and normally closed
	_, err := db.Connect(ctx, "postgres://u:p@127.0.0.1:1/db?connect_timeout=2", retry.Policy{}, logging.NewNullLogger())
	require.Error(t, err)
	assert.ErrorIs(t, err, metaconv.ErrConnectionFailed)
}
