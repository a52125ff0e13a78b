package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/enix403/gen-sql-pdf/internal/errors"
	"github.com/enix403/gen-sql-pdf/internal/parser"
	_ "modernc.org/sqlite"
)

const (
	tablesQuery = `SELECT name FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
ORDER BY name`
	schemaQuery = `SELECT sql FROM sqlite_master
WHERE sql IS NOT NULL AND (?1 = '' OR tbl_name = ?1)
ORDER BY tbl_name, type DESC, name`
)

// SQLite runs statements against a SQLite database file
type SQLite struct {
	db      *sql.DB
	maxRows int
}

// OpenSQLite opens (or creates) the SQLite database at path.
// ":memory:" gives a private in-memory database.
func OpenSQLite(ctx context.Context, path string, maxRows int) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewConnectionError(string(DialectSQLite), err.Error(), "")
	}

	// A single connection keeps in-memory databases and changes() counters consistent
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewConnectionError(string(DialectSQLite), err.Error(),
			"Check that the database file exists and is readable")
	}

	return &SQLite{db: db, maxRows: maxRows}, nil
}

// Dialect returns DialectSQLite
func (s *SQLite) Dialect() Dialect {
	return DialectSQLite
}

// Close closes the database
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Query executes one statement. The dot commands .tables and .schema are
// answered from sqlite_master.
func (s *SQLite) Query(ctx context.Context, stmt *parser.Statement) (*Answer, error) {
	if name, args, ok := stmt.DotCommand(); ok {
		switch name {
		case "tables":
			return s.query(ctx, stmt.SQL, tablesQuery)
		case "schema":
			table := ""
			if len(args) > 0 {
				table = args[0]
			}
			return s.query(ctx, stmt.SQL, schemaQuery, table)
		default:
			return nil, errors.NewUnsupportedCommandError(name, string(DialectSQLite))
		}
	}
	return s.query(ctx, stmt.SQL, stmt.SQL)
}

func (s *SQLite) query(ctx context.Context, display, query string, args ...interface{}) (*Answer, error) {
	before, err := s.totalChanges(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	answer, err := collectRows(rows, display, s.maxRows)
	if err != nil {
		return nil, err
	}

	if !answer.HasResultSet() {
		after, err := s.totalChanges(ctx)
		if err != nil {
			return nil, err
		}
		answer.RowsAffected = after - before
	}

	return answer, nil
}

func (s *SQLite) totalChanges(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, "SELECT total_changes()").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to read change counter: %w", err)
	}
	return n, nil
}

// collectRows drains rows into an Answer, keeping at most maxRows rows when
// maxRows is positive.
func collectRows(rows *sql.Rows, display string, maxRows int) (*Answer, error) {
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	answer := &Answer{SQL: display, Headers: headers, Rows: [][]Cell{}}

	values := make([]interface{}, len(headers))
	ptrs := make([]interface{}, len(headers))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if maxRows > 0 && len(answer.Rows) >= maxRows {
			answer.Truncated = true
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]Cell, len(values))
		for i, v := range values {
			row[i] = CellFromValue(v)
		}
		answer.Rows = append(answer.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return answer, nil
}
