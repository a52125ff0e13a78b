package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/enix403/gen-sql-pdf/internal/parser"
	"github.com/enix403/gen-sql-pdf/pkg/types"
)

const applicationName = "sqlpdf"

// Dialect identifies the database engine behind a Querier
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Querier executes statements one at a time and returns rendered answers
type Querier interface {
	Query(ctx context.Context, stmt *parser.Statement) (*Answer, error)
	Dialect() Dialect
	Close() error
}

// DetectDialect guesses the engine from a DSN. PostgreSQL URIs and key=value
// strings with a host are PostgreSQL; anything else is a SQLite file path.
func DetectDialect(dsn string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres
	case strings.Contains(lower, "host=") && strings.Contains(lower, "="):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

// Open connects to the database named by the configuration
func Open(ctx context.Context, config *types.Config) (Querier, error) {
	dialect := Dialect(config.Driver)
	if dialect == "" {
		dialect = DetectDialect(config.DSN)
	}

	switch dialect {
	case DialectSQLite:
		return OpenSQLite(ctx, config.DSN, config.MaxRows)
	case DialectPostgres:
		return NewPool(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported driver: %s (supported: sqlite, postgres)", dialect)
	}
}
