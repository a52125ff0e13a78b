package parser

import (
	"strings"

	"github.com/enix403/gen-sql-pdf/internal/discovery"
)

// ParsedSQL represents an input file split into statements
type ParsedSQL struct {
	File       *discovery.DiscoveredFile
	Statements []*Statement
}

// Statement represents a single statement of the input, in input order
type Statement struct {
	Index int           // 1-indexed position across the whole run
	SQL   string        // Trimmed statement text, comments removed
	Type  StatementType // Statement classification
}

// StatementType classifies statements
type StatementType int

const (
	StmtUnknown    StatementType = iota
	StmtQuery                    // Anything sent to the database as-is
	StmtDotCommand               // REPL meta-command such as .tables
)

// String returns a string representation of StatementType
func (st StatementType) String() string {
	switch st {
	case StmtQuery:
		return "query"
	case StmtDotCommand:
		return "dot-command"
	default:
		return "unknown"
	}
}

// DotCommand returns the command name without the leading dot and its
// whitespace-separated arguments. ok is false for ordinary statements.
func (s *Statement) DotCommand() (name string, args []string, ok bool) {
	if s.Type != StmtDotCommand {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(s.SQL, "."))
	if len(fields) == 0 {
		return "", nil, true
	}
	return fields[0], fields[1:], true
}
