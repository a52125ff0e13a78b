package parser

import (
	"fmt"
	"os"

	"github.com/enix403/gen-sql-pdf/internal/discovery"
)

// Parse reads a SQL file and returns ParsedSQL with statements
func Parse(file *discovery.DiscoveredFile) (*ParsedSQL, error) {
	content, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return &ParsedSQL{
		File:       file,
		Statements: ParseStatements(string(content)),
	}, nil
}

// ParseFile is a convenience function that parses a file path directly
func ParseFile(filePath string) (*ParsedSQL, error) {
	file := &discovery.DiscoveredFile{
		Path:         filePath,
		RelativePath: filePath,
		Type:         discovery.ClassifyPath(filePath),
	}
	return Parse(file)
}

// ParseStatements splits SQL text and classifies each statement
func ParseStatements(sql string) []*Statement {
	var statements []*Statement
	for i, p := range split(sql) {
		statements = append(statements, &Statement{
			Index: i + 1,
			SQL:   p.text,
			Type:  classify(p),
		})
	}
	return statements
}

// ParseBatch parses several files and numbers their statements as one
// continuous sequence, preserving file order.
func ParseBatch(files []discovery.DiscoveredFile) ([]*Statement, error) {
	var all []*Statement
	for i := range files {
		parsed, err := Parse(&files[i])
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", files[i].RelativePath, err)
		}
		for _, stmt := range parsed.Statements {
			stmt.Index = len(all) + 1
			all = append(all, stmt)
		}
	}
	return all, nil
}

// classify trusts the scanner, not the text: a statement that merely starts
// with '.' (a dot line glued to the following SQL) is still a query.
func classify(p piece) StatementType {
	if p.dot {
		return StmtDotCommand
	}
	return StmtQuery
}
