package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/enix403/gen-sql-pdf/internal/discovery"
	"github.com/enix403/gen-sql-pdf/internal/parser"
)

type splitStatement struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	SQL   string `json:"sql"`
}

// Split prints the statements of the input files as they will be executed,
// without touching a database
func Split(paths []string, asJSON bool, w io.Writer) error {
	files, err := discovery.Resolve(paths)
	if err != nil {
		return err
	}

	statements, err := parser.ParseBatch(files)
	if err != nil {
		return err
	}

	if asJSON {
		out := make([]splitStatement, 0, len(statements))
		for _, stmt := range statements {
			out = append(out, splitStatement{
				Index: stmt.Index,
				Type:  stmt.Type.String(),
				SQL:   stmt.SQL,
			})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal statements: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}

	for _, stmt := range statements {
		if _, err := fmt.Fprintf(w, "-- [%d] %s\n%s\n\n", stmt.Index, stmt.Type, stmt.SQL); err != nil {
			return err
		}
	}
	return nil
}
