package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureSQL = `-- sample report
CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT);
INSERT INTO users (name) VALUES ('Alice'), ('Bob; the builder');
SELECT id, name FROM users ORDER BY id;
`

type reportFile struct {
	RunID      string `json:"run_id"`
	Statements []struct {
		Index  int    `json:"index"`
		SQL    string `json:"sql"`
		Status string `json:"status"`
		Error  string `json:"error"`
		Answer *struct {
			Headers []string `json:"headers"`
			Rows    [][]struct {
				Value string `json:"value"`
			} `json:"rows"`
		} `json:"answer"`
	} `json:"statements"`
}

func testConfig(t *testing.T, format string) *Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DSN = filepath.Join(dir, "test.db")
	cfg.Format = format
	cfg.Output = filepath.Join(dir, "out", "report."+format)
	return cfg
}

func readReport(t *testing.T, path string) reportFile {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var r reportFile
	require.NoError(t, json.Unmarshal(data, &r))
	return r
}

func TestRun_JSONReport(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "report.sql", fixtureSQL)
	cfg := testConfig(t, "json")

	code, err := Run(context.Background(), cfg, []string{input})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	r := readReport(t, cfg.Output)
	assert.NotEmpty(t, r.RunID)
	require.Len(t, r.Statements, 3)

	last := r.Statements[2]
	assert.Equal(t, 3, last.Index)
	assert.Equal(t, "SELECT id, name FROM users ORDER BY id", last.SQL)
	require.NotNil(t, last.Answer)
	assert.Equal(t, []string{"id", "name"}, last.Answer.Headers)
	require.Len(t, last.Answer.Rows, 2)
	assert.Equal(t, "Bob; the builder", last.Answer.Rows[1][1].Value)
}

func TestRun_FailureContinuesAndSetsExitCode(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "report.sql", "SELECT * FROM missing;\nSELECT 42 AS answer;")
	cfg := testConfig(t, "json")

	code, err := Run(context.Background(), cfg, []string{input})
	require.NoError(t, err)
	assert.Equal(t, 1, code)

	r := readReport(t, cfg.Output)
	require.Len(t, r.Statements, 2)
	assert.Equal(t, "failed", r.Statements[0].Status)
	assert.Contains(t, r.Statements[0].Error, "missing")
	assert.Equal(t, "succeeded", r.Statements[1].Status)
}

func TestRun_HTMLReportFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01_schema.sql", "CREATE TABLE t (v TEXT);\nINSERT INTO t VALUES ('first');")
	writeFile(t, dir, "02_query.sql", "SELECT v FROM t;")
	writeFile(t, dir, "notes.txt", "SELECT 'ignored';")
	cfg := testConfig(t, "html")

	code, err := Run(context.Background(), cfg, []string{dir})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	data, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "first")
	assert.NotContains(t, out, "ignored")
	assert.Less(t, strings.Index(out, "CREATE TABLE"), strings.Index(out, "FROM\n    t"))
}

func TestRun_NoInput(t *testing.T) {
	cfg := testConfig(t, "json")

	code, err := Run(context.Background(), cfg, []string{t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.NoFileExists(t, cfg.Output)

	_, err = Run(context.Background(), cfg, []string{filepath.Join(t.TempDir(), "nope.sql")})
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	input := writeFile(t, t.TempDir(), "in.sql", "SELECT 1; /* gone */ SELECT ';';")

	var text bytes.Buffer
	require.NoError(t, Split([]string{input}, false, &text))
	assert.Equal(t, "-- [1] query\nSELECT 1\n\n-- [2] query\nSELECT ';'\n\n", text.String())

	var js bytes.Buffer
	require.NoError(t, Split([]string{input}, true, &js))

	var got []splitStatement
	require.NoError(t, json.Unmarshal(js.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, splitStatement{Index: 2, Type: "query", SQL: "SELECT ';'"}, got[1])
}

func TestRun_SampleReport(t *testing.T) {
	cfg := testConfig(t, "json")

	code, err := Run(context.Background(), cfg, []string{filepath.Join("..", "..", "testdata", "report")})
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	r := readReport(t, cfg.Output)
	for _, stmt := range r.Statements {
		assert.Equal(t, "succeeded", stmt.Status, "statement %d: %s", stmt.Index, stmt.Error)
	}

	var tables []string
	for _, stmt := range r.Statements {
		if stmt.SQL == ".tables" {
			require.NotNil(t, stmt.Answer)
			for _, row := range stmt.Answer.Rows {
				tables = append(tables, row[0].Value)
			}
		}
	}
	assert.Equal(t, []string{"customers", "orders"}, tables)
	assert.Equal(t, ".schema orders", r.Statements[len(r.Statements)-1].SQL)
}
