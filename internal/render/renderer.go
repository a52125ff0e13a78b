// Package render turns statement runs into themed HTML pages.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/enix403/gen-sql-pdf/internal/database"
	"github.com/enix403/gen-sql-pdf/internal/errors"
	"github.com/enix403/gen-sql-pdf/internal/parser"
	"github.com/enix403/gen-sql-pdf/internal/runner"
)

// DefaultTheme is used when no theme is configured
const DefaultTheme = "default-light"

//go:embed templates/*.html
var templateFS embed.FS

//go:embed themes/*.css
var themeFS embed.FS

// statementView is what the templates see for one statement
type statementView struct {
	Index        int
	Status       string
	SQL          string
	Error        string
	Headers      []string
	Rows         [][]database.Cell
	RowsAffected int64
	Truncated    bool
}

type pageView struct {
	CSS       template.CSS
	Width     int
	Statement statementView
}

type documentView struct {
	CSS        template.CSS
	Title      string
	RunID      string
	Statements []statementView
}

// Renderer renders statement runs as HTML
type Renderer struct {
	tmpl  *template.Template
	css   template.CSS
	theme string
	width int
}

// NewRenderer loads the templates and the named theme. Themes in themesDir
// (files named <theme>.css) take precedence over the built-in ones.
func NewRenderer(theme, themesDir string, width int) (*Renderer, error) {
	if theme == "" {
		theme = DefaultTheme
	}

	css, err := loadTheme(theme, themesDir)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to compile templates: %w", err)
	}

	return &Renderer{
		tmpl:  tmpl,
		css:   template.CSS(css),
		theme: theme,
		width: width,
	}, nil
}

// Theme returns the active theme name
func (r *Renderer) Theme() string {
	return r.theme
}

// Page renders one statement run as a standalone HTML page
func (r *Renderer) Page(run *runner.StatementRun) (string, error) {
	var buf strings.Builder
	err := r.tmpl.ExecuteTemplate(&buf, "page", pageView{
		CSS:       r.css,
		Width:     r.width,
		Statement: newStatementView(run),
	})
	if err != nil {
		return "", errors.NewRenderError(run.Statement.Index, err.Error())
	}
	return buf.String(), nil
}

// Document renders every run, in order, into a single HTML document
func (r *Renderer) Document(w io.Writer, runs []*runner.StatementRun, title, runID string) error {
	view := documentView{
		CSS:   r.css,
		Title: title,
		RunID: runID,
	}
	for _, run := range runs {
		view.Statements = append(view.Statements, newStatementView(run))
	}

	if err := r.tmpl.ExecuteTemplate(w, "document", view); err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	return nil
}

func newStatementView(run *runner.StatementRun) statementView {
	view := statementView{
		Index:  run.Statement.Index,
		Status: run.Status.String(),
		SQL:    run.Statement.SQL,
	}
	if run.Statement.Type != parser.StmtDotCommand {
		view.SQL = FormatSQL(run.Statement.SQL)
	}
	if run.Error != nil {
		view.Error = run.Error.Error()
	}
	if run.Answer != nil {
		view.Headers = run.Answer.Headers
		view.Rows = run.Answer.Rows
		view.RowsAffected = run.Answer.RowsAffected
		view.Truncated = run.Answer.Truncated
	}
	return view
}

func loadTheme(theme, themesDir string) (string, error) {
	if themesDir != "" {
		data, err := os.ReadFile(filepath.Join(themesDir, theme+".css"))
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read theme %s: %w", theme, err)
		}
	}

	data, err := themeFS.ReadFile("themes/" + theme + ".css")
	if err != nil {
		available, _ := Themes(themesDir)
		return "", fmt.Errorf("unknown theme: %s (available: %s)", theme, strings.Join(available, ", "))
	}
	return string(data), nil
}

// Themes lists the built-in themes plus any found in themesDir, sorted
func Themes(themesDir string) ([]string, error) {
	seen := make(map[string]bool)

	builtin, err := themeFS.ReadDir("themes")
	if err != nil {
		return nil, err
	}
	for _, e := range builtin {
		seen[strings.TrimSuffix(e.Name(), ".css")] = true
	}

	if themesDir != "" {
		matches, err := filepath.Glob(filepath.Join(themesDir, "*.css"))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			seen[strings.TrimSuffix(filepath.Base(m), ".css")] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
