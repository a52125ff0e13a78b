package parser

import (
	"strings"
	"testing"
)

// assertSplit fails the test when Split(src) does not produce want.
func assertSplit(t *testing.T, src string, want ...string) {
	t.Helper()
	got := Split(src)
	if len(got) != len(want) {
		t.Fatalf("src=%q\n  got  %q\n  want %q", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("src=%q stmt[%d]: got %q, want %q", src, i, got[i], want[i])
		}
	}
}

func TestSplit_Basic(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"two statements", "SELECT 1; SELECT 2;", []string{"SELECT 1", "SELECT 2"}},
		{"line comment before terminator", "SELECT 1 -- note\n; SELECT 2;", []string{"SELECT 1", "SELECT 2"}},
		{"quoted semicolon", "SELECT 'a;b'; SELECT 2;", []string{"SELECT 'a;b'", "SELECT 2"}},
		{"semicolon in open paren", "SELECT f(1,2;3);", []string{"SELECT f(1,2;3)"}},
		{"no trailing semicolon", "SELECT 1", []string{"SELECT 1"}},
		{"only semicolons", ";  ;  ", nil},
		{"empty input", "", nil},
		{"whitespace only", " \n\t ", nil},
		{"minus operator", "SELECT 5 - 3;", []string{"SELECT 5 - 3"}},
		{"division and multiply", "SELECT 10/2*3;", []string{"SELECT 10/2*3"}},
		{"escaped quote", "SELECT 'it''s; fine';", []string{"SELECT 'it''s; fine'"}},
		{"multiline statement", "SELECT a,\n       b\nFROM t;\n", []string{"SELECT a,\n       b\nFROM t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSplit(t, tt.sql, tt.want...)
		})
	}
}

func TestSplit_Comments(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"block comment with semicolon", "SELECT /* c; */ 1; SELECT 2", []string{"SELECT  1", "SELECT 2"}},
		{"trailing line comment", "SELECT 1; -- trailing", []string{"SELECT 1"}},
		{"comment only", "-- one\n/* two */\n", nil},
		{"quote inside line comment is inert", "SELECT 1; -- don't\nSELECT 2;", []string{"SELECT 1", "SELECT 2"}},
		{"paren inside block comment is inert", "SELECT 1 /* ( */; SELECT 2;", []string{"SELECT 1", "SELECT 2"}},
		{"unterminated block comment", "SELECT 1 /* never closed; SELECT 2;", []string{"SELECT 1"}},
		{"minus before and after block comment", "SELECT 5-/* c */-2;", []string{"SELECT 5--2"}},
		{"slash before line comment marker", "SELECT 6/-- c\n-1;", []string{"SELECT 6/\n-1"}},
		{"markers inside strings", "SELECT '--not a comment', '/* nor this */';", []string{"SELECT '--not a comment', '/* nor this */'"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSplit(t, tt.sql, tt.want...)
		})
	}
}

func TestSplit_Enclosers(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"double quotes", `SELECT "a;b" FROM t; SELECT 2;`, []string{`SELECT "a;b" FROM t`, "SELECT 2"}},
		{"backticks", "SELECT `a;b` FROM t; SELECT 2;", []string{"SELECT `a;b` FROM t", "SELECT 2"}},
		{"brackets", "SELECT [a;b] FROM t; SELECT 2;", []string{"SELECT [a;b] FROM t", "SELECT 2"}},
		{"unterminated quote", "SELECT 'abc; SELECT 2", []string{"SELECT 'abc; SELECT 2"}},
		{"unicode", "SELECT 'héllo;'; SELECT '日本';", []string{"SELECT 'héllo;'", "SELECT '日本'"}},
		// ']' closes any encloser, so the quote ends early and the rest is re-quoted.
		{"bracket closes quote", "SELECT 'a]b;c'; SELECT 2;", []string{"SELECT 'a]b", "c'; SELECT 2;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSplit(t, tt.sql, tt.want...)
		})
	}
}

func TestSplit_BytesPreserved(t *testing.T) {
	// Latin-1 text is not valid UTF-8 and must reach the database untouched.
	assertSplit(t, "SELECT 'caf\xe9'; SELECT 2;", "SELECT 'caf\xe9'", "SELECT 2")
	assertSplit(t, "SELECT x'\xff\xfe' \x80;", "SELECT x'\xff\xfe' \x80")
	assertSplit(t, "SELECT '\xe9;\xe9';", "SELECT '\xe9;\xe9'")
}

func TestSplit_Parens(t *testing.T) {
	assertSplit(t, "INSERT INTO t VALUES ((1), (2;3)); SELECT 1",
		"INSERT INTO t VALUES ((1), (2;3))", "SELECT 1")

	// An unmatched ')' must not drive the depth negative.
	assertSplit(t, "SELECT 1); SELECT 2;", "SELECT 1)", "SELECT 2")

	// An unclosed '(' swallows every later semicolon.
	assertSplit(t, "SELECT (1; SELECT 2; SELECT 3", "SELECT (1; SELECT 2; SELECT 3")
}

func TestSplit_DotCommands(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"consecutive", ".tables\n.schema users\nSELECT 1;", []string{".tables", ".schema users", "SELECT 1"}},
		{"ended by block comment", ".mode csv/* x */\nSELECT 1;", []string{".mode csv", "SELECT 1"}},
		{"ended by line comment", ".tables -- list\nSELECT 1;", []string{".tables", "SELECT 1"}},
		{"quoted newline", ".print 'a\nb'\nSELECT 1;", []string{".print 'a\nb'", "SELECT 1"}},
		{"unterminated at end", ".tables", []string{".tables"}},
		// Only the first character of a fresh statement may start a dot command.
		{"not first character", "SELECT 1;\n.tables\nSELECT 2;", []string{"SELECT 1", ".tables\nSELECT 2"}},
		{"dot inside statement", "SELECT t.a FROM t;", []string{"SELECT t.a FROM t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSplit(t, tt.sql, tt.want...)
		})
	}
}

func TestSplit_Deterministic(t *testing.T) {
	inputs := []string{
		"SELECT 1; SELECT 2;",
		".tables\nSELECT 'x;y' /* z */;",
		"SELECT (1; 2",
		"",
	}
	for _, in := range inputs {
		first := Split(in)
		second := Split(in)
		if strings.Join(first, "\x00") != strings.Join(second, "\x00") || len(first) != len(second) {
			t.Errorf("Split(%q) not deterministic: %q vs %q", in, first, second)
		}
	}
}

func TestSplit_CommentTextNeverEmitted(t *testing.T) {
	src := `-- header comment
CREATE TABLE t (id INT); -- trailing note
/* block
   comment */
INSERT INTO t VALUES (1); /* inline */ SELECT * FROM t;`

	got := Split(src)
	if len(got) != 3 {
		t.Fatalf("got %d statements, want 3: %q", len(got), got)
	}
	for _, stmt := range got {
		for _, marker := range []string{"--", "/*", "*/", "comment", "note", "inline"} {
			if strings.Contains(stmt, marker) {
				t.Errorf("statement %q still contains %q", stmt, marker)
			}
		}
	}
}

func TestMode_String(t *testing.T) {
	if ModeBlockComment.String() != "block-comment" {
		t.Errorf("got %q", ModeBlockComment.String())
	}
	if Mode(99).String() != "unknown" {
		t.Errorf("got %q", Mode(99).String())
	}
}
