package render

import "strings"

// indentUnit is one level of indentation in formatted SQL
const indentUnit = "    "

// FormatSQL lays out a statement for display: reserved words are upper-cased,
// every clause starts on its own line with its body indented one level, and
// top-level list items, AND/OR conditions and joins each get their own line.
//
// Only whitespace and keyword case change. Literals, quoted identifiers and
// comments are copied verbatim, and malformed input is laid out as far as it
// goes rather than rejected.
func FormatSQL(sql string) string {
	f := &sqlFormatter{toks: scanSQL(sql)}
	for f.i = 0; f.i < len(f.toks); f.i++ {
		f.token(f.toks[f.i])
	}
	return strings.TrimSpace(string(f.out))
}

type tokenKind int

const (
	tokSpace tokenKind = iota
	tokWord
	tokNumber
	tokString // '...' and prefixed literals such as x'00ff'
	tokQuoted // "...", `...` and [...] identifiers
	tokDollar // $tag$...$tag$ bodies
	tokComment
	tokPunct
)

type sqlToken struct {
	kind tokenKind
	text string
}

// scanSQL splits src into tokens. Unterminated strings and comments run to the
// end of the input.
func scanSQL(src string) []sqlToken {
	var toks []sqlToken
	for i := 0; i < len(src); {
		start := i
		ch := src[i]
		kind := tokPunct

		switch {
		case isSpace(ch):
			for i < len(src) && isSpace(src[i]) {
				i++
			}
			kind = tokSpace
		case ch == '-' && peekByte(src, i+1) == '-':
			if n := strings.IndexByte(src[i:], '\n'); n >= 0 {
				i += n
			} else {
				i = len(src)
			}
			kind = tokComment
		case ch == '/' && peekByte(src, i+1) == '*':
			i = endAfter(src, i+2, "*/")
			kind = tokComment
		case ch == '\'':
			i = quoteEnd(src, i, '\'')
			kind = tokString
		case ch == '"' || ch == '`':
			i = quoteEnd(src, i, ch)
			kind = tokQuoted
		case ch == '[':
			i = endAfter(src, i+1, "]")
			kind = tokQuoted
		case ch == '$' && dollarTag(src, i) != "":
			tag := dollarTag(src, i)
			i = endAfter(src, i+len(tag), tag)
			kind = tokDollar
		case isDigit(ch):
			for i < len(src) && (isDigit(src[i]) || src[i] == '.') {
				i++
			}
			kind = tokNumber
		case isWordStart(ch):
			for i < len(src) && isWordPart(src[i]) {
				i++
			}
			kind = tokWord
			if i-start == 1 && peekByte(src, i) == '\'' && strings.IndexByte("xXeEbBnN", ch) >= 0 {
				i = quoteEnd(src, i, '\'')
				kind = tokString
			}
		case ch == ':' && peekByte(src, i+1) == ':':
			i += 2
		default:
			i++
		}

		toks = append(toks, sqlToken{kind: kind, text: src[start:i]})
	}
	return toks
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

// isWordStart treats every non-ASCII byte as a letter so UTF-8 identifiers stay whole
func isWordStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
}

func isWordPart(ch byte) bool { return isWordStart(ch) || isDigit(ch) || ch == '$' }

func peekByte(src string, i int) byte {
	if i < len(src) {
		return src[i]
	}
	return 0
}

// quoteEnd returns the offset just past the quote opened at src[start].
// A doubled quote is an escaped quote.
func quoteEnd(src string, start int, quote byte) int {
	for j := start + 1; j < len(src); j++ {
		if src[j] != quote {
			continue
		}
		if peekByte(src, j+1) == quote {
			j++
			continue
		}
		return j + 1
	}
	return len(src)
}

func endAfter(src string, from int, closer string) int {
	n := strings.Index(src[from:], closer)
	if n < 0 {
		return len(src)
	}
	return from + n + len(closer)
}

// dollarTag returns the $tag$ opening at src[i], or "" when there is none
// ($1 placeholders have no closing '$').
func dollarTag(src string, i int) string {
	j := i + 1
	if j < len(src) && isDigit(src[j]) {
		return ""
	}
	for j < len(src) && (isWordStart(src[j]) || isDigit(src[j])) {
		j++
	}
	if j < len(src) && src[j] == '$' {
		return src[i : j+1]
	}
	return ""
}

var keywords = toSet(`
ADD ALL ALTER ANALYZE AND ANY AS ASC AUTOINCREMENT BEGIN BETWEEN BIGINT BLOB
BOOLEAN BY CASCADE CASE CAST CHECK COLLATE COLUMN COMMIT CONFLICT CONSTRAINT
CREATE CROSS CURRENT_DATE CURRENT_TIME CURRENT_TIMESTAMP DATE DEFAULT DELETE
DESC DISTINCT DO DROP ELSE END ESCAPE EXCEPT EXISTS EXPLAIN FALSE FETCH FIRST
FOREIGN FROM FULL GLOB GROUP HAVING IF ILIKE IN INDEX INNER INSERT INTEGER
INTERSECT INTERVAL INTO IS JOIN KEY LAST LEFT LIKE LIMIT NATURAL NOT NOTHING
NULL NULLS NUMERIC OFFSET ON OR ORDER OUTER OVER PARTITION PRIMARY REAL
RECURSIVE REFERENCES REPLACE RETURNING RIGHT ROLLBACK ROW ROWS SELECT SET
SMALLINT TABLE TEMP TEMPORARY TEXT THEN TIMESTAMP TO TRANSACTION TRIGGER TRUE
UNION UNIQUE UPDATE USING VACUUM VALUES VARCHAR VIEW WHEN WHERE WINDOW WITH
`)

// clauses start a new line at the clause level; pairs list the words that may
// follow to form one clause keyword.
var (
	clauses = toSet(`SELECT FROM WHERE HAVING LIMIT OFFSET VALUES SET RETURNING
UNION EXCEPT INTERSECT UPDATE INSERT DELETE WITH WINDOW`)
	clausePairs = map[string]string{
		"GROUP":  "BY",
		"ORDER":  "BY",
		"INSERT": "INTO",
		"DELETE": "FROM",
		"UNION":  "ALL",
	}
	joinModifiers = toSet(`LEFT RIGHT INNER OUTER FULL CROSS NATURAL`)
)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

type frameKind int

const (
	frameInline   frameKind = iota // function calls, value tuples
	frameSubquery                  // ( SELECT ... )
	frameBlock                     // CREATE TABLE column list
)

// frame is an open parenthesis and the layout state to restore when it closes
type frame struct {
	kind     frameKind
	base     int
	inClause bool
}

type sqlFormatter struct {
	toks []sqlToken
	i    int
	out  []byte

	base     int  // indent level of clause keywords
	inClause bool // clause bodies sit one level below base
	stack    []frame

	space        bool // the source had whitespace before the next token
	lineStart    bool
	pendingBreak bool

	prevText    string // last emitted token
	prevWord    string // last upper-cased word
	first       string // first word of the statement
	createTable bool
}

func (f *sqlFormatter) level() int {
	if f.inClause {
		return f.base + 1
	}
	return f.base
}

// breaking reports whether clause keywords and list commas break lines here
func (f *sqlFormatter) breaking() bool {
	return len(f.stack) == 0 || f.stack[len(f.stack)-1].kind == frameSubquery
}

func (f *sqlFormatter) newline(level int) {
	for len(f.out) > 0 && f.out[len(f.out)-1] == ' ' {
		f.out = f.out[:len(f.out)-1]
	}
	if len(f.out) > 0 {
		f.out = append(f.out, '\n')
	}
	f.out = append(f.out, strings.Repeat(indentUnit, level)...)
	f.lineStart = true
	f.space = false
}

func (f *sqlFormatter) emit(text string) {
	if f.pendingBreak {
		f.newline(f.level())
		f.pendingBreak = false
	} else if f.space && !f.lineStart && len(f.out) > 0 {
		f.out = append(f.out, ' ')
	}
	f.out = append(f.out, text...)
	f.lineStart = false
	f.space = false
	f.prevText = text
}

// next returns the index of the next token that is neither space nor comment
func (f *sqlFormatter) next(from int) int {
	for j := from + 1; j < len(f.toks); j++ {
		if k := f.toks[j].kind; k != tokSpace && k != tokComment {
			return j
		}
	}
	return -1
}

func (f *sqlFormatter) nextWord(from int) (string, int) {
	j := f.next(from)
	if j < 0 || f.toks[j].kind != tokWord {
		return "", -1
	}
	return strings.ToUpper(f.toks[j].text), j
}

func (f *sqlFormatter) token(t sqlToken) {
	switch t.kind {
	case tokSpace:
		f.space = true
	case tokComment:
		f.emit(t.text)
		if strings.HasPrefix(t.text, "--") {
			f.pendingBreak = true
		}
	case tokWord:
		f.word(t.text)
	case tokPunct:
		f.punct(t.text)
	default:
		f.emit(t.text)
	}
}

func (f *sqlFormatter) word(text string) {
	upper := strings.ToUpper(text)

	// Qualified names keep their case: t.order, schema.table
	if f.prevText == "." || (f.i+1 < len(f.toks) && f.toks[f.i+1].text == ".") {
		f.emit(text)
		return
	}

	if f.first == "" {
		f.first = upper
	}
	if upper == "TABLE" && f.first == "CREATE" {
		f.createTable = true
	}

	if f.breaking() {
		if kw, last := f.clause(upper); kw != "" {
			f.pendingBreak = false
			f.newline(f.base)
			f.emit(kw)
			f.i = last
			f.inClause = true
			f.pendingBreak = true
			f.prevWord = upper
			return
		}
		if f.startsLine(upper) && !f.lineStart {
			f.pendingBreak = false
			f.newline(f.level())
		}
	}

	if keywords[upper] {
		text = upper
	}
	f.emit(text)
	f.prevWord = upper
}

// clause returns the clause keyword starting at the current word and the index
// of its last token, or "" when the word does not start a clause.
func (f *sqlFormatter) clause(upper string) (string, int) {
	kw, last := upper, f.i

	// INSERT OR REPLACE INTO, UPDATE OR IGNORE
	if upper == "INSERT" || upper == "UPDATE" {
		if w, j := f.nextWord(last); w == "OR" {
			if action, k := f.nextWord(j); action != "" {
				kw, last = kw+" OR "+action, k
			}
		}
	}

	if second, ok := clausePairs[upper]; ok {
		if w, j := f.nextWord(last); w == second {
			return kw + " " + second, j
		}
		if upper == "GROUP" || upper == "ORDER" {
			return "", -1
		}
	}
	if clauses[upper] {
		return kw, last
	}
	return "", -1
}

// startsLine reports whether a condition or join begins at this word
func (f *sqlFormatter) startsLine(upper string) bool {
	switch {
	case upper == "AND":
		return f.inClause && !betweenPending(f)
	case upper == "OR":
		return f.inClause
	case upper == "JOIN":
		return !joinModifiers[f.prevWord]
	case joinModifiers[upper] && upper != "OUTER":
		w, _ := f.nextWord(f.i)
		return w == "JOIN" || w == "OUTER"
	}
	return false
}

// betweenPending reports whether the last keyword-level word before this AND
// was BETWEEN, as in "x BETWEEN 1 AND 5".
func betweenPending(f *sqlFormatter) bool {
	for j := f.i - 1; j >= 0; j-- {
		t := f.toks[j]
		if t.kind != tokWord {
			continue
		}
		upper := strings.ToUpper(t.text)
		if upper == "BETWEEN" {
			return true
		}
		if keywords[upper] {
			return false
		}
	}
	return false
}

func (f *sqlFormatter) punct(text string) {
	switch text {
	case "(":
		w, _ := f.nextWord(f.i)
		switch {
		case w == "SELECT" || w == "WITH":
			f.stack = append(f.stack, frame{frameSubquery, f.base, f.inClause})
			f.emit(text)
			f.base = f.level() + 1
			f.inClause = false
		case f.createTable && len(f.stack) == 0:
			f.stack = append(f.stack, frame{frameBlock, f.base, f.inClause})
			f.emit(text)
			f.base = f.level()
			f.inClause = true
			f.pendingBreak = true
		default:
			f.stack = append(f.stack, frame{frameInline, f.base, f.inClause})
			f.emit(text)
		}
	case ")":
		if len(f.stack) == 0 {
			f.emit(text)
			return
		}
		top := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]
		if top.kind != frameInline {
			f.base, f.inClause = top.base, top.inClause
			f.pendingBreak = false
			f.newline(f.level())
		}
		f.emit(text)
	case ",":
		f.emit(text)
		if len(f.stack) > 0 && f.stack[len(f.stack)-1].kind == frameBlock {
			f.pendingBreak = true
		} else if f.breaking() && f.inClause {
			f.pendingBreak = true
		}
	default:
		f.emit(text)
	}
}
