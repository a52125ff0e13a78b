package parser

import "bytes"

// Mode is the exclusive lexical state of the splitter.
type Mode int

const (
	ModeNormal Mode = iota
	ModeLineComment
	ModeBlockComment
	ModeDotCommand
	ModeEncloser
)

// String returns a string representation of Mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeLineComment:
		return "line-comment"
	case ModeBlockComment:
		return "block-comment"
	case ModeDotCommand:
		return "dot-command"
	case ModeEncloser:
		return "encloser"
	default:
		return "unknown"
	}
}

// splitter holds the state of a single Split call.
//
// Comments and enclosers remember the mode they were opened from in outer so
// that a quote or comment inside a dot command returns to the dot command.
type splitter struct {
	mode     Mode
	outer    Mode
	encloser byte
	depth    int
	prev     byte
	dot      bool // the pending statement was opened as a dot command

	buf []byte
	out []piece
}

// piece is one emitted statement and whether it was scanned as a dot command.
type piece struct {
	text string
	dot  bool
}

// Split partitions a multi-statement SQL string into its statements.
//
// Comments are removed, a top-level ';' ends a statement, and a line starting
// with '.' is a dot command ended by the newline. Semicolons inside quotes,
// backticks, brackets, comments or open parentheses never split.
//
// Every trigger character is ASCII, so the input is scanned byte by byte and
// statement bytes are copied through unchanged, valid UTF-8 or not.
//
// Split never fails; malformed input only degrades the precision of the split.
//
// Known deviation: ']' closes any open encloser, not only one opened by '['.
// A ']' inside a quoted string therefore ends the string early.
func Split(sql string) []string {
	var out []string
	for _, p := range split(sql) {
		out = append(out, p.text)
	}
	return out
}

func split(sql string) []piece {
	s := &splitter{}
	for i := 0; i < len(sql); i++ {
		s.step(sql[i])
	}
	s.flush()
	return s.out
}

func (s *splitter) step(ch byte) {
	inComment := s.mode == ModeLineComment || s.mode == ModeBlockComment
	wasEmpty := len(s.buf) == 0
	if !inComment {
		s.buf = append(s.buf, ch)
	}

	switch s.mode {
	case ModeLineComment:
		if ch == '\n' {
			s.buf = append(s.buf, '\n')
			s.mode = s.outer
			if s.mode == ModeDotCommand {
				s.mode = ModeNormal
				s.flush()
			}
		}
	case ModeBlockComment:
		if ch == '/' && s.prev == '*' {
			s.mode = s.outer
		}
	case ModeEncloser:
		if ch == ']' || ch == s.encloser {
			s.mode = s.outer
		}
	default:
		s.code(ch, wasEmpty)
	}

	s.prev = ch
}

// code handles a character scanned outside comments and enclosers. Comment
// openers need both characters scanned back to back: a '-' or '/' left in the
// buffer before an excised comment never pairs with what follows it.
func (s *splitter) code(ch byte, wasEmpty bool) {
	switch ch {
	case '.':
		if wasEmpty {
			s.mode = ModeDotCommand
			s.dot = true
		}
	case '*':
		if s.prev == '/' && bytes.HasSuffix(s.buf, []byte("/*")) {
			s.buf = s.buf[:len(s.buf)-2]
			if s.mode == ModeDotCommand {
				s.flush()
			}
			s.enter(ModeBlockComment)
		}
	case '-':
		if s.prev == '-' && bytes.HasSuffix(s.buf, []byte("--")) {
			s.buf = s.buf[:len(s.buf)-2]
			s.enter(ModeLineComment)
		}
	case '\n':
		if s.mode == ModeDotCommand {
			s.mode = ModeNormal
			s.flush()
		}
	case ';':
		if s.depth == 0 {
			s.buf = s.buf[:len(s.buf)-1]
			s.flush()
		}
	case '(':
		s.depth++
	case ')':
		if s.depth > 0 {
			s.depth--
		}
	case '[', '"', '\'', '`':
		s.enter(ModeEncloser)
		s.encloser = ch
	}
}

func (s *splitter) enter(m Mode) {
	s.outer = s.mode
	s.mode = m
}

// flush emits the accumulated statement, if any, and resets the accumulator.
func (s *splitter) flush() {
	stmt := string(bytes.TrimSpace(s.buf))
	if stmt != "" && stmt != ";" {
		s.out = append(s.out, piece{text: stmt, dot: s.dot})
	}
	s.buf = s.buf[:0]
	s.dot = false
}
