package textsyntax

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	initialBufferSize = 1024
	// DefaultMaxBufferSize bounds the longest single token
	DefaultMaxBufferSize = 64 << 20
)

// SyntaxError is a text syntax error found while decoding
type SyntaxError struct {
	Message string
	Line    int
}

func (e SyntaxError) Error() string {
	msg := "text syntax error"
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Line < 1 {
		return msg
	}
	return fmt.Sprintf("%s on line %d", msg, e.Line)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokWord
	tokString
	tokSemi
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
)

var tokenNames = [...]string{"end of input", "word", "string", "';'", "'{'", "'}'", "'['", "']'"}

func (k tokenKind) String() string { return tokenNames[k] }

type token struct {
	kind tokenKind
	text string
	line int
}

func (t token) String() string {
	switch t.kind {
	case tokWord, tokString:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
	return t.kind.String()
}

// isSpecial reports whether c ends a word
func isSpecial(c byte) bool {
	switch c {
	case ';', '{', '}', '[', ']', '"':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// lexer tokenizes text syntax input with a bufio.Scanner whose buffer
// starts small and doubles on demand up to a maximum.
type lexer struct {
	sc *bufio.Scanner
	// line is the line number at the scanner's read offset
	line int
	// tokLine is the line the last token started on
	tokLine int
}

func newLexer(r io.Reader, maxBuffer int) *lexer {
	if maxBuffer < initialBufferSize {
		maxBuffer = initialBufferSize
	}
	lx := &lexer{sc: bufio.NewScanner(r), line: 1}
	lx.sc.Buffer(make([]byte, initialBufferSize), maxBuffer)
	lx.sc.Split(lx.split)
	return lx
}

// split is a bufio.SplitFunc returning one token per call. Tokens are a
// single punctuation character, a double quoted string including its
// quotes, or a word. Whitespace is skipped and counted for line numbers.
// End of input is only valid outside a quoted string.
func (lx *lexer) split(b []byte, atEOF bool) (advance int, tok []byte, err error) {
	start := 0
	for start < len(b) && isSpace(b[start]) {
		start++
	}
	if start == len(b) {
		if atEOF || start > 0 {
			lx.line += bytes.Count(b[:start], []byte("\n"))
			advance = start
		}
		return
	}
	end := start + 1
	switch c := b[start]; {
	case c == '"':
		for escaped := false; ; end++ {
			if end >= len(b) {
				if atEOF {
					return 0, nil, io.ErrUnexpectedEOF
				}
				// ask for more data
				return 0, nil, nil
			}
			if escaped {
				escaped = false
			} else if b[end] == '\\' {
				escaped = true
			} else if b[end] == '"' {
				end++
				break
			}
		}
	case isSpecial(c):
	default:
		for end < len(b) && !isSpace(b[end]) && !isSpecial(b[end]) {
			end++
		}
		if end == len(b) && !atEOF {
			return 0, nil, nil
		}
	}
	lx.line += bytes.Count(b[:start], []byte("\n"))
	lx.tokLine = lx.line
	lx.line += bytes.Count(b[start:end], []byte("\n"))
	return end, b[start:end], nil
}

// next returns the next token, a tokEOF token at end of input
func (lx *lexer) next() (token, error) {
	if !lx.sc.Scan() {
		if err := lx.sc.Err(); err != nil {
			if err == io.ErrUnexpectedEOF {
				return token{}, SyntaxError{Message: "unterminated quoted string", Line: lx.line}
			}
			return token{}, errors.WithStack(err)
		}
		return token{kind: tokEOF, line: lx.line}, nil
	}
	b := lx.sc.Bytes()
	t := token{line: lx.tokLine}
	switch b[0] {
	case ';':
		t.kind = tokSemi
	case '{':
		t.kind = tokLBrace
	case '}':
		t.kind = tokRBrace
	case '[':
		t.kind = tokLBracket
	case ']':
		t.kind = tokRBracket
	case '"':
		t.kind = tokString
		t.text = unquote(b[1 : len(b)-1])
	default:
		t.kind = tokWord
		t.text = string(b)
	}
	return t, nil
}

// unquote resolves \" and \\ escapes. Other backslashes are literal.
func unquote(b []byte) string {
	if bytes.IndexByte(b, '\\') < 0 {
		return string(b)
	}
	var sb strings.Builder
	for i := 0; i < len(b); i++ {
		if b[i] == '\\' && i+1 < len(b) && (b[i+1] == '"' || b[i+1] == '\\') {
			i++
		}
		sb.WriteByte(b[i])
	}
	return sb.String()
}
