package codec

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"bubblesea/internal/domain"
)

// Lexing errors
var (
	ErrUnclosedString = errors.New("unclosed string literal")
	ErrUnexpectedChar = errors.New("unexpected character")
)

type tokenType int

const (
	tokOpenParen tokenType = iota
	tokCloseParen
	tokBubble
	tokString
	tokWord
	tokID
)

func (t tokenType) String() string {
	switch t {
	case tokOpenParen:
		return "'('"
	case tokCloseParen:
		return "')'"
	case tokBubble:
		return "bubble"
	case tokString:
		return "string"
	case tokWord:
		return "identifier"
	case tokID:
		return "bubble ID"
	default:
		return "unknown"
	}
}

type token struct {
	typ  tokenType
	text string
	id   domain.ID
}

// lexer scans bytes. The syntax is ASCII, and string contents are copied
// byte for byte, so text that is not valid UTF-8 survives a decode.
type lexer struct {
	src string
	i   int
}

func (l *lexer) done() bool {
	return l.i >= len(l.src)
}

func (l *lexer) curr() byte {
	return l.src[l.i]
}

func (l *lexer) advance() {
	l.i++
}

func lex(text string) ([]token, error) {
	l := &lexer{src: text}
	var tokens []token
	for !l.done() {
		c := l.curr()
		switch {
		case c == '(':
			l.advance()
			tokens = append(tokens, token{typ: tokOpenParen})
		case c == ')':
			l.advance()
			tokens = append(tokens, token{typ: tokCloseParen})
		case c == '"':
			l.advance()
			s, err := l.stringLit()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{typ: tokString, text: s})
		case c == '0':
			id, err := l.bubbleID()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{typ: tokID, id: id})
		case startsWord(c):
			w := l.word()
			if w == "bubble" {
				tokens = append(tokens, token{typ: tokBubble})
			} else {
				tokens = append(tokens, token{typ: tokWord, text: w})
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			l.advance()
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.src[l.i:])
			if !unicode.IsSpace(r) {
				return nil, fmt.Errorf("%w %q at %d", ErrUnexpectedChar, r, l.i)
			}
			l.i += size
		default:
			return nil, fmt.Errorf("%w %q at %d", ErrUnexpectedChar, c, l.i)
		}
	}
	return tokens, nil
}

// stringLit scans after the opening quote. Escapes are kept verbatim:
// a backslash and the character after it both end up in the text, and an
// escaped quote does not close the literal.
func (l *lexer) stringLit() (string, error) {
	var sb strings.Builder
	escaping := false
	for !l.done() {
		c := l.curr()
		l.advance()
		if escaping {
			sb.WriteByte('\\')
			sb.WriteByte(c)
			if c != '\\' {
				escaping = false
			}
			continue
		}
		switch c {
		case '"':
			return sb.String(), nil
		case '\\':
			escaping = true
		default:
			sb.WriteByte(c)
		}
	}
	return "", ErrUnclosedString
}

func (l *lexer) bubbleID() (domain.ID, error) {
	start := l.i
	l.advance() // '0'
	if l.done() || l.curr() != 'x' {
		return 0, fmt.Errorf("%w: expected 'x' after 0 at %d", domain.ErrMalformedID, start)
	}
	l.advance()
	for !l.done() && isHexDigit(l.curr()) {
		l.advance()
	}
	return domain.ParseID(l.src[start:l.i])
}

func (l *lexer) word() string {
	start := l.i
	for !l.done() && continuesWord(l.curr()) {
		l.advance()
	}
	return l.src[start:l.i]
}

func startsWord(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func continuesWord(c byte) bool {
	return startsWord(c) || (c >= '0' && c <= '9')
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
