// Package codec reads and writes the textual form of a Bubble:
//
//	(bubble "text" 0x12 0x1F)
//
// a lisp-like call with one string literal followed by child references.
package codec

import (
	"errors"
	"fmt"
	"strings"

	"bubblesea/internal/domain"
)

var (
	// ErrUnexpectedToken is returned when tokens are out of grammar order
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrUnencodable is returned for text the literal-preserving escape rule cannot carry
	ErrUnencodable = errors.New("text cannot be encoded")
)

// Decode parses the textual form of a Bubble.
// It reports false on any lexical or grammatical failure, which callers
// treat the same as the Bubble not existing.
func Decode(text string) (domain.Bubble, bool) {
	b, err := decode(text)
	if err != nil {
		return domain.Bubble{}, false
	}
	return b, true
}

func decode(text string) (domain.Bubble, error) {
	tokens, err := lex(text)
	if err != nil {
		return domain.Bubble{}, err
	}
	p := &parser{tokens: tokens}
	return p.parse()
}

type parser struct {
	tokens []token
	i      int
}

func (p *parser) check(typ tokenType) bool {
	return p.i < len(p.tokens) && p.tokens[p.i].typ == typ
}

func (p *parser) expect(typ tokenType) (token, error) {
	if !p.check(typ) {
		if p.i >= len(p.tokens) {
			return token{}, fmt.Errorf("%w: expected %s, got end of input", ErrUnexpectedToken, typ)
		}
		return token{}, fmt.Errorf("%w: expected %s, got %s", ErrUnexpectedToken, typ, p.tokens[p.i].typ)
	}
	t := p.tokens[p.i]
	p.i++
	return t, nil
}

func (p *parser) parse() (domain.Bubble, error) {
	if _, err := p.expect(tokOpenParen); err != nil {
		return domain.Bubble{}, err
	}
	if _, err := p.expect(tokBubble); err != nil {
		return domain.Bubble{}, err
	}
	text, err := p.expect(tokString)
	if err != nil {
		return domain.Bubble{}, err
	}
	children := []domain.ID{}
	for p.check(tokID) {
		children = append(children, p.tokens[p.i].id)
		p.i++
	}
	if _, err := p.expect(tokCloseParen); err != nil {
		return domain.Bubble{}, err
	}
	if p.i != len(p.tokens) {
		return domain.Bubble{}, fmt.Errorf("%w: trailing %s", ErrUnexpectedToken, p.tokens[p.i].typ)
	}
	return domain.Bubble{Text: text.text, Children: children}, nil
}

// Encode writes b in its textual form.
//
// The string literal is written verbatim since decoding keeps escapes as
// they are. Text that would not scan back unchanged (a bare quote, a
// trailing backslash, a doubled backslash) yields ErrUnencodable.
func Encode(b domain.Bubble) (string, error) {
	if !encodable(b.Text) {
		return "", fmt.Errorf("%w: %q", ErrUnencodable, b.Text)
	}
	var sb strings.Builder
	sb.WriteString(`(bubble "`)
	sb.WriteString(b.Text)
	sb.WriteByte('"')
	for _, c := range b.Children {
		sb.WriteByte(' ')
		sb.WriteString(c.String())
	}
	sb.WriteByte(')')
	return sb.String(), nil
}

func encodable(text string) bool {
	l := &lexer{src: text + `"`}
	got, err := l.stringLit()
	return err == nil && l.done() && got == text
}
