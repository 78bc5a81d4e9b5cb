// Package tagger splits Bubble text into tagged spans for rendering.
//
// It understands a deliberately small markdown subset:
//
//	*italic*  **bold**  $math$
//
// and line breaks. Styles do not nest: inside a span every other marker is
// plain content. A marker that is never closed is kept as literal text.
package tagger

import (
	"fmt"
	"iter"
	"strings"
)

// Kind is the tag attached to a span of text
type Kind int

const (
	Plain Kind = iota
	Bold
	Italic
	Math
	LineBreak
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Math:
		return "math"
	case LineBreak:
		return "linebreak"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText lets spans serialize with readable kinds
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Span is a piece of text accompanied with its tag
type Span struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// All yields the spans of text in order, lexing as it goes.
func All(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		l := newLexer(text)
		for {
			t, ok := l.next()
			if !ok {
				return
			}
			var s Span
			switch t.typ {
			case tokText:
				s = Span{Kind: Plain, Text: t.text}
			case tokNewline:
				s = Span{Kind: LineBreak}
			default:
				s = delimited(l, t)
			}
			if !yield(s) {
				return
			}
		}
	}
}

// Parse returns every span of text. It never fails.
func Parse(text string) []Span {
	spans := []Span{}
	for s := range All(text) {
		spans = append(spans, s)
	}
	return spans
}

// delimited consumes up to the next token equal to open.
func delimited(l *lexer, open token) Span {
	var sb strings.Builder
	for {
		t, ok := l.next()
		if !ok {
			return Span{Kind: Plain, Text: open.text + sb.String()}
		}
		if t.typ == open.typ {
			return Span{Kind: kindFor(open.typ), Text: sb.String()}
		}
		sb.WriteString(t.text)
	}
}

func kindFor(t tokenType) Kind {
	switch t {
	case tokStar:
		return Italic
	case tokDoubleStar:
		return Bold
	case tokDollar:
		return Math
	default:
		return Plain
	}
}

// Render writes spans back to source text, delimiters included,
// so that Render(Parse(s)) == s.
func Render(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case Bold:
			sb.WriteString("**" + s.Text + "**")
		case Italic:
			sb.WriteString("*" + s.Text + "*")
		case Math:
			sb.WriteString("$" + s.Text + "$")
		case LineBreak:
			sb.WriteString("\n")
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
