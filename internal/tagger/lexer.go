package tagger

type tokenType int

const (
	tokStar tokenType = iota
	tokDoubleStar
	tokDollar
	tokNewline
	tokText
)

type token struct {
	typ  tokenType
	text string // source characters of the token
}

// Every marker is ASCII, so the source is scanned bytewise and any byte
// sequence, valid UTF-8 or not, comes back out unchanged.
func isSpecial(c byte) bool {
	return c == '*' || c == '$' || c == '\n'
}

// lexer hands out one token at a time so that parsing is a single pass.
type lexer struct {
	src string
	i   int
}

func newLexer(text string) *lexer {
	return &lexer{src: text}
}

func (l *lexer) done() bool {
	return l.i >= len(l.src)
}

// next returns the next token, or false once the input is exhausted.
// Two stars in a row always form one token.
func (l *lexer) next() (token, bool) {
	if l.done() {
		return token{}, false
	}
	switch l.src[l.i] {
	case '*':
		l.i++
		if !l.done() && l.src[l.i] == '*' {
			l.i++
			return token{typ: tokDoubleStar, text: "**"}, true
		}
		return token{typ: tokStar, text: "*"}, true
	case '$':
		l.i++
		return token{typ: tokDollar, text: "$"}, true
	case '\n':
		l.i++
		return token{typ: tokNewline, text: "\n"}, true
	}
	start := l.i
	for !l.done() && !isSpecial(l.src[l.i]) {
		l.i++
	}
	return token{typ: tokText, text: l.src[start:l.i]}, true
}
