// Package expr implements the sandboxed expression engine described by the
// runtime's expression-engine component: a small JS-subset parser and
// evaluator with scope-proxy auto-unwrap of cells, a process-wide compiled-
// closure cache, and a dependency extractor sharing the same tokenizer.
//
// Grounded on the teacher's use of reflect-driven path resolution
// (reactivity/store.go's Select) for the member-access/sandbox machinery;
// the lexer/parser/evaluator themselves are hand-rolled because no example
// repository in the corpus ships a sandboxed JS-subset evaluator — see
// DESIGN.md for that justification.
package expr

import "fmt"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

func (t token) String() string {
	return fmt.Sprintf("%v(%q)", t.kind, t.text)
}

// lexer tokenizes a small JS-subset source string.
type lexer struct {
	src  string
	pos  int
	toks []token
}

func lex(src string) ([]token, error) {
	l := &lexer{src: src}
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.toks = append(l.toks, tok)
		if tok.kind == tokEOF {
			break
		}
	}
	return l.toks, nil
}

func (l *lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return rune(l.src[l.pos])
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			l.pos++
			continue
		}
		break
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

var punctuators = []string{
	"===", "!==", "=>", "&&", "||", "<=", ">=", "...",
	"(", ")", "[", "]", "{", "}", ",", ".", ":", ";",
	"+", "-", "*", "/", "%", "!", "<", ">", "?",
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	start := l.pos
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}
	c := l.src[l.pos]

	if c == '\'' || c == '"' || c == '`' {
		return l.lexString(c)
	}
	if isDigit(c) {
		return l.lexNumber()
	}
	if isIdentStart(c) {
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
	}
	for _, p := range punctuators {
		if hasPrefixAt(l.src, l.pos, p) {
			l.pos += len(p)
			return token{kind: tokPunct, text: p, pos: start}, nil
		}
	}
	return token{}, fmt.Errorf("unexpected character %q at %d", c, start)
}

func hasPrefixAt(s string, pos int, p string) bool {
	if pos+len(p) > len(s) {
		return false
	}
	return s[pos:pos+len(p)] == p
}

func (l *lexer) lexString(quote byte) (token, error) {
	start := l.pos
	l.pos++ // skip opening quote
	var buf []byte
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == quote {
			l.pos++
			return token{kind: tokString, text: string(buf), pos: start}, nil
		}
		if c == '\\' && l.pos+1 < len(l.src) {
			esc := l.src[l.pos+1]
			switch esc {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case '\\', '\'', '"', '`':
				buf = append(buf, esc)
			default:
				buf = append(buf, esc)
			}
			l.pos += 2
			continue
		}
		buf = append(buf, c)
		l.pos++
	}
	return token{}, fmt.Errorf("unterminated string starting at %d", start)
}

func (l *lexer) lexNumber() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	text := l.src[start:l.pos]
	var f float64
	_, err := fmt.Sscanf(text, "%g", &f)
	if err != nil {
		return token{}, fmt.Errorf("invalid number %q at %d", text, start)
	}
	return token{kind: tokNumber, text: text, num: f, pos: start}, nil
}
