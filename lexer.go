// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonp

import (
	"fmt"
	"strings"
	"unicode"

	"go4.org/mem"
)

// Lex splits input into a sequence of lexical tokens. An input that is empty
// or contains only whitespace yields no tokens and no error. If the input
// contains an unterminated string or an unknown bare word, Lex reports an
// error of concrete type *LexError.
//
// Lex accepts a narrow subset of JSON lexical syntax: numbers are unsigned
// integers, and strings are taken verbatim with no escape processing.
func Lex(input string) ([]Token, error) {
	lx := newLexer(mem.S(input))
	var toks []Token
	for !lx.eof {
		ch := lx.ch

		// Discard whitespace.
		if isSpace(ch) {
			lx.advance()
			continue
		}

		// Handle punctuation.
		if k, ok := selfDelim(ch); ok {
			pos := lx.pos
			lx.advance()
			toks = append(toks, Token{Kind: k, Span: Span{Pos: pos, End: lx.pos}})
			continue
		}

		var tok Token
		var err error
		switch {
		case ch == '"':
			tok, err = lx.scanString()
		case isDigit(ch):
			tok = lx.scanNumber()
		default:
			tok, err = lx.scanLiteral()
		}
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// A lexer tracks the scan state of a single call to Lex.
// The current rune ch begins at offset pos; next is the offset just past it.
// When the input is exhausted, eof is true and ch is meaningless.
type lexer struct {
	input     mem.RO
	pos, next int
	ch        rune
	eof       bool
}

func newLexer(input mem.RO) *lexer {
	lx := &lexer{input: input}
	lx.advance()
	return lx
}

// advance moves to the next rune of the input, or sets eof.
func (lx *lexer) advance() {
	lx.pos = lx.next
	if lx.next >= lx.input.Len() {
		lx.ch, lx.eof = 0, true
		return
	}
	ch, nb := mem.DecodeRune(lx.input.SliceFrom(lx.next))
	lx.ch = ch
	lx.next += nb
}

// advanceWhile consumes runes matching f until eof or a non-matching rune.
func (lx *lexer) advanceWhile(f func(rune) bool) {
	for !lx.eof && f(lx.ch) {
		lx.advance()
	}
}

// scanString consumes a string literal. Precondition: ch == '"'.
func (lx *lexer) scanString() (Token, error) {
	start := lx.pos
	lx.advance() // opening quote
	body := lx.pos
	lx.advanceWhile(isNotQuote)
	if lx.eof {
		return Token{}, lx.failf("unterminated string %q", lx.input.SliceFrom(body).StringCopy())
	}
	text := lx.input.Slice(body, lx.pos).StringCopy()
	lx.advance() // closing quote
	return Token{Kind: String, Text: text, Span: Span{Pos: start, End: lx.pos}}, nil
}

// scanNumber consumes a run of decimal digits. Precondition: isDigit(ch).
func (lx *lexer) scanNumber() Token {
	start := lx.pos
	lx.advanceWhile(isDigit)
	return Token{
		Kind: Number,
		Text: lx.input.Slice(start, lx.pos).StringCopy(),
		Span: Span{Pos: start, End: lx.pos},
	}
}

// scanLiteral consumes a bare word and matches it against the constants.
func (lx *lexer) scanLiteral() (Token, error) {
	start, ch := lx.pos, lx.ch
	lx.advanceWhile(isWordRune)
	word := lx.input.Slice(start, lx.pos)
	for _, c := range constants {
		if word.EqualString(c.text) {
			return Token{Kind: c.kind, Span: Span{Pos: start, End: lx.pos}}, nil
		}
	}
	if word.Len() == 0 {
		return Token{}, lx.failAt(start, "unexpected %q", ch)
	}
	return Token{}, lx.failAt(start, "unknown literal %q", word.StringCopy())
}

func (lx *lexer) failf(msg string, args ...any) error {
	return lx.failAt(lx.pos, msg, args...)
}

func (lx *lexer) failAt(pos int, msg string, args ...any) error {
	return &LexError{Offset: pos, Message: fmt.Sprintf(msg, args...)}
}

var constants = [...]struct {
	text string
	kind Kind
}{
	{"null", Null},
	{"false", False},
	{"true", True},
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNotQuote(ch rune) bool { return ch != '"' }
func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }

func isWordRune(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

var self = [...]Kind{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch rune) (Kind, bool) {
	i := strings.IndexRune("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
