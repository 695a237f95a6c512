// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonp

import "fmt"

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid token
	Null                // constant: null
	False               // constant: false
	True                // constant: true
	LBrace              // left brace "{"
	RBrace              // right brace "}"
	LSquare             // left square bracket "["
	RSquare             // right square bracket "]"
	Colon               // colon ":"
	Comma               // comma ","
	String              // quoted string
	Number              // unsigned integer
)

var kindStr = [...]string{
	Invalid: "invalid token",
	Null:    "null",
	False:   "false",
	True:    "true",
	LBrace:  "{",
	RBrace:  "}",
	LSquare: "[",
	RSquare: "]",
	Colon:   ":",
	Comma:   ",",
	String:  "string",
	Number:  "number",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// hasText reports whether tokens of kind k carry a text payload.
func (k Kind) hasText() bool { return k == String || k == Number }

// A Token is a single lexical element of the input.
type Token struct {
	Kind Kind

	// Text is the payload of a String or Number token: the contents of the
	// string without its quotation marks, or the digits of the number.
	// It is empty for all other kinds.
	Text string

	// Span is the location of the token in the input. It does not
	// participate in equality.
	Span Span
}

// Equal reports whether t and u have the same kind and payload.
func (t Token) Equal(u Token) bool { return t.Kind == u.Kind && t.Text == u.Text }

func (t Token) String() string {
	switch t.Kind {
	case String:
		return fmt.Sprintf("Token(string, %q)", t.Text)
	case Number:
		return fmt.Sprintf("Token(number, %s)", t.Text)
	default:
		return fmt.Sprintf("Token(%s)", t.Kind)
	}
}

// Tok constructs a token of the given kind with no span. Text is ignored for
// kinds that do not carry a payload.
func Tok(kind Kind, text string) Token {
	if !kind.hasText() {
		text = ""
	}
	return Token{Kind: kind, Text: text}
}
