// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"strings"

	"github.com/creachadair/jsonp"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// Parse parses a single JSON value from input. It is shorthand for calling
// Parse on a zero Parser.
func Parse(input string) (Node, error) { return new(Parser).Parse(input) }

// A Parser parses JSON text into a Node tree. The zero value is ready for use
// and accepts only the plain grammar described by package jsonp. A Parser is
// safe for concurrent use once its options are set.
type Parser struct {
	comments bool // allow comments and trailing commas
}

// AllowComments configures the parser to accept (true) or reject (false)
// C++ style comments (/* ... */ and // ...) in the input. Comments are a
// non-standard extension of JSON.
//
// When comments are enabled, the input must also be well-formed HuJSON, which
// is stricter than the plain grammar in some respects: for example, it does
// not permit repeated commas.
func (p *Parser) AllowComments(ok bool) { p.comments = ok }

// Parse parses a single JSON value from the front of input. Any tokens that
// follow the first complete value are ignored. Lexical errors are reported
// with concrete type *jsonp.LexError, and all other errors with concrete type
// *jsonp.ParseError. On error, no partial value is returned.
func (p *Parser) Parse(input string) (_ Node, err error) {
	if p.comments && strings.Trim(input, " \t\r\n") != "" {
		std, err := standardize(input)
		if err != nil {
			return nil, err
		}
		input = std
	}

	toks, err := jsonp.Lex(input)
	if err != nil {
		return nil, err
	} else if len(toks) == 0 {
		return nil, &jsonp.ParseError{Offset: 0, Message: "empty input"}
	}

	ps := &parseState{toks: toks, end: len(input)}
	defer ps.recoverParseError(&err)

	return ps.parseValue(), nil
}

// standardize blanks the comments and trailing commas of input, preserving
// the offsets of everything else. Input consisting only of comments
// standardizes to an empty string.
func standardize(input string) (string, error) {
	std, err := hujson.Standardize([]byte(input))
	if err == nil {
		return string(std), nil
	}

	// HuJSON requires a value. Check whether the input was only comments by
	// wrapping it in an array; if that array is empty, there was no value.
	if w, werr := hujson.Parse([]byte("[" + input + "\n]")); werr == nil {
		if arr, ok := w.Value.(*hujson.Array); ok && len(arr.Elements) == 0 {
			return "", nil
		}
	}
	return "", &jsonp.ParseError{Offset: -1, Message: err.Error(), Err: err}
}

// A parseState is the worklist of a single call to Parse. Tokens are consumed
// from the front by advancing pos.
type parseState struct {
	toks []jsonp.Token
	pos  int // offset of the next unconsumed token
	end  int // length of the input, used as the offset of end-of-input errors
}

func (ps *parseState) recoverParseError(errp *error) {
	if perr := recover(); perr != nil {
		if err, ok := perr.(*jsonp.ParseError); ok {
			*errp = err
			return
		}
		panic(perr)
	}
}

// peek returns the next token without consuming it. It reports false if no
// tokens remain.
func (ps *parseState) peek() (jsonp.Token, bool) {
	if ps.pos >= len(ps.toks) {
		return jsonp.Token{}, false
	}
	return ps.toks[ps.pos], true
}

// next consumes and returns the next token. It reports false if no tokens
// remain.
func (ps *parseState) next() (jsonp.Token, bool) {
	tok, ok := ps.peek()
	if ok {
		ps.pos++
	}
	return tok, ok
}

// parseValue consumes a single value of any type.
func (ps *parseState) parseValue() Node {
	tok, ok := ps.next()
	if !ok {
		panic(ps.endOfInput("unexpected end of input"))
	}
	switch tok.Kind {
	case jsonp.Null:
		return Null
	case jsonp.False:
		return Bool(false)
	case jsonp.True:
		return Bool(true)
	case jsonp.String:
		return String(tok.Text)
	case jsonp.Number:
		z, err := mem.ParseInt(mem.S(tok.Text), 10, 64)
		if err != nil {
			panic(ps.syntaxError(tok.Span.Pos, err, "invalid number %s", tok.Text))
		}
		return Int(z)
	case jsonp.LBrace:
		return ps.parseObject()
	case jsonp.LSquare:
		return ps.parseArray()
	case jsonp.RBrace, jsonp.RSquare, jsonp.Colon, jsonp.Comma:
		panic(ps.syntaxError(tok.Span.Pos, nil, "unexpected token %v", tok))
	default:
		panic(ps.syntaxError(tok.Span.Pos, nil, "unknown token %v", tok))
	}
}

// parseArray consumes the elements of an array through its closing bracket.
// Commas are skipped wherever they occur, so "[,1,,2,]" is accepted.
// Precondition: the opening bracket has been consumed.
func (ps *parseState) parseArray() *Array {
	arr := new(Array)
	for {
		tok, ok := ps.peek()
		if !ok {
			panic(ps.endOfInput("unexpected end of input"))
		}
		switch tok.Kind {
		case jsonp.RSquare:
			ps.pos++
			return arr
		case jsonp.Comma:
			ps.pos++
		default:
			arr.Append(ps.parseValue())
		}
	}
}

// parseObject consumes the members of an object through its closing brace.
// Commas between members are skipped, as for arrays. A repeated key replaces
// the value of the earlier one.
// Precondition: the opening brace has been consumed.
func (ps *parseState) parseObject() *Object {
	obj := new(Object)
	for {
		key, ok := ps.next()
		if !ok {
			panic(ps.endOfInput("unexpected end of input for key"))
		}
		switch key.Kind {
		case jsonp.RBrace:
			return obj
		case jsonp.Comma:
			continue
		case jsonp.String:
			// OK, handled below
		default:
			panic(ps.syntaxError(key.Span.Pos, nil, "unexpected token for key %v", key))
		}

		colon, ok := ps.next()
		if !ok {
			panic(ps.endOfInput("unexpected end of input for colon"))
		} else if colon.Kind != jsonp.Colon {
			panic(ps.syntaxError(colon.Span.Pos, nil, "unexpected token for colon %v", colon))
		}
		obj.Set(key.Text, ps.parseValue())
	}
}

func (ps *parseState) endOfInput(msg string) *jsonp.ParseError {
	return ps.syntaxError(ps.end, nil, "%s", msg)
}

func (ps *parseState) syntaxError(pos int, err error, msg string, args ...any) *jsonp.ParseError {
	return &jsonp.ParseError{Offset: pos, Message: fmt.Sprintf(msg, args...), Err: err}
}
