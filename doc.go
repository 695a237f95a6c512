// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jsonp implements the lexical stage of a small JSON parser.
//
// # Lexing
//
// The Lex function splits a complete input into a slice of tokens:
//
//	toks, err := jsonp.Lex(`{"name": "value"}`)
//	if err != nil {
//	   log.Fatalf("Lex failed: %v", err)
//	}
//	for _, tok := range toks {
//	   log.Printf("Next token: %v", tok)
//	}
//
// Lex reports an error of concrete type *LexError for an unterminated string
// or an unrecognized bare word. An empty input is valid and yields no tokens.
//
// # Grammar
//
// The grammar accepted is a deliberately narrow subset of JSON:
//
//	Token   | Syntax
//	------- | ---------------------------------------------
//	null    | null
//	false   | false
//	true    | true
//	{ } [ ] | punctuation
//	, :     | punctuation
//	string  | "..." with no escape processing
//	number  | one or more decimal digits, no sign or fraction
//
// Whitespace (space, tab, CR, LF) separates tokens and is otherwise ignored.
//
// # Parsing
//
// The ast package consumes the output of Lex and builds a tree of values.
// Grammatical errors are reported with concrete type *ParseError.
package jsonp
