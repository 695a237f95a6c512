// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/creachadair/jsonp"
	"github.com/creachadair/jsonp/ast"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	input, err := os.ReadFile("../testdata/input.json")
	if err != nil {
		t.Fatalf("Reading test input: %v", err)
	}

	start := time.Now()
	v, err := ast.Parse(string(input))
	elapsed := time.Since(start)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	t.Logf("Parsed %d bytes [%v elapsed]", len(input), elapsed)

	// If the testdata file changes, this may need to be updated.
	root, ok := v.(*ast.Object)
	if !ok {
		t.Fatalf("Root is %T, not object", v)
	}
	if diff := cmp.Diff([]string{"title", "count", "episodes"}, root.Keys()); diff != "" {
		t.Errorf("Root keys (-want, +got):\n%s", diff)
	}
	eps, ok := root.Find("episodes").Value.(*ast.Array)
	if !ok {
		t.Fatalf("Member value is %T, not array", root.Find("episodes").Value)
	} else if eps.Len() != 3 {
		t.Fatalf("Got %d episodes, want 3", eps.Len())
	}
	obj, ok := eps.At(2).(*ast.Object)
	if !ok {
		t.Fatalf("Array entry is %T, not object", eps.At(2))
	}
	check(t, obj, "summary", func(v ast.Value) {
		// Backslashes are not escapes.
		if s, _ := v.Text(); s != `C:\path\to\file` {
			t.Errorf("Summary: got %q", s)
		}
	})
	check(t, obj, "episode", func(v ast.Value) {
		if z, ok := v.Int(); !ok || z != 3 {
			t.Errorf("Episode: got %v, want 3", v)
		}
	})
	check(t, obj, "hasDetail", func(v ast.Value) {
		if b, ok := v.Bool(); !ok || !b {
			t.Errorf("HasDetail: got %v, want true", v)
		}
	})
	check(t, obj, "airdate", func(v ast.Value) {
		if !v.IsNull() {
			t.Errorf("Airdate: got %v, want null", v)
		}
	})
	check(t, obj, "extra", func(v *ast.Object) {
		want := ast.NewObject(
			ast.Field("nested", ast.NewArray(
				ast.NewArray(ast.Int(1), ast.Int(2)),
				ast.NewArray(ast.Int(3)),
			)),
			ast.Field("empty", ast.NewObject()),
		)
		if diff := cmp.Diff(want, v); diff != "" {
			t.Errorf("Extra (-want, +got):\n%s", diff)
		}
	})

	// Parsing the same text again yields an equal tree.
	w, err := ast.Parse(string(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !ast.Equal(v, w) {
		t.Error("Parsing the same input twice gave unequal results")
	}
}

func check[T ast.Node](t *testing.T, obj *ast.Object, key string, f func(T)) {
	t.Helper()
	if m := obj.Find(key); m == nil {
		t.Fatalf("Key %q not found", key)
	} else if tv, ok := m.Value.(T); !ok {
		var zero T
		t.Fatalf("Key %q value is %T, not %T", key, m.Value, zero)
	} else if f != nil {
		f(tv)
	}
}

func TestParseValues(t *testing.T) {
	tests := []struct {
		input string
		want  ast.Node
	}{
		{"null", ast.Null},
		{"true", ast.Bool(true)},
		{"false", ast.Bool(false)},
		{"0", ast.Int(0)},
		{" 14 ", ast.Int(14)},
		{"007", ast.Int(7)},
		{"9223372036854775807", ast.Int(9223372036854775807)},
		{`""`, ast.String("")},
		{`"a \t b"`, ast.String(`a \t b`)},
		{`"true"`, ast.String("true")},

		{"[]", ast.NewArray()},
		{"[ ]", ast.NewArray()},
		{"[1]", ast.NewArray(ast.Int(1))},
		{`[true, [null, true], false, []]`, ast.NewArray(
			ast.Bool(true),
			ast.NewArray(ast.Null, ast.Bool(true)),
			ast.Bool(false),
			ast.NewArray(),
		)},

		{"{}", ast.NewObject()},
		{`{"a": 1}`, ast.NewObject(ast.Field("a", ast.Int(1)))},
		{`{"a": {"b": {"c": []}}}`, ast.NewObject(
			ast.Field("a", ast.NewObject(
				ast.Field("b", ast.NewObject(
					ast.Field("c", ast.NewArray()),
				)),
			)),
		)},
		{`{ "name": "jsonp", "version": 14, "isDebug": true, "releaseUrl": null, "tags": ["json", "parser"] }`,
			ast.NewObject(
				ast.Field("name", ast.String("jsonp")),
				ast.Field("version", ast.Int(14)),
				ast.Field("isDebug", ast.Bool(true)),
				ast.Field("releaseUrl", ast.Null),
				ast.Field("tags", ast.NewArray(ast.String("json"), ast.String("parser"))),
			)},

		// Duplicate keys: the last value wins, at the position of the first.
		{`{"a": 1, "b": 2, "a": 3}`, ast.NewObject(
			ast.Field("a", ast.Int(3)),
			ast.Field("b", ast.Int(2)),
		)},

		// Commas are separators, but their placement is not checked.
		{"[1,]", ast.NewArray(ast.Int(1))},
		{"[,1]", ast.NewArray(ast.Int(1))},
		{"[1,,2]", ast.NewArray(ast.Int(1), ast.Int(2))},
		{"[1 2]", ast.NewArray(ast.Int(1), ast.Int(2))},
		{"[,]", ast.NewArray()},
		{`{,"a":1,,"b":2,}`, ast.NewObject(
			ast.Field("a", ast.Int(1)),
			ast.Field("b", ast.Int(2)),
		)},
		{`{"a":1 "b":2}`, ast.NewObject(
			ast.Field("a", ast.Int(1)),
			ast.Field("b", ast.Int(2)),
		)},

		// Tokens after the first complete value are ignored.
		{"1 2", ast.Int(1)},
		{"{} {}", ast.NewObject()},
		{"[]]", ast.NewArray()},
		{`["a"] ]]] {`, ast.NewArray(ast.String("a"))},
	}
	for _, test := range tests {
		got, err := ast.Parse(test.input)
		if err != nil {
			t.Errorf("Parse %#q: unexpected error: %v", test.input, err)
			continue
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Parse %#q: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseKeyOrder(t *testing.T) {
	a, err := ast.Parse(`{"x": 1, "y": 2}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	b, err := ast.Parse(`{"y": 2, "x": 1}`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if ast.Equal(a, b) {
		t.Errorf("Objects with different key order should not be equal: %v, %v", a, b)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input  string
		offset int
		text   string // expected substring of the message
	}{
		{"", 0, "empty input"},
		{" \n\t ", 0, "empty input"},

		{"[", 1, "unexpected end of input"},
		{"[1, 2", 5, "unexpected end of input"},
		{"[[]", 3, "unexpected end of input"},
		{`{"a":`, 5, "unexpected end of input"},
		{"{", 1, "unexpected end of input for key"},
		{`{"a": 1,`, 8, "unexpected end of input for key"},
		{`{"a"`, 4, "unexpected end of input for colon"},

		{"]", 0, "unexpected token Token(])"},
		{"}", 0, "unexpected token Token(})"},
		{":", 0, "unexpected token Token(:)"},
		{",", 0, "unexpected token Token(,)"},
		{"[1:2]", 2, "unexpected token Token(:)"},
		{"[}", 1, "unexpected token Token(})"},
		{`{"a" 1}`, 5, "unexpected token for colon Token(number, 1)"},
		{`{"a", 1}`, 4, "unexpected token for colon Token(,)"},
		{`{1: 2}`, 1, "unexpected token for key Token(number, 1)"},
		{`{null: 2}`, 1, "unexpected token for key Token(null)"},
		{`{"a": }`, 6, "unexpected token Token(})"},
		{`{]`, 1, "unexpected token for key Token(])"},

		{"99999999999999999999", 0, "invalid number"},
	}
	for _, test := range tests {
		v, err := ast.Parse(test.input)
		var perr *jsonp.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Parse %#q: got %v, %v; want *ParseError", test.input, v, err)
			continue
		}
		if v != nil {
			t.Errorf("Parse %#q: got value %v with error", test.input, v)
		}
		if perr.Offset != test.offset {
			t.Errorf("Parse %#q: error offset is %d, want %d", test.input, perr.Offset, test.offset)
		}
		if !strings.Contains(perr.Error(), test.text) {
			t.Errorf("Parse %#q: error %q does not mention %q", test.input, perr.Error(), test.text)
		}
	}
}

func TestParseLexErrors(t *testing.T) {
	for _, input := range []string{`"abc`, "nul", "nulll", `{"a": -1}`, "[1.5]"} {
		v, err := ast.Parse(input)
		var lerr *jsonp.LexError
		if !errors.As(err, &lerr) {
			t.Errorf("Parse %#q: got %v, %v; want *LexError", input, v, err)
		} else {
			t.Logf("Parse %#q: got expected error: %v", input, err)
		}
	}
}

func TestParseDeep(t *testing.T) {
	const depth = 10000
	input := strings.Repeat("[", depth) + strings.Repeat("]", depth)
	v, err := ast.Parse(input)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	n := 0
	for {
		a, ok := v.(*ast.Array)
		if !ok {
			t.Fatalf("At depth %d: got %T, want array", n, v)
		}
		n++
		if a.Len() == 0 {
			break
		}
		v = a.At(0)
	}
	if n != depth {
		t.Errorf("Got depth %d, want %d", n, depth)
	}
}

func TestParseComments(t *testing.T) {
	input, err := os.ReadFile("../testdata/commented.hujson")
	if err != nil {
		t.Fatalf("Reading test input: %v", err)
	}

	t.Run("Disabled", func(t *testing.T) {
		v, err := ast.Parse(string(input))
		var lerr *jsonp.LexError
		if !errors.As(err, &lerr) {
			t.Fatalf("Parse: got %v, %v; want *LexError", v, err)
		}
		t.Logf("Got expected error: %v", err)
	})

	t.Run("Enabled", func(t *testing.T) {
		var p ast.Parser
		p.AllowComments(true)
		got, err := p.Parse(string(input))
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		want := ast.NewObject(
			ast.Field("name", ast.String("jsonp")),
			ast.Field("version", ast.Int(14)),
			ast.Field("tags", ast.NewArray(ast.String("json"), ast.String("parser"))),
		)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Parse (-want, +got):\n%s", diff)
		}
	})

	t.Run("Offsets", func(t *testing.T) {
		var p ast.Parser
		p.AllowComments(true)

		// Comments are blanked, so offsets refer to the original text.
		_, err := p.Parse("/* xx */ [-1]")
		var lerr *jsonp.LexError
		if !errors.As(err, &lerr) {
			t.Fatalf("Parse: got %v, want *LexError", err)
		} else if lerr.Offset != 10 {
			t.Errorf("Error offset is %d, want 10", lerr.Offset)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		var p ast.Parser
		p.AllowComments(true)
		_, err := p.Parse("  ")
		var perr *jsonp.ParseError
		if !errors.As(err, &perr) || !strings.Contains(perr.Message, "empty input") {
			t.Errorf("Parse: got %v, want empty input error", err)
		}
	})

	t.Run("OnlyComments", func(t *testing.T) {
		var p ast.Parser
		p.AllowComments(true)
		for _, input := range []string{"/* x */", "// line\n", " /* a */ // b"} {
			_, err := p.Parse(input)
			var perr *jsonp.ParseError
			if !errors.As(err, &perr) || perr.Offset != 0 || perr.Message != "empty input" {
				t.Errorf("Parse %#q: got %v, want empty input error", input, err)
			}
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		var p ast.Parser
		p.AllowComments(true)
		_, err := p.Parse("[1 /* unterminated")
		var perr *jsonp.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("Parse: got %v, want *ParseError", err)
		} else if perr.Unwrap() == nil {
			t.Errorf("Parse: error %v does not wrap a cause", err)
		}
		t.Logf("Got expected error: %v", err)
	})
}
