package sisl

import (
	"errors"
	"testing"
)

// ============================================================
// Encode Tests
// ============================================================

func TestEncode_Canonical(t *testing.T) {
	tests := []struct {
		name     string
		value    *Value
		expected string
	}{
		{
			"empty object",
			Obj(),
			"{}",
		},
		{
			"scalars",
			Obj(
				Entry("name", Str("Alice")),
				Entry("age", Int(30)),
				Entry("tags", List(Str("a"), Str("b"))),
			),
			`{name: !str "Alice", age: !int "30", tags: !list {_0: !str "a", _1: !str "b"}}`,
		},
		{
			"all types",
			Obj(
				Entry("n", Null()),
				Entry("b", Bool(true)),
				Entry("f", Bool(false)),
				Entry("i", Int(-7)),
				Entry("x", Float(1.5)),
				Entry("s", Str("hi")),
			),
			`{n: !null "", b: !bool "true", f: !bool "false", i: !int "-7", x: !float "1.5", s: !str "hi"}`,
		},
		{
			"nested object",
			Obj(Entry("o", Obj(Entry("k", Int(1))))),
			`{o: !obj {k: !int "1"}}`,
		},
		{
			"empty containers",
			Obj(Entry("o", Obj()), Entry("l", List())),
			`{o: !obj {}, l: !list {}}`,
		},
		{
			"string escaping",
			Obj(Entry("s", Str("a\nb\"c"))),
			`{s: !str "a\nb\"c"}`,
		},
		{
			"null in list",
			Obj(Entry("l", List(Int(1), Null(), Int(3)))),
			`{l: !list {_0: !int "1", _1: !null "", _2: !int "3"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.value)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s\ngot      %s", tt.expected, got)
			}
		})
	}
}

func TestEncode_FloatFormat(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{1.5, "1.5"},
		{3.0, "3.0"},
		{-0.25, "-0.25"},
		{1e21, "1e+21"},
		{0, "0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := Encode(Obj(Entry("f", Float(tt.value))))
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			want := `{f: !float "` + tt.expected + `"}`
			if got != want {
				t.Errorf("Expected %s, got %s", want, got)
			}
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	var codecErr *CodecError

	if _, err := Encode(Int(1)); !errors.As(err, &codecErr) {
		t.Errorf("Expected CodecError for non-object root, got %v", err)
	}

	nan := 0.0
	nan = nan / nan
	if _, err := Encode(Obj(Entry("f", Float(nan)))); !errors.As(err, &codecErr) {
		t.Errorf("Expected CodecError for NaN, got %v", err)
	}
}

// ============================================================
// Decode Tests
// ============================================================

func mustLoads(t *testing.T, text string) *Value {
	t.Helper()
	v, err := Loads(text)
	if err != nil {
		t.Fatalf("Loads(%q) failed: %v", text, err)
	}
	return v
}

func TestLoads_Scalars(t *testing.T) {
	v := mustLoads(t, `{n: !null "", b: !bool "true", i: !int "-42", f: !float "2.5", s: !str "hi"}`)

	if !v.Get("n").IsNull() {
		t.Errorf("Expected null")
	}
	if b, _ := v.Get("b").AsBool(); !b {
		t.Errorf("Expected true")
	}
	if i, _ := v.Get("i").AsInt(); i != -42 {
		t.Errorf("Expected -42, got %d", i)
	}
	if f, _ := v.Get("f").AsFloat(); f != 2.5 {
		t.Errorf("Expected 2.5, got %v", f)
	}
	if s, _ := v.Get("s").AsStr(); s != "hi" {
		t.Errorf("Expected 'hi', got %q", s)
	}
}

func TestLoads_DuplicateKeysLastWins(t *testing.T) {
	v := mustLoads(t, `{a: !int "1", b: !int "2", a: !int "3"}`)

	if v.Len() != 2 {
		t.Fatalf("Expected 2 entries, got %d", v.Len())
	}
	entries, _ := v.AsObj()
	// Last value wins but the key keeps its first position.
	if entries[0].Key != "a" || entries[1].Key != "b" {
		t.Errorf("Unexpected key order: %q, %q", entries[0].Key, entries[1].Key)
	}
	if i, _ := v.Get("a").AsInt(); i != 3 {
		t.Errorf("Expected last value 3, got %d", i)
	}
}

func TestLoads_SparseList(t *testing.T) {
	v := mustLoads(t, `{l: !list {_2: !str "c", _0: !str "a"}}`)

	list, err := v.Get("l").AsList()
	if err != nil {
		t.Fatalf("AsList failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 elements, got %d", len(list))
	}
	if s, _ := list[0].AsStr(); s != "a" {
		t.Errorf("Expected 'a' at 0, got %q", s)
	}
	if !list[1].IsNull() {
		t.Errorf("Expected null gap at 1")
	}
	if s, _ := list[2].AsStr(); s != "c" {
		t.Errorf("Expected 'c' at 2, got %q", s)
	}
}

func TestLoads_ListIndexLeadingZeros(t *testing.T) {
	v := mustLoads(t, `{l: !list {_00: !int "1", _01: !int "2"}}`)
	if v.Get("l").Len() != 2 {
		t.Errorf("Expected 2 elements, got %d", v.Get("l").Len())
	}
}

func TestLoads_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"null with payload", `{n: !null "x"}`},
		{"bad bool", `{b: !bool "yes"}`},
		{"bad int", `{i: !int "12x"}`},
		{"int with trailing space", `{i: !int "12 "}`},
		{"empty int", `{i: !int ""}`},
		{"bad float", `{f: !float "abc"}`},
		{"unknown scalar type", `{x: !wat "v"}`},
		{"unknown grouping type", `{x: !wat {}}`},
		{"scalar type with grouping", `{x: !int {}}`},
		{"grouping type with string", `{x: !obj "v"}`},
		{"list name without underscore", `{l: !list {a: !int "1"}}`},
		{"list name not numeric", `{l: !list {_a: !int "1"}}`},
		{"list index too large", `{l: !list {_99999999: !int "1"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Loads(tt.input)
			if err == nil {
				t.Fatalf("Expected error for %q", tt.input)
			}
			var codecErr *CodecError
			if !errors.As(err, &codecErr) {
				t.Errorf("Expected CodecError, got %T: %v", err, err)
			}
		})
	}
}

// ============================================================
// Round Trip Tests
// ============================================================

func TestRoundTrip(t *testing.T) {
	values := []*Value{
		Obj(),
		Obj(Entry("a", Int(1))),
		Obj(
			Entry("name", Str("Alice")),
			Entry("age", Int(30)),
			Entry("tags", List(Str("a"), Str("b"))),
		),
		Obj(
			Entry("nested", Obj(
				Entry("deep", Obj(
					Entry("list", List(Null(), Bool(true), Float(0.5))),
				)),
			)),
		),
		Obj(Entry("s", Str("weird \x00 bytes \xff and \"quotes\"\n"))),
	}

	for _, v := range values {
		text, err := Dumps(v)
		if err != nil {
			t.Fatalf("Dumps failed: %v", err)
		}
		got, err := Loads(text)
		if err != nil {
			t.Fatalf("Loads failed for %s: %v", text, err)
		}
		if !got.Equal(v) {
			t.Errorf("Round trip mismatch for %s", text)
		}
	}
}

func TestRoundTrip_Reencode(t *testing.T) {
	// Decoding then re-encoding normalizes whitespace and list names.
	input := "{ a :\n!int \"1\" , l : !list { _3 : !str \"x\" } , }"
	v := mustLoads(t, input)
	text, err := Dumps(v)
	if err != nil {
		t.Fatalf("Dumps failed: %v", err)
	}
	want := `{a: !int "1", l: !list {_0: !null "", _1: !null "", _2: !null "", _3: !str "x"}}`
	if text != want {
		t.Errorf("Expected %s\ngot      %s", want, text)
	}
}
