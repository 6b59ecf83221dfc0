package sisl

import (
	"errors"
	"testing"
)

// drainTokens runs the lexer to EOF and returns every token including
// the final EOF token.
func drainTokens(t *testing.T, input string) []Token {
	t.Helper()
	lexer := NewLexer(input)
	var tokens []Token
	for {
		tok, err := lexer.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// ============================================================
// Lexer Tests
// ============================================================

func TestLexer_BasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenType
	}{
		{"{}", []TokenType{TokenLBrace, TokenRBrace, TokenEOF}},
		{":", []TokenType{TokenColon, TokenEOF}},
		{",", []TokenType{TokenComma, TokenEOF}},
		{"!", []TokenType{TokenBang, TokenEOF}},
		{`"hello"`, []TokenType{TokenString, TokenEOF}},
		{"name", []TokenType{TokenName, TokenEOF}},
		{"_0", []TokenType{TokenName, TokenEOF}},
		{"a-b.c9", []TokenType{TokenName, TokenEOF}},
		{"", []TokenType{TokenEOF}},
		{"  \t\r\n ", []TokenType{TokenEOF}},
		{`{a: !int "1"}`, []TokenType{
			TokenLBrace, TokenName, TokenColon, TokenBang,
			TokenName, TokenString, TokenRBrace, TokenEOF,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := drainTokens(t, tt.input)
			if len(tokens) != len(tt.expected) {
				t.Fatalf("Expected %d tokens, got %d", len(tt.expected), len(tokens))
			}
			for i, tok := range tokens {
				if tok.Type != tt.expected[i] {
					t.Errorf("Token %d: expected %s, got %s", i, tt.expected[i], tok.Type)
				}
			}
		})
	}
}

func TestLexer_StringKeepsEscapesRaw(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"plain"`, "plain"},
		{`"a\nb"`, `a\nb`},
		{`"a\"b"`, `a\"b`},
		{`"a\\b"`, `a\\b`},
		{`"\x41"`, `\x41`},
		{`"é"`, `é`},
		{`"\U0001f600"`, `\U0001f600`},
		{`""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := drainTokens(t, tt.input)
			if tokens[0].Type != TokenString {
				t.Fatalf("Expected STRING, got %s", tokens[0].Type)
			}
			if tokens[0].Value != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tokens[0].Value)
			}
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	lexer := NewLexer("{\n  a: !int \"1\"\n}")

	expected := []struct {
		typ  TokenType
		line int
		col  int
	}{
		{TokenLBrace, 1, 1},
		{TokenName, 2, 3},
		{TokenColon, 2, 4},
		{TokenBang, 2, 6},
		{TokenName, 2, 7},
		{TokenString, 2, 11},
		{TokenRBrace, 3, 1},
		{TokenEOF, 3, 2},
	}

	for i, want := range expected {
		tok, err := lexer.Next()
		if err != nil {
			t.Fatalf("Next failed at %d: %v", i, err)
		}
		if tok.Type != want.typ {
			t.Fatalf("Token %d: expected %s, got %s", i, want.typ, tok.Type)
		}
		if tok.Pos.Line != want.line || tok.Pos.Column != want.col {
			t.Errorf("Token %d (%s): expected pos %d:%d, got %s",
				i, want.typ, want.line, want.col, tok.Pos)
		}
	}
}

func TestLexer_PeekDoesNotConsume(t *testing.T) {
	lexer := NewLexer("{}")

	p1, err := lexer.Peek()
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	p2, err := lexer.Peek()
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("Repeated Peek returned different tokens: %v vs %v", p1, p2)
	}

	n, err := lexer.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if n != p1 {
		t.Fatalf("Next after Peek returned %v, expected %v", n, p1)
	}
	if n.Type != TokenLBrace {
		t.Errorf("Expected {, got %s", n.Type)
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated string", `"abc`},
		{"dangling backslash", `"abc\`},
		{"unexpected character", "@"},
		{"unexpected character hash", "#name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexer := NewLexer(tt.input)
			for i := 0; i < 4; i++ {
				tok, err := lexer.Next()
				if err != nil {
					var lexErr *LexError
					if !errors.As(err, &lexErr) {
						t.Fatalf("Expected LexError, got %T: %v", err, err)
					}
					return
				}
				if tok.Type == TokenEOF {
					break
				}
			}
			t.Fatalf("Expected lex error for %q", tt.input)
		})
	}
}

func TestLexer_UnterminatedStringPosition(t *testing.T) {
	lexer := NewLexer("  \"abc")
	_, err := lexer.Next()
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("Expected LexError, got %v", err)
	}
	if lexErr.Pos.Line != 1 || lexErr.Pos.Column != 3 {
		t.Errorf("Expected error at 1:3, got %s", lexErr.Pos)
	}
}
