package sisl

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType uint8

const (
	TokenEOF TokenType = iota

	TokenLBrace // {
	TokenRBrace // }
	TokenColon  // :
	TokenComma  // ,
	TokenBang   // !
	TokenString // "quoted string", escapes kept raw
	TokenName   // element or type name
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenColon:
		return ":"
	case TokenComma:
		return ","
	case TokenBang:
		return "!"
	case TokenString:
		return "STRING"
	case TokenName:
		return "NAME"
	default:
		return "UNKNOWN"
	}
}

// Token represents a lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Value == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}

// Position represents a 1-based source location.
type Position struct {
	Line   int
	Column int
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Lexer tokenizes SISL text one token at a time, with a single token of
// lookahead. Each Lexer owns only its own cursor and peek cache, so
// independent inputs can be scanned by independent instances.
type Lexer struct {
	input  string
	pos    int
	line   int // 1-based
	col    int // 1-based
	peeked *Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
}

// Next returns the next token and advances past it.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked == nil {
		tok, err := l.scan()
		if err != nil {
			return tok, err
		}
		l.peeked = &tok
	}
	return *l.peeked, nil
}

func (l *Lexer) scan() (Token, error) {
	l.skipWhitespace()

	if l.atEnd() {
		return Token{Type: TokenEOF, Pos: l.currentPos()}, nil
	}

	startPos := l.currentPos()
	ch := l.current()

	switch ch {
	case '{':
		l.advance()
		return Token{Type: TokenLBrace, Value: "{", Pos: startPos}, nil
	case '}':
		l.advance()
		return Token{Type: TokenRBrace, Value: "}", Pos: startPos}, nil
	case ':':
		l.advance()
		return Token{Type: TokenColon, Value: ":", Pos: startPos}, nil
	case ',':
		l.advance()
		return Token{Type: TokenComma, Value: ",", Pos: startPos}, nil
	case '!':
		l.advance()
		return Token{Type: TokenBang, Value: "!", Pos: startPos}, nil
	case '"':
		return l.scanString()
	}

	if isNameStart(ch) {
		return l.scanName(), nil
	}

	return Token{}, &LexError{
		Message: fmt.Sprintf("unexpected character %q", ch),
		Pos:     startPos,
	}
}

// scanString scans a quoted string. Content is copied verbatim: escape
// sequences are preserved raw (backslash, escape letter, and any
// fixed-width hex payload) for the escape codec to process later.
func (l *Lexer) scanString() (Token, error) {
	startPos := l.currentPos()
	l.advance() // consume opening "

	var value []byte
	for !l.atEnd() && l.current() != '"' {
		if l.current() == '\\' {
			l.advance()
			if l.atEnd() {
				return Token{}, &LexError{
					Message: "unexpected end of input in escape sequence",
					Pos:     l.currentPos(),
				}
			}
			esc := l.current()
			value = append(value, '\\', esc)

			// Hex escapes carry a fixed-width payload: copy it raw
			// without interpreting, stopping early at the closing
			// quote so a short payload still surfaces as an escape
			// error rather than an unterminated string.
			var width int
			switch esc {
			case 'x':
				width = 2
			case 'u':
				width = 4
			case 'U':
				width = 8
			}
			if width > 0 {
				l.advance()
				for i := 0; i < width && !l.atEnd() && l.current() != '"'; i++ {
					value = append(value, l.current())
					l.advance()
				}
				continue
			}
		} else {
			value = append(value, l.current())
		}
		l.advance()
	}

	if l.atEnd() {
		return Token{}, &LexError{Message: "unterminated string", Pos: startPos}
	}

	l.advance() // consume closing "

	return Token{Type: TokenString, Value: string(value), Pos: startPos}, nil
}

func (l *Lexer) scanName() Token {
	startPos := l.currentPos()
	start := l.pos

	for !l.atEnd() && isNameChar(l.current()) {
		l.advance()
	}

	return Token{Type: TokenName, Value: l.input[start:l.pos], Pos: startPos}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isWhitespace(l.current()) {
		l.advance()
	}
}

// Helper methods

func (l *Lexer) current() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col}
}

// Character classification

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isNameStart(ch byte) bool {
	return ch == '_' || (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

func isNameChar(ch byte) bool {
	return isNameStart(ch) || ch == '-' || ch == '.' || (ch >= '0' && ch <= '9')
}
