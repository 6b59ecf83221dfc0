package sisl

import "fmt"

// Grouping is the AST's structural node: an ordered sequence of
// elements inside one {...} block. Element order is significant and
// preserved; duplicate names are legal here and resolved by the codec
// (last occurrence wins).
type Grouping struct {
	Elements []Element
}

// Element is one "name: !type value" entry inside a Grouping.
type Element struct {
	Name  string
	Type  string
	Value ElementValue
}

// ElementValue is the value of an element: either a raw (still escaped)
// string leaf or a nested Grouping. Group is nil for string leaves.
// Each nested Grouping is exclusively owned by its Element; the grammar
// cannot produce cycles.
type ElementValue struct {
	Str   string
	Group *Grouping
}

// IsGroup reports whether the value is a nested grouping.
func (v ElementValue) IsGroup() bool {
	return v.Group != nil
}

// Parser is a recursive-descent consumer of the Lexer's token stream.
//
// Grammar:
//
//	Grouping := '{' [ Element (',' Element)* [','] ] '}'
//	Element  := NAME ':' '!' NAME Value
//	Value    := STRING | Grouping
type Parser struct {
	lexer *Lexer
}

// NewParser creates a parser over the given input.
func NewParser(input string) *Parser {
	return &Parser{lexer: NewLexer(input)}
}

// Parse parses exactly one top-level grouping followed by end of input.
// Any trailing token is an error. Parsing stops at the first failure;
// there is no error recovery.
func Parse(input string) (*Grouping, error) {
	return NewParser(input).Parse()
}

// Parse consumes the entire input as a single grouping.
func (p *Parser) Parse() (*Grouping, error) {
	grouping, err := p.parseGrouping()
	if err != nil {
		return nil, err
	}

	tok, err := p.lexer.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Type != TokenEOF {
		return nil, &ParseError{
			Message: fmt.Sprintf("unexpected token after grouping: %q", tok.Value),
			Pos:     tok.Pos,
		}
	}

	return grouping, nil
}

func (p *Parser) parseGrouping() (*Grouping, error) {
	if _, err := p.expect(TokenLBrace, "'{'"); err != nil {
		return nil, err
	}

	grouping := &Grouping{}

	// Empty grouping
	tok, err := p.lexer.Peek()
	if err != nil {
		return nil, err
	}
	if tok.Type == TokenRBrace {
		p.lexer.Next()
		return grouping, nil
	}

	elem, err := p.parseElement()
	if err != nil {
		return nil, err
	}
	grouping.Elements = append(grouping.Elements, elem)

	for {
		tok, err := p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Type != TokenComma {
			break
		}
		p.lexer.Next() // eat comma

		// A single trailing comma before '}' is permitted.
		tok, err = p.lexer.Peek()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenRBrace {
			break
		}

		elem, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		grouping.Elements = append(grouping.Elements, elem)
	}

	if _, err := p.expect(TokenRBrace, "'}'"); err != nil {
		return nil, err
	}
	return grouping, nil
}

func (p *Parser) parseElement() (Element, error) {
	var elem Element

	nameTok, err := p.expect(TokenName, "element name")
	if err != nil {
		return elem, err
	}
	elem.Name = nameTok.Value

	if _, err := p.expect(TokenColon, "':'"); err != nil {
		return elem, err
	}
	if _, err := p.expect(TokenBang, "'!'"); err != nil {
		return elem, err
	}

	typeTok, err := p.expect(TokenName, "type name")
	if err != nil {
		return elem, err
	}
	elem.Type = typeTok.Value

	elem.Value, err = p.parseValue()
	return elem, err
}

func (p *Parser) parseValue() (ElementValue, error) {
	tok, err := p.lexer.Peek()
	if err != nil {
		return ElementValue{}, err
	}

	switch tok.Type {
	case TokenString:
		p.lexer.Next()
		return ElementValue{Str: tok.Value}, nil
	case TokenLBrace:
		group, err := p.parseGrouping()
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Group: group}, nil
	default:
		return ElementValue{}, &ParseError{
			Message: fmt.Sprintf("expected string or grouping, got %q", tok.Value),
			Pos:     tok.Pos,
		}
	}
}

// expect consumes the next token, requiring it to be of the given type.
func (p *Parser) expect(typ TokenType, what string) (Token, error) {
	tok, err := p.lexer.Next()
	if err != nil {
		return tok, err
	}
	if tok.Type != typ {
		return tok, &ParseError{
			Message: fmt.Sprintf("expected %s, got %q", what, tok.Value),
			Pos:     tok.Pos,
		}
	}
	return tok, nil
}
