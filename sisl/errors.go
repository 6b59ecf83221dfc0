package sisl

import "fmt"

// LexError reports a tokenization failure with its source location.
type LexError struct {
	Message string
	Pos     Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// ParseError reports a grammar violation with its source location.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos)
}

// EscapeError reports an invalid escape sequence inside a string value.
type EscapeError struct {
	Message string
}

func (e *EscapeError) Error() string {
	return e.Message
}

// CodecError reports a failure mapping between the AST and the value
// model: unknown type tags, malformed scalar literals, invalid list
// element names, or an unencodable value.
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}

// MergeError reports a kind conflict between two fragments at the same
// path.
type MergeError struct {
	Message string
}

func (e *MergeError) Error() string {
	return e.Message
}

// SplitError reports that no fragment packing fits the requested byte
// budget. MinRequired is the smallest budget that would admit every
// single-leaf fragment.
type SplitError struct {
	Message     string
	MinRequired int
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("%s (minimum needed: %d bytes)", e.Message, e.MinRequired)
}
