package sisl

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// maxListIndex bounds the literal index accepted in a list element
// name. Dense materialization allocates up to the highest index, so an
// unbounded index would let a tiny document demand unbounded memory.
// The format itself places no limit; this bound is this
// implementation's explicit choice.
const maxListIndex = 1 << 20

// Loads parses and decodes one SISL document into a value.
func Loads(text string) (*Value, error) {
	grouping, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return Decode(grouping)
}

// Dumps encodes a value as one SISL document.
func Dumps(v *Value) (string, error) {
	return Encode(v)
}

// ============================================================
// Encode
// ============================================================

// Encode converts a value to SISL text. The top-level value must be an
// object.
func Encode(v *Value) (string, error) {
	if v.Type() != TypeObj {
		return "", &CodecError{Message: "top-level value must be an object"}
	}

	var e encoder
	if err := e.encodeObjBody(v.objVal); err != nil {
		return "", err
	}
	return e.sb.String(), nil
}

type encoder struct {
	sb strings.Builder
}

func (e *encoder) encodeObjBody(entries []MapEntry) error {
	e.sb.WriteString("{")
	for i, entry := range entries {
		if i > 0 {
			e.sb.WriteString(", ")
		}
		e.sb.WriteString(entry.Key)
		e.sb.WriteString(": ")
		if err := e.encodeTagged(entry.Value); err != nil {
			return err
		}
	}
	e.sb.WriteString("}")
	return nil
}

// encodeListBody emits list elements as a grouping with dense
// zero-based _N names, regardless of any upstream sparseness.
func (e *encoder) encodeListBody(items []*Value) error {
	e.sb.WriteString("{")
	for i, item := range items {
		if i > 0 {
			e.sb.WriteString(", ")
		}
		e.sb.WriteString("_")
		e.sb.WriteString(strconv.Itoa(i))
		e.sb.WriteString(": ")
		if err := e.encodeTagged(item); err != nil {
			return err
		}
	}
	e.sb.WriteString("}")
	return nil
}

// encodeTagged emits "!tag value" for any value.
func (e *encoder) encodeTagged(v *Value) error {
	e.sb.WriteString("!")
	e.sb.WriteString(v.Type().String())
	e.sb.WriteString(" ")

	switch v.Type() {
	case TypeObj:
		return e.encodeObjBody(v.objVal)
	case TypeList:
		return e.encodeListBody(v.listVal)
	default:
		literal, err := scalarLiteral(v)
		if err != nil {
			return err
		}
		e.sb.WriteString(literal)
		return nil
	}
}

// scalarLiteral returns the quoted literal for a scalar value.
func scalarLiteral(v *Value) (string, error) {
	switch v.Type() {
	case TypeNull:
		return `""`, nil
	case TypeBool:
		if v.boolVal {
			return `"true"`, nil
		}
		return `"false"`, nil
	case TypeInt:
		return `"` + strconv.FormatInt(v.intVal, 10) + `"`, nil
	case TypeFloat:
		s, err := formatFloat(v.floatVal)
		if err != nil {
			return "", err
		}
		return `"` + s + `"`, nil
	case TypeStr:
		return `"` + Escape(v.strVal) + `"`, nil
	default:
		return "", &CodecError{Message: "scalarLiteral called on " + v.Type().String()}
	}
}

// formatFloat renders the shortest decimal that round-trips, appending
// ".0" when the result would otherwise read as an integer.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", &CodecError{Message: "cannot encode NaN or Infinity"}
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

// ============================================================
// Decode
// ============================================================

// Decode converts a parsed grouping to an object value. Duplicate
// element names are legal: the last occurrence wins, at the position
// the key was first seen.
func Decode(g *Grouping) (*Value, error) {
	obj := Obj()
	for _, elem := range g.Elements {
		val, err := decodeElement(elem)
		if err != nil {
			return nil, err
		}
		obj.Set(elem.Name, val)
	}
	return obj, nil
}

func decodeElement(elem Element) (*Value, error) {
	if !elem.Value.IsGroup() {
		return decodeScalar(elem.Type, elem.Value.Str)
	}
	return decodeGrouping(elem.Type, elem.Value.Group)
}

// decodeScalar unescapes a raw string leaf and interprets it under the
// given type tag. Number literals must be fully consumed.
func decodeScalar(typ, raw string) (*Value, error) {
	value, err := Unescape(raw)
	if err != nil {
		return nil, err
	}

	switch typ {
	case "null":
		if value != "" {
			return nil, &CodecError{Message: "null value must be empty string"}
		}
		return Null(), nil
	case "bool":
		switch value {
		case "true":
			return Bool(true), nil
		case "false":
			return Bool(false), nil
		}
		return nil, &CodecError{Message: "bool value must be 'true' or 'false'"}
	case "int":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, &CodecError{Message: "invalid integer value: " + value}
		}
		return Int(n), nil
	case "float":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, &CodecError{Message: "invalid float value: " + value}
		}
		return Float(f), nil
	case "str":
		return Str(value), nil
	}

	return nil, &CodecError{Message: "unknown type for string value: " + typ}
}

func decodeGrouping(typ string, g *Grouping) (*Value, error) {
	switch typ {
	case "obj":
		return Decode(g)
	case "list":
		return decodeList(g)
	}
	return nil, &CodecError{Message: "unknown type for grouping value: " + typ}
}

// decodeList collects (index, value) pairs from _N element names, sorts
// them ascending, and builds a dense list spanning [0, max], filling
// unclaimed indices with null.
func decodeList(g *Grouping) (*Value, error) {
	type indexed struct {
		index uint64
		value *Value
	}

	items := make([]indexed, 0, len(g.Elements))
	for _, elem := range g.Elements {
		idx, err := parseListIndex(elem.Name)
		if err != nil {
			return nil, err
		}
		val, err := decodeElement(elem)
		if err != nil {
			return nil, err
		}
		items = append(items, indexed{index: idx, value: val})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].index < items[j].index
	})

	list := List()
	var expected uint64
	for _, item := range items {
		for expected < item.index {
			list.Append(Null())
			expected++
		}
		list.Append(item.value)
		expected++
	}
	return list, nil
}

// parseListIndex extracts the literal numeric index from a _N element
// name. Leading zeros are accepted; indices beyond maxListIndex are
// rejected.
func parseListIndex(name string) (uint64, error) {
	if len(name) == 0 || name[0] != '_' {
		return 0, &CodecError{Message: "list element name must start with '_': " + name}
	}
	idx, err := strconv.ParseUint(name[1:], 10, 64)
	if err != nil {
		return 0, &CodecError{Message: "invalid list index: " + name}
	}
	if idx > maxListIndex {
		return 0, &CodecError{Message: "list index too large: " + name}
	}
	return idx, nil
}
