package sisl

import "fmt"

// Type represents SISL value types.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeStr
	TypeList
	TypeObj
)

// String returns the type tag as it appears after '!' in SISL text.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeStr:
		return "str"
	case TypeList:
		return "list"
	case TypeObj:
		return "obj"
	default:
		return "unknown"
	}
}

// Value represents a SISL value: a JSON-like tagged union with
// insertion-ordered objects.
type Value struct {
	typ Type

	// Scalar values (only one valid based on typ)
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string

	// Container values
	listVal []*Value
	objVal  []MapEntry
}

// MapEntry represents a key-value pair in an object. Entry order is
// significant and preserved end to end.
type MapEntry struct {
	Key   string
	Value *Value
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{typ: TypeNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{typ: TypeBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{typ: TypeInt, intVal: v}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{typ: TypeFloat, floatVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{typ: TypeStr, strVal: v}
}

// List creates a list value.
func List(values ...*Value) *Value {
	return &Value{typ: TypeList, listVal: values}
}

// Obj creates an object value from ordered key-value entries.
func Obj(entries ...MapEntry) *Value {
	return &Value{typ: TypeObj, objVal: entries}
}

// Entry creates a MapEntry for use in Obj construction.
func Entry(key string, value *Value) MapEntry {
	return MapEntry{Key: key, Value: value}
}

// ============================================================
// Accessors
// ============================================================

// Type returns the value type.
func (v *Value) Type() Type {
	if v == nil {
		return TypeNull
	}
	return v.typ
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.typ == TypeNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil || v.typ != TypeBool {
		return false, fmt.Errorf("sisl: expected bool, got %s", v.Type())
	}
	return v.boolVal, nil
}

// AsInt returns the integer value.
func (v *Value) AsInt() (int64, error) {
	if v == nil || v.typ != TypeInt {
		return 0, fmt.Errorf("sisl: expected int, got %s", v.Type())
	}
	return v.intVal, nil
}

// AsFloat returns the float value.
func (v *Value) AsFloat() (float64, error) {
	if v == nil || v.typ != TypeFloat {
		return 0, fmt.Errorf("sisl: expected float, got %s", v.Type())
	}
	return v.floatVal, nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if v == nil || v.typ != TypeStr {
		return "", fmt.Errorf("sisl: expected str, got %s", v.Type())
	}
	return v.strVal, nil
}

// AsList returns the list elements.
func (v *Value) AsList() ([]*Value, error) {
	if v == nil || v.typ != TypeList {
		return nil, fmt.Errorf("sisl: expected list, got %s", v.Type())
	}
	return v.listVal, nil
}

// AsObj returns the object entries in insertion order.
func (v *Value) AsObj() ([]MapEntry, error) {
	if v == nil || v.typ != TypeObj {
		return nil, fmt.Errorf("sisl: expected obj, got %s", v.Type())
	}
	return v.objVal, nil
}

// Len returns the length of a list or object.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.typ {
	case TypeList:
		return len(v.listVal)
	case TypeObj:
		return len(v.objVal)
	default:
		return 0
	}
}

// Get returns an object field by key, or nil if absent.
func (v *Value) Get(key string) *Value {
	if v == nil || v.typ != TypeObj {
		return nil
	}
	for _, e := range v.objVal {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Index returns the i-th element of a list.
func (v *Value) Index(i int) (*Value, error) {
	if v == nil || v.typ != TypeList {
		return nil, fmt.Errorf("sisl: not a list")
	}
	if i < 0 || i >= len(v.listVal) {
		return nil, fmt.Errorf("sisl: index %d out of bounds (len=%d)", i, len(v.listVal))
	}
	return v.listVal[i], nil
}

// ============================================================
// Mutators
// ============================================================

// Set sets an object field, replacing an existing key in place or
// appending a new entry at the end.
func (v *Value) Set(key string, val *Value) {
	if v.typ != TypeObj {
		panic("sisl: cannot set on non-object")
	}
	for i := range v.objVal {
		if v.objVal[i].Key == key {
			v.objVal[i].Value = val
			return
		}
	}
	v.objVal = append(v.objVal, MapEntry{Key: key, Value: val})
}

// Append adds a value to a list.
func (v *Value) Append(val *Value) {
	if v.typ != TypeList {
		panic("sisl: cannot append to non-list")
	}
	v.listVal = append(v.listVal, val)
}

// ============================================================
// Equality
// ============================================================

// Equal reports deep structural equality. Object entry order is
// significant: two objects with the same keys in different orders are
// not equal.
func (v *Value) Equal(other *Value) bool {
	if v.IsNull() && other.IsNull() {
		return true
	}
	if v == nil || other == nil || v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeBool:
		return v.boolVal == other.boolVal
	case TypeInt:
		return v.intVal == other.intVal
	case TypeFloat:
		return v.floatVal == other.floatVal
	case TypeStr:
		return v.strVal == other.strVal
	case TypeList:
		if len(v.listVal) != len(other.listVal) {
			return false
		}
		for i := range v.listVal {
			if !v.listVal[i].Equal(other.listVal[i]) {
				return false
			}
		}
		return true
	case TypeObj:
		if len(v.objVal) != len(other.objVal) {
			return false
		}
		for i := range v.objVal {
			if v.objVal[i].Key != other.objVal[i].Key {
				return false
			}
			if !v.objVal[i].Value.Equal(other.objVal[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
