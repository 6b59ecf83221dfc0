package sisl

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ============================================================
// JSON Bridge
// ============================================================
//
// Converts between JSON text and Value at the process boundary. Key
// order is load-bearing in SISL, so parsing walks the JSON document in
// source order via gjson rather than going through a Go map, and
// serialization is a hand-built ordered emitter.

// FromJSON converts JSON bytes to a Value, preserving object key order
// as it appears in the document.
func FromJSON(data []byte) (*Value, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("sisl: invalid JSON")
	}
	return fromJSONResult(gjson.ParseBytes(data))
}

func fromJSONResult(r gjson.Result) (*Value, error) {
	switch {
	case r.Type == gjson.Null:
		return Null(), nil

	case r.Type == gjson.True:
		return Bool(true), nil

	case r.Type == gjson.False:
		return Bool(false), nil

	case r.Type == gjson.Number:
		// The raw literal decides int vs float: 1 is an int, 1.0 and
		// 1e3 are floats. Integers that overflow int64 degrade to
		// float.
		if !strings.ContainsAny(r.Raw, ".eE") {
			if n, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
				return Int(n), nil
			}
		}
		return Float(r.Float()), nil

	case r.Type == gjson.String:
		return Str(r.String()), nil

	case r.IsArray():
		list := List()
		var ferr error
		r.ForEach(func(_, item gjson.Result) bool {
			v, err := fromJSONResult(item)
			if err != nil {
				ferr = err
				return false
			}
			list.Append(v)
			return true
		})
		return list, ferr

	case r.IsObject():
		obj := Obj()
		var ferr error
		r.ForEach(func(key, item gjson.Result) bool {
			v, err := fromJSONResult(item)
			if err != nil {
				ferr = err
				return false
			}
			obj.objVal = append(obj.objVal, MapEntry{Key: key.String(), Value: v})
			return true
		})
		return obj, ferr

	default:
		return nil, fmt.Errorf("sisl: unsupported JSON value: %s", r.Raw)
	}
}

// ToJSON converts a Value to compact JSON bytes. Object keys are
// emitted in entry order.
func ToJSON(v *Value) ([]byte, error) {
	return appendJSON(make([]byte, 0, 64), v)
}

func appendJSON(dst []byte, v *Value) ([]byte, error) {
	switch v.Type() {
	case TypeNull:
		return append(dst, "null"...), nil

	case TypeBool:
		if v.boolVal {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil

	case TypeInt:
		return strconv.AppendInt(dst, v.intVal, 10), nil

	case TypeFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			return nil, fmt.Errorf("sisl: cannot encode NaN or Infinity in JSON")
		}
		return strconv.AppendFloat(dst, v.floatVal, 'g', -1, 64), nil

	case TypeStr:
		return appendJSONString(dst, v.strVal), nil

	case TypeList:
		dst = append(dst, '[')
		for i, item := range v.listVal {
			if i > 0 {
				dst = append(dst, ',')
			}
			var err error
			dst, err = appendJSON(dst, item)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil

	case TypeObj:
		dst = append(dst, '{')
		for i, entry := range v.objVal {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst = appendJSONString(dst, entry.Key)
			dst = append(dst, ':')
			var err error
			dst, err = appendJSON(dst, entry.Value)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil

	default:
		return nil, fmt.Errorf("sisl: unsupported value type: %s", v.Type())
	}
}

func appendJSONString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		case c < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigit(c>>4), hexDigit(c&0x0F))
		default:
			dst = append(dst, c)
		}
	}
	return append(dst, '"')
}

// ============================================================
// Fragment-array convention
// ============================================================

// FragmentArray reports whether data is a non-empty JSON array of
// strings, and if so returns the strings. This is the wire convention
// for handing a set of merge fragments to the decode entry point.
func FragmentArray(data []byte) ([]string, bool) {
	if !gjson.ValidBytes(data) {
		return nil, false
	}
	parsed := gjson.ParseBytes(data)
	if !parsed.IsArray() {
		return nil, false
	}
	items := parsed.Array()
	if len(items) == 0 {
		return nil, false
	}
	fragments := make([]string, len(items))
	for i, item := range items {
		if item.Type != gjson.String {
			return nil, false
		}
		fragments[i] = item.String()
	}
	return fragments, true
}

// LoadsAny decodes raw input that is either one SISL document or a
// JSON array of fragment strings; the latter is merged.
func LoadsAny(data []byte) (*Value, error) {
	if fragments, ok := FragmentArray(data); ok {
		return Merge(fragments)
	}
	return Loads(string(data))
}
