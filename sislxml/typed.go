package sislxml

import (
	"math"
	"strconv"
	"strings"

	"github.com/sisl-format/sisl/sisl"
)

// ============================================================
// Typed emit
// ============================================================

// emitTyped renders a value as the typed XML form: a <root> wrapper,
// each child carrying a type attribute, two-space indent, null leaves
// self-closing, list children named <item>.
func emitTyped(v *sisl.Value) (string, error) {
	var sb strings.Builder
	sb.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")

	entries, err := v.AsObj()
	if err != nil {
		return "", &Error{Message: err.Error()}
	}
	if len(entries) == 0 {
		sb.WriteString("<root />\n")
		return sb.String(), nil
	}

	sb.WriteString("<root>\n")
	for _, entry := range entries {
		if err := emitTypedNode(&sb, 1, entry.Key, entry.Value); err != nil {
			return "", err
		}
	}
	sb.WriteString("</root>\n")
	return sb.String(), nil
}

func emitTypedNode(sb *strings.Builder, depth int, name string, v *sisl.Value) error {
	if !validXMLName(name) {
		return &Error{Message: "invalid XML element name: " + name}
	}

	indent := strings.Repeat("  ", depth)
	typ := v.Type().String()

	switch v.Type() {
	case sisl.TypeObj:
		entries, _ := v.AsObj()
		if len(entries) == 0 {
			sb.WriteString(indent + "<" + name + " type=\"obj\" />\n")
			return nil
		}
		sb.WriteString(indent + "<" + name + " type=\"obj\">\n")
		for _, entry := range entries {
			if err := emitTypedNode(sb, depth+1, entry.Key, entry.Value); err != nil {
				return err
			}
		}
		sb.WriteString(indent + "</" + name + ">\n")
		return nil

	case sisl.TypeList:
		items, _ := v.AsList()
		if len(items) == 0 {
			sb.WriteString(indent + "<" + name + " type=\"list\" />\n")
			return nil
		}
		sb.WriteString(indent + "<" + name + " type=\"list\">\n")
		for _, item := range items {
			if err := emitTypedNode(sb, depth+1, "item", item); err != nil {
				return err
			}
		}
		sb.WriteString(indent + "</" + name + ">\n")
		return nil

	case sisl.TypeNull:
		sb.WriteString(indent + "<" + name + " type=\"null\" />\n")
		return nil

	default:
		text, err := scalarText(v)
		if err != nil {
			return err
		}
		sb.WriteString(indent + "<" + name + " type=\"" + typ + "\">" + escapeText(text) + "</" + name + ">\n")
		return nil
	}
}

// scalarText renders a non-null scalar as XML text content.
func scalarText(v *sisl.Value) (string, error) {
	switch v.Type() {
	case sisl.TypeBool:
		b, _ := v.AsBool()
		if b {
			return "true", nil
		}
		return "false", nil
	case sisl.TypeInt:
		n, _ := v.AsInt()
		return strconv.FormatInt(n, 10), nil
	case sisl.TypeFloat:
		f, _ := v.AsFloat()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", &Error{Message: "cannot encode NaN or Infinity in XML"}
		}
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s, nil
	case sisl.TypeStr:
		s, _ := v.AsStr()
		return s, nil
	default:
		return "", &Error{Message: "scalarText called on " + v.Type().String()}
	}
}

// validXMLName checks that a string is a legal XML element name:
// letter or underscore first, then letters, digits, hyphens,
// underscores or periods.
func validXMLName(name string) bool {
	if name == "" {
		return false
	}
	first := name[0]
	if !(first == '_' || (first >= 'A' && first <= 'Z') || (first >= 'a' && first <= 'z')) {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		if !(c == '_' || c == '-' || c == '.' ||
			(c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

// ============================================================
// Typed decode
// ============================================================

func decodeTypedDocument(doc *xmlDocument) (*sisl.Value, error) {
	obj := sisl.Obj()
	for _, child := range doc.root.children {
		val, err := decodeTypedNode(child)
		if err != nil {
			return nil, err
		}
		obj.Set(child.name, val)
	}
	return obj, nil
}

func decodeTypedNode(node *xmlNode) (*sisl.Value, error) {
	typ := node.attr("type")
	if typ == "" {
		return nil, &Error{Message: "missing type attribute on element: " + node.name}
	}

	text := node.text

	switch typ {
	case "null":
		return sisl.Null(), nil

	case "bool":
		switch text {
		case "true":
			return sisl.Bool(true), nil
		case "false":
			return sisl.Bool(false), nil
		}
		return nil, &Error{Message: "bool value must be 'true' or 'false', got: " + text}

	case "int":
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, &Error{Message: "invalid integer value: " + text}
		}
		return sisl.Int(n), nil

	case "float":
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &Error{Message: "invalid float value: " + text}
		}
		return sisl.Float(f), nil

	case "str":
		return sisl.Str(text), nil

	case "list":
		list := sisl.List()
		for _, child := range node.children {
			val, err := decodeTypedNode(child)
			if err != nil {
				return nil, err
			}
			list.Append(val)
		}
		return list, nil

	case "obj":
		obj := sisl.Obj()
		for _, child := range node.children {
			val, err := decodeTypedNode(child)
			if err != nil {
				return nil, err
			}
			obj.Set(child.name, val)
		}
		return obj, nil
	}

	return nil, &Error{Message: "unknown type: " + typ}
}
