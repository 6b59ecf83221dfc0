package sislxml

import (
	"strings"

	"github.com/sisl-format/sisl/sisl"
)

// ============================================================
// Generic decode
// ============================================================

// genericDocument represents an arbitrary XML document as a value with
// the reserved keys _decl and _root.
func genericDocument(doc *xmlDocument) (*sisl.Value, error) {
	result := sisl.Obj()

	if doc.decl != nil {
		decl := sisl.Obj()
		for _, a := range doc.decl {
			decl.Set(a.name, sisl.Str(a.value))
		}
		result.Set("_decl", decl)
	}

	result.Set("_root", genericElement(doc.root))
	return result, nil
}

// genericElement recursively converts one element to its generic
// representation: _tag, optional _attrs, and either _children or
// _text. Whitespace-only text is dropped.
func genericElement(node *xmlNode) *sisl.Value {
	elem := sisl.Obj()
	elem.Set("_tag", sisl.Str(node.name))

	if len(node.attrs) > 0 {
		attrs := sisl.Obj()
		for _, a := range node.attrs {
			attrs.Set(a.name, sisl.Str(a.value))
		}
		elem.Set("_attrs", attrs)
	}

	if len(node.children) > 0 {
		children := sisl.List()
		for _, child := range node.children {
			children.Append(genericElement(child))
		}
		elem.Set("_children", children)
	} else if strings.TrimSpace(node.text) != "" {
		elem.Set("_text", sisl.Str(node.text))
	}

	return elem
}

// ============================================================
// Generic emit
// ============================================================

func emitGeneric(v *sisl.Value) (string, error) {
	var sb strings.Builder

	if decl := v.Get("_decl"); decl != nil {
		entries, err := decl.AsObj()
		if err != nil {
			return "", &Error{Message: "_decl must be an object"}
		}
		sb.WriteString("<?xml")
		for _, entry := range entries {
			s, err := entry.Value.AsStr()
			if err != nil {
				return "", &Error{Message: "_decl attribute " + entry.Key + " must be a string"}
			}
			sb.WriteString(" " + entry.Key + "=\"" + escapeAttr(s) + "\"")
		}
		sb.WriteString("?>\n")
	}

	root := v.Get("_root")
	if root != nil {
		if err := emitGenericElement(&sb, 0, root); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

func emitGenericElement(sb *strings.Builder, depth int, elem *sisl.Value) error {
	tagVal := elem.Get("_tag")
	if tagVal == nil {
		return &Error{Message: "generic element missing _tag"}
	}
	tag, err := tagVal.AsStr()
	if err != nil {
		return &Error{Message: "_tag must be a string"}
	}

	indent := strings.Repeat("\t", depth)
	sb.WriteString(indent + "<" + tag)

	if attrs := elem.Get("_attrs"); attrs != nil {
		entries, err := attrs.AsObj()
		if err != nil {
			return &Error{Message: "_attrs must be an object"}
		}
		for _, entry := range entries {
			s, err := entry.Value.AsStr()
			if err != nil {
				return &Error{Message: "attribute " + entry.Key + " must be a string"}
			}
			sb.WriteString(" " + entry.Key + "=\"" + escapeAttr(s) + "\"")
		}
	}

	if children := elem.Get("_children"); children != nil {
		items, err := children.AsList()
		if err != nil {
			return &Error{Message: "_children must be a list"}
		}
		sb.WriteString(">\n")
		for _, child := range items {
			if err := emitGenericElement(sb, depth+1, child); err != nil {
				return err
			}
		}
		sb.WriteString(indent + "</" + tag + ">\n")
		return nil
	}

	if text := elem.Get("_text"); text != nil {
		s, err := text.AsStr()
		if err != nil {
			return &Error{Message: "_text must be a string"}
		}
		sb.WriteString(">" + escapeText(s) + "</" + tag + ">\n")
		return nil
	}

	sb.WriteString(" />\n")
	return nil
}
