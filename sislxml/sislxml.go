// Package sislxml translates between XML text and the SISL value
// model. It consumes and produces only the sisl package's public value
// shape; the SISL wire format itself never appears here.
//
// Two modes, decided by shape:
//
//   - Typed: a <root> wrapper whose children each carry a "type"
//     attribute matching the SISL tags (null, bool, int, float, str,
//     obj, list). Maps 1:1 onto the value model.
//   - Generic: any other XML, represented as a value with reserved
//     keys _decl, _root, _tag, _attrs, _text and _children. A
//     top-level _root key is the signal, in either direction, that a
//     value belongs to generic mode.
package sislxml

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/sisl-format/sisl/sisl"
)

// Error reports an XML translation failure.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// FromValue converts a value to XML text. A top-level _root key routes
// to generic mode; anything else is emitted in typed mode.
func FromValue(v *sisl.Value) (string, error) {
	if v.Type() != sisl.TypeObj {
		return "", &Error{Message: "top-level value must be an object"}
	}
	if v.Get("_root") != nil {
		return emitGeneric(v)
	}
	return emitTyped(v)
}

// ToValue converts XML text to a value. A <root> element whose first
// child carries a type attribute routes to typed mode; anything else
// is represented generically.
func ToValue(input string) (*sisl.Value, error) {
	doc, err := parseDocument(input)
	if err != nil {
		return nil, err
	}
	if isTyped(doc) {
		return decodeTypedDocument(doc)
	}
	return genericDocument(doc)
}

// ============================================================
// XML document tree
// ============================================================

// xmlNode is one parsed element: name, attributes and children in
// source order, and the concatenated character data.
type xmlNode struct {
	name     string
	attrs    []xmlAttr
	children []*xmlNode
	text     string
}

type xmlAttr struct {
	name  string
	value string
}

type xmlDocument struct {
	decl []xmlAttr // declaration pseudo-attributes, nil if absent
	root *xmlNode
}

func parseDocument(input string) (*xmlDocument, error) {
	dec := xml.NewDecoder(strings.NewReader(input))

	doc := &xmlDocument{}
	var stack []*xmlNode

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &Error{Message: "XML parse error: " + err.Error()}
		}

		switch t := tok.(type) {
		case xml.ProcInst:
			if t.Target == "xml" && doc.root == nil {
				doc.decl = parseDeclAttrs(string(t.Inst))
			}

		case xml.StartElement:
			node := &xmlNode{name: t.Name.Local}
			for _, a := range t.Attr {
				node.attrs = append(node.attrs, xmlAttr{name: attrName(a), value: a.Value})
			}
			if len(stack) == 0 {
				if doc.root != nil {
					return nil, &Error{Message: "XML parse error: multiple root elements"}
				}
				doc.root = node
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}

	if doc.root == nil {
		return nil, &Error{Message: "XML parse error: no root element"}
	}
	return doc, nil
}

// attrName reconstructs the attribute name as written, keeping the
// xmlns prefix (the decoder splits it off into the name space).
func attrName(a xml.Attr) string {
	if a.Name.Space == "xmlns" {
		return "xmlns:" + a.Name.Local
	}
	return a.Name.Local
}

// parseDeclAttrs scans the pseudo-attributes of an <?xml ...?>
// declaration (version="1.0" encoding="UTF-8" ...).
func parseDeclAttrs(inst string) []xmlAttr {
	var attrs []xmlAttr
	rest := strings.TrimSpace(inst)
	for rest != "" {
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			break
		}
		name := strings.TrimSpace(rest[:eq])
		rest = strings.TrimSpace(rest[eq+1:])
		if len(rest) < 2 {
			break
		}
		quote := rest[0]
		if quote != '"' && quote != '\'' {
			break
		}
		end := strings.IndexByte(rest[1:], quote)
		if end < 0 {
			break
		}
		attrs = append(attrs, xmlAttr{name: name, value: rest[1 : 1+end]})
		rest = strings.TrimSpace(rest[2+end:])
	}
	return attrs
}

// isTyped reports whether a parsed document uses the typed format:
// a <root> element whose first child element carries a type attribute.
// An empty <root> counts as typed.
func isTyped(doc *xmlDocument) bool {
	if doc.root == nil || doc.root.name != "root" {
		return false
	}
	for _, child := range doc.root.children {
		return child.attr("type") != ""
	}
	return true
}

func (n *xmlNode) attr(name string) string {
	for _, a := range n.attrs {
		if a.name == name {
			return a.value
		}
	}
	return ""
}

// ============================================================
// Escaping
// ============================================================

func escapeText(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func escapeAttr(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
