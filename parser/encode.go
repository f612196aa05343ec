package parser

import (
	"bytes"
	"encoding/json"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EncodeJSON writes file in the JSON AST format understood by DecodeJSON,
// with sorted keys. The outer levels are indented by two spaces; anything
// nested deeper than indentLimit is written on one line, since indenting
// every level of a long let chain makes the output quadratic in size.
func EncodeJSON(w io.Writer, file *File) error {
	var buf bytes.Buffer
	if err := writeJSON(&buf, fileToMap(file), 0); err != nil {
		return errors.Wrap(err, "encoding JSON AST")
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return errors.Wrap(err, "encoding JSON AST")
}

const indentLimit = 64

// writeJSON lays out containers itself; the indenter of encoding/json
// gives up past 10000 levels of nesting. Scalars go through json.Marshal.
func writeJSON(buf *bytes.Buffer, v interface{}, depth int) error {
	nl, inner, colon := "", "", ":"
	if depth < indentLimit {
		nl = "\n" + strings.Repeat("  ", depth)
		inner = nl + "  "
		colon = ": "
	}
	switch v := v.(type) {
	case map[string]interface{}:
		if v == nil {
			buf.WriteString("null")
			return nil
		}
		if len(v) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range slices.Sorted(maps.Keys(v)) {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(inner)
			if err := writeJSON(buf, key, depth+1); err != nil {
				return err
			}
			buf.WriteString(colon)
			if err := writeJSON(buf, v[key], depth+1); err != nil {
				return err
			}
		}
		buf.WriteString(nl)
		buf.WriteByte('}')
	case []interface{}:
		if len(v) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(inner)
			if err := writeJSON(buf, elem, depth+1); err != nil {
				return err
			}
		}
		buf.WriteString(nl)
		buf.WriteByte(']')
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}

// EncodeYAML writes file as YAML using the same schema as EncodeJSON.
func EncodeYAML(w io.Writer, file *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(fileToMap(file)); err != nil {
		return errors.Wrap(err, "encoding YAML AST")
	}
	return errors.Wrap(enc.Close(), "encoding YAML AST")
}

type object = map[string]interface{}

func fileToMap(file *File) object {
	return object{
		"name":       file.Name,
		"expression": termToMap(file.Expression),
		"location":   locationToMap(file.Location),
	}
}

func locationToMap(l Location) object {
	return object{"start": l.Start, "end": l.End, "filename": l.Filename}
}

func varToMap(v Var) object {
	return object{"text": v.Text, "location": locationToMap(v.Location)}
}

func termToMap(term Term) object {
	var obj object
	switch node := term.(type) {
	case *Int:
		obj = object{"kind": "Int", "value": node.Value}
	case *Str:
		obj = object{"kind": "Str", "value": node.Value}
	case *Bool:
		obj = object{"kind": "Bool", "value": node.Value}
	case *Var:
		obj = object{"kind": "Var", "text": node.Text}
	case *Binary:
		obj = object{"kind": "Binary", "op": node.Op.String(), "lhs": termToMap(node.LHS), "rhs": termToMap(node.RHS)}
	case *If:
		obj = object{
			"kind":      "If",
			"condition": termToMap(node.Condition),
			"then":      termToMap(node.Then),
			"otherwise": termToMap(node.Otherwise),
		}
	case *Let:
		obj = object{"kind": "Let", "name": varToMap(node.Name), "value": termToMap(node.Value), "next": termToMap(node.Next)}
	case *Function:
		params := make([]interface{}, len(node.Parameters))
		for i, p := range node.Parameters {
			params[i] = varToMap(p)
		}
		obj = object{"kind": "Function", "parameters": params, "value": termToMap(node.Value)}
	case *Call:
		args := make([]interface{}, len(node.Arguments))
		for i, a := range node.Arguments {
			args[i] = termToMap(a)
		}
		obj = object{"kind": "Call", "callee": termToMap(node.Callee), "arguments": args}
	case *Print:
		obj = object{"kind": "Print", "value": termToMap(node.Value)}
	case *First:
		obj = object{"kind": "First", "value": termToMap(node.Value)}
	case *Second:
		obj = object{"kind": "Second", "value": termToMap(node.Value)}
	case *Tuple:
		obj = object{"kind": "Tuple", "first": termToMap(node.First), "second": termToMap(node.Second)}
	case *Error:
		obj = object{"kind": "Error", "message": node.Message, "full_text": node.FullText}
	default:
		return nil
	}
	obj["location"] = locationToMap(term.Loc())
	return obj
}
