package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"rinha/lexer"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A tree may also arrive already parsed, in the JSON AST format emitted by
// the reference front-end:
//
//	{"name": "fib.rinha", "expression": {"kind": "Let", ...}, "location": {...}}
//
// Every term is an object tagged by "kind". YAML documents with the same
// shape are accepted too.

// DecodeJSON reads a File from its JSON AST representation. Trees of any
// depth are accepted.
func DecodeJSON(r io.Reader) (*File, error) {
	v, err := readJSON(r)
	if err != nil {
		return nil, errors.Wrap(err, "decoding JSON AST")
	}
	doc, ok := v.(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("decoding JSON AST: expected an object, got %T", v)
	}
	return fileFromMap(doc)
}

// jsonFrame is a container still being read by readJSON.
type jsonFrame struct {
	obj     map[string]interface{}
	arr     []interface{}
	isArr   bool
	key     string
	wantKey bool
}

// readJSON reads one JSON value into maps, slices and scalars. It walks
// the token stream with an explicit stack; json.Decoder.Decode refuses
// documents nested more than 10000 levels deep and long let chains go
// well past that.
func readJSON(r io.Reader) (interface{}, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var (
		stack []*jsonFrame
		root  interface{}
	)
	add := func(v interface{}) {
		if len(stack) == 0 {
			root = v
			return
		}
		top := stack[len(stack)-1]
		if top.isArr {
			top.arr = append(top.arr, v)
			return
		}
		top.obj[top.key] = v
		top.wantKey = true
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				stack = append(stack, &jsonFrame{obj: map[string]interface{}{}, wantKey: true})
			case '[':
				stack = append(stack, &jsonFrame{arr: []interface{}{}, isArr: true})
			default:
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.isArr {
					add(top.arr)
				} else {
					add(top.obj)
				}
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].wantKey {
				stack[n-1].key = t
				stack[n-1].wantKey = false
				continue
			}
			add(t)
		default:
			add(t)
		}
		if len(stack) == 0 {
			return root, nil
		}
	}
}

// DecodeYAML reads a File from a YAML document using the JSON AST schema.
func DecodeYAML(r io.Reader) (*File, error) {
	var doc map[string]interface{}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding YAML AST")
	}
	return fileFromMap(doc)
}

// ParseSource lexes and parses source text into a File. All lexer or
// parser errors are returned together.
func ParseSource(filename, source string) (*File, error) {
	l := lexer.New(filename, source)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		errs := make(ErrorList, len(l.Errors))
		for i := range l.Errors {
			errs[i] = &l.Errors[i]
		}
		return nil, errs
	}
	p := New(filename, l.Tokens)
	file := p.Parse()
	if len(p.Errors) != 0 {
		errs := make(ErrorList, len(p.Errors))
		for i, err := range p.Errors {
			errs[i] = err
		}
		return nil, errs
	}
	return file, nil
}

// LoadFile reads a program from disk. Files ending in .json, .yaml or .yml
// are decoded as trees; anything else is parsed as source text. The
// returned source is empty for decoded trees.
func LoadFile(path string) (file *File, source string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "reading %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		file, err = DecodeJSON(bytes.NewReader(content))
	case ".yaml", ".yml":
		file, err = DecodeYAML(bytes.NewReader(content))
	default:
		source = strings.TrimPrefix(string(content), "\ufeff")
		file, err = ParseSource(path, source)
		if err != nil {
			return nil, source, err
		}
		return file, source, nil
	}
	if err != nil {
		return nil, "", errors.Wrapf(err, "loading %s", path)
	}
	return file, "", nil
}

// ErrorList is a list of front-end errors reported together.
type ErrorList []error

func (el ErrorList) Error() string {
	msgs := make([]string, len(el))
	for i, err := range el {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "\n")
}

// ==========
// conversion
// ==========

type decodeError struct {
	path    string
	message string
}

func (e *decodeError) Error() string {
	if e.path == "" {
		return e.message
	}
	return e.path + ": " + e.message
}

// docPath locates a value in the document. It is only rendered when
// decoding fails, so deep trees do not pay for their own paths.
type docPath struct {
	parent *docPath
	seg    string
}

func (p *docPath) key(k string) *docPath { return &docPath{parent: p, seg: "." + k} }
func (p *docPath) index(i int) *docPath  { return &docPath{parent: p, seg: "[" + strconv.Itoa(i) + "]"} }

func (p *docPath) String() string {
	var segs []string
	for ; p != nil; p = p.parent {
		segs = append(segs, p.seg)
	}
	slices.Reverse(segs)
	return strings.Join(segs, "")
}

func fileFromMap(doc map[string]interface{}) (file *File, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			if de, ok := rv.(*decodeError); ok {
				err = de
				return
			}
			panic(rv)
		}
	}()
	d := &decoder{}
	root := &docPath{seg: "$"}
	expr, ok := doc["expression"]
	if !ok {
		d.fail(root, "missing expression")
	}
	file = &File{
		Name:       d.optString(doc, "name"),
		Expression: d.term(root.key("expression"), expr),
		Location:   d.location(root, doc),
	}
	return file, nil
}

type decoder struct{}

func (d *decoder) fail(p *docPath, msg string, args ...interface{}) {
	panic(&decodeError{path: p.String(), message: fmt.Sprintf(msg, args...)})
}

func (d *decoder) object(p *docPath, v interface{}) map[string]interface{} {
	switch obj := v.(type) {
	case map[string]interface{}:
		return obj
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(obj))
		for k, val := range obj {
			m[toString(k)] = val
		}
		return m
	}
	d.fail(p, "expected an object, got %T", v)
	return nil
}

func (d *decoder) field(p *docPath, obj map[string]interface{}, key string) interface{} {
	v, ok := obj[key]
	if !ok {
		d.fail(p, "missing field %q", key)
	}
	return v
}

func (d *decoder) str(p *docPath, obj map[string]interface{}, key string) string {
	s, ok := d.field(p, obj, key).(string)
	if !ok {
		d.fail(p.key(key), "expected a string")
	}
	return s
}

func (d *decoder) optString(obj map[string]interface{}, key string) string {
	s, _ := obj[key].(string)
	return s
}

func (d *decoder) integer(p *docPath, v interface{}) int64 {
	switch n := v.(type) {
	case json.Number:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		if err != nil {
			d.fail(p, "invalid integer %s", n)
		}
		return i
	case int:
		return int64(n)
	case int64:
		return n
	case uint64:
		if n > math.MaxInt64 {
			d.fail(p, "integer %d out of range", n)
		}
		return int64(n)
	case float64:
		if n != math.Trunc(n) {
			d.fail(p, "expected an integer, got %v", n)
		}
		return int64(n)
	}
	d.fail(p, "expected an integer, got %T", v)
	return 0
}

func (d *decoder) location(p *docPath, obj map[string]interface{}) Location {
	raw, ok := obj["location"]
	if !ok || raw == nil {
		return Location{}
	}
	lp := p.key("location")
	loc := d.object(lp, raw)
	return Location{
		Start:    int(d.integer(lp.key("start"), loc["start"])),
		End:      int(d.integer(lp.key("end"), loc["end"])),
		Filename: d.optString(loc, "filename"),
	}
}

func (d *decoder) variable(p *docPath, v interface{}) Var {
	obj := d.object(p, v)
	return Var{Text: d.str(p, obj, "text"), Location: d.location(p, obj)}
}

func (d *decoder) term(p *docPath, v interface{}) Term {
	obj := d.object(p, v)
	kind := d.str(p, obj, "kind")
	loc := d.location(p, obj)
	sub := func(key string) Term {
		return d.term(p.key(key), d.field(p, obj, key))
	}
	switch kind {
	case "Int":
		n := d.integer(p.key("value"), d.field(p, obj, "value"))
		if n < math.MinInt32 || n > math.MaxInt32 {
			d.fail(p.key("value"), "integer %d does not fit in 32 bits", n)
		}
		return &Int{Value: int32(n), Location: loc}
	case "Str":
		return &Str{Value: d.str(p, obj, "value"), Location: loc}
	case "Bool":
		b, ok := d.field(p, obj, "value").(bool)
		if !ok {
			d.fail(p.key("value"), "expected a boolean")
		}
		return &Bool{Value: b, Location: loc}
	case "Var":
		return &Var{Text: d.str(p, obj, "text"), Location: loc}
	case "Binary":
		name := d.str(p, obj, "op")
		op, ok := ParseBinaryOp(name)
		if !ok {
			d.fail(p.key("op"), "unknown binary operator %q", name)
		}
		return &Binary{Op: op, LHS: sub("lhs"), RHS: sub("rhs"), Location: loc}
	case "If":
		return &If{Condition: sub("condition"), Then: sub("then"), Otherwise: sub("otherwise"), Location: loc}
	case "Let":
		return &Let{
			Name:     d.variable(p.key("name"), d.field(p, obj, "name")),
			Value:    sub("value"),
			Next:     sub("next"),
			Location: loc,
		}
	case "Function":
		raw, ok := d.field(p, obj, "parameters").([]interface{})
		if !ok {
			d.fail(p.key("parameters"), "expected an array")
		}
		params := make([]Var, len(raw))
		for i, v := range raw {
			params[i] = d.variable(p.key("parameters").index(i), v)
		}
		return &Function{Parameters: params, Value: sub("value"), Location: loc}
	case "Call":
		raw, ok := d.field(p, obj, "arguments").([]interface{})
		if !ok {
			d.fail(p.key("arguments"), "expected an array")
		}
		args := make([]Term, len(raw))
		for i, a := range raw {
			args[i] = d.term(p.key("arguments").index(i), a)
		}
		return &Call{Callee: sub("callee"), Arguments: args, Location: loc}
	case "Print":
		return &Print{Value: sub("value"), Location: loc}
	case "First":
		return &First{Value: sub("value"), Location: loc}
	case "Second":
		return &Second{Value: sub("value"), Location: loc}
	case "Tuple":
		return &Tuple{First: sub("first"), Second: sub("second"), Location: loc}
	case "Error":
		return &Error{Message: d.str(p, obj, "message"), FullText: d.optString(obj, "full_text"), Location: loc}
	}
	d.fail(p.key("kind"), "unknown term kind %q", kind)
	return nil
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
