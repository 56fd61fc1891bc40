// Package toml implements the jyt event producer for TOML.
//
// A TOML document is a single table assembled from expressions spread over
// the whole file, so the decoder builds the table first and then replays
// it as events. Keys keep their source order.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2/unstable"
	"github.com/signadot/jyt/stream"
)

type kind int

const (
	kindScalar kind = iota
	kindTable
	kindArray       // array literal, closed
	kindArrayTables // [[array.of.tables]], open to appends
)

type value struct {
	kind   kind
	scalar stream.Event
	table  *table
	array  []*value
}

type table struct {
	keys    []string
	entries map[string]*value

	defined bool // by a [header] or [[header]]
	dotted  bool // by a dotted key
	inline  bool // by an inline table, closed
}

func newTable() *table {
	return &table{entries: map[string]*value{}}
}

func (t *table) add(k string, v *value) {
	t.keys = append(t.keys, k)
	t.entries[k] = v
}

// Decoder replays a parsed TOML document as events.
type Decoder struct {
	root    *table
	started bool
	stack   []cursor
}

type cursor struct {
	table   *table
	array   []*value
	i       int
	keyDone bool
}

var _ stream.Decoder = (*Decoder)(nil)

// NewDecoder parses input and returns a Decoder for its root table.
// Syntax errors and semantic errors such as duplicate keys or redefined
// tables wrap stream.ErrMalformedInput.
func NewDecoder(input []byte) (*Decoder, error) {
	if !utf8.Valid(input) {
		return nil, fmt.Errorf("%w: toml: input is not valid UTF-8", stream.ErrMalformedInput)
	}
	b := &builder{input: input, root: newTable()}
	if err := b.build(); err != nil {
		return nil, err
	}
	return &Decoder{root: b.root}, nil
}

// ReadEvent returns the next event of the document, then io.EOF.
func (d *Decoder) ReadEvent() (*stream.Event, error) {
	if !d.started {
		d.started = true
		d.stack = append(d.stack, cursor{table: d.root})
		return &stream.Event{Type: stream.EventBeginObject}, nil
	}
	if len(d.stack) == 0 {
		return nil, io.EOF
	}
	top := &d.stack[len(d.stack)-1]
	if top.table != nil {
		if top.i >= len(top.table.keys) {
			d.stack = d.stack[:len(d.stack)-1]
			return &stream.Event{Type: stream.EventEndObject}, nil
		}
		k := top.table.keys[top.i]
		if !top.keyDone {
			top.keyDone = true
			return &stream.Event{Type: stream.EventKey, Key: k}, nil
		}
		top.keyDone = false
		top.i++
		return d.enter(top.table.entries[k]), nil
	}
	if top.i >= len(top.array) {
		d.stack = d.stack[:len(d.stack)-1]
		return &stream.Event{Type: stream.EventEndArray}, nil
	}
	v := top.array[top.i]
	top.i++
	return d.enter(v), nil
}

func (d *Decoder) enter(v *value) *stream.Event {
	switch v.kind {
	case kindTable:
		d.stack = append(d.stack, cursor{table: v.table})
		return &stream.Event{Type: stream.EventBeginObject}
	case kindArray, kindArrayTables:
		d.stack = append(d.stack, cursor{array: v.array})
		return &stream.Event{Type: stream.EventBeginArray}
	default:
		ev := v.scalar
		return &ev
	}
}

type builder struct {
	input []byte
	p     unstable.Parser
	root  *table
	cur   *table
}

func (b *builder) build() error {
	b.p.Reset(b.input)
	b.cur = b.root
	for b.p.NextExpression() {
		expr := b.p.Expression()
		var err error
		switch expr.Kind {
		case unstable.KeyValue:
			err = b.keyValue(b.cur, expr)
		case unstable.Table:
			err = b.header(expr, false)
		case unstable.ArrayTable:
			err = b.header(expr, true)
		}
		if err != nil {
			return err
		}
	}
	if err := b.p.Error(); err != nil {
		return b.syntaxError(err)
	}
	return nil
}

func (b *builder) syntaxError(err error) error {
	var perr *unstable.ParserError
	if errors.As(err, &perr) && perr.Highlight != nil {
		off := int(b.p.Range(perr.Highlight).Offset)
		line, col := position(b.input, off)
		return fmt.Errorf("%w: toml: line %d column %d: %s", stream.ErrMalformedInput, line, col, perr.Message)
	}
	return fmt.Errorf("%w: toml: %w", stream.ErrMalformedInput, err)
}

func (b *builder) errorAt(n *unstable.Node, format string, args ...any) error {
	line, _ := position(b.input, b.offset(n))
	return fmt.Errorf("%w: toml: line %d: %s", stream.ErrMalformedInput, line, fmt.Sprintf(format, args...))
}

// offset locates n in the input. Raw spans are not set on every node; value
// nodes fall back to their data, which is a slice of the input.
func (b *builder) offset(n *unstable.Node) int {
	if n.Raw.Length > 0 || n.Raw.Offset > 0 {
		return int(n.Raw.Offset)
	}
	if n.Kind != unstable.Key && n.Kind != unstable.String && len(n.Data) > 0 {
		return int(b.p.Range(n.Data).Offset)
	}
	return 0
}

// keyParts returns the parts of a possibly dotted key and its first node.
func keyParts(n *unstable.Node) ([]string, *unstable.Node) {
	var parts []string
	var first *unstable.Node
	it := n.Key()
	for it.Next() {
		k := it.Node()
		if first == nil {
			first = k
		}
		parts = append(parts, string(k.Data))
	}
	return parts, first
}

func (b *builder) keyValue(t *table, expr *unstable.Node) error {
	keys, first := keyParts(expr)
	for i, k := range keys[:len(keys)-1] {
		e, ok := t.entries[k]
		switch {
		case !ok:
			sub := newTable()
			sub.dotted = true
			t.add(k, &value{kind: kindTable, table: sub})
			t = sub
		case e.kind == kindTable && e.table.dotted && !e.table.inline:
			t = e.table
		default:
			return b.errorAt(first, "cannot add keys to %s", strings.Join(keys[:i+1], "."))
		}
	}
	last := keys[len(keys)-1]
	if _, ok := t.entries[last]; ok {
		return b.errorAt(first, "duplicate key %s", strings.Join(keys, "."))
	}
	v, err := b.value(expr.Value())
	if err != nil {
		return err
	}
	t.add(last, v)
	return nil
}

func (b *builder) header(expr *unstable.Node, array bool) error {
	keys, first := keyParts(expr)
	t := b.root
	for i, k := range keys[:len(keys)-1] {
		e, ok := t.entries[k]
		if !ok {
			sub := newTable()
			t.add(k, &value{kind: kindTable, table: sub})
			t = sub
			continue
		}
		switch {
		case e.kind == kindTable && !e.table.inline:
			t = e.table
		case e.kind == kindArrayTables:
			t = e.array[len(e.array)-1].table
		default:
			return b.errorAt(first, "key %s is not a table", strings.Join(keys[:i+1], "."))
		}
	}
	last := keys[len(keys)-1]
	name := strings.Join(keys, ".")
	e, ok := t.entries[last]
	if array {
		sub := newTable()
		sub.defined = true
		elem := &value{kind: kindTable, table: sub}
		switch {
		case !ok:
			t.add(last, &value{kind: kindArrayTables, array: []*value{elem}})
		case e.kind == kindArrayTables:
			e.array = append(e.array, elem)
		default:
			return b.errorAt(first, "key %s is not an array of tables", name)
		}
		b.cur = sub
		return nil
	}
	switch {
	case !ok:
		sub := newTable()
		sub.defined = true
		t.add(last, &value{kind: kindTable, table: sub})
		b.cur = sub
	case e.kind == kindTable && !e.table.defined && !e.table.dotted && !e.table.inline:
		e.table.defined = true
		b.cur = e.table
	default:
		return b.errorAt(first, "table %s already defined", name)
	}
	return nil
}

func (b *builder) value(n *unstable.Node) (*value, error) {
	switch n.Kind {
	case unstable.String:
		return scalar(stream.Event{Type: stream.EventString, String: string(n.Data)}), nil
	case unstable.Bool:
		return scalar(stream.Event{Type: stream.EventBool, Bool: string(n.Data) == "true"}), nil
	case unstable.Integer:
		ev, err := parseInteger(n.Data)
		if err != nil {
			return nil, b.errorAt(n, "%v", err)
		}
		return scalar(ev), nil
	case unstable.Float:
		f, err := parseFloat(n.Data)
		if err != nil {
			return nil, b.errorAt(n, "%v", err)
		}
		return scalar(stream.Event{Type: stream.EventFloat, Float: f}), nil
	case unstable.LocalDate, unstable.LocalTime, unstable.LocalDateTime, unstable.DateTime:
		return scalar(stream.Event{Type: stream.EventString, String: string(n.Data)}), nil
	case unstable.Array:
		v := &value{kind: kindArray}
		it := n.Children()
		for it.Next() {
			elem, err := b.value(it.Node())
			if err != nil {
				return nil, err
			}
			v.array = append(v.array, elem)
		}
		return v, nil
	case unstable.InlineTable:
		t := newTable()
		it := n.Children()
		for it.Next() {
			if err := b.keyValue(t, it.Node()); err != nil {
				return nil, err
			}
		}
		seal(t)
		return &value{kind: kindTable, table: t}, nil
	default:
		return nil, b.errorAt(n, "unexpected %s", n.Kind)
	}
}

func scalar(ev stream.Event) *value {
	return &value{kind: kindScalar, scalar: ev}
}

// seal closes an inline table and the tables its dotted keys created.
func seal(t *table) {
	t.inline = true
	for _, v := range t.entries {
		if v.kind == kindTable {
			seal(v.table)
		}
	}
}

func parseInteger(b []byte) (stream.Event, error) {
	s := strings.ReplaceAll(string(b), "_", "")
	digits := strings.TrimLeft(s, "+-")
	base := 10
	if len(digits) > 1 && digits[0] == '0' {
		switch digits[1] {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		default:
			return stream.Event{}, fmt.Errorf("leading zero in integer %q", b)
		}
		if digits != s {
			return stream.Event{}, fmt.Errorf("sign on non-decimal integer %q", b)
		}
		digits = digits[2:]
		s = digits
	}
	i, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return stream.Event{}, fmt.Errorf("invalid integer %q", b)
	}
	return stream.Event{Type: stream.EventInt, Int: i}, nil
}

func parseFloat(b []byte) (float64, error) {
	s := string(b)
	switch strings.TrimLeft(s, "+-") {
	case "inf":
		if s[0] == '-' {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	case "nan":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", b)
	}
	return f, nil
}

func position(input []byte, offset int) (line, col int) {
	if offset > len(input) {
		offset = len(input)
	}
	before := input[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = offset - bytes.LastIndexByte(before, '\n')
	return line, col
}
