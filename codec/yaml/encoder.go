package yaml

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-yaml/token"
	"github.com/signadot/jyt/stream"
	"github.com/signadot/jyt/style"
)

// position records where a container started, which decides how its
// first entry is laid out.
type position int

const (
	posTop  position = iota // top level of a document
	posKey                  // value of a mapping entry
	posDash                 // item of a sequence
)

// maxImplicitKey is the longest key written in "key: value" form. Longer
// keys are written as explicit "? key" entries.
const maxImplicitKey = 1024

type level struct {
	array  bool
	n      int
	indent int
	pos    position
}

// Encoder writes block-style YAML as events arrive. Every document after
// the first is preceded by a "---" line.
type Encoder struct {
	w      io.Writer
	colors *style.Colors

	stack    []level
	afterKey bool
	docs     int
	buf      []byte
}

var _ stream.Encoder = (*Encoder)(nil)

// NewEncoder creates an Encoder writing to w. Only the colors of st apply;
// YAML output has a single layout.
func NewEncoder(w io.Writer, st style.Style) *Encoder {
	return &Encoder{w: w, colors: st.Colors}
}

func (e *Encoder) flush() error {
	if len(e.buf) == 0 {
		return nil
	}
	_, err := e.w.Write(e.buf)
	e.buf = e.buf[:0]
	if err != nil {
		return &stream.IOError{Err: err}
	}
	return nil
}

func (e *Encoder) indent(n int) {
	for range n {
		e.buf = append(e.buf, ' ')
	}
}

// entry writes what precedes a key or a sequence item in f: a line break
// and indentation, unless the entry continues the line of its parent.
func (e *Encoder) entry(f *level) {
	if f.n == 0 {
		if f.pos == posKey {
			e.buf = append(e.buf, '\n')
			e.indent(f.indent)
		}
	} else {
		e.indent(f.indent)
	}
	f.n++
}

// valueStart prepares for a value and reports where it sits.
func (e *Encoder) valueStart() (position, *level) {
	if len(e.stack) == 0 {
		if e.docs > 0 {
			e.buf = append(e.buf, e.colors.PaintSep("---")...)
			e.buf = append(e.buf, '\n')
		}
		e.docs++
		return posTop, nil
	}
	top := &e.stack[len(e.stack)-1]
	if e.afterKey {
		e.afterKey = false
		return posKey, top
	}
	e.entry(top)
	e.buf = append(e.buf, e.colors.PaintSep("-")...)
	e.buf = append(e.buf, ' ')
	return posDash, top
}

func (e *Encoder) begin(array bool) error {
	if len(e.stack) > 0 && !e.stack[len(e.stack)-1].array && !e.afterKey {
		return &stream.Error{Msg: "yaml: value without key"}
	}
	pos, parent := e.valueStart()
	f := level{array: array, pos: pos}
	switch pos {
	case posKey:
		f.indent = parent.indent
		if !array {
			f.indent += 2
		}
	case posDash:
		f.indent = parent.indent + 2
	}
	e.stack = append(e.stack, f)
	return e.flush()
}

func (e *Encoder) end(array bool) error {
	n := len(e.stack)
	if n == 0 || e.stack[n-1].array != array || e.afterKey {
		return &stream.Error{Msg: "yaml: unbalanced container end"}
	}
	f := e.stack[n-1]
	e.stack = e.stack[:n-1]
	if f.n == 0 {
		if f.pos == posKey {
			e.buf = append(e.buf, ' ')
		}
		if array {
			e.buf = append(e.buf, "[]"...)
		} else {
			e.buf = append(e.buf, "{}"...)
		}
		e.buf = append(e.buf, '\n')
	}
	return e.flush()
}

func (e *Encoder) BeginObject() error { return e.begin(false) }
func (e *Encoder) EndObject() error { return e.end(false) }
func (e *Encoder) BeginArray() error { return e.begin(true) }
func (e *Encoder) EndArray() error { return e.end(true) }

// WriteKey writes a mapping key. YAML keys may be any scalar, so typed keys
// keep their type; only a non-scalar key is rejected.
func (e *Encoder) WriteKey(key *stream.Event) error {
	n := len(e.stack)
	if n == 0 || e.stack[n-1].array || e.afterKey {
		return &stream.Error{Msg: "yaml: key outside of mapping"}
	}
	var text string
	switch key.Type {
	case stream.EventKey:
		text = quoteString(key.Key)
	case stream.EventString:
		text = quoteString(key.String)
	case stream.EventInt, stream.EventUint, stream.EventFloat, stream.EventBool, stream.EventNull:
		text = scalarText(key)
	default:
		return fmt.Errorf("%w: %s", stream.ErrUnsupportedKeyType, key.Type)
	}
	f := &e.stack[n-1]
	e.entry(f)
	if len(text) > maxImplicitKey {
		// YAML parsers refuse implicit keys this long.
		e.buf = append(e.buf, e.colors.PaintSep("?")...)
		e.buf = append(e.buf, ' ')
		e.buf = append(e.buf, e.colors.PaintKey(text)...)
		e.buf = append(e.buf, '\n')
		e.indent(f.indent)
	} else {
		e.buf = append(e.buf, e.colors.PaintKey(text)...)
	}
	e.buf = append(e.buf, e.colors.PaintSep(":")...)
	e.afterKey = true
	return e.flush()
}

func (e *Encoder) scalar(text string) error {
	if len(e.stack) > 0 && !e.stack[len(e.stack)-1].array && !e.afterKey {
		return &stream.Error{Msg: "yaml: value without key"}
	}
	if pos, _ := e.valueStart(); pos == posKey {
		e.buf = append(e.buf, ' ')
	}
	e.buf = append(e.buf, text...)
	e.buf = append(e.buf, '\n')
	return e.flush()
}

func (e *Encoder) WriteString(v string) error {
	return e.scalar(e.colors.PaintString(quoteString(v)))
}

func (e *Encoder) WriteInt(v int64) error {
	return e.scalar(e.colors.PaintNumber(strconv.FormatInt(v, 10)))
}

func (e *Encoder) WriteUint(v uint64) error {
	return e.scalar(e.colors.PaintNumber(strconv.FormatUint(v, 10)))
}

func (e *Encoder) WriteFloat(v float64) error {
	return e.scalar(e.colors.PaintNumber(formatFloat(v)))
}

func (e *Encoder) WriteBool(v bool) error {
	return e.scalar(e.colors.PaintBool(strconv.FormatBool(v)))
}

func (e *Encoder) WriteNull() error {
	return e.scalar(e.colors.PaintNull("null"))
}

func scalarText(ev *stream.Event) string {
	switch ev.Type {
	case stream.EventInt:
		return strconv.FormatInt(ev.Int, 10)
	case stream.EventUint:
		return strconv.FormatUint(ev.Uint, 10)
	case stream.EventFloat:
		return formatFloat(ev.Float)
	case stream.EventBool:
		return strconv.FormatBool(ev.Bool)
	default:
		return "null"
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return stream.FormatFloat(f)
}

// reserved plain scalars which a YAML 1.1 or 1.2 reader would not read
// back as a string.
var reserved = map[string]bool{
	"null": true, "~": true,
	"true": true, "false": true,
	"yes": true, "no": true, "y": true, "n": true,
	"on": true, "off": true,
}

// quoteString returns s as a plain scalar when that reads back as the same
// string, and as a double-quoted scalar otherwise.
func quoteString(s string) string {
	if needsQuote(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuote(s string) bool {
	if s == "" || token.IsNeedQuoted(s) || reserved[strings.ToLower(s)] {
		return true
	}
	if strings.ContainsRune("-?:,[]{}#&*!|>'\"%@` ", rune(s[0])) || s[len(s)-1] == ' ' || s[len(s)-1] == ':' {
		return true
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") {
		return true
	}
	for _, r := range s {
		if r == '\n' || r == '\t' || !unicode.IsPrint(r) {
			return true
		}
	}
	return looksNumeric(s)
}

func looksNumeric(s string) bool {
	if _, ok := intEvent(s); ok {
		return true
	}
	_, ok := parseFloat(s)
	return ok
}
