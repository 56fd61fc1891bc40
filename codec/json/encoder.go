package json

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/signadot/jyt/stream"
	"github.com/signadot/jyt/style"
)

const indentUnit = "  "

// Encoder writes JSON text as events arrive. It never buffers a complete
// value; each call writes its piece of output immediately.
type Encoder struct {
	w      io.Writer
	pretty bool
	colors *style.Colors

	stack    []frame
	afterKey bool
	buf      []byte
}

type frame struct {
	array bool
	n     int
}

var _ stream.Encoder = (*Encoder)(nil)

// NewEncoder creates an Encoder writing to w in the layout chosen by st.
func NewEncoder(w io.Writer, st style.Style) *Encoder {
	return &Encoder{w: w, pretty: st.Pretty, colors: st.Colors}
}

// Reset discards the nesting state so the encoder can start a new top
// level value.
func (e *Encoder) Reset() {
	e.stack = e.stack[:0]
	e.afterKey = false
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

func (e *Encoder) newline(depth int) {
	if !e.pretty {
		return
	}
	e.buf = append(e.buf, '\n')
	for range depth {
		e.buf = append(e.buf, indentUnit...)
	}
}

// beforeValue writes the separator and indentation preceding a value or a
// key in the current container.
func (e *Encoder) beforeValue() {
	if e.afterKey {
		e.afterKey = false
		return
	}
	if len(e.stack) == 0 {
		return
	}
	top := &e.stack[len(e.stack)-1]
	if top.n > 0 {
		e.buf = append(e.buf, e.colors.PaintSep(",")...)
	}
	top.n++
	e.newline(len(e.stack))
}

func (e *Encoder) begin(array bool) error {
	e.beforeValue()
	if array {
		e.buf = append(e.buf, '[')
	} else {
		e.buf = append(e.buf, '{')
	}
	e.stack = append(e.stack, frame{array: array})
	return e.flush()
}

func (e *Encoder) end(array bool) error {
	n := len(e.stack)
	if n == 0 || e.stack[n-1].array != array {
		return &stream.Error{Msg: "json: unbalanced container end"}
	}
	top := e.stack[n-1]
	e.stack = e.stack[:n-1]
	if top.n > 0 {
		e.newline(n - 1)
	}
	if array {
		e.buf = append(e.buf, ']')
	} else {
		e.buf = append(e.buf, '}')
	}
	return e.flush()
}

func (e *Encoder) BeginObject() error { return e.begin(false) }
func (e *Encoder) EndObject() error { return e.end(false) }
func (e *Encoder) BeginArray() error { return e.begin(true) }
func (e *Encoder) EndArray() error { return e.end(true) }

// WriteKey writes an object key. Scalar keys from formats with typed keys
// are converted to their canonical text; containers and null are rejected.
func (e *Encoder) WriteKey(key *stream.Event) error {
	k, err := stream.KeyString(key)
	if err != nil {
		return err
	}
	e.beforeValue()
	e.buf = append(e.buf, e.colors.PaintKey(quote(k))...)
	e.buf = append(e.buf, e.colors.PaintSep(":")...)
	if e.pretty {
		e.buf = append(e.buf, ' ')
	}
	e.afterKey = true
	return e.flush()
}

func (e *Encoder) scalar(s string) error {
	e.beforeValue()
	e.buf = append(e.buf, s...)
	return e.flush()
}

func (e *Encoder) WriteString(v string) error {
	return e.scalar(e.colors.PaintString(quote(v)))
}

func (e *Encoder) WriteInt(v int64) error {
	return e.scalar(e.colors.PaintNumber(strconv.FormatInt(v, 10)))
}

func (e *Encoder) WriteUint(v uint64) error {
	return e.scalar(e.colors.PaintNumber(strconv.FormatUint(v, 10)))
}

// WriteFloat rejects NaN and the infinities, which JSON has no literal for.
func (e *Encoder) WriteFloat(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: json: cannot represent %v", stream.ErrUnsupportedValue, v)
	}
	return e.scalar(e.colors.PaintNumber(stream.FormatFloat(v)))
}

func (e *Encoder) WriteBool(v bool) error {
	return e.scalar(e.colors.PaintBool(strconv.FormatBool(v)))
}

func (e *Encoder) WriteNull() error {
	return e.scalar(e.colors.PaintNull("null"))
}

const hex = "0123456789abcdef"

// quote returns s as a JSON string literal. Only the characters JSON
// requires are escaped; invalid UTF-8 becomes U+FFFD.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				b.WriteString(`\"`)
			case c == '\\':
				b.WriteString(`\\`)
			case c == '\n':
				b.WriteString(`\n`)
			case c == '\r':
				b.WriteString(`\r`)
			case c == '\t':
				b.WriteString(`\t`)
			case c == '\b':
				b.WriteString(`\b`)
			case c == '\f':
				b.WriteString(`\f`)
			case c < 0x20:
				b.WriteString(`\u00`)
				b.WriteByte(hex[c>>4])
				b.WriteByte(hex[c&0xf])
			default:
				b.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b.WriteString("\ufffd")
		} else {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	b.WriteByte('"')
	return b.String()
}
