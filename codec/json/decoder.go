// Package json implements the jyt event producer and consumer for JSON.
//
// The decoder reads a stream of whitespace separated, self-delimiting
// values with encoding/json's tokenizer. The encoder writes values
// incrementally in compact or pretty layout.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/signadot/jyt/stream"
)

// Decoder is a forward-only cursor over a buffer holding zero or more JSON
// values.
type Decoder struct {
	input []byte
	dec   *json.Decoder
	state *stream.State
	bad   int64 // offset of the first invalid UTF-8 byte, or -1
}

var _ stream.Decoder = (*Decoder)(nil)

// NewDecoder creates a Decoder positioned at the start of input.
func NewDecoder(input []byte) *Decoder {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()
	return &Decoder{
		input: input,
		dec:   dec,
		state: stream.NewState(),
		bad:   invalidUTF8(input),
	}
}

// invalidUTF8 returns the offset of the first byte which is not part of a
// valid UTF-8 sequence, or -1.
func invalidUTF8(b []byte) int64 {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, n := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && n == 1 {
			return int64(i)
		}
		i += n
	}
	return -1
}

// More reports whether unconsumed non-whitespace input remains after the
// current offset.
func (d *Decoder) More() bool {
	return len(skipSpace(d.input[d.Offset():])) > 0
}

// Offset returns the byte offset of the cursor in the input.
func (d *Decoder) Offset() int64 {
	return d.dec.InputOffset()
}

// ReadEvent reads the next structural event. Returns io.EOF when the input
// is exhausted between values.
func (d *Decoder) ReadEvent() (*stream.Event, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			if d.state.Depth() == 0 {
				return nil, io.EOF
			}
			err = io.ErrUnexpectedEOF
		}
		return nil, d.malformed(err)
	}
	// encoding/json replaces invalid UTF-8 with U+FFFD instead of failing.
	if d.bad >= 0 && d.dec.InputOffset() > d.bad {
		line, col := position(d.input, d.bad)
		return nil, fmt.Errorf("%w: json: line %d column %d: invalid UTF-8", stream.ErrMalformedInput, line, col)
	}
	ev, err := d.tokenToEvent(tok)
	if err != nil {
		return nil, err
	}
	if err := d.state.ProcessEvent(ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (d *Decoder) tokenToEvent(tok json.Token) (*stream.Event, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return &stream.Event{Type: stream.EventBeginObject}, nil
		case '}':
			return &stream.Event{Type: stream.EventEndObject}, nil
		case '[':
			return &stream.Event{Type: stream.EventBeginArray}, nil
		default:
			return &stream.Event{Type: stream.EventEndArray}, nil
		}
	case string:
		if d.state.AtKey() {
			return &stream.Event{Type: stream.EventKey, Key: v}, nil
		}
		return &stream.Event{Type: stream.EventString, String: v}, nil
	case json.Number:
		return numberEvent(v)
	case bool:
		return &stream.Event{Type: stream.EventBool, Bool: v}, nil
	case nil:
		return &stream.Event{Type: stream.EventNull}, nil
	default:
		return nil, fmt.Errorf("%w: json: unexpected token %T", stream.ErrMalformedInput, tok)
	}
}

// numberEvent keeps integers exact: int64 first, then uint64, and only
// falls back to float64 for fractions, exponents, or out of range values.
// "-0" has no integer form and is a float.
func numberEvent(n json.Number) (*stream.Event, error) {
	s := string(n)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if i == 0 && s[0] == '-' {
			return &stream.Event{Type: stream.EventFloat, Float: math.Copysign(0, -1)}, nil
		}
		return &stream.Event{Type: stream.EventInt, Int: i}, nil
	}
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return &stream.Event{Type: stream.EventUint, Uint: u}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, fmt.Errorf("%w: json: invalid number %q", stream.ErrMalformedInput, s)
	}
	return &stream.Event{Type: stream.EventFloat, Float: f}, nil
}

func (d *Decoder) malformed(err error) error {
	var serr *json.SyntaxError
	if errors.As(err, &serr) {
		// serr.Offset is relative to the value being decoded for some
		// errors; the decoder offset is always absolute.
		line, col := position(d.input, d.dec.InputOffset())
		return fmt.Errorf("%w: json: line %d column %d: %w", stream.ErrMalformedInput, line, col, err)
	}
	return fmt.Errorf("%w: json: %w", stream.ErrMalformedInput, err)
}

func position(input []byte, offset int64) (line, col int) {
	if offset > int64(len(input)) {
		offset = int64(len(input))
	}
	before := input[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}

func skipSpace(b []byte) []byte {
	for i, c := range b {
		switch c {
		case ' ', '\t', '\r', '\n':
		default:
			return b[i:]
		}
	}
	return nil
}
