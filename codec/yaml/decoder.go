// Package yaml implements the jyt event producer and consumer for YAML.
//
// Documents are parsed one at a time into yaml.Node trees with
// gopkg.in/yaml.v3 and replayed as events. The encoder is a streaming
// block-style emitter.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/jyt/stream"
	"gopkg.in/yaml.v3"
)

// Documents iterates over the documents of a YAML stream.
type Documents struct {
	dec *yaml.Decoder
}

// NewDocuments creates a document iterator over input.
func NewDocuments(input []byte) *Documents {
	return &Documents{dec: yaml.NewDecoder(bytes.NewReader(input))}
}

// Next parses the next document and returns a Decoder replaying it. It
// returns io.EOF when the stream holds no more documents; a stream with no
// documents at all returns io.EOF immediately.
func (d *Documents) Next() (*Decoder, error) {
	var doc yaml.Node
	if err := d.dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: %w", stream.ErrMalformedInput, err)
	}
	return NewNodeDecoder(&doc), nil
}

// Decoder replays a yaml.Node tree as events.
type Decoder struct {
	root    *yaml.Node
	started bool
	stack   []frame

	// nodes entered, and how many of those were reached through an alias
	decoded int
	aliased int
}

type frame struct {
	node    *yaml.Node
	mapping bool
	alias   bool
	i       int
}

var _ stream.Decoder = (*Decoder)(nil)

// NewNodeDecoder creates a Decoder for a single node, usually a
// yaml.DocumentNode.
func NewNodeDecoder(n *yaml.Node) *Decoder {
	return &Decoder{root: n}
}

// ReadEvent returns the next event of the document, then io.EOF.
func (d *Decoder) ReadEvent() (*stream.Event, error) {
	if !d.started {
		d.started = true
		return d.enter(d.root, false)
	}
	if len(d.stack) == 0 {
		return nil, io.EOF
	}
	top := &d.stack[len(d.stack)-1]
	if top.i >= len(top.node.Content) {
		d.stack = d.stack[:len(d.stack)-1]
		if top.mapping {
			return &stream.Event{Type: stream.EventEndObject}, nil
		}
		return &stream.Event{Type: stream.EventEndArray}, nil
	}
	child := top.node.Content[top.i]
	key := top.mapping && top.i%2 == 0
	top.i++
	return d.enter(child, key)
}

func (d *Decoder) onStack(n *yaml.Node) bool {
	for i := range d.stack {
		if d.stack[i].node == n {
			return true
		}
	}
	return false
}

func (d *Decoder) enter(n *yaml.Node, key bool) (*stream.Event, error) {
	alias := n.Kind == yaml.AliasNode || (len(d.stack) > 0 && d.stack[len(d.stack)-1].alias)
	if err := d.count(n, alias); err != nil {
		return nil, err
	}
	for n.Kind == yaml.AliasNode {
		if n.Alias == nil {
			return nil, malformed(n, "unknown anchor %q", n.Value)
		}
		if d.onStack(n.Alias) {
			return nil, malformed(n, "anchor %q contains itself", n.Value)
		}
		n = n.Alias
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &stream.Event{Type: stream.EventNull}, nil
		}
		return d.enter(n.Content[0], key)
	case yaml.MappingNode:
		if len(n.Content)%2 != 0 {
			return nil, malformed(n, "mapping with odd number of nodes")
		}
		d.stack = append(d.stack, frame{node: n, mapping: true, alias: alias})
		return &stream.Event{Type: stream.EventBeginObject}, nil
	case yaml.SequenceNode:
		d.stack = append(d.stack, frame{node: n, alias: alias})
		return &stream.Event{Type: stream.EventBeginArray}, nil
	case yaml.ScalarNode:
		return scalarEvent(n, key)
	default:
		return nil, malformed(n, "unexpected node kind %d", n.Kind)
	}
}

// count bounds alias expansion. Replaying aliases can turn a small
// document into an exponentially large event stream, so once a document
// is mostly made of aliased nodes the replay is refused. The ratio allowed
// shrinks as the document grows.
func (d *Decoder) count(n *yaml.Node, alias bool) error {
	d.decoded++
	if alias {
		d.aliased++
	}
	if d.aliased > 100 && d.decoded > 1000 &&
		float64(d.aliased)/float64(d.decoded) > allowedAliasRatio(d.decoded) {
		return malformed(n, "document contains excessive aliasing")
	}
	return nil
}

func allowedAliasRatio(decoded int) float64 {
	switch {
	case decoded <= 400_000:
		return 0.99
	case decoded >= 4_000_000:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decoded-400_000)/3_600_000)
	}
}

func malformed(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%w: yaml: line %d: %s", stream.ErrMalformedInput, n.Line, fmt.Sprintf(format, args...))
}

// scalarEvent resolves a scalar by its core schema tag. Timestamps, binary
// and application tags keep their source text as a string.
func scalarEvent(n *yaml.Node, key bool) (*stream.Event, error) {
	switch n.ShortTag() {
	case "!!null":
		return &stream.Event{Type: stream.EventNull}, nil
	case "!!bool":
		b, ok := parseBool(n.Value)
		if !ok {
			return nil, malformed(n, "invalid !!bool %q", n.Value)
		}
		return &stream.Event{Type: stream.EventBool, Bool: b}, nil
	case "!!int":
		if ev, ok := intEvent(n.Value); ok {
			return ev, nil
		}
		return nil, malformed(n, "invalid !!int %q", n.Value)
	case "!!float":
		f, ok := parseFloat(n.Value)
		if !ok {
			return nil, malformed(n, "invalid !!float %q", n.Value)
		}
		return &stream.Event{Type: stream.EventFloat, Float: f}, nil
	default:
		if key {
			return &stream.Event{Type: stream.EventKey, Key: n.Value}, nil
		}
		return &stream.Event{Type: stream.EventString, String: n.Value}, nil
	}
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "yes", "y", "on":
		return true, true
	case "false", "no", "n", "off":
		return false, true
	}
	return false, false
}

func intEvent(s string) (*stream.Event, bool) {
	plain := strings.ReplaceAll(s, "_", "")
	if i, err := strconv.ParseInt(plain, 0, 64); err == nil {
		return &stream.Event{Type: stream.EventInt, Int: i}, true
	}
	if u, err := strconv.ParseUint(strings.TrimPrefix(plain, "+"), 0, 64); err == nil {
		return &stream.Event{Type: stream.EventUint, Uint: u}, true
	}
	// Integers beyond 64 bits degrade to floats.
	if f, err := strconv.ParseFloat(plain, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return &stream.Event{Type: stream.EventFloat, Float: f}, true
	}
	return nil, false
}

func parseFloat(s string) (float64, bool) {
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		return math.Inf(1), true
	case "-.inf":
		return math.Inf(-1), true
	case ".nan":
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}
