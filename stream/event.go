package stream

import (
	"fmt"
	"strconv"
)

// Event represents a structural event from a decoder.
// Events correspond to the encoder's API methods, providing a symmetric
// encode/decode interface.
type Event struct {
	Type EventType

	// Value fields (only one is set based on Type)
	Key    string
	String string
	Int    int64
	Uint   uint64
	Float  float64
	Bool   bool
}

// IsValueStart returns true if this event starts a value (as opposed to a key or end marker).
func (e *Event) IsValueStart() bool {
	return e.Type == EventBeginObject ||
		e.Type == EventBeginArray ||
		e.IsScalar()
}

// IsScalar returns true for events which carry a complete value.
func (e *Event) IsScalar() bool {
	switch e.Type {
	case EventString, EventInt, EventUint, EventFloat, EventBool, EventNull:
		return true
	default:
		return false
	}
}

func (e *Event) GoString() string {
	switch e.Type {
	case EventKey:
		return fmt.Sprintf("Key(%q)", e.Key)
	case EventString:
		return fmt.Sprintf("String(%q)", e.String)
	case EventInt:
		return "Int(" + strconv.FormatInt(e.Int, 10) + ")"
	case EventUint:
		return "Uint(" + strconv.FormatUint(e.Uint, 10) + ")"
	case EventFloat:
		return "Float(" + strconv.FormatFloat(e.Float, 'g', -1, 64) + ")"
	case EventBool:
		return "Bool(" + strconv.FormatBool(e.Bool) + ")"
	default:
		return e.Type.String()
	}
}

// EventType represents the type of a structural event.
type EventType int

const (
	EventBeginObject EventType = iota
	EventEndObject
	EventBeginArray
	EventEndArray
	EventKey
	EventString
	EventInt
	EventUint
	EventFloat
	EventBool
	EventNull
)

func (t EventType) String() string {
	switch t {
	case EventBeginObject:
		return "BeginObject"
	case EventEndObject:
		return "EndObject"
	case EventBeginArray:
		return "BeginArray"
	case EventEndArray:
		return "EndArray"
	case EventKey:
		return "Key"
	case EventString:
		return "String"
	case EventInt:
		return "Int"
	case EventUint:
		return "Uint"
	case EventFloat:
		return "Float"
	case EventBool:
		return "Bool"
	case EventNull:
		return "Null"
	default:
		return "Unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
