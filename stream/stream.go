package stream

// Decoder produces the events of its input one at a time.
//
// ReadEvent returns io.EOF once the producer has no more events. Errors
// caused by the input itself wrap ErrMalformedInput.
type Decoder interface {
	ReadEvent() (*Event, error)
}

// Encoder consumes events as method calls and writes them to its
// destination as they arrive.
//
// WriteKey receives the key event unchanged: EventKey, or for formats with
// typed keys, a scalar event.
type Encoder interface {
	BeginObject() error
	EndObject() error
	BeginArray() error
	EndArray() error

	WriteKey(key *Event) error
	WriteString(value string) error
	WriteInt(value int64) error
	WriteUint(value uint64) error
	WriteFloat(value float64) error
	WriteBool(value bool) error
	WriteNull() error
}

// WriteScalar writes a scalar event with the matching Encoder method.
func WriteScalar(enc Encoder, e *Event) error {
	switch e.Type {
	case EventString:
		return enc.WriteString(e.String)
	case EventInt:
		return enc.WriteInt(e.Int)
	case EventUint:
		return enc.WriteUint(e.Uint)
	case EventFloat:
		return enc.WriteFloat(e.Float)
	case EventBool:
		return enc.WriteBool(e.Bool)
	case EventNull:
		return enc.WriteNull()
	default:
		return &Error{Msg: "not a scalar: " + e.Type.String()}
	}
}
