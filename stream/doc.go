// Package stream provides the structural event model shared by every jyt
// codec and the bridge that copies one value from a producer to a consumer.
//
// A producer ([Decoder]) reports the shape of its input as a sequence of
// events. A consumer ([Encoder]) accepts the same vocabulary as method
// calls. [Transcode] connects any producer to any consumer, so each format
// implements only its own half and no format pair needs a dedicated
// converter.
//
// # Example
//
//	dec := json.NewDecoder(input)          // github.com/signadot/jyt/codec/json
//	enc := yaml.NewEncoder(w)              // github.com/signadot/jyt/codec/yaml
//	if err := stream.Transcode(dec, enc); err != nil {
//	    return err
//	}
//
// For the input {"name": "value"} the decoder yields
//
//	EventBeginObject
//	EventKey("name")
//	EventString("value")
//	EventEndObject
//
// and Transcode calls BeginObject, WriteKey, WriteString and EndObject on
// the encoder, in that order, as the events arrive. No value is built in
// between: memory grows with nesting depth only.
//
// # Keys
//
// Object keys are usually [EventKey]. Formats with typed keys (YAML) may
// report a scalar event in key position instead; encoders that need string
// keys convert them with [KeyString]. A container in key position is
// rejected with [ErrUnsupportedKeyType].
//
// # Errors
//
// Failures are classified by sentinel errors ([ErrMalformedInput],
// [ErrUnsupportedValue], [ErrUnsupportedKeyType]) and [*IOError], and
// reported by Transcode as a [*TranscodeError] carrying the path of the
// value being copied.
package stream
