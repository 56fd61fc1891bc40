package transcode

import (
	"errors"
	"fmt"
	"io"
	"iter"

	jsoncodec "github.com/signadot/jyt/codec/json"
	tomlcodec "github.com/signadot/jyt/codec/toml"
	yamlcodec "github.com/signadot/jyt/codec/yaml"
	"github.com/signadot/jyt/format"
	"github.com/signadot/jyt/stream"
)

// Documents yields one decoder per document of input. Each decoder must be
// read through exactly one value before the iteration continues.
//
// JSON input is a sequence of whitespace separated values; YAML input is a
// stream of zero or more documents; TOML input is always one document.
func Documents(input []byte, from format.Format) iter.Seq2[stream.Decoder, error] {
	return func(yield func(stream.Decoder, error) bool) {
		switch from {
		case format.JSONFormat:
			dec := jsoncodec.NewDecoder(input)
			for dec.More() {
				if !yield(dec, nil) {
					return
				}
			}
		case format.YAMLFormat:
			docs := yamlcodec.NewDocuments(input)
			for {
				dec, err := docs.Next()
				if errors.Is(err, io.EOF) {
					return
				}
				if err != nil {
					yield(nil, err)
					return
				}
				if !yield(dec, nil) {
					return
				}
			}
		case format.TOMLFormat:
			dec, err := tomlcodec.NewDecoder(input)
			if err != nil {
				yield(nil, err)
				return
			}
			yield(dec, nil)
		default:
			yield(nil, fmt.Errorf("%w: %v", format.ErrUnrecognizedFormat, from))
		}
	}
}
