package transcode

import (
	"fmt"
	"io"

	jsoncodec "github.com/signadot/jyt/codec/json"
	yamlcodec "github.com/signadot/jyt/codec/yaml"
	"github.com/signadot/jyt/format"
	"github.com/signadot/jyt/stream"
	"github.com/signadot/jyt/style"
)

// Output writes documents to a destination in one format.
type Output interface {
	// Transcode copies exactly one value from dec.
	Transcode(dec stream.Decoder) error
}

// NewOutput returns the Output for format to writing to w.
func NewOutput(w io.Writer, to format.Format, st style.Style) (Output, error) {
	switch to {
	case format.JSONFormat:
		return &jsonOutput{w: w, enc: jsoncodec.NewEncoder(w, st)}, nil
	case format.YAMLFormat:
		return &yamlOutput{enc: yamlcodec.NewEncoder(w, st)}, nil
	default:
		return nil, fmt.Errorf("%w: %v", format.ErrUnsupportedOutputFormat, to)
	}
}

// jsonOutput terminates every document with a newline.
type jsonOutput struct {
	w   io.Writer
	enc *jsoncodec.Encoder
}

func (o *jsonOutput) Transcode(dec stream.Decoder) error {
	o.enc.Reset()
	if err := stream.Transcode(dec, o.enc); err != nil {
		return err
	}
	if _, err := io.WriteString(o.w, "\n"); err != nil {
		return &stream.IOError{Err: err}
	}
	return nil
}

// yamlOutput relies on the encoder to separate documents.
type yamlOutput struct {
	enc *yamlcodec.Encoder
}

func (o *yamlOutput) Transcode(dec stream.Decoder) error {
	return stream.Transcode(dec, o.enc)
}
