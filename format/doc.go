// Package format is the registry of serialization formats jyt understands.
//
// # Usage
//
//	// Parse a format name or its single letter abbreviation
//	f, err := format.ParseFormat("y")
//
//	// Parse an output format, rejecting input-only formats
//	out, err := format.ParseOutputFormat("toml") // ErrUnsupportedOutputFormat
//
//	// Pick the input format from a file name
//	in := format.Resolve("config.toml", format.YAMLFormat)
//
// The set of formats is closed: JSON and YAML can be read and written and
// may hold several documents in one stream, TOML is read only and holds a
// single document.
//
// # Related Packages
//
//   - github.com/signadot/jyt/transcode - stream documents between formats
//   - github.com/signadot/jyt/stream - event model shared by all codecs
package format
