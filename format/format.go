package format

import (
	"errors"
	"fmt"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	TOMLFormat
)

var (
	ErrUnrecognizedFormat      = errors.New("unrecognized format")
	ErrUnsupportedOutputFormat = errors.New("unsupported output format")
)

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":    JSONFormat,
		"json": JSONFormat,
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
		"t":    TOMLFormat,
		"toml": TOMLFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, v)
}

// ParseOutputFormat parses v like ParseFormat and additionally requires the
// format to have a serializer.
func ParseOutputFormat(v string) (Format, error) {
	f, err := ParseFormat(v)
	if err != nil {
		return 0, err
	}
	if !f.CanOutput() {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOutputFormat, f)
	}
	return f, nil
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case TOMLFormat:
		return []byte("toml"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

// CanOutput reports whether documents can be written in this format.
// TOML is input only.
func (f Format) CanOutput() bool {
	switch f {
	case JSONFormat, YAMLFormat:
		return true
	default:
		return false
	}
}

// MultiDocument reports whether one input stream may hold more than one
// document.
func (f Format) MultiDocument() bool {
	switch f {
	case JSONFormat, YAMLFormat:
		return true
	default:
		return false
	}
}

// Suffix returns the canonical file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case TOMLFormat:
		return ".toml"
	default:
		return ""
	}
}

// Suffixes returns every file extension recognized for this format.
func (f Format) Suffixes() []string {
	switch f {
	case YAMLFormat:
		return []string{".yaml", ".yml"}
	case JSONFormat, TOMLFormat:
		return []string{f.Suffix()}
	default:
		return nil
	}
}

// AllFormats returns all supported formats.
func AllFormats() []Format {
	return []Format{JSONFormat, YAMLFormat, TOMLFormat}
}
