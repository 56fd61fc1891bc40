// Package style decides, once per run, how output is laid out: pretty or
// compact, with or without terminal colors.
package style

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Mode selects pretty or compact layout.
type Mode int

const (
	// Auto is pretty on terminals and compact elsewhere.
	Auto Mode = iota
	Pretty
	Compact
)

// ColorMode selects whether pretty output is colored.
type ColorMode int

const (
	// ColorAuto colors pretty output written to a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Style is the layout decision for a whole run. It is made once and handed
// to the encoders; nothing re-evaluates it per document.
type Style struct {
	Pretty bool
	Colors *Colors
}

// Select decides the style for output written to w.
func Select(w io.Writer, mode Mode, color ColorMode) Style {
	term := IsTerminal(w)
	var st Style
	switch mode {
	case Pretty:
		st.Pretty = true
	case Compact:
		st.Pretty = false
	default:
		st.Pretty = term
	}
	if !st.Pretty {
		return st
	}
	switch color {
	case ColorAlways:
		st.Colors = NewColors(true)
	case ColorAuto:
		if term {
			st.Colors = NewColors(false)
		}
	}
	return st
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
