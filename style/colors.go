package style

import (
	"github.com/fatih/color"
)

// Colors paints the pieces of pretty output. A nil *Colors paints nothing.
type Colors struct {
	Key    func(...any) string
	String func(...any) string
	Number func(...any) string
	Bool   func(...any) string
	Null   func(...any) string
	Sep    func(...any) string
}

// NewColors returns the default palette. With force set, escape codes are
// emitted even when the color package would otherwise disable them (for
// example because NO_COLOR is set or stdout is not a terminal).
func NewColors(force bool) *Colors {
	mk := func(c *color.Color) func(...any) string {
		if force {
			c.EnableColor()
		}
		return c.SprintFunc()
	}
	return &Colors{
		Key:    mk(color.RGB(128, 168, 196)),
		String: mk(color.RGB(8, 196, 16)),
		Number: mk(color.RGB(128, 216, 236)),
		Bool:   mk(color.New(color.FgCyan)),
		Null:   mk(color.RGB(168, 0, 196)),
		Sep:    mk(color.RGB(255, 0, 196)),
	}
}

func paint(f func(...any) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}

func (c *Colors) PaintKey(s string) string {
	if c == nil {
		return s
	}
	return paint(c.Key, s)
}

func (c *Colors) PaintString(s string) string {
	if c == nil {
		return s
	}
	return paint(c.String, s)
}

func (c *Colors) PaintNumber(s string) string {
	if c == nil {
		return s
	}
	return paint(c.Number, s)
}

func (c *Colors) PaintBool(s string) string {
	if c == nil {
		return s
	}
	return paint(c.Bool, s)
}

func (c *Colors) PaintNull(s string) string {
	if c == nil {
		return s
	}
	return paint(c.Null, s)
}

func (c *Colors) PaintSep(s string) string {
	if c == nil {
		return s
	}
	return paint(c.Sep, s)
}
