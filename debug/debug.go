package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Events bool
	Input  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Events = boolEnv("JYT_DEBUG_EVENTS")
	d.Input = boolEnv("JYT_DEBUG_INPUT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Events reports whether every transcoded event should be traced.
func Events() bool {
	return d.Events
}

// Input reports whether input acquisition should be traced.
func Input() bool {
	return d.Input
}

// Logf writes a trace line to stderr.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "jyt: "+msg, args...)
}
