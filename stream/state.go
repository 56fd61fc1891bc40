package stream

import (
	"strconv"
	"strings"
)

// State provides minimal stack/state/path management.
// Just processes events and tracks state - no tokenization, no io.Reader.
type State struct {
	stack []item
}

type item struct {
	array  bool
	n      int // values started in this container
	key    string
	hasKey bool
}

// NewState creates a new State for tracking structure state.
func NewState() *State {
	return &State{}
}

func (s *State) pop() {
	n := len(s.stack)
	s.stack = s.stack[:n-1]
}

func (s *State) current() *item {
	n := len(s.stack)
	return &s.stack[n-1]
}

func (s *State) valueStart() error {
	if len(s.stack) == 0 {
		return nil
	}
	cur := s.current()
	if !cur.array {
		if !cur.hasKey {
			return &Error{Msg: "value without key at " + s.CurrentPath()}
		}
		cur.hasKey = false
	}
	cur.n++
	return nil
}

// ProcessEvent processes an event and updates state/path tracking.
// Call this for each event in order. A scalar event arriving where an
// object expects a key is taken as that key.
func (s *State) ProcessEvent(event *Event) error {
	switch event.Type {
	case EventBeginObject, EventBeginArray:
		if err := s.valueStart(); err != nil {
			return err
		}
		s.stack = append(s.stack, item{array: event.Type == EventBeginArray})

	case EventEndObject:
		if s.Depth() <= 0 {
			return &Error{Msg: "negative depth"}
		}
		cur := s.current()
		if cur.array {
			return &Error{Msg: "end of object inside array"}
		}
		if cur.hasKey {
			return &Error{Msg: "key without value at " + s.CurrentPath()}
		}
		s.pop()

	case EventEndArray:
		if s.Depth() <= 0 {
			return &Error{Msg: "negative depth"}
		}
		if !s.current().array {
			return &Error{Msg: "end of array inside object"}
		}
		s.pop()

	case EventKey:
		if !s.AtKey() {
			return &Error{Msg: "key not in object"}
		}
		cur := s.current()
		cur.hasKey = true
		cur.key = event.Key

	default:
		if s.AtKey() {
			cur := s.current()
			cur.hasKey = true
			cur.key = keyText(event)
			return nil
		}
		return s.valueStart()
	}
	return nil
}

// Depth returns the current nesting depth (0 = top level).
func (s *State) Depth() int {
	return len(s.stack)
}

// AtKey reports whether the next event is expected to be an object key.
func (s *State) AtKey() bool {
	return s.IsInObject() && !s.current().hasKey
}

// CurrentPath returns the current path (e.g., "", "key", "key[0]", "a.b").
// Keys which are not plain words are quoted in brackets.
func (s *State) CurrentPath() string {
	var b strings.Builder
	for i := range s.stack {
		it := &s.stack[i]
		if it.array {
			if it.n > 0 {
				b.WriteString("[" + strconv.Itoa(it.n-1) + "]")
			}
			continue
		}
		if !it.hasKey && it.n == 0 {
			continue
		}
		if plainKey(it.key) {
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(it.key)
			continue
		}
		b.WriteString("[" + strconv.Quote(it.key) + "]")
	}
	return b.String()
}

// IsInObject returns true if currently inside an object.
func (s *State) IsInObject() bool {
	return len(s.stack) > 0 && !s.current().array
}

func keyText(e *Event) string {
	if k, err := KeyString(e); err == nil {
		return k
	}
	return e.GoString()
}

func plainKey(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return false
		}
	}
	return true
}
