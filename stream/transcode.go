package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/signadot/jyt/debug"
)

// Transcode copies exactly one value from dec to enc.
//
// The copy is a depth-first walk driven by the decoder's events: scalars
// are written with their native type, containers are opened on enc, their
// children copied in source order, then closed. Bytes reach the encoder's
// destination as the walk proceeds.
//
// Any failure aborts the copy and is returned as a *TranscodeError.
func Transcode(dec Decoder, enc Encoder) error {
	t := &transcoder{dec: dec, enc: enc, state: NewState()}
	ev, err := t.next()
	if err == nil {
		err = t.value(ev)
	}
	if err != nil {
		return &TranscodeError{Path: t.state.CurrentPath(), Err: err}
	}
	return nil
}

type transcoder struct {
	dec   Decoder
	enc   Encoder
	state *State
}

func (t *transcoder) next() (*Event, error) {
	ev, err := t.dec.ReadEvent()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInput, io.ErrUnexpectedEOF)
	}
	if err != nil {
		return nil, err
	}
	if debug.Events() {
		debug.Logf("event %#v depth=%d\n", ev, t.state.Depth())
	}
	return ev, nil
}

func (t *transcoder) value(ev *Event) error {
	if !ev.IsValueStart() {
		return &Error{Msg: "unexpected " + ev.Type.String() + " in value position"}
	}
	switch ev.Type {
	case EventBeginObject:
		return t.object(ev)
	case EventBeginArray:
		return t.array(ev)
	}
	if err := t.state.ProcessEvent(ev); err != nil {
		return err
	}
	return WriteScalar(t.enc, ev)
}

func (t *transcoder) object(ev *Event) error {
	if err := t.state.ProcessEvent(ev); err != nil {
		return err
	}
	if err := t.enc.BeginObject(); err != nil {
		return err
	}
	for {
		k, err := t.next()
		if err != nil {
			return err
		}
		if k.Type == EventEndObject {
			if err := t.state.ProcessEvent(k); err != nil {
				return err
			}
			return t.enc.EndObject()
		}
		if k.Type != EventKey && !k.IsScalar() {
			return fmt.Errorf("%w: %s in key position", ErrUnsupportedKeyType, k.Type)
		}
		if err := t.state.ProcessEvent(k); err != nil {
			return err
		}
		if err := t.enc.WriteKey(k); err != nil {
			return err
		}
		v, err := t.next()
		if err != nil {
			return err
		}
		if err := t.value(v); err != nil {
			return err
		}
	}
}

func (t *transcoder) array(ev *Event) error {
	if err := t.state.ProcessEvent(ev); err != nil {
		return err
	}
	if err := t.enc.BeginArray(); err != nil {
		return err
	}
	for {
		v, err := t.next()
		if err != nil {
			return err
		}
		if v.Type == EventEndArray {
			if err := t.state.ProcessEvent(v); err != nil {
				return err
			}
			return t.enc.EndArray()
		}
		if err := t.value(v); err != nil {
			return err
		}
	}
}
