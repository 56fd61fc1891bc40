package stream

import (
	"errors"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type sliceDecoder struct {
	events []Event
	read   int
}

func (d *sliceDecoder) ReadEvent() (*Event, error) {
	if d.read >= len(d.events) {
		return nil, io.EOF
	}
	ev := d.events[d.read]
	d.read++
	return &ev, nil
}

// recorder is an Encoder which records the calls it receives.
type recorder struct {
	calls  []string
	failAt int
}

func (r *recorder) add(s string) error {
	r.calls = append(r.calls, s)
	if r.failAt > 0 && len(r.calls) == r.failAt {
		return &IOError{Err: errors.New("disk full")}
	}
	return nil
}

func (r *recorder) BeginObject() error { return r.add("{") }
func (r *recorder) EndObject() error { return r.add("}") }
func (r *recorder) BeginArray() error { return r.add("[") }
func (r *recorder) EndArray() error { return r.add("]") }
func (r *recorder) WriteKey(k *Event) error {
	s, err := KeyString(k)
	if err != nil {
		return err
	}
	return r.add("key:" + s)
}
func (r *recorder) WriteString(v string) error { return r.add("str:" + v) }
func (r *recorder) WriteInt(v int64) error { return r.add(fmt.Sprintf("int:%d", v)) }
func (r *recorder) WriteUint(v uint64) error { return r.add(fmt.Sprintf("uint:%d", v)) }
func (r *recorder) WriteFloat(v float64) error { return r.add("float:" + FormatFloat(v)) }
func (r *recorder) WriteBool(v bool) error { return r.add(fmt.Sprintf("bool:%v", v)) }
func (r *recorder) WriteNull() error { return r.add("null") }

func TestTranscodeNested(t *testing.T) {
	dec := &sliceDecoder{events: []Event{
		{Type: EventBeginObject},
		{Type: EventKey, Key: "zeta"},
		{Type: EventString, String: "z"},
		{Type: EventKey, Key: "alpha"},
		{Type: EventBeginArray},
		{Type: EventInt, Int: -1},
		{Type: EventUint, Uint: math.MaxUint64},
		{Type: EventFloat, Float: 2.5},
		{Type: EventBool, Bool: true},
		{Type: EventNull},
		{Type: EventBeginObject},
		{Type: EventEndObject},
		{Type: EventEndArray},
		{Type: EventInt, Int: 3},
		{Type: EventString, String: "int key"},
		{Type: EventEndObject},
	}}
	rec := &recorder{}
	if err := Transcode(dec, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{
		"{",
		"key:zeta", "str:z",
		"key:alpha", "[", "int:-1", "uint:18446744073709551615", "float:2.5", "bool:true", "null", "{", "}", "]",
		"key:3", "str:int key",
		"}",
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestTranscodeReadsOneValue(t *testing.T) {
	dec := &sliceDecoder{events: []Event{
		{Type: EventInt, Int: 1},
		{Type: EventInt, Int: 2},
	}}
	rec := &recorder{}
	if err := Transcode(dec, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.read != 1 {
		t.Errorf("expected 1 event consumed, got %d", dec.read)
	}
	if err := Transcode(dec, rec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"int:1", "int:2"}, rec.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestTranscodeTruncated(t *testing.T) {
	dec := &sliceDecoder{events: []Event{
		{Type: EventBeginArray},
		{Type: EventInt, Int: 1},
	}}
	err := Transcode(dec, &recorder{})
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestTranscodeContainerKey(t *testing.T) {
	dec := &sliceDecoder{events: []Event{
		{Type: EventBeginObject},
		{Type: EventBeginArray},
		{Type: EventEndArray},
		{Type: EventInt, Int: 1},
		{Type: EventEndObject},
	}}
	err := Transcode(dec, &recorder{})
	if !errors.Is(err, ErrUnsupportedKeyType) {
		t.Fatalf("expected ErrUnsupportedKeyType, got %v", err)
	}
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Errorf("expected ErrUnsupportedKeyType to classify as ErrUnsupportedValue")
	}
}

func TestTranscodeNullKeyRejectedByEncoder(t *testing.T) {
	dec := &sliceDecoder{events: []Event{
		{Type: EventBeginObject},
		{Type: EventNull},
		{Type: EventInt, Int: 1},
		{Type: EventEndObject},
	}}
	err := Transcode(dec, &recorder{})
	if !errors.Is(err, ErrUnsupportedKeyType) {
		t.Fatalf("expected ErrUnsupportedKeyType, got %v", err)
	}
}

func TestTranscodeErrorPath(t *testing.T) {
	dec := &sliceDecoder{events: []Event{
		{Type: EventBeginObject},
		{Type: EventKey, Key: "a"},
		{Type: EventBeginArray},
		{Type: EventInt, Int: 1},
		{Type: EventInt, Int: 2},
		{Type: EventEndArray},
		{Type: EventEndObject},
	}}
	rec := &recorder{failAt: 5}
	err := Transcode(dec, rec)
	var te *TranscodeError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TranscodeError, got %v", err)
	}
	if te.Path != "a[1]" {
		t.Errorf("expected path a[1], got %q", te.Path)
	}
	var ioe *IOError
	if !errors.As(err, &ioe) {
		t.Errorf("expected *IOError, got %v", err)
	}
}

func TestTranscodeNotAValue(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{"end array", []Event{{Type: EventEndArray}}},
		{"end object", []Event{{Type: EventEndObject}}},
		{"key", []Event{{Type: EventKey, Key: "k"}}},
		{"key as value", []Event{{Type: EventBeginObject}, {Type: EventKey, Key: "a"}, {Type: EventKey, Key: "b"}}},
		{"end after key", []Event{{Type: EventBeginObject}, {Type: EventKey, Key: "a"}, {Type: EventEndObject}}},
	}
	for _, tt := range tests {
		dec := &sliceDecoder{events: tt.events}
		if err := Transcode(dec, &recorder{}); !errors.Is(err, ErrMalformedInput) {
			t.Errorf("%s: expected ErrMalformedInput, got %v", tt.name, err)
		}
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
		err  bool
	}{
		{Event{Type: EventKey, Key: "k"}, "k", false},
		{Event{Type: EventString, String: "s"}, "s", false},
		{Event{Type: EventInt, Int: -4}, "-4", false},
		{Event{Type: EventUint, Uint: 5}, "5", false},
		{Event{Type: EventBool, Bool: true}, "true", false},
		{Event{Type: EventFloat, Float: 1.5}, "1.5", false},
		{Event{Type: EventFloat, Float: math.NaN()}, "", true},
		{Event{Type: EventNull}, "", true},
		{Event{Type: EventBeginObject}, "", true},
	}
	for _, tt := range tests {
		got, err := KeyString(&tt.ev)
		if tt.err {
			if !errors.Is(err, ErrUnsupportedKeyType) {
				t.Errorf("%#v: expected ErrUnsupportedKeyType, got %v", &tt.ev, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%#v: unexpected error: %v", &tt.ev, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%#v: expected %q, got %q", &tt.ev, tt.want, got)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{1.5, "1.5"},
		{123456789, "123456789.0"},
		{1e21, "1e+21"},
		{1e-7, "1e-7"},
		{0.000001, "0.000001"},
		{3.14159, "3.14159"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
