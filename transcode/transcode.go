package transcode

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"syscall"

	"github.com/signadot/jyt/format"
	"github.com/signadot/jyt/stream"
	"github.com/signadot/jyt/style"
)

// Config selects the formats and output style of a run.
type Config struct {
	From  format.Format
	To    format.Format
	Style style.Style

	// Log receives per-document progress at debug level. Nil discards.
	Log *slog.Logger
}

func (c *Config) logger() *slog.Logger {
	if c.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Log
}

// Result summarizes a run.
type Result struct {
	Documents int
}

// DocumentError reports the document in which a run stopped.
type DocumentError struct {
	Index int // zero based
	Err   error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document %d: %v", e.Index+1, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// All copies every document of input to out, in order. The first failure
// stops the run and is returned as a *DocumentError; Result counts the
// documents completed before it.
func All(input []byte, from format.Format, out Output) (Result, error) {
	return each(input, from, out, nil)
}

func each(input []byte, from format.Format, out Output, done func(i int) error) (Result, error) {
	var res Result
	for dec, err := range Documents(input, from) {
		if err != nil {
			return res, &DocumentError{Index: res.Documents, Err: err}
		}
		if err := out.Transcode(dec); err != nil {
			return res, &DocumentError{Index: res.Documents, Err: err}
		}
		if done != nil {
			if err := done(res.Documents); err != nil {
				return res, &DocumentError{Index: res.Documents, Err: &stream.IOError{Err: err}}
			}
		}
		res.Documents++
	}
	return res, nil
}

// Run transcodes input to w. Output of completed documents is written even
// when a later document fails; buffered output of the failed document is
// dropped. A destination which stops reading (a broken pipe) ends the run
// without error.
func Run(w io.Writer, input []byte, cfg Config) (Result, error) {
	log := cfg.logger()
	dw := newDocWriter(w)
	out, err := NewOutput(dw, cfg.To, cfg.Style)
	if err != nil {
		return Result{}, err
	}
	log.Debug("transcoding", "from", cfg.From, "to", cfg.To, "bytes", len(input), "pretty", cfg.Style.Pretty)
	res, err := each(input, cfg.From, out, func(i int) error {
		log.Debug("document done", "index", i)
		return dw.Commit()
	})
	if err != nil {
		aerr := dw.Abort()
		if IsBrokenPipe(err) || IsBrokenPipe(aerr) {
			log.Debug("output closed", "documents", res.Documents)
			return res, nil
		}
		return res, err
	}
	if err := dw.Flush(); err != nil {
		if IsBrokenPipe(err) {
			log.Debug("output closed", "documents", res.Documents)
			return res, nil
		}
		return res, &stream.IOError{Err: err}
	}
	log.Debug("done", "documents", res.Documents)
	return res, nil
}

// IsBrokenPipe reports whether err means the destination stopped reading.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
