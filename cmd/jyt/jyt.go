package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jyt/internal/input"
	"github.com/signadot/jyt/style"
	"github.com/signadot/jyt/transcode"
)

func jytMain(cfg *JytConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Jyt.Parse(cc, args)
	if err != nil {
		cfg.Jyt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if err := cfg.check(); err != nil {
		cfg.Jyt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		cfg.Jyt.Usage(cc, fmt.Errorf("%w: at most one input file", cli.ErrUsage))
		return cli.ExitCodeErr(1)
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	if err := run(cfg, path, cc.In, cc.Out, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "jyt error: %v\n", err)
		return cli.ExitCodeErr(1)
	}
	return nil
}

// run transcodes the input at path (or stdin) to the -o file or stdout.
func run(cfg *JytConfig, path string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	in, err := input.Open(path, stdin)
	if err != nil {
		return err
	}
	defer in.Close()

	data := in.Bytes()
	w := stdout
	if cfg.Out != "" && cfg.Out != "-" {
		if in.Mapped() && sameFile(path, cfg.Out) {
			// truncating a mapped file invalidates the mapping
			data = bytes.Clone(data)
		}
		f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	tcfg := transcode.Config{
		From:  cfg.inputFormat(path),
		To:    cfg.To,
		Style: style.Select(w, cfg.mode(), cfg.colorMode()),
		Log:   newLogger(stderr, cfg.Verbose),
	}
	if tcfg.Log != nil {
		tcfg.Log.Debug("input", "name", in.Name(), "mapped", in.Mapped(), "format", tcfg.From)
	}
	_, err = transcode.Run(w, data, tcfg)
	return err
}

func sameFile(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}
