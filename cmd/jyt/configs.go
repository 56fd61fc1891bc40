package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	"github.com/signadot/jyt/format"
	"github.com/signadot/jyt/style"
)

type JytConfig struct {
	Pretty  bool `cli:"name=p aliases=pretty desc='pretty print output (default on terminals)'"`
	Compact bool `cli:"name=c aliases=compact desc='compact output'"`
	Color   bool `cli:"name=color desc='color pretty output even when not on a terminal'"`
	NoColor bool `cli:"name=no-color desc='never color output'"`
	Verbose bool `cli:"name=v desc='log progress to stderr'"`

	To      format.Format
	From    *format.Format
	Default format.Format

	Out string

	Jyt *cli.Command
}

func newJytConfig() *JytConfig {
	return &JytConfig{
		To:      format.JSONFormat,
		Default: format.YAMLFormat,
	}
}

// outFmtOpt rejects formats jyt cannot write while flags are parsed, before
// any input is read.
func (cfg *JytConfig) outFmtOpt(_ *cli.Context, v string) (any, error) {
	f, err := format.ParseOutputFormat(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.To = f
	return f, nil
}

func (cfg *JytConfig) fmtFunc(set func(format.Format)) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		set(f)
		return f, nil
	})
}

// outOpt records the output path. The file is created only once the input
// has been read, so -o may name the input file.
func (cfg *JytConfig) outOpt(_ *cli.Context, a string) (any, error) {
	cfg.Out = a
	return a, nil
}

func (cfg *JytConfig) check() error {
	if cfg.Pretty && cfg.Compact {
		return fmt.Errorf("%w: must specify at most one of -p[retty] -c[ompact]", cli.ErrUsage)
	}
	if cfg.Color && cfg.NoColor {
		return fmt.Errorf("%w: must specify at most one of -color -no-color", cli.ErrUsage)
	}
	return nil
}

func (cfg *JytConfig) mode() style.Mode {
	switch {
	case cfg.Pretty:
		return style.Pretty
	case cfg.Compact:
		return style.Compact
	}
	return style.Auto
}

func (cfg *JytConfig) colorMode() style.ColorMode {
	switch {
	case cfg.Color:
		return style.ColorAlways
	case cfg.NoColor:
		return style.ColorNever
	}
	return style.ColorAuto
}

// inputFormat is -f if given, else the format named by the file extension,
// else -d.
func (cfg *JytConfig) inputFormat(path string) format.Format {
	if cfg.From != nil {
		return *cfg.From
	}
	return format.Resolve(path, cfg.Default)
}
