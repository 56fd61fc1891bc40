package main

import (
	"github.com/scott-cotton/cli"
	"github.com/signadot/jyt/format"
)

func JytCommand() *cli.Command {
	cfg := newJytConfig()
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "t",
			Aliases:     []string{"to"},
			Description: "output format: json/j, yaml/y (default json)",
			Type:        cli.NamedFuncOpt(cfg.outFmtOpt, "(format)"),
		},
		&cli.Opt{
			Name:        "f",
			Aliases:     []string{"from"},
			Description: "input format: json/j, yaml/y, toml/t (default from file extension)",
			Type: cli.NamedFuncOpt(cfg.fmtFunc(func(f format.Format) {
				cfg.From = &f
			}), "(format)"),
		},
		&cli.Opt{
			Name:        "d",
			Aliases:     []string{"default"},
			Description: "input format when it cannot be detected (default yaml)",
			Type: cli.NamedFuncOpt(cfg.fmtFunc(func(f format.Format) {
				cfg.Default = f
			}), "(format)"),
		},
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		}}...)

	return cli.NewCommandAt(&cfg.Jyt, "jyt").
		WithSynopsis("jyt [opts] [file]").
		WithDescription("jyt converts between JSON, YAML and TOML. Input is read from file, or stdin when file is absent or -.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jytMain(cfg, cc, args)
		})
}
