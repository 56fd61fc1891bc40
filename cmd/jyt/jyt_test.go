package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/jyt/format"
	"github.com/signadot/jyt/style"
)

func TestRunStdin(t *testing.T) {
	cfg := newJytConfig()
	var out, errOut bytes.Buffer
	if err := run(cfg, "", strings.NewReader("a: [1, true]\n"), &out, &errOut); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), `{"a":[1,true]}`+"\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected log output %q", errOut.String())
	}
}

func TestRunDetectsFormat(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "in.toml")
	if err := os.WriteFile(p, []byte("[a]\nb = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := newJytConfig()
	cfg.To = format.YAMLFormat
	var out bytes.Buffer
	if err := run(cfg, p, nil, &out, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "a:\n  b: 1\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunOutputOverInput(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data.json")
	if err := os.WriteFile(p, []byte(`{"k": "v"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := newJytConfig()
	cfg.To = format.YAMLFormat
	cfg.Out = p
	if err := run(cfg, p, nil, &bytes.Buffer{}, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "k: v\n" {
		t.Errorf("got %q", got)
	}
}

func TestRunVerbose(t *testing.T) {
	cfg := newJytConfig()
	cfg.Verbose = true
	var errOut bytes.Buffer
	if err := run(cfg, "-", strings.NewReader("1"), &bytes.Buffer{}, &errOut); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(errOut.String(), "level=DEBUG") {
		t.Errorf("no debug log in %q", errOut.String())
	}
	if strings.Contains(errOut.String(), "time=") {
		t.Errorf("log has time attribute: %q", errOut.String())
	}
}

func TestRunMalformed(t *testing.T) {
	cfg := newJytConfig()
	f := format.JSONFormat
	cfg.From = &f
	var out bytes.Buffer
	err := run(cfg, "", strings.NewReader(`{"a": }`), &out, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error")
	}
	if out.Len() != 0 {
		t.Errorf("partial output %q", out.String())
	}
}

func TestConfig(t *testing.T) {
	cfg := newJytConfig()
	if cfg.mode() != style.Auto || cfg.colorMode() != style.ColorAuto {
		t.Error("defaults are not auto")
	}
	if got := cfg.inputFormat("x.json"); got != format.JSONFormat {
		t.Errorf("x.json: got %v", got)
	}
	if got := cfg.inputFormat("x.conf"); got != format.YAMLFormat {
		t.Errorf("x.conf: got %v", got)
	}
	cfg.Default = format.TOMLFormat
	if got := cfg.inputFormat(""); got != format.TOMLFormat {
		t.Errorf("stdin with -d toml: got %v", got)
	}
	cfg.Pretty, cfg.Compact = true, true
	if err := cfg.check(); err == nil {
		t.Error("-p with -c accepted")
	}
	cfg.Compact = false
	cfg.NoColor = true
	if err := cfg.check(); err != nil {
		t.Error(err)
	}
	if cfg.mode() != style.Pretty || cfg.colorMode() != style.ColorNever {
		t.Errorf("got mode %v color %v", cfg.mode(), cfg.colorMode())
	}
}

func TestOutFmtOpt(t *testing.T) {
	cfg := newJytConfig()
	if _, err := cfg.outFmtOpt(nil, "y"); err != nil || cfg.To != format.YAMLFormat {
		t.Errorf("y: err %v, to %v", err, cfg.To)
	}
	if _, err := cfg.outFmtOpt(nil, "toml"); err == nil {
		t.Error("toml accepted as output format")
	}
	if _, err := cfg.outFmtOpt(nil, "xml"); err == nil {
		t.Error("xml accepted as output format")
	}
}
