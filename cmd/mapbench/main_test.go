package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseArgsDefaults(t *testing.T) {
	c := qt.New(t)
	cfg, err := parseArgs(nil, io.Discard)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, defaultConfig())
}

func TestParseArgsFlags(t *testing.T) {
	c := qt.New(t)
	cfg, err := parseArgs([]string{"-kind", "chained", "-n", "500", "-capacity", "8", "-maxload", "2.5", "-v"}, io.Discard)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, Config{
		Kind:     "chained",
		N:        500,
		Capacity: 8,
		MaxLoad:  2.5,
		Verbose:  true,
	})
}

func TestParseArgsConfigFile(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(c.TempDir(), "bench.toml")
	err := os.WriteFile(path, []byte(`
kind = "probing"
n = 1000
capacity = 16
`), 0o666)
	c.Assert(err, qt.IsNil)

	cfg, err := parseArgs([]string{"-config", path, "-n", "10"}, io.Discard)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg, qt.DeepEquals, Config{
		Kind:     "probing",
		N:        10,
		Capacity: 16,
	})
}

func TestParseArgsErrors(t *testing.T) {
	c := qt.New(t)
	dir := c.TempDir()
	unknownKey := filepath.Join(dir, "unknown.toml")
	err := os.WriteFile(unknownKey, []byte("entries = 3\n"), 0o666)
	c.Assert(err, qt.IsNil)

	tests := []struct {
		args []string
		err  string
	}{{
		args: []string{"-kind", "tree"},
		err:  `unknown map kind "tree"`,
	}, {
		args: []string{"-n", "-1"},
		err:  `negative entry count -1`,
	}, {
		args: []string{"extra"},
		err:  `unexpected arguments \["extra"\]`,
	}, {
		args: []string{"-config", filepath.Join(dir, "missing.toml")},
		err:  `cannot load config from ".*missing.toml": .*`,
	}, {
		args: []string{"-config", unknownKey},
		err:  `unknown config keys in ".*unknown.toml": \[entries\]`,
	}}
	for _, test := range tests {
		c.Run(test.err, func(c *qt.C) {
			_, err := parseArgs(test.args, io.Discard)
			c.Assert(err, qt.ErrorMatches, test.err)
		})
	}
}

func TestRun(t *testing.T) {
	c := qt.New(t)
	core, logs := observer.New(zapcore.DebugLevel)
	results, err := run(Config{
		Kind:    "both",
		N:       300,
		MaxLoad: 1,
	}, zap.New(core))
	c.Assert(err, qt.IsNil)
	c.Assert(results, qt.HasLen, 2)

	// From 32 slots, 300 entries need 4 doublings for both kinds.
	for _, r := range results {
		c.Assert(r.N, qt.Equals, 300)
		c.Assert(r.Grows, qt.Equals, 4)
		c.Assert(r.Cap, qt.Equals, 512)
	}
	c.Assert(results[0].Kind, qt.Equals, "probing")
	c.Assert(results[1].Kind, qt.Equals, "chained")

	grows := logs.FilterMessage("grow")
	c.Assert(grows.Len(), qt.Equals, 8)
	first := grows.All()[0].ContextMap()
	c.Assert(first["kind"], qt.Equals, "probing")
	c.Assert(first["old_cap"], qt.Equals, int64(32))
	c.Assert(first["new_cap"], qt.Equals, int64(64))
	c.Assert(logs.FilterMessage("run complete").Len(), qt.Equals, 2)
}

func TestRunEmpty(t *testing.T) {
	c := qt.New(t)
	results, err := run(Config{Kind: "probing"}, zap.NewNop())
	c.Assert(err, qt.IsNil)
	c.Assert(results, qt.HasLen, 1)
	c.Assert(results[0].Grows, qt.Equals, 0)
	c.Assert(results[0].Cap, qt.Equals, 32)
}
