package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the parameters of a benchmark run. It can be read
// from a TOML file; command line flags override the file.
type Config struct {
	// Kind selects the map: "probing", "chained" or "both".
	Kind string `toml:"kind"`

	// N holds the number of entries to insert.
	N int `toml:"n"`

	// Capacity holds the initial capacity. Zero means the
	// package default.
	Capacity int `toml:"capacity"`

	// MaxLoad holds the chained map's growth threshold. Zero
	// means the package default.
	MaxLoad float64 `toml:"max_load"`

	// Verbose enables debug logging of every growth event.
	Verbose bool `toml:"verbose"`
}

func defaultConfig() Config {
	return Config{
		Kind: "both",
		N:    1000000,
	}
}

// kinds returns the map kinds selected by c.Kind.
func (c Config) kinds() ([]string, error) {
	switch c.Kind {
	case "probing", "chained":
		return []string{c.Kind}, nil
	case "both":
		return []string{"probing", "chained"}, nil
	}
	return nil, errors.Errorf("unknown map kind %q", c.Kind)
}

func (c Config) validate() error {
	if _, err := c.kinds(); err != nil {
		return err
	}
	if c.N < 0 {
		return errors.Errorf("negative entry count %d", c.N)
	}
	if c.MaxLoad < 0 {
		return errors.Errorf("negative max load %v", c.MaxLoad)
	}
	return nil
}

func loadConfig(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return errors.Wrapf(err, "cannot load config from %q", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("unknown config keys in %q: %v", path, undecoded)
	}
	return nil
}

// parseArgs builds the configuration from the default values,
// the config file named by -config, if any, and then the flags
// set explicitly on the command line.
func parseArgs(args []string, stderr io.Writer) (Config, error) {
	fs := flag.NewFlagSet("mapbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: mapbench [flags]\n")
		fs.PrintDefaults()
	}
	var flags Config
	configPath := fs.String("config", "", "TOML `file` to read configuration from")
	fs.StringVar(&flags.Kind, "kind", "", "map kind: probing, chained or both")
	fs.IntVar(&flags.N, "n", 0, "number of entries to insert")
	fs.IntVar(&flags.Capacity, "capacity", 0, "initial capacity (0 for the default)")
	fs.Float64Var(&flags.MaxLoad, "maxload", 0, "chained map growth threshold (0 for the default)")
	fs.BoolVar(&flags.Verbose, "v", false, "log every growth event")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, errors.Errorf("unexpected arguments %q", fs.Args())
	}

	cfg := defaultConfig()
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			return Config{}, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "kind":
			cfg.Kind = flags.Kind
		case "n":
			cfg.N = flags.N
		case "capacity":
			cfg.Capacity = flags.Capacity
		case "maxload":
			cfg.MaxLoad = flags.MaxLoad
		case "v":
			cfg.Verbose = flags.Verbose
		}
	})
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
