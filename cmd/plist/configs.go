package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/signadot/plist-format/go-plist/ascii"
	"github.com/signadot/plist-format/go-plist/format"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

const configEnv = "PLIST_CONFIG"

type MainConfig struct {
	W       int    `cli:"name=w aliases=width desc='line width of text output (default 80)'"`
	Dialect string `cli:"name=dialect desc='text dialect: openstep or gnustep'"`
	Typed   bool   `cli:"name=typed desc='write GNUstep typed scalars'"`
	Config  string `cli:"name=config desc='defaults file, $PLIST_CONFIG if unset'"`

	Out      string
	CloseOut func() error

	defaults *Defaults

	Main *cli.Command
}

// Defaults is the contents of a defaults file.  Command line flags take
// precedence over it.
type Defaults struct {
	Width   int    `yaml:"width"`
	Dialect string `yaml:"dialect"`
	Indent  string `yaml:"indent"`
	NewLine string `yaml:"newline"`
	Typed   bool   `yaml:"typed"`
}

// loadDefaults reads the defaults file at path, or at $PLIST_CONFIG when path
// is empty.  A missing file named only by the environment is not an error.
func loadDefaults(path string) (*Defaults, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(configEnv)
	}
	res := &Defaults{}
	if path == "" {
		return res, nil
	}
	d, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			theLog.Warn("defaults file not found", "path", path)
			return res, nil
		}
		return nil, fmt.Errorf("could not read defaults: %w", err)
	}
	if err := yaml.UnmarshalWithOptions(d, res, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("error decoding defaults %s: %w", path, err)
	}
	if res.Width < 0 {
		return nil, fmt.Errorf("defaults %s: negative width %d", path, res.Width)
	}
	theLog.Debug("loaded defaults", "path", path)
	return res, nil
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

// encOpts returns the text encoding options given by the flags and the
// defaults file.
func (cfg *MainConfig) encOpts() ([]ascii.EncodeOption, error) {
	d := cfg.defaults
	if d == nil {
		d = &Defaults{}
	}
	width := cfg.W
	if width == 0 {
		width = d.Width
	}
	if width == 0 {
		width = 80
	}
	if width < 0 {
		return nil, fmt.Errorf("%w: negative width %d", cli.ErrUsage, width)
	}
	name := cfg.Dialect
	if name == "" {
		name = d.Dialect
	}
	dialect := ascii.OpenStep
	if name != "" {
		pd, err := ascii.ParseDialect(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		dialect = pd
	}
	res := []ascii.EncodeOption{
		ascii.Width(width),
		ascii.EncodeDialect(dialect),
		ascii.TypedScalars(cfg.Typed || d.Typed),
	}
	if d.Indent != "" {
		res = append(res, ascii.IndentString(d.Indent))
	}
	if d.NewLine != "" {
		res = append(res, ascii.NewLine(d.NewLine))
	}
	return res, nil
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}

type ConvertConfig struct {
	*MainConfig

	OutFormat *format.Format

	Convert *cli.Command
}

type IDsConfig struct {
	*MainConfig
	Sort bool `cli:"name=sort desc='order objects by value instead of id'"`

	IDs *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	Color   bool `cli:"name=color desc='color the diff even when not on a terminal'"`

	Diff *cli.Command
}

type StatConfig struct {
	*MainConfig

	Stat *cli.Command
}
