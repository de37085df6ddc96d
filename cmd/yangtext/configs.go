package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andaru/yangtext/bind"
	"github.com/andaru/yangtext/schema"
	"github.com/andaru/yangtext/textsyntax"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML configuration file read with -c
type FileConfig struct {
	// Yang lists YANG files and directories of *.yang files
	Yang         []string `yaml:"yang"`
	Mode         string   `yaml:"mode"`
	Level        int      `yaml:"level"`
	SkipTop      *bool    `yaml:"skip-top"`
	IgnoreErrors bool     `yaml:"ignore-errors"`
	Changelog    string   `yaml:"changelog"`
}

// LoadFileConfig reads and parses the configuration file at path
func LoadFileConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := &FileConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if cfg.Mode != "" {
		if _, err := bind.ParseMode(cfg.Mode); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	if cfg.Level < 0 {
		return nil, fmt.Errorf("config file %s: negative level %d", path, cfg.Level)
	}
	return cfg, nil
}

type MainConfig struct {
	Yang   string `cli:"name=y aliases=yang desc='comma separated YANG files'"`
	Dirs   string `cli:"name=p aliases=path desc='comma separated directories of YANG files'"`
	Config string `cli:"name=c aliases=config desc='YAML configuration file'"`
	Next   bool   `cli:"name=next desc='treat top statements as unbound wrappers and bind their children as top-level nodes'"`
	Color  bool   `cli:"name=color desc='color diagnostics'"`
	Ignore bool   `cli:"name=ignore desc='exit 0 when a document does not match the schema'"`
	V      int    `cli:"name=v desc='log verbosity'"`

	File *FileConfig
	Spec *schema.Spec
	Mode bind.Mode

	// Err receives diagnostics, os.Stderr unless set
	Err io.Writer

	Main *cli.Command
}

func (cfg *MainConfig) stderr() io.Writer {
	if cfg.Err != nil {
		return cfg.Err
	}
	return os.Stderr
}

// setup reads the configuration file, if any, and loads the schema.
// Options given on the command line add to the configuration file.
func (cfg *MainConfig) setup() error {
	if cfg.File == nil {
		cfg.File = &FileConfig{}
	}
	if cfg.Config != "" {
		f, err := LoadFileConfig(cfg.Config)
		if err != nil {
			return err
		}
		cfg.File = f
	}
	cfg.Mode = bind.ModeModule
	if cfg.File.Mode != "" {
		m, err := bind.ParseMode(cfg.File.Mode)
		if err != nil {
			return err
		}
		cfg.Mode = m
	}
	if cfg.Next {
		cfg.Mode = bind.ModeModuleNext
	}
	cfg.Ignore = cfg.Ignore || cfg.File.IgnoreErrors

	paths := append([]string(nil), cfg.File.Yang...)
	paths = append(paths, splitList(cfg.Yang)...)
	paths = append(paths, splitList(cfg.Dirs)...)
	if len(paths) == 0 {
		return nil
	}
	spec, err := schema.LoadYANG(paths...)
	if err != nil {
		return fmt.Errorf("error loading YANG: %w", err)
	}
	cfg.Spec = spec
	return nil
}

func splitList(s string) []string {
	var res []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}

func (cfg *MainConfig) decodeOpts() []textsyntax.Option {
	if cfg.Spec == nil {
		return nil
	}
	return []textsyntax.Option{textsyntax.WithSchema(cfg.Spec), textsyntax.WithMode(cfg.Mode)}
}

func (cfg *MainConfig) encodeOpts() []textsyntax.EncodeOption {
	skip := true
	if cfg.File != nil && cfg.File.SkipTop != nil {
		skip = *cfg.File.SkipTop
	}
	var res []textsyntax.EncodeOption
	if skip {
		res = append(res, textsyntax.SkipTop())
	}
	if cfg.File != nil && cfg.File.Level > 0 {
		res = append(res, textsyntax.WithLevel(cfg.File.Level))
	}
	return res
}

// colors reports whether output to w is colored: always with -color,
// otherwise when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type painter func(a ...interface{}) string

func (cfg *MainConfig) painter(w io.Writer, attr color.Attribute) painter {
	if !cfg.colors(w) {
		return fmt.Sprint
	}
	c := color.New(attr)
	c.EnableColor()
	return c.SprintFunc()
}

type FmtConfig struct {
	*MainConfig

	Diff  bool `cli:"name=d desc='print a diff instead of the formatted document'"`
	List  bool `cli:"name=l desc='list files whose formatting differs'"`
	Write bool `cli:"name=w desc='write the formatted document back to its file'"`

	Fmt *cli.Command
}

type XMLConfig struct {
	*MainConfig

	Indent string `cli:"name=indent desc='XML indentation, empty for none'"`
	Top    bool   `cli:"name=top desc='include the top element'"`

	XML *cli.Command
}

type TextConfig struct {
	*MainConfig

	Text *cli.Command
}

type QueryConfig struct {
	*MainConfig

	Query *cli.Command
}

type ChangelogConfig struct {
	*MainConfig

	Module   string `cli:"name=m desc='module name'"`
	Revision string `cli:"name=r desc='module revision'"`
	Upgrade  bool   `cli:"name=upgrade desc='list changes for each loaded module revision'"`

	Changelog *cli.Command
}
