package main

import (
	"fmt"
	"io"

	"github.com/andaru/yangtext/changelog"
	"github.com/andaru/yangtext/schema"
	"github.com/scott-cotton/cli"
)

func changelogCmd(cfg *ChangelogConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Changelog.Parse(cc, args)
	if err != nil {
		cfg.Changelog.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	path := cfg.File.Changelog
	switch len(args) {
	case 0:
	case 1:
		path = args[0]
	default:
		return fmt.Errorf("%w: changelog takes at most one file, got %v", cli.ErrUsage, args)
	}
	if path == "" {
		return fmt.Errorf("%w: changelog requires a file", cli.ErrUsage)
	}
	c, err := changelog.LoadFile(path)
	if err != nil {
		return fmt.Errorf("error loading changelog %s: %w", path, err)
	}
	switch {
	case cfg.Upgrade:
		if cfg.Spec == nil {
			return fmt.Errorf("%w: changelog -upgrade requires YANG modules", cli.ErrUsage)
		}
		return writeUpgrade(cc.Out, c, cfg.Spec)
	case cfg.Module != "":
		changes, err := c.Entries(cfg.Module, cfg.Revision)
		if err != nil {
			return err
		}
		for _, ch := range changes {
			fmt.Fprintln(cc.Out, ch)
		}
		return nil
	}
	for _, m := range c.Modules() {
		fmt.Fprintf(cc.Out, "%s %s\n", m.Name, m.Revision)
	}
	return nil
}

// writeUpgrade writes the changes logged for the loaded revision of
// each module in spec.
func writeUpgrade(w io.Writer, c *changelog.Changelog, spec *schema.Spec) error {
	for _, m := range spec.Modules() {
		if m.Revision == "" {
			continue
		}
		changes, err := c.Upgrade(m, true)
		if err != nil {
			return err
		}
		for _, ch := range changes {
			fmt.Fprintf(w, "%s@%s %s\n", m.Name, m.Revision, ch)
		}
	}
	return nil
}
