package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andaru/yangtext/textsyntax"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func format(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: fmt -w requires files", cli.ErrUsage)
	}
	ins, err := readInputs(cc, args)
	if err != nil {
		return err
	}
	anyFailed := false
	for _, in := range ins {
		out, err := formatDoc(cfg.MainConfig, in.data)
		ok, failed := cfg.report(in.name, err)
		anyFailed = anyFailed || failed
		if !ok {
			continue
		}
		changed := out != string(in.data)
		switch {
		case cfg.List:
			if changed {
				fmt.Fprintln(cc.Out, in.name)
			}
		case cfg.Diff:
			if changed {
				writeDiff(cc.Out, in.name, string(in.data), out, cfg.colors(cc.Out))
			}
		case cfg.Write:
			if changed {
				if err := os.WriteFile(in.name, []byte(out), 0o644); err != nil {
					return fmt.Errorf("error writing %s: %w", in.name, err)
				}
			}
		default:
			io.WriteString(cc.Out, out)
		}
	}
	return exitStatus(anyFailed)
}

// formatDoc decodes a text syntax document and encodes it again. An
// invalid document is encoded and returned with its error.
func formatDoc(cfg *MainConfig, data []byte) (string, error) {
	top, err := textsyntax.Decode(bytes.NewReader(data), cfg.decodeOpts()...)
	if top == nil {
		return "", err
	}
	out, eerr := textsyntax.EncodeString(top, cfg.encodeOpts()...)
	if eerr != nil {
		return "", eerr
	}
	return out, err
}

// writeDiff writes the changed lines between a and b, each run of
// changes preceded by the line number in a where it starts.
func writeDiff(w io.Writer, name, a, b string, colors bool) {
	del, ins := fmt.Sprint, fmt.Sprint
	if colors {
		r, g := color.New(color.FgRed), color.New(color.FgGreen)
		r.EnableColor()
		g.EnableColor()
		del, ins = r.SprintFunc(), g.SprintFunc()
	}
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	fmt.Fprintf(w, "--- %s\n+++ %s (formatted)\n", name, name)
	line, inRun := 1, false
	for _, d := range diffs {
		text := splitLines(d.Text)
		if d.Type == diffmatchpatch.DiffEqual {
			line += len(text)
			inRun = false
			continue
		}
		if !inRun {
			fmt.Fprintf(w, "@@ %d @@\n", line)
			inRun = true
		}
		for _, l := range text {
			if d.Type == diffmatchpatch.DiffDelete {
				fmt.Fprintln(w, del("-"+l))
			} else {
				fmt.Fprintln(w, ins("+"+l))
			}
		}
		if d.Type == diffmatchpatch.DiffDelete {
			line += len(text)
		}
	}
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
