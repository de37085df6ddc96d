package main

import (
	"fmt"
	"io"
	"os"

	"github.com/andaru/yangtext/bind"
	"github.com/andaru/yangtext/ncerr"
	"github.com/andaru/yangtext/textsyntax"
	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
)

const stdinName = "<stdin>"

type input struct {
	name string
	data []byte
}

// readInputs reads the named files, or standard input when there are
// none. The name "-" also reads standard input.
func readInputs(cc *cli.Context, files []string) ([]input, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	var res []input
	for _, file := range files {
		in, err := readInput(cc, file)
		if err != nil {
			return nil, err
		}
		res = append(res, in)
	}
	return res, nil
}

func readInput(cc *cli.Context, file string) (input, error) {
	if file == "-" {
		data, err := io.ReadAll(cc.In)
		if err != nil {
			return input{}, fmt.Errorf("error reading %s: %w", stdinName, err)
		}
		return input{name: stdinName, data: data}, nil
	}
	f, err := os.Open(file)
	if err != nil {
		return input{}, fmt.Errorf("could not open %q: %w", file, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return input{}, fmt.Errorf("error reading %s: %w", file, err)
	}
	return input{name: file, data: data}, nil
}

// report prints a diagnostic for err to stderr, followed by the
// rpc-reply reporting it. It returns whether output should still be
// produced for the document: an invalid document is output, its errors
// reported as warnings, when invalid documents are ignored.
func (cfg *MainConfig) report(name string, err error) (ok, failed bool) {
	if err == nil {
		return true, false
	}
	w := cfg.stderr()
	red := cfg.painter(w, color.FgRed)
	reply := textsyntax.ErrorReply(err)
	_, invalid := bind.IsInvalid(err)
	ignored := invalid && cfg.Ignore
	if ignored {
		warn := ncerr.WithSeverity(ncerr.SeverityWarning)
		for _, e := range reply.Errors {
			warn(e)
		}
	}
	fmt.Fprintf(w, "%s: %s\n", name, red(err.Error()))
	fmt.Fprintln(w, reply)
	return ignored, !ignored
}

func exitStatus(failed bool) error {
	if failed {
		return cli.ExitCodeErr(1)
	}
	return nil
}
