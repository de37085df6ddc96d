package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andaru/yangtext/textsyntax"
	"github.com/andaru/yangtext/xmltree"
	"github.com/scott-cotton/cli"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an XPath expression", cli.ErrUsage)
	}
	expr := args[0]
	ins, err := readInputs(cc, args[1:])
	if err != nil {
		return err
	}
	anyFailed := false
	for _, in := range ins {
		top, err := textsyntax.Decode(bytes.NewReader(in.data), cfg.decodeOpts()...)
		ok, failed := cfg.report(in.name, err)
		anyFailed = anyFailed || failed
		if !ok {
			continue
		}
		if err := queryDoc(cc.Out, top, expr); err != nil {
			return fmt.Errorf("error querying %s with %s: %w", in.name, expr, err)
		}
	}
	return exitStatus(anyFailed)
}

// queryDoc writes the result of expr over top: selected elements in the
// text syntax, other selected nodes by value and scalars as they print.
func queryDoc(w io.Writer, top *xmltree.Node, expr string) error {
	res, err := xmltree.Evaluate(top, expr)
	if err != nil {
		return err
	}
	nodes, ok := res.([]*xmltree.Node)
	if !ok {
		_, err := fmt.Fprintln(w, res)
		return err
	}
	for _, n := range nodes {
		if n.Type != xmltree.TypeElement {
			if _, err := fmt.Fprintln(w, n.Value); err != nil {
				return err
			}
			continue
		}
		var opts []textsyntax.EncodeOption
		if n.Parent() == nil {
			opts = append(opts, textsyntax.SkipTop())
		}
		if err := textsyntax.NewEncoder(w, opts...).Encode(n); err != nil {
			return err
		}
	}
	return nil
}
