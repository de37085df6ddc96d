package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andaru/yangtext/bind"
	"github.com/andaru/yangtext/textsyntax"
	"github.com/andaru/yangtext/xmltree"
	"github.com/scott-cotton/cli"
)

func toXML(cfg *XMLConfig, cc *cli.Context, args []string) error {
	args, err := cfg.XML.Parse(cc, args)
	if err != nil {
		cfg.XML.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ins, err := readInputs(cc, args)
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
		if err := writeXML(cc.Out, top, cfg.Indent, !cfg.Top); err != nil {
			return fmt.Errorf("error encoding %s: %w", in.name, err)
		}
	}
	return exitStatus(anyFailed)
}

func writeXML(w io.Writer, top *xmltree.Node, indent string, skipTop bool) error {
	var opts []xmltree.XMLOption
	if skipTop {
		opts = append(opts, xmltree.XMLSkipTop())
	}
	if indent != "" {
		opts = append(opts, xmltree.XMLIndent(indent))
	}
	if err := xmltree.EncodeXML(w, top, opts...); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func toText(cfg *TextConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Text.Parse(cc, args)
	if err != nil {
		cfg.Text.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	ins, err := readInputs(cc, args)
	if err != nil {
		return err
	}
	anyFailed := false
	for _, in := range ins {
		out, err := textDoc(cfg.MainConfig, in.data)
		ok, failed := cfg.report(in.name, err)
		anyFailed = anyFailed || failed
		if !ok {
			continue
		}
		io.WriteString(cc.Out, out)
	}
	return exitStatus(anyFailed)
}

// textDoc parses an XML document, binds it when a schema is loaded and
// encodes it in the text syntax.
func textDoc(cfg *MainConfig, data []byte) (string, error) {
	top, err := xmltree.ParseXML(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	var berr error
	if cfg.Spec != nil {
		berr = bind.Tree(top, cfg.Spec, cfg.Mode)
		if _, ok := bind.IsInvalid(berr); berr != nil && !ok {
			return "", berr
		}
	}
	out, err := textsyntax.EncodeString(top, cfg.encodeOpts()...)
	if err != nil {
		return "", err
	}
	return out, berr
}
