package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "yangtext").
		WithSynopsis("yangtext [opts] command [opts]").
		WithDescription("yangtext converts YANG modeled data between the text syntax and XML.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return yangtextMain(cfg, cc, args)
		}).
		WithSubs(
			FmtCommand(cfg),
			XMLCommand(cfg),
			TextCommand(cfg),
			QueryCommand(cfg),
			ChangelogCommand(cfg))
}

func yangtextMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer glog.Flush()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.V > 0 {
		_ = flag.Set("logtostderr", "true")
		_ = flag.Set("v", strconv.Itoa(cfg.V))
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	if err := cfg.setup(); err != nil {
		return err
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		glog.Flush()
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [-d|-l|-w] [files]").
		WithDescription("format text syntax documents in canonical order").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return format(cfg, cc, args)
		})
}

func XMLCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &XMLConfig{MainConfig: mainCfg, Indent: "  "}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.XML, "xml").
		WithAliases("x").
		WithSynopsis("xml [-indent s] [-top] [files]").
		WithDescription("convert text syntax documents to XML").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return toXML(cfg, cc, args)
		})
}

func TextCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TextConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Text, "text").
		WithAliases("t").
		WithSynopsis("text [files]").
		WithDescription("convert XML documents to the text syntax").
		WithRun(func(cc *cli.Context, args []string) error {
			return toText(cfg, cc, args)
		})
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Query, "query").
		WithAliases("q").
		WithSynopsis("query <xpath> [files]").
		WithDescription("select nodes of text syntax documents with XPath").
		WithRun(func(cc *cli.Context, args []string) error {
			return query(cfg, cc, args)
		})
}

func ChangelogCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ChangelogConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Changelog, "changelog").
		WithAliases("cl").
		WithSynopsis("changelog [-m module -r revision] [-upgrade] [file]").
		WithDescription("list YANG module revision changelog entries").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return changelogCmd(cfg, cc, args)
		})
}
