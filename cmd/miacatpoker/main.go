package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Deal    DealCmd          `cmd:"" help:"Produce a provably fair game record"`
	Verify  VerifyCmd        `cmd:"" help:"Verify game records against their revealed seeds"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("miacatpoker"),
		kong.Description("Provably fair card dealing with commit-reveal verification"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
