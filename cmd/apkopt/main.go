package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/apkopt/cmd/apkopt/commands"
	"git.home.luguber.info/inful/apkopt/internal/version"
)

const description = `
Given an APK, produce a better APK!

The APK is unpacked into a temporary workspace, handed to the redex
optimizer, and repacked with each entry's original compression method.
Set TRACE=REDEX:1 to see what the launcher is doing.
`

func main() {
	os.Exit(run())
}

// run returns the exit code instead of exiting so deferred workspace
// cleanup in Execute always happens.
func run() int {
	var cli commands.CLI
	kong.Parse(&cli,
		kong.Name("apkopt"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, commands.NewGlobal(os.Stdout, os.Stderr))
}
