package main

import (
	"io"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cli := newCLI(stdin, stdout, stderr)
	root := cli.rootCommand()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return cli.report(err)
	}
	return ExitSuccess
}
