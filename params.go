package main

import (
	"flag"
	"fmt"
	"os"
)

type commandParams struct {
	profile    string
	profileDir string
	apiURL     string
	proxy      string
	match      string
	debug      bool

	command string
	args    []string
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.profile, "profile", "default", "credential profile name")
	fs.StringVar(&c.profileDir, "profile-dir", "", "directory holding credential profiles (default ~/.kentik)")
	fs.StringVar(&c.apiURL, "api-url", "", "API base URL (default production)")
	fs.StringVar(&c.proxy, "proxy", "", "proxy URL for API requests")
	fs.StringVar(&c.match, "match", "", "JSON match rule applied to listed agents or tests")
	fs.BoolVar(&c.debug, "debug", false, "log API requests to stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [options] command [args]\n\nCommands:\n", args[0])
		fmt.Fprintln(fs.Output(), "  agents             list agents")
		fmt.Fprintln(fs.Output(), "  tests              list tests")
		fmt.Fprintln(fs.Output(), "  create <file>      create a test from a YAML document")
		fmt.Fprintln(fs.Output(), "  pause <id>         pause a test")
		fmt.Fprintln(fs.Output(), "  resume <id>        resume a test")
		fmt.Fprintln(fs.Output(), "  delete <id>        delete a test")
		fmt.Fprintln(fs.Output(), "\nOptions:")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "a command is required")
		fs.Usage()
		return false
	}
	c.command = fs.Arg(0)
	c.args = fs.Args()[1:]

	required := map[string]int{"agents": 0, "tests": 0, "create": 1, "pause": 1, "resume": 1, "delete": 1}
	n, ok := required[c.command]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n", c.command)
		fs.Usage()
		return false
	}
	if len(c.args) != n {
		fmt.Fprintf(os.Stderr, "command %q takes %d argument(s)\n", c.command, n)
		fs.Usage()
		return false
	}
	return true
}
