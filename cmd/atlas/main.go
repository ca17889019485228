package main

import (
	"fmt"
	"os"
)

const usageText = `atlas is a terminal browser for shared map projects.

Usage:
  atlas [command] [flags]

Running atlas with no command opens the UI.

Commands:
  ui        run the terminal UI
  projects  list projects
  show      show one project
  config    print configuration (effective or defaults)
  version   print the build version
  help      show help

Flags:
  -h, --help   show help

UI flags:
  --collapsed          start with the sidebar collapsed
  --log-level <level>  override the configured log level

Examples:
  atlas ui --collapsed
  atlas projects --recent
  atlas projects --cached --json
  atlas show P0000000001
  atlas config --scope core --format toml
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	wiring := defaultCommandWiring(os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	if len(args) == 0 {
		exitOnErr("ui", commands["ui"].Run(nil), wiring.stderr)
		return
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
