package main

import (
	"io"
	"os"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdout         io.Writer
	stderr         io.Writer
	newClient      clientFactory
	openRepository repositoryFactory
	openUILog      uiLogFactory
	version        string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:         stdout,
		stderr:         stderr,
		newClient:      newStudioClient,
		openRepository: openSnapshotRepository,
		openUILog:      openUILogFile,
		version:        buildVersion(),
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	return map[string]commandRunner{
		"ui":       NewUICommand(wiring.stderr, wiring.newClient, wiring.openRepository, wiring.openUILog),
		"projects": NewProjectsCommand(wiring.stdout, wiring.stderr, wiring.newClient, wiring.openRepository),
		"show":     NewShowCommand(wiring.stdout, wiring.stderr, wiring.newClient),
		"config":   NewConfigCommand(wiring.stdout, wiring.stderr),
		"version":  NewVersionCommand(wiring.stdout, wiring.stderr, wiring.version),
	}
}
