package main

import (
	"flag"
	"io"

	"atlas/internal/app"
	"atlas/internal/config"
	"atlas/internal/logging"
	"atlas/internal/store"
)

type UICommand struct {
	stderr         io.Writer
	newClient      clientFactory
	openRepository repositoryFactory
	openUILog      uiLogFactory
}

func NewUICommand(stderr io.Writer, newClient clientFactory, openRepository repositoryFactory, openUILog uiLogFactory) *UICommand {
	return &UICommand{
		stderr:         stderr,
		newClient:      newClient,
		openRepository: openRepository,
		openUILog:      openUILog,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	collapsed := fs.Bool("collapsed", false, "start with the sidebar collapsed")
	logLevel := fs.String("log-level", "", "override the configured log level (debug|info|warn|error)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	coreCfg, err := config.LoadCoreConfig()
	if err != nil {
		return err
	}
	uiCfg, err := config.LoadUIConfig()
	if err != nil {
		return err
	}

	level := coreCfg.LogLevel()
	if *logLevel != "" {
		level = *logLevel
	}
	// A broken log destination never blocks the UI.
	logger := logging.Nop()
	if c.openUILog != nil {
		if fileLogger, closer, err := c.openUILog(logging.ParseLevel(level)); err == nil {
			logger = fileLogger
			defer closer.Close()
		}
	}

	keybindingsPath, err := uiCfg.ResolveKeybindingsPath()
	if err != nil {
		return err
	}
	bindings, err := app.LoadKeybindings(keybindingsPath)
	if err != nil {
		return err
	}

	startCollapsed := uiCfg.StartCollapsed
	if *collapsed {
		startCollapsed = true
	}

	// The UI works without the snapshot cache; it just boots empty.
	var repo store.Repository
	if c.openRepository != nil {
		opened, err := c.openRepository()
		if err != nil {
			logger.Warn("snapshot cache unavailable", logging.F("error", err.Error()))
		} else {
			repo = opened
			defer repo.Close()
		}
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	return client.RunUI(repo, startCollapsed, logger, bindings)
}
