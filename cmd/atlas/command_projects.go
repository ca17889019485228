package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"

	"atlas/internal/app"
	"atlas/internal/types"
)

type ProjectsCommand struct {
	stdout         io.Writer
	stderr         io.Writer
	newClient      clientFactory
	openRepository repositoryFactory
}

func NewProjectsCommand(stdout, stderr io.Writer, newClient clientFactory, openRepository repositoryFactory) *ProjectsCommand {
	return &ProjectsCommand{
		stdout:         stdout,
		stderr:         stderr,
		newClient:      newClient,
		openRepository: openRepository,
	}
}

func (c *ProjectsCommand) Run(args []string) error {
	fs := flag.NewFlagSet("projects", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	recent := fs.Bool("recent", false, "only the most recently edited projects")
	cached := fs.Bool("cached", false, "read the snapshot cache instead of the studio API")
	jsonOut := fs.Bool("json", false, "print raw JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	var projects []types.Project
	if *cached {
		repo, err := c.openRepository()
		if err != nil {
			return err
		}
		defer repo.Close()
		loaded, err := repo.Projects().LoadProjects(ctx)
		if err != nil {
			return err
		}
		projects = loaded
	} else {
		client, err := c.newClient()
		if err != nil {
			return err
		}
		listed, err := client.ListProjects(ctx)
		if err != nil {
			return err
		}
		projects = listed
	}

	if *recent {
		projects = app.RankRecentProjects(projects)
	}

	if *jsonOut {
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(projects)
	}
	printProjects(c.stdout, projects)
	return nil
}
