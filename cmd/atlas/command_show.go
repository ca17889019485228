package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	studioclient "atlas/internal/client"
	"atlas/internal/types"
)

type ShowCommand struct {
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func NewShowCommand(stdout, stderr io.Writer, newClient clientFactory) *ShowCommand {
	return &ShowCommand{
		stdout:    stdout,
		stderr:    stderr,
		newClient: newClient,
	}
}

func (c *ShowCommand) Run(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	jsonOut := fs.Bool("json", false, "print raw JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("show requires exactly one project id")
	}
	id := fs.Arg(0)

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	project, err := client.GetProject(ctx, id)
	if err != nil {
		if studioclient.IsNotFound(err) {
			return fmt.Errorf("project %s not found", id)
		}
		return err
	}

	if *jsonOut {
		encoder := json.NewEncoder(c.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(project)
	}

	writer := tabwriter.NewWriter(c.stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(writer, "ID\t%s\n", project.ID)
	fmt.Fprintf(writer, "TITLE\t%s\n", project.DisplayTitle())
	fmt.Fprintf(writer, "LINK\t%s\n", client.ProjectURL(project.ID))
	if created := types.ParseEditedAt(project.CreatedOn); !created.IsZero() {
		fmt.Fprintf(writer, "CREATED\t%s\n", created.UTC().Format(time.RFC3339))
	}
	if edited := project.LastEditedTime(); !edited.IsZero() {
		fmt.Fprintf(writer, "EDITED\t%s\n", edited.UTC().Format(time.RFC3339))
	}
	if v := project.MostRecentVersion; v != nil && v.ID != "" {
		fmt.Fprintf(writer, "VERSION\t%s\n", v.ID)
	}
	return writer.Flush()
}
