// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/querydesk/client"
	"github.com/danielhkuo/querydesk/view"
)

// app is built once per invocation from the persistent flags
type app struct {
	out      io.Writer
	client   *client.Client
	resource *client.FormDataResource
}

func newApp(cmd *cobra.Command) *app {
	server, _ := cmd.Flags().GetString("server")
	if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
		color.NoColor = true
	}
	c := client.New(server)
	return &app{
		out:      cmd.OutOrStdout(),
		client:   c,
		resource: client.NewFormDataResource(c, client.NewCache()),
	}
}

// editModal loads the listing and opens the query with the given id
func (a *app) editModal(ctx context.Context, id string) (*view.Modal, error) {
	snap := a.resource.Load(ctx)
	if snap.State == client.StateError {
		return nil, fmt.Errorf("failed to load data: %w", snap.Err)
	}
	q, _, ok := view.FindQuery(snap.Data, id)
	if !ok {
		return nil, fmt.Errorf("query %s not found", id)
	}
	return view.NewEditModal(a.client, a.resource, view.PrintToasts(a.out), q), nil
}

// editDescription stages desc on an edit modal
func editDescription(m *view.Modal, id, desc string) error {
	err := m.SetDescription(desc)
	if err == nil {
		return nil
	}
	if errors.Is(err, view.ErrActionUnavailable) && m.Resolved() {
		return fmt.Errorf("query %s is resolved and can no longer be edited", id)
	}
	return fmt.Errorf("edit query %s: %w", id, err)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "queryctl",
		Short:         "Manage clinical-trial data queries",
		Long:          "queryctl lists form entries with their queries and opens, edits, resolves or deletes queries on a Query Desk server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultServer := os.Getenv("QUERYDESK_URL")
	if defaultServer == "" {
		defaultServer = client.DefaultServer
	}
	root.PersistentFlags().String("server", defaultServer, "Query Desk server URL (env QUERYDESK_URL)")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output")

	root.AddCommand(listCmd())
	root.AddCommand(createCmd())
	root.AddCommand(showCmd())
	root.AddCommand(resolveCmd())
	root.AddCommand(editCmd())
	root.AddCommand(deleteCmd())
	return root
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show form entries and their queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd)
			snap := a.resource.Load(cmd.Context())
			if err := view.RenderSnapshot(a.out, snap); err != nil {
				return err
			}
			if snap.State == client.StateError {
				return snap.Err
			}
			return nil
		},
	}
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <formDataId>",
		Short: "Raise a query against a form entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd)
			desc, _ := cmd.Flags().GetString("description")

			snap := a.resource.Load(cmd.Context())
			if snap.State == client.StateError {
				return fmt.Errorf("failed to load data: %w", snap.Err)
			}
			fd, ok := view.FindFormData(snap.Data, args[0])
			if !ok {
				return fmt.Errorf("form entry %s not found", args[0])
			}

			m, err := view.NewCreateModal(a.client, a.resource, view.PrintToasts(a.out), fd)
			if err != nil {
				return err
			}
			if err := m.SetDescription(desc); err != nil {
				return err
			}
			return m.Save(cmd.Context())
		},
	}
	cmd.Flags().StringP("description", "m", "", "Description / question for the team")
	cmd.MarkFlagRequired("description")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <queryId>",
		Short: "Show query details and available actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd)
			m, err := a.editModal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return m.Render(a.out)
		},
	}
}

func resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <queryId>",
		Short: "Mark a query as resolved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd)
			m, err := a.editModal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return m.Resolve(cmd.Context())
		},
	}
}

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <queryId>",
		Short: "Change the description of an open query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd)
			desc, _ := cmd.Flags().GetString("description")

			m, err := a.editModal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := editDescription(m, args[0], desc); err != nil {
				return err
			}
			return m.Save(cmd.Context())
		},
	}
	cmd.Flags().StringP("description", "m", "", "New description")
	cmd.MarkFlagRequired("description")
	return cmd
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <queryId>",
		Short: "Delete a query permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(cmd)
			m, err := a.editModal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return m.Delete(cmd.Context())
		},
	}
}
