package main

import (
	"github.com/spf13/cobra"
)

var linkCmd = &cobra.Command{
	Use:   "link [repo]",
	Short: "Link issues into parent/child hierarchies from parents.tsv",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := argOrPrompt(args, 0, "Repository name")
		if err != nil {
			return err
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.linker.Link(repo)
	},
}
