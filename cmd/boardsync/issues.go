package main

import (
	"github.com/spf13/cobra"
)

var issuesCmd = &cobra.Command{
	Use:   "issues [origin] [target]",
	Short: "Mirror a template repository and import its labels, milestones and issues",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := argOrPrompt(args, 0, "Origin repository name")
		if err != nil {
			return err
		}
		target, err := argOrPrompt(args, 1, "Target repository name")
		if err != nil {
			return err
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.importer.Import(origin, target)
	},
}
