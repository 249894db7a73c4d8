package main

import (
	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields [repo] [baseline-date]",
	Short: "Sync board field values from update.tsv, shifting dates to the baseline",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := argOrPrompt(args, 0, "Repository name")
		if err != nil {
			return err
		}
		baseline, err := argOrPrompt(args, 1, "Project start date (YYYY-MM-DD)")
		if err != nil {
			return err
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.fields.Sync(repo, baseline)
	},
}
