package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kin230k/boardsync/internal/schedule"
)

var allOrigin string

// Manual steps the GitHub API cannot perform. Walked one by one on a
// terminal; skipped entirely in scripted runs.
var preflightChecks = []string{
	"Did you create the target repository?",
	"Did you start the wiki in the repository?",
	"Did you create a copy of the [Template] project board?",
	"Did you add the issues workflow to the board?",
	"Did you link the project board to the repository?",
}

var allCmd = &cobra.Command{
	Use:   "all [repo] [start-date]",
	Short: "Run the whole migration: issues, then board fields, then issue links",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := argOrPrompt(args, 0, "Target repo name (also used as project name)")
		if err != nil {
			return err
		}
		startDate, err := argOrPrompt(args, 1, "Project start date (YYYY-MM-DD)")
		if err != nil {
			return err
		}

		for _, question := range preflightChecks {
			if err := walkCheck(question); err != nil {
				return err
			}
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		steps := []struct {
			name string
			run  func() error
		}{
			{"clone and migrate repository", func() error { return app.importer.Import(allOrigin, repo) }},
			{"update project board fields", func() error { return app.fields.Sync(repo, startDate) }},
			{"link parent and child issues", func() error { return app.linker.Link(repo) }},
		}
		for _, step := range steps {
			app.logger.Info("starting step", "step", step.name)
			if err := step.run(); err != nil {
				return fmt.Errorf("%s: %w", step.name, err)
			}
			app.logger.Info("completed step", "step", step.name)
		}
		app.logger.Info("all steps completed")

		// Sprints span 80 days from the project start.
		sprintEnd, _ := schedule.ShiftDate(startDate, 79)
		postrunChecks := []string{
			"Did you enable Discussions?",
			"Did you import the rulesets from the template repository?",
			fmt.Sprintf("Did you update the sprint date range to %s .. %s?", startDate, sprintEnd),
			"Did you assign all issues to the development sprint?",
		}
		for _, question := range postrunChecks {
			if err := walkCheck(question); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	allCmd.Flags().StringVar(&allOrigin, "origin", "Template", "template repository to copy from")
}

// walkCheck re-asks a declined checklist item until the operator has done it.
func walkCheck(question string) error {
	for {
		ok, err := confirm(question)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
}
