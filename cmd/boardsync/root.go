package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kin230k/boardsync/internal/client/github"
	"github.com/kin230k/boardsync/internal/config"
	"github.com/kin230k/boardsync/internal/repository"
	"github.com/kin230k/boardsync/internal/retry"
	"github.com/kin230k/boardsync/internal/service"
)

var rootCmd = &cobra.Command{
	Use:          "boardsync",
	Short:        "Copy GitHub project metadata from a template repository",
	Long:         "boardsync copies issues, milestones, labels and Projects v2 field values\nfrom a template repository to a fresh copy, shifting every schedule date to\nthe new project's start date.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(allCmd)
}

// app bundles the fully wired service graph. Built once per command
// invocation; Close releases the ledger database.
type app struct {
	cfg    *config.Config
	db     *sql.DB
	logger *log.Logger

	fields   *service.FieldSyncService
	importer *service.IssueImporter
	linker   *service.SubIssueLinker
	cleaner  *service.IssueCleaner
}

func newApp() (*app, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "boardsync"})

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	db, err := repository.InitDB(cfg.LedgerPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}

	gh := github.NewClient(github.Options{
		Token:      cfg.Token,
		APIBaseURL: cfg.APIBaseURL,
		GraphQLURL: cfg.GraphQLURL,
		PageSize:   cfg.PageSize,
	})

	exec := retry.NewExecutor(cfg.RetryInitialWait, cfg.RetryWaitIncrease, cfg.RetryMaxAttempts, logger)
	runs := repository.NewRunRepository(db)
	ledger := repository.NewLedgerRepository(db)
	mirror := service.NewMirror(logger)

	return &app{
		cfg:    cfg,
		db:     db,
		logger: logger,
		fields: service.NewFieldSyncService(
			cfg, gh, gh, gh,
			service.NewMilestoneShifter(gh, exec, logger),
			runs, ledger, exec, logger,
		),
		importer: service.NewIssueImporter(cfg, gh, gh, gh, gh, gh, mirror, exec, logger),
		linker:   service.NewSubIssueLinker(cfg, gh, logger),
		cleaner:  service.NewIssueCleaner(cfg, gh, gh, logger),
	}, nil
}

func (a *app) Close() {
	a.db.Close()
}
