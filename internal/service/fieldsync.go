package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/kin230k/boardsync/internal/client"
	"github.com/kin230k/boardsync/internal/config"
	"github.com/kin230k/boardsync/internal/fields"
	"github.com/kin230k/boardsync/internal/models"
	"github.com/kin230k/boardsync/internal/repository"
	"github.com/kin230k/boardsync/internal/retry"
	"github.com/kin230k/boardsync/internal/schedule"
	"github.com/kin230k/boardsync/internal/tabular"
	"github.com/kin230k/boardsync/internal/xref"
)

// Columns of update.tsv that map to board fields. Everything else (Title,
// URL, Labels, Milestone, Assignees) belongs to the issue import.
var updatableColumns = map[string]bool{
	"starts": true,
	"due":    true,
	"type":   true,
	"phase":  true,
	"sprint": true,
}

// FieldSyncService drives the metadata sync for one board: snapshot the
// remote items and fields, compute the date shift, then walk the TSV rows
// applying one typed field update at a time. Execution is strictly
// sequential; a failed update is logged and the batch moves on.
type FieldSyncService struct {
	cfg        *config.Config
	projects   client.ProjectReader
	lookup     client.FieldLookup
	updater    client.FieldUpdater
	milestones *MilestoneShifter
	runs       *repository.RunRepository
	ledger     *repository.LedgerRepository
	exec       *retry.Executor
	logger     *log.Logger
}

func NewFieldSyncService(
	cfg *config.Config,
	projects client.ProjectReader,
	lookup client.FieldLookup,
	updater client.FieldUpdater,
	milestones *MilestoneShifter,
	runs *repository.RunRepository,
	ledger *repository.LedgerRepository,
	exec *retry.Executor,
	logger *log.Logger,
) *FieldSyncService {
	return &FieldSyncService{
		cfg:        cfg,
		projects:   projects,
		lookup:     lookup,
		updater:    updater,
		milestones: milestones,
		runs:       runs,
		ledger:     ledger,
		exec:       exec,
		logger:     logger,
	}
}

// Sync applies the field values in the update file to the board named after
// repo, shifting all dates by the offset between the file's anchor start
// and baselineDate.
func (s *FieldSyncService) Sync(repo, baselineDate string) error {
	started := time.Now()

	table, err := tabular.Load(s.cfg.UpdateFile)
	if err != nil {
		return fmt.Errorf("load update file: %w", err)
	}

	project, err := s.projects.ProjectByTitle(s.cfg.Owner, repo)
	if err != nil {
		return fmt.Errorf("resolve project: %w", err)
	}

	items, err := s.projects.ProjectItems(project.Id)
	if err != nil {
		return fmt.Errorf("list project items: %w", err)
	}

	defs, err := s.projects.ProjectFields(project.Id)
	if err != nil {
		return fmt.Errorf("list project fields: %w", err)
	}

	resolver := fields.NewResolver(defs, s.lookup)
	index := xref.NewIndex(items)

	diffDays := schedule.DiffDays(baselineDate, firstAnchor(table.Rows))
	s.logger.Info("computed date shift", "baseline", baselineDate, "diff_days", diffDays)

	if err := s.milestones.Shift(s.cfg.Owner, repo, diffDays); err != nil {
		s.logger.Error("milestone date shift failed", "err", err)
	}

	runId, err := s.runs.Create("fields", repo, len(table.Rows))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	scope := s.cfg.Owner + "/" + repo

	var updated, skipped, failed int
	for _, row := range table.Rows {
		item := findItem(items, row["Title"])
		if item == nil {
			s.logger.Warn("issue not found in project", "title", row["Title"])
			skipped++
			continue
		}

		s.rewriteReferences(table.Headers, row, index, repo)

		for _, key := range table.Headers {
			if !updatable(key) {
				continue
			}

			switch outcome := s.updateField(resolver, project.Id, item, scope, runId, key, row, diffDays); outcome {
			case outcomeUpdated:
				updated++
			case outcomeSkipped:
				skipped++
			case outcomeFailed:
				failed++
			}
		}

		if err := s.runs.UpdateProgress(runId, updated, skipped, failed); err != nil {
			s.logger.Error("failed to record progress", "err", err)
		}
	}

	status := "completed"
	if failed > 0 {
		status = "completed_with_errors"
	}
	if err := s.runs.Complete(runId, status); err != nil {
		s.logger.Error("failed to close run record", "err", err)
	}

	s.logger.Info("field sync finished",
		"updated", english.Plural(updated, "field", ""),
		"skipped", skipped,
		"failed", failed,
		"took", humanize.RelTime(started, time.Now(), "", ""))
	return nil
}

type updateOutcome int

const (
	outcomeUpdated updateOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// updateField applies one cell to one board field. Every failure mode short
// of a rate limit is local: log, count, move on.
func (s *FieldSyncService) updateField(
	resolver *fields.Resolver,
	projectId string,
	item *models.ProjectItem,
	scope, runId, key string,
	row tabular.Row,
	diffDays int,
) updateOutcome {
	title := row["Title"]

	value := fields.Clean(row[key])
	if value == "" {
		s.logger.Info("skipping empty value", "field", key, "title", title)
		return outcomeSkipped
	}

	field, ok := resolver.Field(key)
	if !ok {
		s.logger.Warn("field not found in project", "field", key)
		return outcomeSkipped
	}

	if field.DataType == models.DataTypeDate {
		shifted, ok := schedule.ShiftDate(value, diffDays)
		if !ok {
			s.logger.Warn("invalid date, skipping", "field", key, "title", title, "value", value)
			return outcomeSkipped
		}
		value = shifted
	}

	payload, err := resolver.Coerce(field, key, value)
	if err != nil {
		var nf *client.NotFoundError
		var ve *fields.ValidationError
		if errors.As(err, &nf) || errors.As(err, &ve) {
			s.logger.Warn("cannot prepare value, skipping", "field", key, "title", title, "err", err)
			return outcomeSkipped
		}
		s.logger.Error("failed to prepare value", "field", key, "title", title, "err", err)
		return outcomeFailed
	}

	fp := repository.Fingerprint(item.Id, field.Id, value)
	if applied, err := s.ledger.IsApplied(scope, fp); err != nil {
		s.logger.Error("ledger check failed", "err", err)
	} else if applied {
		s.logger.Debug("update already applied, skipping", "field", key, "title", title)
		return outcomeSkipped
	}

	err = s.exec.Do("update field value", func() error {
		return s.updater.UpdateItemFieldValue(projectId, item.Id, field.Id, payload)
	})
	if err != nil {
		s.logger.Error("failed to update field", "field", key, "title", title, "err", err)
		return outcomeFailed
	}

	if err := s.ledger.MarkApplied(scope, fp, runId); err != nil {
		s.logger.Error("ledger write failed", "err", err)
	}
	s.logger.Info("updated field", "field", key, "title", title, "value", value)
	return outcomeUpdated
}

// rewriteReferences retargets GitHub URLs in updatable cells at the new
// repository before any value is applied.
func (s *FieldSyncService) rewriteReferences(headers []string, row tabular.Row, index *xref.Index, repo string) {
	for _, key := range headers {
		if !updatable(key) {
			continue
		}
		row[key] = index.RewriteReferenceURL(row[key], row["Title"], s.cfg.Owner, repo)
	}
}

func updatable(header string) bool {
	key := strings.ToLower(strings.TrimSpace(header))
	return key != "title" && updatableColumns[key]
}

// firstAnchor returns the schedule start of the first row that has one; it
// anchors the uniform date shift.
func firstAnchor(rows []tabular.Row) string {
	for _, row := range rows {
		if row["Starts"] != "" {
			return row["Starts"]
		}
	}
	return ""
}

func findItem(items []models.ProjectItem, title string) *models.ProjectItem {
	for i := range items {
		if items[i].Content != nil && items[i].Content.Title == title {
			return &items[i]
		}
	}
	return nil
}
