package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/kin230k/boardsync/internal/client"
	"github.com/kin230k/boardsync/internal/config"
	"github.com/kin230k/boardsync/internal/models"
	"github.com/kin230k/boardsync/internal/retry"
	"github.com/kin230k/boardsync/internal/tabular"
)

var sourceIssueRef = regexp.MustCompile(`github\.com/(.+?)/(.+?)/issues/(\d+)`)

// IssueImporter copies a template repository into a fresh one: content via
// git mirror, then labels, milestones and the issues listed in the update
// file. Issue creation is the call GitHub throttles hardest, so it goes
// through the retry executor.
type IssueImporter struct {
	cfg        *config.Config
	admin      client.RepoAdmin
	labels     client.LabelService
	milestones client.MilestoneService
	reader     client.IssueReader
	writer     client.IssueWriter
	mirror     *Mirror
	exec       *retry.Executor
	logger     *log.Logger
}

func NewIssueImporter(
	cfg *config.Config,
	admin client.RepoAdmin,
	labels client.LabelService,
	milestones client.MilestoneService,
	reader client.IssueReader,
	writer client.IssueWriter,
	mirror *Mirror,
	exec *retry.Executor,
	logger *log.Logger,
) *IssueImporter {
	return &IssueImporter{
		cfg:        cfg,
		admin:      admin,
		labels:     labels,
		milestones: milestones,
		reader:     reader,
		writer:     writer,
		mirror:     mirror,
		exec:       exec,
		logger:     logger,
	}
}

func (s *IssueImporter) Import(origin, target string) error {
	started := time.Now()
	owner := s.cfg.Owner

	if err := s.mirror.MirrorRepo(owner+"/"+origin, owner+"/"+target); err != nil {
		return fmt.Errorf("mirror repository: %w", err)
	}

	s.copySettings(origin, target)
	s.copyLabels(origin, target)
	milestoneMap := s.copyMilestones(origin, target)
	created, failed := s.createIssues(origin, target, milestoneMap)

	if err := s.mirror.MirrorWiki(owner+"/"+origin, owner+"/"+target); err != nil {
		s.logger.Warn("wiki copy failed", "err", err)
	}

	s.logger.Info("issue import finished",
		"created", english.Plural(created, "issue", ""),
		"failed", failed,
		"took", humanize.RelTime(started, time.Now(), "", ""))
	return nil
}

func (s *IssueImporter) copySettings(origin, target string) {
	settings, err := s.admin.RepoSettings(s.cfg.Owner, origin)
	if err != nil {
		s.logger.Error("failed to read origin settings", "err", err)
		return
	}
	if err := s.admin.UpdateRepoSettings(s.cfg.Owner, target, *settings); err != nil {
		s.logger.Error("failed to copy settings", "err", err)
		return
	}
	s.logger.Info("copied repository settings")
}

func (s *IssueImporter) copyLabels(origin, target string) {
	labels, err := s.labels.ListLabels(s.cfg.Owner, origin)
	if err != nil {
		s.logger.Error("failed to list origin labels", "err", err)
		return
	}
	for _, label := range labels {
		if err := s.labels.CreateLabel(s.cfg.Owner, target, label); err != nil {
			s.logger.Warn("label skipped (possibly exists)", "label", label.Name, "err", err)
			continue
		}
		s.logger.Info("created label", "label", label.Name)
	}
}

// copyMilestones duplicates the origin's milestones and returns the
// title→number map used to attach imported issues.
func (s *IssueImporter) copyMilestones(origin, target string) map[string]int {
	milestoneMap := make(map[string]int)

	milestones, err := s.milestones.ListMilestones(s.cfg.Owner, origin, "open")
	if err != nil {
		s.logger.Error("failed to list origin milestones", "err", err)
		return milestoneMap
	}

	for _, ms := range milestones {
		number, err := s.milestones.CreateMilestone(s.cfg.Owner, target, ms)
		if err != nil {
			s.logger.Error("failed to create milestone", "milestone", ms.Title, "err", err)
			continue
		}
		milestoneMap[ms.Title] = number
		s.logger.Info("created milestone", "milestone", ms.Title)
	}
	return milestoneMap
}

func (s *IssueImporter) createIssues(origin, target string, milestoneMap map[string]int) (created, failed int) {
	table, err := tabular.Load(s.cfg.UpdateFile)
	if err != nil {
		s.logger.Error("failed to load update file", "err", err)
		return 0, 0
	}

	for _, row := range table.Rows {
		issue := models.NewIssue{
			Title: row["Title"],
			Body:  s.fetchSourceBody(row["URL"]),
		}
		if row["Labels"] != "" {
			issue.Labels = []string{row["Labels"]}
		}
		for _, a := range strings.Split(row["Assignees"], ",") {
			if a = strings.TrimSpace(a); a != "" {
				issue.Assignees = append(issue.Assignees, a)
			}
		}
		if number, ok := milestoneMap[row["Milestone"]]; ok {
			issue.Milestone = number
		}

		s.logger.Info("creating issue", "title", issue.Title)
		err := s.exec.Do("create issue", func() error {
			_, err := s.writer.CreateIssue(s.cfg.Owner, target, issue)
			return err
		})
		if err != nil {
			s.logger.Error("failed to create issue", "title", issue.Title, "err", err)
			failed++
			continue
		}
		created++
	}
	return created, failed
}

// fetchSourceBody pulls the body of the issue a URL cell references, so the
// imported copy keeps its description. Best-effort: an unreadable source
// just yields an empty body.
func (s *IssueImporter) fetchSourceBody(url string) string {
	m := sourceIssueRef.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	number, err := strconv.Atoi(m[3])
	if err != nil {
		return ""
	}
	issue, err := s.reader.Issue(m[1], m[2], number)
	if err != nil {
		s.logger.Warn("failed to fetch original issue body", "url", url, "err", err)
		return ""
	}
	return issue.Body
}
