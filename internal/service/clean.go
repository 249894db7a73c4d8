package service

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/kin230k/boardsync/internal/client"
	"github.com/kin230k/boardsync/internal/config"
)

// Imported issues open with an attribution block the migration no longer
// needs once the copy is canonical.
var attributionBlock = regexp.MustCompile(`Original issue by @\w+ on \d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z\n\n---\n?`)

// IssueCleaner strips the attribution block from every issue body in the
// target repository, walking the listing one page at a time.
type IssueCleaner struct {
	cfg    *config.Config
	reader client.IssueReader
	writer client.IssueWriter
	logger *log.Logger
}

func NewIssueCleaner(cfg *config.Config, reader client.IssueReader, writer client.IssueWriter, logger *log.Logger) *IssueCleaner {
	return &IssueCleaner{
		cfg:    cfg,
		reader: reader,
		writer: writer,
		logger: logger,
	}
}

func (s *IssueCleaner) Clean(repo string) error {
	cleaned := 0
	for page := 1; ; page++ {
		issues, err := s.reader.IssuesPage(s.cfg.Owner, repo, "all", page, s.cfg.PageSize)
		if err != nil {
			return fmt.Errorf("list issues page %d: %w", page, err)
		}
		if len(issues) == 0 {
			break
		}

		for _, issue := range issues {
			if issue.Body == "" {
				continue
			}
			body := attributionBlock.ReplaceAllString(issue.Body, "")
			if body == issue.Body {
				s.logger.Debug("no attribution block", "issue", issue.Number)
				continue
			}

			if err := s.writer.UpdateIssueBody(s.cfg.Owner, repo, issue.Number, body); err != nil {
				s.logger.Error("failed to update issue body", "issue", issue.Number, "err", err)
				continue
			}
			s.logger.Info("cleaned issue body", "issue", issue.Number)
			cleaned++
		}
	}

	s.logger.Info("issue cleanup finished", "cleaned", cleaned)
	return nil
}
