package service

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize/english"

	"github.com/kin230k/boardsync/internal/client"
	"github.com/kin230k/boardsync/internal/config"
	"github.com/kin230k/boardsync/internal/tabular"
	"github.com/kin230k/boardsync/internal/xref"
)

// SubIssueLinker establishes parent/child relationships from the parents
// file: each row names a child issue by URL and, optionally, its parent.
// A missing parent is normal (top-level issue), not a problem.
type SubIssueLinker struct {
	cfg    *config.Config
	linker client.IssueLinker
	logger *log.Logger
}

func NewSubIssueLinker(cfg *config.Config, linker client.IssueLinker, logger *log.Logger) *SubIssueLinker {
	return &SubIssueLinker{
		cfg:    cfg,
		linker: linker,
		logger: logger,
	}
}

func (s *SubIssueLinker) Link(repo string) error {
	table, err := tabular.Load(s.cfg.ParentsFile)
	if err != nil {
		return fmt.Errorf("load parents file: %w", err)
	}

	linked := 0
	for _, row := range table.Rows {
		if row["URL"] == "" {
			s.logger.Warn("skipping row with missing URL", "title", row["Title"])
			continue
		}

		childNumber, ok := xref.ExtractIssueNumber(row["URL"])
		if !ok {
			s.logger.Warn("skipping row with invalid or missing child issue", "url", row["URL"])
			continue
		}

		parentNumber, ok := xref.ExtractIssueNumber(row["Parent issue"])
		if !ok {
			s.logger.Info("no parent specified, skipping link", "child", childNumber)
			continue
		}

		if err := s.linkPair(repo, parentNumber, childNumber); err != nil {
			s.logger.Error("could not link issues", "child", childNumber, "parent", parentNumber, "err", err)
			continue
		}
		s.logger.Info("linked issue", "child", childNumber, "parent", parentNumber)
		linked++
	}

	s.logger.Info("sub-issue linking finished", "linked", english.Plural(linked, "issue", ""))
	return nil
}

func (s *SubIssueLinker) linkPair(repo string, parentNumber, childNumber int) error {
	childId, err := s.linker.IssueNodeId(s.cfg.Owner, repo, childNumber)
	if err != nil {
		return fmt.Errorf("resolve child: %w", err)
	}
	parentId, err := s.linker.IssueNodeId(s.cfg.Owner, repo, parentNumber)
	if err != nil {
		return fmt.Errorf("resolve parent: %w", err)
	}
	return s.linker.AddSubIssue(parentId, childId)
}
