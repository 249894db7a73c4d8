package service

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/kin230k/boardsync/internal/client"
	"github.com/kin230k/boardsync/internal/retry"
	"github.com/kin230k/boardsync/internal/schedule"
)

// MilestoneShifter moves every open milestone's due date by the run's day
// offset. It runs before the per-issue field updates so dependent schedule
// fields land against already-shifted milestones.
type MilestoneShifter struct {
	milestones client.MilestoneService
	exec       *retry.Executor
	logger     *log.Logger
}

func NewMilestoneShifter(milestones client.MilestoneService, exec *retry.Executor, logger *log.Logger) *MilestoneShifter {
	return &MilestoneShifter{
		milestones: milestones,
		exec:       exec,
		logger:     logger,
	}
}

func (s *MilestoneShifter) Shift(owner, repo string, diffDays int) error {
	milestones, err := s.milestones.ListMilestones(owner, repo, "open")
	if err != nil {
		return fmt.Errorf("list milestones: %w", err)
	}

	for _, ms := range milestones {
		if ms.DueOn == "" {
			continue
		}
		shifted, ok := schedule.ShiftDate(ms.DueOn, diffDays)
		if !ok {
			s.logger.Warn("milestone has unparsable due date, skipping", "milestone", ms.Title, "due_on", ms.DueOn)
			continue
		}

		number := ms.Number
		err := s.exec.Do("update milestone", func() error {
			return s.milestones.UpdateMilestoneDueOn(owner, repo, number, shifted+"T00:00:00Z")
		})
		if err != nil {
			s.logger.Error("failed to update milestone due date", "milestone", ms.Title, "err", err)
			continue
		}
		s.logger.Info("updated milestone due date", "milestone", ms.Title, "due", shifted)
	}

	return nil
}
