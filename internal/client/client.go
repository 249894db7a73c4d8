package client

import "github.com/kin230k/boardsync/internal/models"

type ProjectReader interface {
	ProjectByTitle(owner, title string) (*models.Project, error)
	ProjectItems(projectId string) ([]models.ProjectItem, error)
	ProjectFields(projectId string) ([]models.Field, error)
}

type FieldLookup interface {
	FieldOptions(fieldId string) ([]models.FieldOption, error)
	FieldIterations(fieldId string) ([]models.Iteration, error)
}

type FieldUpdater interface {
	UpdateItemFieldValue(projectId, itemId, fieldId string, value any) error
}

type MilestoneService interface {
	ListMilestones(owner, repo, state string) ([]models.Milestone, error)
	CreateMilestone(owner, repo string, milestone models.Milestone) (int, error)
	UpdateMilestoneDueOn(owner, repo string, number int, dueOn string) error
}

type LabelService interface {
	ListLabels(owner, repo string) ([]models.Label, error)
	CreateLabel(owner, repo string, label models.Label) error
}

type IssueReader interface {
	Issue(owner, repo string, number int) (*models.Issue, error)
	IssuesPage(owner, repo, state string, page, perPage int) ([]models.Issue, error)
}

type IssueWriter interface {
	CreateIssue(owner, repo string, issue models.NewIssue) (int, error)
	UpdateIssueBody(owner, repo string, number int, body string) error
}

type RepoAdmin interface {
	RepoSettings(owner, repo string) (*models.RepoSettings, error)
	UpdateRepoSettings(owner, repo string, settings models.RepoSettings) error
}

type IssueLinker interface {
	IssueNodeId(owner, repo string, number int) (string, error)
	AddSubIssue(parentNodeId, childNodeId string) error
}
