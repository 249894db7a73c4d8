package github

import (
	"fmt"

	"github.com/kin230k/boardsync/internal/models"
)

type repoSettingsPayload struct {
	Description         string `json:"description"`
	Homepage            string `json:"homepage"`
	Private             bool   `json:"private"`
	HasIssues           bool   `json:"has_issues"`
	HasProjects         bool   `json:"has_projects"`
	HasWiki             bool   `json:"has_wiki"`
	DefaultBranch       string `json:"default_branch"`
	AllowSquashMerge    bool   `json:"allow_squash_merge"`
	AllowMergeCommit    bool   `json:"allow_merge_commit"`
	AllowRebaseMerge    bool   `json:"allow_rebase_merge"`
	AllowAutoMerge      bool   `json:"allow_auto_merge"`
	DeleteBranchOnMerge bool   `json:"delete_branch_on_merge"`
}

func settingsFromPayload(p repoSettingsPayload) *models.RepoSettings {
	return &models.RepoSettings{
		Description:         p.Description,
		Homepage:            p.Homepage,
		Private:             p.Private,
		HasIssues:           p.HasIssues,
		HasProjects:         p.HasProjects,
		HasWiki:             p.HasWiki,
		DefaultBranch:       p.DefaultBranch,
		AllowSquashMerge:    p.AllowSquashMerge,
		AllowMergeCommit:    p.AllowMergeCommit,
		AllowRebaseMerge:    p.AllowRebaseMerge,
		AllowAutoMerge:      p.AllowAutoMerge,
		DeleteBranchOnMerge: p.DeleteBranchOnMerge,
	}
}

func (c *Client) RepoSettings(owner, repo string) (*models.RepoSettings, error) {
	var payload repoSettingsPayload
	if err := c.rest("GET", fmt.Sprintf("/repos/%s/%s", owner, repo), nil, &payload); err != nil {
		return nil, fmt.Errorf("get repository (github): %w", err)
	}
	return settingsFromPayload(payload), nil
}

func (c *Client) UpdateRepoSettings(owner, repo string, settings models.RepoSettings) error {
	body := repoSettingsPayload{
		Description:         settings.Description,
		Homepage:            settings.Homepage,
		Private:             settings.Private,
		HasIssues:           settings.HasIssues,
		HasProjects:         settings.HasProjects,
		HasWiki:             settings.HasWiki,
		DefaultBranch:       settings.DefaultBranch,
		AllowSquashMerge:    settings.AllowSquashMerge,
		AllowMergeCommit:    settings.AllowMergeCommit,
		AllowRebaseMerge:    settings.AllowRebaseMerge,
		AllowAutoMerge:      settings.AllowAutoMerge,
		DeleteBranchOnMerge: settings.DeleteBranchOnMerge,
	}
	if err := c.rest("PATCH", fmt.Sprintf("/repos/%s/%s", owner, repo), body, nil); err != nil {
		return fmt.Errorf("update repository (github): %w", err)
	}
	return nil
}

type milestonePayload struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	State       string `json:"state"`
	Description string `json:"description"`
	DueOn       string `json:"due_on"`
}

func (c *Client) ListMilestones(owner, repo, state string) ([]models.Milestone, error) {
	var payload []milestonePayload
	path := fmt.Sprintf("/repos/%s/%s/milestones?state=%s&per_page=%d", owner, repo, state, c.pageSize)
	if err := c.rest("GET", path, nil, &payload); err != nil {
		return nil, fmt.Errorf("list milestones (github): %w", err)
	}

	milestones := make([]models.Milestone, 0, len(payload))
	for _, m := range payload {
		milestones = append(milestones, models.Milestone{
			Number:      m.Number,
			Title:       m.Title,
			State:       m.State,
			Description: m.Description,
			DueOn:       m.DueOn,
		})
	}
	return milestones, nil
}

func (c *Client) CreateMilestone(owner, repo string, milestone models.Milestone) (int, error) {
	body := map[string]any{
		"title":       milestone.Title,
		"state":       milestone.State,
		"description": milestone.Description,
	}
	if milestone.DueOn != "" {
		body["due_on"] = milestone.DueOn
	}

	var created milestonePayload
	path := fmt.Sprintf("/repos/%s/%s/milestones", owner, repo)
	if err := c.rest("POST", path, body, &created); err != nil {
		return 0, fmt.Errorf("create milestone (github): %w", err)
	}
	return created.Number, nil
}

func (c *Client) UpdateMilestoneDueOn(owner, repo string, number int, dueOn string) error {
	body := map[string]any{"due_on": dueOn}
	path := fmt.Sprintf("/repos/%s/%s/milestones/%d", owner, repo, number)
	if err := c.rest("PATCH", path, body, nil); err != nil {
		return fmt.Errorf("update milestone (github): %w", err)
	}
	return nil
}

type labelPayload struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

func (c *Client) ListLabels(owner, repo string) ([]models.Label, error) {
	var payload []labelPayload
	path := fmt.Sprintf("/repos/%s/%s/labels?per_page=%d", owner, repo, c.pageSize)
	if err := c.rest("GET", path, nil, &payload); err != nil {
		return nil, fmt.Errorf("list labels (github): %w", err)
	}

	labels := make([]models.Label, 0, len(payload))
	for _, l := range payload {
		labels = append(labels, models.Label{Name: l.Name, Color: l.Color, Description: l.Description})
	}
	return labels, nil
}

func (c *Client) CreateLabel(owner, repo string, label models.Label) error {
	body := map[string]any{
		"name":        label.Name,
		"color":       label.Color,
		"description": label.Description,
	}
	path := fmt.Sprintf("/repos/%s/%s/labels", owner, repo)
	if err := c.rest("POST", path, body, nil); err != nil {
		return fmt.Errorf("create label (github): %w", err)
	}
	return nil
}

type issuePayload struct {
	Number    int            `json:"number"`
	NodeId    string         `json:"node_id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Labels    []labelPayload `json:"labels"`
	Assignees []struct {
		Login string `json:"login"`
	} `json:"assignees"`
}

func (c *Client) Issue(owner, repo string, number int) (*models.Issue, error) {
	var payload issuePayload
	path := fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number)
	if err := c.rest("GET", path, nil, &payload); err != nil {
		return nil, fmt.Errorf("get issue (github): %w", err)
	}
	return issueFromPayload(payload), nil
}

// IssuesPage returns one page of the repository's issues, page numbers
// starting at 1. An empty page means the listing is exhausted.
func (c *Client) IssuesPage(owner, repo, state string, page, perPage int) ([]models.Issue, error) {
	var payload []issuePayload
	path := fmt.Sprintf("/repos/%s/%s/issues?state=%s&per_page=%d&page=%d", owner, repo, state, perPage, page)
	if err := c.rest("GET", path, nil, &payload); err != nil {
		return nil, fmt.Errorf("list issues (github): %w", err)
	}

	issues := make([]models.Issue, 0, len(payload))
	for _, p := range payload {
		issues = append(issues, *issueFromPayload(p))
	}
	return issues, nil
}

func issueFromPayload(p issuePayload) *models.Issue {
	issue := &models.Issue{
		Number: p.Number,
		NodeId: p.NodeId,
		Title:  p.Title,
		Body:   p.Body,
	}
	for _, l := range p.Labels {
		issue.Labels = append(issue.Labels, l.Name)
	}
	for _, a := range p.Assignees {
		issue.Assignees = append(issue.Assignees, a.Login)
	}
	return issue
}

func (c *Client) CreateIssue(owner, repo string, issue models.NewIssue) (int, error) {
	body := map[string]any{
		"title":     issue.Title,
		"body":      issue.Body,
		"labels":    issue.Labels,
		"assignees": issue.Assignees,
	}
	if issue.Milestone > 0 {
		body["milestone"] = issue.Milestone
	}

	var created issuePayload
	path := fmt.Sprintf("/repos/%s/%s/issues", owner, repo)
	if err := c.rest("POST", path, body, &created); err != nil {
		return 0, fmt.Errorf("create issue (github): %w", err)
	}
	return created.Number, nil
}

func (c *Client) UpdateIssueBody(owner, repo string, number int, body string) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d", owner, repo, number)
	if err := c.rest("PATCH", path, map[string]any{"body": body}, nil); err != nil {
		return fmt.Errorf("update issue (github): %w", err)
	}
	return nil
}
