package models

type Milestone struct {
	Number      int
	Title       string
	State       string
	Description string
	DueOn       string
}

type Label struct {
	Name        string
	Color       string
	Description string
}

type Issue struct {
	Number    int
	NodeId    string
	Title     string
	Body      string
	Labels    []string
	Assignees []string
	Milestone int
}

// NewIssue is the payload for creating an issue in the target repository.
// Milestone is the target milestone number, 0 when unset.
type NewIssue struct {
	Title     string
	Body      string
	Labels    []string
	Assignees []string
	Milestone int
}

type RepoSettings struct {
	Description         string
	Homepage            string
	Private             bool
	HasIssues           bool
	HasProjects         bool
	HasWiki             bool
	DefaultBranch       string
	AllowSquashMerge    bool
	AllowMergeCommit    bool
	AllowRebaseMerge    bool
	AllowAutoMerge      bool
	DeleteBranchOnMerge bool
}
