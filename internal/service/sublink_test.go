package service

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kin230k/boardsync/internal/config"
)

type linkCall struct {
	Parent string
	Child  string
}

type fakeLinker struct {
	nodeIds map[int]string
	links   []linkCall
}

func (f *fakeLinker) IssueNodeId(owner, repo string, number int) (string, error) {
	id, ok := f.nodeIds[number]
	if !ok {
		return "", errors.New("issue not found")
	}
	return id, nil
}

func (f *fakeLinker) AddSubIssue(parentNodeId, childNodeId string) error {
	f.links = append(f.links, linkCall{Parent: parentNodeId, Child: childNodeId})
	return nil
}

func writeParentsFile(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parents.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return &config.Config{Owner: "acme", ParentsFile: path}
}

func TestLinkCreatesHierarchy(t *testing.T) {
	cfg := writeParentsFile(t,
		"Title\tURL\tParent issue\n"+
			"Child task\thttps://github.com/acme/copy/issues/5\thttps://github.com/acme/copy/issues/2\n")

	linker := &fakeLinker{nodeIds: map[int]string{5: "node-5", 2: "node-2"}}
	svc := NewSubIssueLinker(cfg, linker, log.New(io.Discard))

	require.NoError(t, svc.Link("copy"))
	require.Len(t, linker.links, 1)
	assert.Equal(t, linkCall{Parent: "node-2", Child: "node-5"}, linker.links[0])
}

func TestLinkSkipsRowsWithoutParent(t *testing.T) {
	cfg := writeParentsFile(t,
		"Title\tURL\tParent issue\n"+
			"Top-level task\thttps://github.com/acme/copy/issues/5\t\n")

	linker := &fakeLinker{nodeIds: map[int]string{5: "node-5"}}
	svc := NewSubIssueLinker(cfg, linker, log.New(io.Discard))

	// No parent is valid: no link call is issued and no error raised.
	require.NoError(t, svc.Link("copy"))
	assert.Empty(t, linker.links)
}

func TestLinkSkipsRowsWithMissingOrBadChild(t *testing.T) {
	cfg := writeParentsFile(t,
		"Title\tURL\tParent issue\n"+
			"No URL\t\thttps://github.com/acme/copy/issues/2\n"+
			"Bad URL\tnot-an-issue-url\thttps://github.com/acme/copy/issues/2\n")

	linker := &fakeLinker{nodeIds: map[int]string{2: "node-2"}}
	svc := NewSubIssueLinker(cfg, linker, log.New(io.Discard))

	require.NoError(t, svc.Link("copy"))
	assert.Empty(t, linker.links)
}

func TestLinkContinuesAfterResolutionFailure(t *testing.T) {
	cfg := writeParentsFile(t,
		"Title\tURL\tParent issue\n"+
			"Broken\thttps://github.com/acme/copy/issues/99\thttps://github.com/acme/copy/issues/2\n"+
			"Fine\thttps://github.com/acme/copy/issues/5\thttps://github.com/acme/copy/issues/2\n")

	linker := &fakeLinker{nodeIds: map[int]string{5: "node-5", 2: "node-2"}}
	svc := NewSubIssueLinker(cfg, linker, log.New(io.Discard))

	require.NoError(t, svc.Link("copy"))
	require.Len(t, linker.links, 1)
	assert.Equal(t, "node-5", linker.links[0].Child)
}
