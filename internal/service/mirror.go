package service

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// Mirror shells out to git for the bulk content transfer. It is a thin
// collaborator: the metadata engine never depends on its internals.
type Mirror struct {
	logger *log.Logger
}

func NewMirror(logger *log.Logger) *Mirror {
	return &Mirror{logger: logger}
}

func (m *Mirror) run(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w", args[0], err)
	}
	return nil
}

// MirrorRepo clones origin bare and pushes everything to target.
func (m *Mirror) MirrorRepo(origin, target string) error {
	m.logger.Info("cloning origin repository", "origin", origin)
	dir := repoDir(origin)
	if err := m.run("clone", "--bare", fmt.Sprintf("https://github.com/%s.git", origin)); err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	m.logger.Info("pushing to target repository", "target", target)
	return m.run("-C", dir, "push", "--mirror", fmt.Sprintf("https://github.com/%s.git", target))
}

// MirrorWiki copies the wiki the same way; wikis are frequently absent, so
// failures here are reported by the caller as warnings, not errors.
func (m *Mirror) MirrorWiki(origin, target string) error {
	m.logger.Info("copying wiki", "origin", origin)
	dir := wikiDir(origin)
	if err := m.run("clone", fmt.Sprintf("https://github.com/%s.wiki.git", origin)); err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	return m.run("-C", dir, "push", "--mirror", fmt.Sprintf("https://github.com/%s.wiki.git", target))
}

func repoDir(origin string) string {
	return lastSegment(origin) + ".git"
}

func wikiDir(origin string) string {
	return lastSegment(origin) + ".wiki"
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
