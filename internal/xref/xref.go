// Package xref resolves issue titles and embedded issue URLs to numeric
// identifiers in the target repository.
package xref

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kin230k/boardsync/internal/models"
)

var issueNumberPattern = regexp.MustCompile(`issues/(\d+)`)

const githubPrefix = "https://github.com/"

// Index maps project item titles to their issue numbers. Duplicate titles
// keep the first item in listing order; this mirrors the behavior the tool
// has always had and is deliberately not an error.
type Index struct {
	numbers map[string]int
}

func NewIndex(items []models.ProjectItem) *Index {
	idx := &Index{numbers: make(map[string]int, len(items))}
	for _, item := range items {
		if item.Content == nil {
			continue
		}
		if _, seen := idx.numbers[item.Content.Title]; seen {
			continue
		}
		idx.numbers[item.Content.Title] = item.Content.Number
	}
	return idx
}

// Number returns the issue number recorded for title.
func (idx *Index) Number(title string) (int, bool) {
	n, ok := idx.numbers[title]
	return n, ok
}

// RewriteReferenceURL points a GitHub URL cell at the target repository's
// issue for the row's title. Anything that is not a GitHub URL, or a title
// the index does not know, passes through unchanged.
func (idx *Index) RewriteReferenceURL(rawURL, title, owner, repo string) string {
	if !strings.HasPrefix(rawURL, githubPrefix) {
		return rawURL
	}
	number, ok := idx.Number(title)
	if !ok {
		return rawURL
	}
	return fmt.Sprintf("%s%s/%s/issues/%d", githubPrefix, owner, repo, number)
}

// ExtractIssueNumber pulls the trailing numeric identifier out of an
// .../issues/<number> URL. The second result is false when the URL does not
// reference an issue.
func ExtractIssueNumber(url string) (int, bool) {
	m := issueNumberPattern.FindStringSubmatch(url)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
