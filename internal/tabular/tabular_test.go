package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	text := "Title\tStarts \tDue\n" +
		"Fix bug\t2024-01-10\t2024-01-20\n" +
		"\n" +
		" Write docs \t2024-01-11\n"

	table, err := Parse(text, "update.tsv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Title", "Starts", "Due"}, table.Headers)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "Fix bug", table.Rows[0]["Title"])
	assert.Equal(t, "2024-01-10", table.Rows[0]["Starts"])
	assert.Equal(t, "2024-01-20", table.Rows[0]["Due"])

	// Short line: trailing header still present, empty.
	assert.Equal(t, "Write docs", table.Rows[1]["Title"])
	assert.Equal(t, "", table.Rows[1]["Due"])
}

func TestParseMissingHeader(t *testing.T) {
	_, err := Parse("   \n\n", "empty.tsv")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "missing header")
}

func TestParseHeaderOnly(t *testing.T) {
	table, err := Parse("Title\tURL", "update.tsv")
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestParseCRLF(t *testing.T) {
	table, err := Parse("Title\tDue\r\nFix bug\t2024-01-20\r\n", "update.tsv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "2024-01-20", table.Rows[0]["Due"])
}
