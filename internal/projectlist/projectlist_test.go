package projectlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAssignsOrdinalIDs(t *testing.T) {
	input := "archives/a.zip\narchives/b.zip\narchives/c.zip\n"

	projects, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, projects, 3)

	assert.EqualValues(t, 1, projects[0].ID)
	assert.Equal(t, "archives/a.zip", projects[0].ArchivePath)
	assert.EqualValues(t, 2, projects[1].ID)
	assert.EqualValues(t, 3, projects[2].ID)
}

func TestReadSkipsBlankLinesButStillConsumesTheirIDs(t *testing.T) {
	input := "archives/a.zip\n\n   \narchives/b.zip\n"

	projects, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.EqualValues(t, 1, projects[0].ID)
	assert.EqualValues(t, 4, projects[1].ID)
}

func TestReadTrimsWhitespace(t *testing.T) {
	input := "  archives/a.zip  \n"
	projects, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "archives/a.zip", projects[0].ArchivePath)
}

func TestDisplayIDConcatenatesDecimal(t *testing.T) {
	p := Project{ID: 7}
	assert.Equal(t, "107", DisplayID(10, p).String())
	assert.Equal(t, "07", DisplayID(0, p).String())
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load("/nonexistent/path/projects.txt")
	require.Error(t, err)
}
