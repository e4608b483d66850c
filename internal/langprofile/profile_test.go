package langprofile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsDerivedPatterns(t *testing.T) {
	p := New([]string{"(", ")", ";"}, "//", "/*", "*/", []string{".c", ".h"})

	require.NotNil(t, p.InlinePattern)
	require.NotNil(t, p.BlockPattern)

	assert.True(t, p.HasExtension(".c"))
	assert.True(t, p.HasExtension(".h"))
	assert.False(t, p.HasExtension(".py"))
}

func TestInlinePatternMatchesToEndOfLine(t *testing.T) {
	p := New(nil, "//", "/*", "*/", nil)
	got := p.InlinePattern.ReplaceAllString("int x; // trailing note\nint y;", "")
	assert.Equal(t, "int x; \nint y;", got)
}

func TestBlockPatternSpansNewlines(t *testing.T) {
	p := New(nil, "//", "/*", "*/", nil)
	got := p.BlockPattern.ReplaceAllString("/* a\nb */ keep", "")
	assert.Equal(t, " keep", got)
}

func TestSeparatorsAreCopiedNotAliased(t *testing.T) {
	seps := []string{"(", ")"}
	p := New(seps, "//", "/*", "*/", nil)
	seps[0] = "MUTATED"
	assert.Equal(t, "(", p.Separators[0])
}
