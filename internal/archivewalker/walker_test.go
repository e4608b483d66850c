package archivewalker

import (
	"archive/zip"
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcerercc/tokenpipe/internal/idalloc"
	"github.com/sourcerercc/tokenpipe/internal/langprofile"
	"github.com/sourcerercc/tokenpipe/internal/model"
	"github.com/sourcerercc/tokenpipe/internal/sink"
)

func cProfile() *langprofile.Profile {
	return langprofile.New(
		[]string{"{", "}", "(", ")", ";", ",", "."},
		"//", "/*", "*/",
		[]string{".c", ".h"},
	)
}

func buildArchive(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func openSink(t *testing.T) (*sink.Sink, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := sink.Open(dir, dir, dir, 0)
	require.NoError(t, err)
	return s, dir
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestWalkFileModeEmitsOneRecordPerMatchingEntry(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"src/main.c":    "int main() {\n  return 0; // done\n}\n",
		"src/ignore.py": "print('skip me')\n",
		"README.md":     "not code",
	})

	s, dir := openSink(t)
	alloc := idalloc.New(0, 0)
	err := Walk(1, archive, model.NewDisplayProjectID(10, 1), FileMode, cProfile(), alloc, s)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	statsLines := readLines(t, filepath.Join(dir, "files-stats-0.stats"))
	require.Len(t, statsLines, 1)
	assert.Contains(t, statsLines[0], "main.c")

	tokensLines := readLines(t, filepath.Join(dir, "files-tokens-0.tokens"))
	require.Len(t, tokensLines, 1)

	projLines := readLines(t, filepath.Join(dir, "bookkeeping-proj-0.projs"))
	require.Len(t, projLines, 1)
	assert.Contains(t, projLines[0], archive)
}

func TestWalkSkipsNonUTF8Entries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	okWriter, err := zw.Create("ok.c")
	require.NoError(t, err)
	_, err = okWriter.Write([]byte("int x;\n"))
	require.NoError(t, err)
	badWriter, err := zw.Create("bad.c")
	require.NoError(t, err)
	_, err = badWriter.Write([]byte{0xff, 0xfe, 0xfd})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	s, dir := openSink(t)
	alloc := idalloc.New(0, 0)
	err = Walk(1, path, model.NewDisplayProjectID(10, 1), FileMode, cProfile(), alloc, s)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	statsLines := readLines(t, filepath.Join(dir, "files-stats-0.stats"))
	require.Len(t, statsLines, 1)
	assert.Contains(t, statsLines[0], "ok.c")
}

func TestWalkBlockModeEmitsFAndBRecords(t *testing.T) {
	archive := buildArchive(t, map[string]string{
		"pkg/Greeter.java": "package pkg;\npublic class Greeter {\n    public String greet() {\n        return \"hi\";\n    }\n}\n",
	})

	s, dir := openSink(t)
	alloc := idalloc.New(0, 0)
	profile := langprofile.New([]string{"{", "}", "(", ")", ";"}, "//", "/*", "*/", []string{".java"})
	err := Walk(1, archive, model.NewDisplayProjectID(10, 1), BlockMode, profile, alloc, s)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	statsLines := readLines(t, filepath.Join(dir, "files-stats-0.stats"))
	require.Len(t, statsLines, 2)
	assert.True(t, strings.HasPrefix(statsLines[0], "f,"))
	assert.True(t, strings.HasPrefix(statsLines[1], "b,"))

	tokensLines := readLines(t, filepath.Join(dir, "files-tokens-0.tokens"))
	require.Len(t, tokensLines, 1)
	assert.Contains(t, tokensLines[0], "greet")
}

func TestWalkMalformedArchiveReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.zip")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0644))

	s, _ := openSink(t)
	defer s.Close()
	alloc := idalloc.New(0, 0)
	err := Walk(1, path, model.NewDisplayProjectID(10, 1), FileMode, cProfile(), alloc, s)
	require.Error(t, err)
}
