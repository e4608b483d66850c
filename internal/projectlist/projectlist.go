// Package projectlist reads the project-list file: one archive path per
// line, whose ordinal line number becomes the project's 1-based internal
// ProjectID.
package projectlist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/sourcerercc/tokenpipe/internal/model"
)

// Project pairs a positional project id with the archive path it names.
type Project struct {
	ID          model.ProjectID
	ArchivePath string
}

// Load reads every non-blank line of path into a Project, in file order.
// The original tool reads the whole list and enumerates every line
// (blank or not) starting at 1, so a blank line still consumes an id --
// it just never becomes a Project here.
func Load(path string) ([]Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses project entries from r, for callers that already have an
// open reader (tests, or a caller that wants to avoid a second file open).
func Read(r io.Reader) ([]Project, error) {
	var projects []Project
	scanner := bufio.NewScanner(r)
	// Archive paths can be long; grow the buffer beyond bufio's default
	// token limit rather than fail on a legitimately long line.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var next int64 = 1
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			projects = append(projects, Project{ID: model.ProjectID(next), ArchivePath: line})
		}
		next++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// DisplayID builds the decimal-concatenation display id for p under the
// given flag.
func DisplayID(flag int64, p Project) model.DisplayProjectID {
	return model.NewDisplayProjectID(flag, p.ID)
}
