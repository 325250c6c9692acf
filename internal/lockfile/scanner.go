package lockfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ralt/lockedpip/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	// SectionHeader is the line that opens the package list
	SectionHeader = "package:"

	listMarker     = '-'
	commentMarker  = "#"
	fieldDelimiter = ":"

	maxLineSize = 1024 * 1024
)

// sectionScanner walks the lockfile one line at a time. The two indentation
// levels are learned from the first list item and never change afterwards.
type sectionScanner struct {
	builder *tableBuilder

	inSection bool
	done      bool

	listIndent int // column of "-", -1 until known
	keyIndent  int // column of record keys after listIndent, -1 until known

	current *models.PackageRecord
}

func newSectionScanner(resolver *PlatformResolver) *sectionScanner {
	return &sectionScanner{
		builder:    newTableBuilder(resolver),
		listIndent: -1,
		keyIndent:  -1,
	}
}

// Parse reads the package section from r and builds the table of packages
// for one platform. An empty platform means it is inferred from the records.
func Parse(r io.Reader, platform string) (*models.PackageTable, error) {
	resolver := NewPlatformResolver(platform)
	s := newSectionScanner(resolver)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := s.scanLine(lineNo, scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &models.LockError{
			Type: models.ErrFileOp,
			Line: lineNo + 1,
			Err:  fmt.Errorf("failed to read lockfile: %w", err),
		}
	}

	if !s.inSection {
		return nil, &models.LockError{
			Type: models.ErrStructural,
			Err:  fmt.Errorf("package section not found, expected a line %q", SectionHeader),
		}
	}

	if err := s.flush(); err != nil {
		return nil, err
	}

	table := s.builder.table
	table.Platform = resolver.Active()
	logrus.Debugf("Parsed %d packages for platform %q (seen: %v)", table.Len(), table.Platform, resolver.Observed())
	return table, nil
}

// ParseString is Parse over an in-memory lockfile
func ParseString(s string, platform string) (*models.PackageTable, error) {
	return Parse(strings.NewReader(s), platform)
}

func (s *sectionScanner) scanLine(lineNo int, line string) error {
	if s.done {
		return nil
	}

	if !s.inSection {
		s.inSection = line == SectionHeader
		return nil
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, commentMarker) {
		return nil
	}

	if s.listIndent < 0 {
		indent := leadingSpaces(line)
		if line[indent] != listMarker {
			return structuralError(lineNo, line, "package section does not start with a list item")
		}
		s.listIndent = indent
	}

	if leadingSpaces(line) < s.listIndent {
		s.done = true
		return nil
	}

	item := line[s.listIndent:]
	if item[0] == listMarker {
		if err := s.flush(); err != nil {
			return err
		}
		s.current = models.NewPackageRecord(lineNo)

		// Blank out the marker so the first key lines up with the others
		item = " " + item[1:]
		if s.keyIndent < 0 {
			s.keyIndent = leadingSpaces(item)
		}
	}

	if s.current == nil || s.keyIndent < 0 {
		return structuralError(lineNo, line, "package section does not start with a list item")
	}

	if leadingSpaces(item) < s.keyIndent {
		s.done = true
		return nil
	}

	field := item[s.keyIndent:]
	content := strings.TrimSpace(field)
	if content == "" || strings.HasPrefix(content, commentMarker) {
		return structuralError(lineNo, line, "empty list item in package section")
	}

	// Deeper keys belong to nested values, which are not tracked
	if field[0] == ' ' || field[0] == '\t' {
		return nil
	}

	key, value, found := strings.Cut(field, fieldDelimiter)
	if !found {
		return structuralError(lineNo, line, "missing ':' delimiter")
	}
	key = strings.TrimSpace(key)
	value = unquote(strings.TrimSpace(value))
	if key == "" {
		return structuralError(lineNo, line, "empty key")
	}

	s.current.Set(key, value)

	if key == models.AttrPlatform {
		return s.builder.resolver.Observe(value, lineNo, line)
	}
	return nil
}

// flush hands the record under construction to the table builder
func (s *sectionScanner) flush() error {
	if s.current == nil {
		return nil
	}
	rec := s.current
	s.current = nil
	return s.builder.add(rec)
}

// unquote strips one pair of matching double or single quotes
func unquote(value string) string {
	if len(value) < 2 {
		return value
	}
	first, last := value[0], value[len(value)-1]
	if first == last && (first == '"' || first == '\'') {
		return value[1 : len(value)-1]
	}
	return value
}

func leadingSpaces(s string) int {
	return len(s) - len(strings.TrimLeft(s, " "))
}

func structuralError(lineNo int, line, msg string) error {
	return &models.LockError{
		Type: models.ErrStructural,
		Line: lineNo,
		Text: line,
		Err:  fmt.Errorf("%s", msg),
	}
}
