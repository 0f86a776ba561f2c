package pixiv

import (
	"fmt"
	"strings"
)

// scanner walks a string left to right.  Every search starts where the
// previous one left off, so the order of calls must match the order things
// appear in the source.
type scanner struct {
	source string
	pos    int
}

func newScanner(source string) *scanner {
	return &scanner{source: source}
}

// remaining returns the part of the source that has not been consumed yet.
func (s *scanner) remaining() string {
	return s.source[s.pos:]
}

// until returns everything up to the next occurrence of `end`, and moves past `end`.
func (s *scanner) until(end string) (string, bool) {
	rest := s.remaining()
	index := strings.Index(rest, end)
	if index == -1 {
		return "", false
	}
	s.pos += index + len(end)
	return rest[:index], true
}

// skipPast moves past the next occurrence of `marker`.
func (s *scanner) skipPast(marker string) bool {
	index := strings.Index(s.remaining(), marker)
	if index == -1 {
		return false
	}
	s.pos += index + len(marker)
	return true
}

// between finds the next `start`, and returns everything from there up to the
// following `end`.  The scanner is left just past `end`.  If either delimiter
// is missing, the scanner does not move.
func (s *scanner) between(start string, end string) (string, error) {
	saved := s.pos
	if !s.skipPast(start) {
		return "", fmt.Errorf("missing %q", start)
	}
	value, ok := s.until(end)
	if !ok {
		s.pos = saved
		return "", fmt.Errorf("missing %q after %q", end, start)
	}
	return value, nil
}

// attr reads the value of the next `name="..."` attribute.
func (s *scanner) attr(name string) (string, error) {
	return s.between(name+`="`, `"`)
}
