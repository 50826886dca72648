package ephem

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Entry is one named element set from a three-line-element file: a name row
// followed by the two element lines.
type Entry struct {
	Name    string
	NoradID string
	Line1   string
	Line2   string
}

// ParseTLE reads a three-line-element stream. Blank lines between groups are
// tolerated; a group whose element lines fail validation is skipped rather
// than aborting the whole catalog, since public element feeds routinely carry
// the odd truncated record.
func ParseTLE(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)

	var entries []Entry
	var block []string
	flush := func() {
		if len(block) != 3 {
			block = nil
			return
		}
		name, line1, line2 := block[0], block[1], block[2]
		block = nil
		if validateTLELines(line1, line2) != nil {
			return
		}
		entries = append(entries, Entry{
			Name:    strings.TrimPrefix(name, "0 "),
			NoradID: strings.TrimSpace(line1[2:7]),
			Line1:   line1,
			Line2:   line2,
		})
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			flush()
			continue
		}
		block = append(block, line)
		if len(block) == 3 {
			flush()
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read TLE stream: %w", err)
	}
	return entries, nil
}

// Propagator builds an SGP4 propagator for the entry.
func (e Entry) Propagator() (*SGP4, error) {
	p, err := NewSGP4FromTLE(e.Line1, e.Line2)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.Name, err)
	}
	return p, nil
}
