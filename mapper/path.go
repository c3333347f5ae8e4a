package mapper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// NoIndex marks a path segment that addresses a named key.
const NoIndex = -1

// Path is a parsed field path.
type Path struct {
	Segments []Segment
}

// Segment is one step of a Path: a key, optionally followed by a position
// in the collection stored under that key.
type Segment struct {
	Name  string
	Index int
}

// ParsePath parses a field path string into a Path.
// Supports: "field", "nested.field", "items[2]", "items[0].name".
func ParsePath(path string) (Path, error) {
	if path == "" {
		return Path{}, errors.New("empty path")
	}

	var segments []Segment

	for part := range strings.SplitSeq(path, ".") {
		if part == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty segment", path)
		}

		name, rest, indexed := strings.Cut(part, "[")
		if name == "" {
			return Path{}, fmt.Errorf("invalid path %q: index without field name", path)
		}

		if !isValidKey(name) {
			return Path{}, fmt.Errorf("invalid path %q: invalid key %q", path, name)
		}

		segments = append(segments, Segment{Name: name, Index: NoIndex})

		for indexed {
			var digits string

			digits, rest, indexed = strings.Cut(rest, "]")
			if !indexed {
				return Path{}, fmt.Errorf("invalid path %q: unterminated index", path)
			}

			index, err := strconv.Atoi(digits)
			if err != nil || index < 0 {
				return Path{}, fmt.Errorf("invalid path %q: invalid index %q", path, digits)
			}

			segments = append(segments, Segment{Index: index})

			if rest == "" {
				break
			}

			if !strings.HasPrefix(rest, "[") {
				return Path{}, fmt.Errorf("invalid path %q: unexpected %q after index", path, rest)
			}

			rest = rest[1:]
		}
	}

	return Path{Segments: segments}, nil
}

// String renders the path back into its textual form.
func (p Path) String() string {
	var b strings.Builder

	for i, s := range p.Segments {
		if s.Index != NoIndex {
			b.WriteString("[" + strconv.Itoa(s.Index) + "]")
			continue
		}

		if i > 0 {
			b.WriteByte('.')
		}

		b.WriteString(s.Name)
	}

	return b.String()
}

// isValidKey accepts letters, digits, '_' and '-'.
func isValidKey(s string) bool {
	for _, r := range s {
		if !isLetter(r) && !isDigit(r) && r != '_' && r != '-' {
			return false
		}
	}

	return s != ""
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
