package workspace

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Placement says where an Edit inserts its text relative to the anchor.
type Placement string

const (
	// Prepend inserts at the start of the file.
	Prepend Placement = "prepend"
	// Before inserts immediately before the first anchor match.
	Before Placement = "before"
	// After inserts immediately after the first anchor match.
	After Placement = "after"
	// Append replaces trailing whitespace with a blank line and the text.
	Append Placement = "append"
)

// ErrAnchorNotFound is returned when a Before/After anchor has no match.
var ErrAnchorNotFound = errors.New("anchor not found")

// Edit is a single text insertion.
type Edit struct {
	Placement Placement
	Anchor    *regexp.Regexp
	Text      string
	// Marker, when set and already matched by the file, turns the edit into
	// a no-op.
	Marker *regexp.Regexp
}

// Satisfied reports whether content already carries the edit's marker.
func (e Edit) Satisfied(content string) bool {
	return e.Marker != nil && e.Marker.MatchString(content)
}

// ApplyEdit returns content with e applied. It does not consult Marker.
func ApplyEdit(content string, e Edit) (string, error) {
	switch e.Placement {
	case Prepend:
		return e.Text + content, nil
	case Append:
		body := strings.TrimRight(content, " \t\r\n")
		if body == "" {
			return strings.TrimSpace(e.Text) + "\n", nil
		}
		return body + "\n\n" + strings.TrimSpace(e.Text) + "\n", nil
	case Before, After:
		if e.Anchor == nil {
			return "", fmt.Errorf("%s edit without anchor", e.Placement)
		}
		loc := e.Anchor.FindStringIndex(content)
		if loc == nil {
			return "", fmt.Errorf("%w: %s", ErrAnchorNotFound, e.Anchor)
		}
		at := loc[0]
		if e.Placement == After {
			at = loc[1]
		}
		return content[:at] + e.Text + content[at:], nil
	default:
		return "", fmt.Errorf("unknown placement %q", e.Placement)
	}
}
