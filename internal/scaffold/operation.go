package scaffold

import (
	"regexp"

	"github.com/schemagen/schemagen/internal/barrel"
	"github.com/schemagen/schemagen/internal/workspace"
)

// Kind is the type of file operation.
type Kind string

const (
	KindCreate Kind = "create"
	KindPatch  Kind = "patch"
)

// ExistsPolicy decides what a create does when its target is already there.
type ExistsPolicy string

const (
	Overwrite    ExistsPolicy = "overwrite"
	SkipIfExists ExistsPolicy = "skip-if-exists"
)

// Operation is one planned action against a single project-relative path.
type Operation struct {
	ID   string
	Kind Kind
	Path string

	// Template is the logical template name. For creates it renders the whole
	// file; for patches it renders the inserted text when Text is empty.
	Template string
	Text     string

	Exists ExistsPolicy

	Placement workspace.Placement
	Anchor    *regexp.Regexp
	// Marker turns the patch into a no-op when the target already matches it.
	Marker *regexp.Regexp
	// Barrel, when set, replaces the text insertion with a structured merge.
	Barrel *barrel.Entry

	DocumentsOnly bool
	After         []string

	Description string
}

// Edit returns the text insertion for a patch whose text is already known.
func (op Operation) Edit(text string) workspace.Edit {
	return workspace.Edit{
		Placement: op.Placement,
		Anchor:    op.Anchor,
		Text:      text,
		Marker:    op.Marker,
	}
}

// Condition describes when the operation does nothing, for plan listings.
func (op Operation) Condition() string {
	var cond string
	switch {
	case op.Kind == KindPatch:
		cond = "if file exists"
	case op.Exists == SkipIfExists:
		cond = "if file is absent"
	}
	if op.DocumentsOnly {
		if cond != "" {
			return "not object, " + cond
		}
		return "not object"
	}
	return cond
}

func pattern(re *regexp.Regexp) string {
	if re == nil {
		return ""
	}
	return re.String()
}

// AnchorPattern returns the anchor source, or "" when there is none.
func (op Operation) AnchorPattern() string { return pattern(op.Anchor) }

// MarkerPattern returns the marker source, or "" when there is none.
func (op Operation) MarkerPattern() string { return pattern(op.Marker) }
