package scaffold

import (
	"errors"

	"github.com/schemagen/schemagen/internal/workspace"
)

// Status is the terminal state of one operation.
type Status string

const (
	StatusCreated     Status = "created"
	StatusOverwritten Status = "overwritten"
	StatusApplied     Status = "applied"
	StatusUnchanged   Status = "unchanged"
	StatusExists      Status = "exists"
	StatusSkipped     Status = "skipped"
	StatusFailed      Status = "failed"
)

// Statuses lists every status in report order.
var Statuses = []Status{
	StatusCreated, StatusOverwritten, StatusApplied, StatusUnchanged,
	StatusExists, StatusSkipped, StatusFailed,
}

func statusOf(o workspace.Outcome) Status {
	switch o {
	case workspace.Created:
		return StatusCreated
	case workspace.Overwritten:
		return StatusOverwritten
	case workspace.Applied:
		return StatusApplied
	case workspace.Unchanged:
		return StatusUnchanged
	case workspace.Exists:
		return StatusExists
	}
	return StatusFailed
}

// Skip reasons.
const (
	ReasonObjectType = "skipping action for object type"
)

// Result is the outcome of one operation.
type Result struct {
	ID     string `json:"id" yaml:"id"`
	Kind   Kind   `json:"kind" yaml:"kind"`
	Path   string `json:"path" yaml:"path"`
	Status Status `json:"status" yaml:"status"`
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Err    error  `json:"-" yaml:"-"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report collects the results of one run in execution order.
type Report struct {
	Request Request  `json:"request" yaml:"request"`
	DryRun  bool     `json:"dry_run" yaml:"dry_run"`
	Results []Result `json:"results" yaml:"results"`
}

// Count returns the number of results with status s.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the failed results.
func (r *Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			out = append(out, res)
		}
	}
	return out
}

// Changed returns the distinct paths that were written, in order.
func (r *Report) Changed() []string {
	seen := make(map[string]bool)
	var out []string
	for _, res := range r.Results {
		switch res.Status {
		case StatusCreated, StatusOverwritten, StatusApplied:
			if !seen[res.Path] {
				seen[res.Path] = true
				out = append(out, res.Path)
			}
		}
	}
	return out
}

// Err joins the errors of every failed operation, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, res.Err)
	}
	return errors.Join(errs...)
}
