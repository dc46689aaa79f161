package scaffold

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/schemagen/schemagen/internal/barrel"
	"github.com/schemagen/schemagen/internal/templates"
	"github.com/schemagen/schemagen/internal/workspace"
)

// Renderer renders a logical template.
type Renderer interface {
	Render(name string, data templates.Data) (string, error)
}

// FileSystem is the set of file effects the planner needs.
type FileSystem interface {
	Exists(path string) (bool, error)
	Create(path, content string, overwrite bool) (workspace.Outcome, error)
	Insert(path string, e workspace.Edit) (workspace.Outcome, error)
	MergeBarrel(path string, entry barrel.Entry) (workspace.Outcome, error)
}

// Planner executes plans against a file system.
type Planner struct {
	fs   FileSystem
	tmpl Renderer
	log  *zap.Logger
}

// NewPlanner returns a planner. A nil logger discards output.
func NewPlanner(fs FileSystem, tmpl Renderer, log *zap.Logger) *Planner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Planner{fs: fs, tmpl: tmpl, log: log}
}

// Execute runs every operation of plan in order. A failure is recorded on
// its result and the remaining operations still run.
func (p *Planner) Execute(plan *Plan) *Report {
	data := templates.NewData(plan.Request.Feature, plan.Request.Name, string(plan.Type))
	report := &Report{Request: plan.Request, Results: make([]Result, 0, len(plan.Operations))}

	for _, op := range plan.Operations {
		res := p.run(plan.Request, op, data)
		if res.Err != nil {
			res.Error = res.Err.Error()
			p.log.Warn("operation failed", zap.String("op", op.ID), zap.String("path", op.Path), zap.Error(res.Err))
		} else {
			p.log.Debug("operation done",
				zap.String("op", op.ID),
				zap.String("path", op.Path),
				zap.String("status", string(res.Status)),
				zap.String("reason", res.Reason))
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func (p *Planner) run(req Request, op Operation, data templates.Data) Result {
	res := Result{ID: op.ID, Kind: op.Kind, Path: op.Path}

	if op.DocumentsOnly && req.IsObject() {
		res.Status, res.Reason = StatusSkipped, ReasonObjectType
		return res
	}

	var (
		outcome workspace.Outcome
		err     error
	)
	switch op.Kind {
	case KindCreate:
		outcome, err = p.create(op, data)
	case KindPatch:
		exists, statErr := p.fs.Exists(op.Path)
		if statErr != nil {
			err = statErr
			break
		}
		if !exists {
			res.Status, res.Reason = StatusSkipped, fmt.Sprintf("file %s does not exist", op.Path)
			return res
		}
		outcome, err = p.patch(op, data)
		if errors.Is(err, workspace.ErrAnchorNotFound) {
			res.Status, res.Reason = StatusSkipped, fmt.Sprintf("anchor %s not found in %s", op.AnchorPattern(), op.Path)
			return res
		}
	default:
		err = fmt.Errorf("unknown operation kind %q", op.Kind)
	}

	if err != nil {
		res.Status, res.Err = StatusFailed, fmt.Errorf("%s: %w", op.ID, err)
		return res
	}
	res.Status = statusOf(outcome)
	return res
}

func (p *Planner) create(op Operation, data templates.Data) (workspace.Outcome, error) {
	if op.Exists == SkipIfExists {
		exists, err := p.fs.Exists(op.Path)
		if err != nil {
			return "", err
		}
		if exists {
			return workspace.Exists, nil
		}
	}
	content, err := p.tmpl.Render(op.Template, data)
	if err != nil {
		return "", err
	}
	return p.fs.Create(op.Path, content, op.Exists == Overwrite)
}

func (p *Planner) patch(op Operation, data templates.Data) (workspace.Outcome, error) {
	if op.Barrel != nil {
		return p.fs.MergeBarrel(op.Path, *op.Barrel)
	}
	text := op.Text
	if text == "" {
		var err error
		if text, err = p.tmpl.Render(op.Template, data); err != nil {
			return "", err
		}
	}
	return p.fs.Insert(op.Path, op.Edit(text))
}
