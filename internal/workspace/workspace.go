package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/schemagen/schemagen/internal/barrel"
)

// Outcome is the terminal state of a successful file operation.
type Outcome string

const (
	Created     Outcome = "created"
	Overwritten Outcome = "overwritten"
	Applied     Outcome = "applied"
	Unchanged   Outcome = "unchanged"
	Exists      Outcome = "exists"
)

// Workspace is a project tree rooted at some directory.
type Workspace struct {
	fs   afero.Fs
	base afero.Fs // non-nil for dry-run workspaces
	log  *zap.Logger

	touched map[string]bool
}

// New wraps fs, whose root is the project root.
func New(fsys afero.Fs, log *zap.Logger) *Workspace {
	if log == nil {
		log = zap.NewNop()
	}
	return &Workspace{fs: fsys, log: log, touched: make(map[string]bool)}
}

// NewOS returns a workspace over the real directory root.
func NewOS(root string, log *zap.Logger) (*Workspace, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", abs)
	}
	return New(afero.NewBasePathFs(afero.NewOsFs(), abs), log), nil
}

// DryRun returns a workspace whose writes land in memory on top of a
// read-only view of w.
func (w *Workspace) DryRun() *Workspace {
	overlay := afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(w.fs), afero.NewMemMapFs())
	d := New(overlay, w.log)
	d.base = w.fs
	return d
}

// IsDryRun reports whether writes are kept in memory.
func (w *Workspace) IsDryRun() bool { return w.base != nil }

// Fs exposes the underlying file system.
func (w *Workspace) Fs() afero.Fs { return w.fs }

// Sub returns a file system rooted at dir inside the workspace.
func (w *Workspace) Sub(dir string) afero.Fs {
	return afero.NewBasePathFs(w.fs, clean(dir))
}

// Exists reports whether a regular file exists at p.
func (w *Workspace) Exists(p string) (bool, error) {
	info, err := w.fs.Stat(clean(p))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile returns the contents of p.
func (w *Workspace) ReadFile(p string) (string, error) {
	data, err := afero.ReadFile(w.fs, clean(p))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteFile writes content to p, creating parent directories.
func (w *Workspace) WriteFile(p, content string) error {
	p = clean(p)
	if err := w.fs.MkdirAll(path.Dir(p), 0755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", p, err)
	}
	if err := afero.WriteFile(w.fs, p, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	w.touched[p] = true
	return nil
}

// Create writes content to p. An existing file is replaced when overwrite is
// set and left alone (Exists) otherwise.
func (w *Workspace) Create(p, content string, overwrite bool) (Outcome, error) {
	exists, err := w.Exists(p)
	if err != nil {
		return "", err
	}
	if exists && !overwrite {
		w.log.Debug("create skipped, file exists", zap.String("path", p))
		return Exists, nil
	}
	if err := w.WriteFile(p, content); err != nil {
		return "", err
	}
	if exists {
		return Overwritten, nil
	}
	return Created, nil
}

// Insert applies e to the file at p, which must exist.
func (w *Workspace) Insert(p string, e Edit) (Outcome, error) {
	content, err := w.ReadFile(p)
	if err != nil {
		return "", err
	}
	if e.Satisfied(content) {
		w.log.Debug("insert skipped, marker present", zap.String("path", p), zap.Stringer("marker", e.Marker))
		return Unchanged, nil
	}
	updated, err := ApplyEdit(content, e)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p, err)
	}
	if err := w.WriteFile(p, updated); err != nil {
		return "", err
	}
	return Applied, nil
}

// MergeBarrel adds entry to the barrel file at p, which must exist.
func (w *Workspace) MergeBarrel(p string, entry barrel.Entry) (Outcome, error) {
	content, err := w.ReadFile(p)
	if err != nil {
		return "", err
	}
	f := barrel.Parse(content)
	changed, err := f.Apply(entry)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p, err)
	}
	if !changed {
		w.log.Debug("barrel entry already present", zap.String("path", p), zap.Stringer("entry", entry))
		return Unchanged, nil
	}
	if err := w.WriteFile(p, f.String()); err != nil {
		return "", err
	}
	return Applied, nil
}

// Touched returns the paths written through this workspace, sorted.
func (w *Workspace) Touched() []string {
	out := make([]string, 0, len(w.touched))
	for p := range w.touched {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Diff returns a unified diff of p between the base tree and a dry-run
// overlay. It is empty for unchanged files.
func (w *Workspace) Diff(p string) (string, error) {
	if w.base == nil {
		return "", errors.New("diff is only available for dry-run workspaces")
	}
	p = clean(p)

	from := "a/" + p
	var before string
	data, err := afero.ReadFile(w.base, p)
	switch {
	case err == nil:
		before = string(data)
	case errors.Is(err, fs.ErrNotExist):
		from = "/dev/null"
	default:
		return "", err
	}

	after, err := w.ReadFile(p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: from,
		ToFile:   "b/" + p,
		Context:  3,
	})
}

func clean(p string) string {
	return path.Clean(filepath.ToSlash(p))
}
