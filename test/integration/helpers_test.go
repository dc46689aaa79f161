//go:build integration

package integration_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/schemagen/schemagen/internal/scaffold"
	"github.com/schemagen/schemagen/internal/templates"
	"github.com/schemagen/schemagen/internal/workspace"
)

const templatesDir = ".schemagen/templates"

// scaffoldInto runs one request against the project at root on the real file
// system, optionally as a dry run. It returns the report and the workspace the
// planner wrote through.
func scaffoldInto(t *testing.T, root string, req scaffold.Request, dryRun bool) (*scaffold.Report, *workspace.Workspace) {
	t.Helper()

	plan, err := scaffold.NewPlan(req, scaffold.PlanOptions{Dedupe: true})
	if err != nil {
		t.Fatalf("NewPlan(%+v): %v", req, err)
	}
	ws, err := workspace.NewOS(root, nil)
	if err != nil {
		t.Fatalf("NewOS: %v", err)
	}
	target := ws
	if dryRun {
		target = ws.DryRun()
	}

	rep := scaffold.NewPlanner(target, templates.New(ws.Sub(templatesDir)), nil).Execute(plan)
	rep.DryRun = dryRun
	return rep, target
}

// snapshotTree returns the contents of every regular file under root keyed by
// slash-separated relative path.
func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return out
}

// writeFile creates a file with parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}

// assertNoFailures fails the test for every failed result in rep.
func assertNoFailures(t *testing.T, rep *scaffold.Report) {
	t.Helper()
	for _, r := range rep.Failed() {
		t.Errorf("%s failed on %s: %s", r.ID, r.Path, r.Error)
	}
}
