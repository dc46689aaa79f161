package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/spf13/afero"

	"github.com/schemagen/schemagen/internal/naming"
)

//go:embed all:files
var embedded embed.FS

const (
	root = "files"
	ext  = ".tmpl"
)

// ErrTemplateNotFound is returned when neither the override directory nor the
// embedded defaults contain a template.
var ErrTemplateNotFound = errors.New("template not found")

// Data is the value templates are executed against.
type Data struct {
	Feature naming.Names
	Name    naming.Names
	Type    string
}

// NewData derives the case forms of feature and name.
func NewData(feature, name, schemaType string) Data {
	return Data{
		Feature: naming.New(feature),
		Name:    naming.New(name),
		Type:    schemaType,
	}
}

// FuncMap exposes the case converters to templates.
var FuncMap = template.FuncMap{
	"kebab":  naming.Kebab,
	"camel":  naming.Camel,
	"pascal": naming.Pascal,
	"title":  naming.Title,
}

// Store resolves logical template names against an optional override
// directory and the embedded defaults.
type Store struct {
	override afero.Fs
	cache    map[string]*template.Template
}

// New returns a store. override may be nil; when set, a file
// <name>.tmpl found there wins over the embedded copy.
func New(override afero.Fs) *Store {
	return &Store{override: override, cache: make(map[string]*template.Template)}
}

// Render executes the template registered under name.
func (s *Store) Render(name string, data Data) (string, error) {
	tmpl, err := s.lookup(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

// Source reports where name would be loaded from: "override" or "embedded".
func (s *Store) Source(name string) (string, error) {
	if s.override != nil {
		if ok, _ := afero.Exists(s.override, name+ext); ok {
			return "override", nil
		}
	}
	if _, err := fs.Stat(embedded, path.Join(root, name+ext)); err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrTemplateNotFound)
	}
	return "embedded", nil
}

func (s *Store) lookup(name string) (*template.Template, error) {
	if t, ok := s.cache[name]; ok {
		return t, nil
	}

	src, err := s.read(name)
	if err != nil {
		return nil, err
	}
	t, err := template.New(name).Funcs(FuncMap).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	s.cache[name] = t
	return t, nil
}

func (s *Store) read(name string) (string, error) {
	file := name + ext
	if s.override != nil {
		data, err := afero.ReadFile(s.override, file)
		switch {
		case err == nil:
			return string(data), nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("reading override template %s: %w", name, err)
		}
	}
	data, err := fs.ReadFile(embedded, path.Join(root, file))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", name, ErrTemplateNotFound)
		}
		return "", err
	}
	return string(data), nil
}

// Names lists the logical names of the embedded templates, sorted.
func Names() []string {
	var names []string
	_ = fs.WalkDir(embedded, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ext) {
			return err
		}
		names = append(names, strings.TrimSuffix(strings.TrimPrefix(p, root+"/"), ext))
		return nil
	})
	sort.Strings(names)
	return names
}

// EjectResult lists the files written and left in place by Eject.
type EjectResult struct {
	Written []string `json:"written" yaml:"written"`
	Skipped []string `json:"skipped" yaml:"skipped"`
}

// Eject copies every embedded template into dst, keeping the .tmpl suffix so
// the directory can be used as an override. Existing files are kept unless
// force is set.
func Eject(dst afero.Fs, force bool) (*EjectResult, error) {
	result := &EjectResult{}
	for _, name := range Names() {
		file := name + ext
		if !force {
			exists, err := afero.Exists(dst, file)
			if err != nil {
				return result, err
			}
			if exists {
				result.Skipped = append(result.Skipped, file)
				continue
			}
		}

		data, err := fs.ReadFile(embedded, path.Join(root, file))
		if err != nil {
			return result, err
		}
		if err := dst.MkdirAll(path.Dir(file), 0755); err != nil {
			return result, fmt.Errorf("creating directory for %s: %w", file, err)
		}
		if err := afero.WriteFile(dst, file, data, 0644); err != nil {
			return result, fmt.Errorf("writing %s: %w", file, err)
		}
		result.Written = append(result.Written, file)
	}
	return result, nil
}
