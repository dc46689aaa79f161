// Package barrel edits TypeScript barrel files (index modules that import
// sibling modules and re-export them from one block) through a parsed model
// instead of raw pattern insertion, so adding an entry that is already
// present is a no-op.
package barrel

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind selects which half of a barrel an Entry touches.
type Kind string

const (
	KindImport Kind = "import"
	KindExport Kind = "export"
)

// Entry is one identifier to add to a barrel. Source is only used for imports.
type Entry struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Ident  string `json:"ident" yaml:"ident"`
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

func (e Entry) String() string {
	if e.Kind == KindImport {
		return fmt.Sprintf("import %s from '%s'", e.Ident, e.Source)
	}
	return fmt.Sprintf("export { %s }", e.Ident)
}

var (
	importLine  = regexp.MustCompile(`^\s*import\s+(?:type\s+)?([A-Za-z_$][\w$]*)\s*(?:,\s*\{[^}]*\})?\s+from\s+['"]([^'"]+)['"];?\s*$`)
	exportStart = regexp.MustCompile(`^(\s*)export\s*\{`)
)

const defaultIndent = "  "

// File is a parsed barrel. Lines outside the import statements and the first
// export block are kept verbatim.
type File struct {
	lines []string
}

// Parse splits src into a File. It never fails: a file with no imports or no
// export block simply has empty halves.
func Parse(src string) *File {
	return &File{lines: strings.Split(src, "\n")}
}

// String re-serializes the file.
func (f *File) String() string {
	return strings.Join(f.lines, "\n")
}

// Imports returns the default-import identifiers keyed to their module source.
func (f *File) Imports() map[string]string {
	out := make(map[string]string)
	for _, line := range f.lines {
		if m := importLine.FindStringSubmatch(line); m != nil {
			out[m[1]] = m[2]
		}
	}
	return out
}

// HasImport reports whether ident is already imported.
func (f *File) HasImport(ident string) bool {
	_, ok := f.Imports()[ident]
	return ok
}

// AddImport inserts `import ident from 'source'` ahead of the first existing
// import, or at the top of the file when there is none. It returns false when
// ident is already imported. Another default import of the same source does
// not count: the export block refers to ident.
func (f *File) AddImport(ident, source string) bool {
	if f.HasImport(ident) {
		return false
	}

	line := fmt.Sprintf("import %s from '%s'", ident, source)
	at := 0
	for i, l := range f.lines {
		if importLine.MatchString(l) {
			at = i
			break
		}
	}
	f.lines = insertLines(f.lines, at, line)
	return true
}

// block locates the first export block: the index of its opening line, of its
// closing line, and the entries between the braces.
type block struct {
	start, end int
	indent     string
	entries    []string
}

func (f *File) exportBlock() (*block, bool) {
	for i, line := range f.lines {
		m := exportStart.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		b := &block{start: i, indent: m[1]}

		var body strings.Builder
		for j := i; j < len(f.lines); j++ {
			text := f.lines[j]
			if j == i {
				text = text[strings.Index(text, "{")+1:]
			}
			if k := strings.Index(text, "}"); k >= 0 {
				body.WriteString(text[:k])
				b.end = j
				b.entries = splitEntries(body.String())
				return b, true
			}
			body.WriteString(text)
			body.WriteString("\n")
		}
		// Unterminated block: treat as absent so callers append a fresh one.
		return nil, false
	}
	return nil, false
}

func splitEntries(body string) []string {
	var out []string
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// exportedNames returns both sides of "local as exported" entries.
func exportedNames(entry string) []string {
	fields := strings.Fields(entry)
	if len(fields) == 3 && fields[1] == "as" {
		return []string{fields[0], fields[2]}
	}
	return fields
}

// Exports returns the entries of the first export block.
func (f *File) Exports() []string {
	b, ok := f.exportBlock()
	if !ok {
		return nil
	}
	return b.entries
}

// HasExport reports whether ident is listed in the first export block.
func (f *File) HasExport(ident string) bool {
	for _, entry := range f.Exports() {
		for _, name := range exportedNames(entry) {
			if name == ident {
				return true
			}
		}
	}
	return false
}

// AddExport makes ident the first entry of the first export block, creating
// the block at the end of the file when none exists. It returns false when
// ident is already exported.
func (f *File) AddExport(ident string) bool {
	if f.HasExport(ident) {
		return false
	}

	b, ok := f.exportBlock()
	if !ok {
		f.appendBlock(ident)
		return true
	}

	// Canonical multi-line block: add one line after the opening brace and
	// leave the rest untouched.
	if strings.TrimSpace(f.lines[b.start]) == "export {" && b.end > b.start {
		indent := b.indent + defaultIndent
		if b.end > b.start+1 {
			next := f.lines[b.start+1]
			if trimmed := strings.TrimLeft(next, " \t"); trimmed != "" && !strings.HasPrefix(trimmed, "}") {
				indent = next[:len(next)-len(trimmed)]
			}
		}
		f.lines = insertLines(f.lines, b.start+1, indent+ident+",")
		return true
	}

	// Anything else (single-line or irregular) is rewritten in canonical form.
	prefix := f.lines[b.start][:strings.Index(f.lines[b.start], "{")]
	closing := f.lines[b.end]
	suffix := closing[strings.Index(closing, "}")+1:]

	rebuilt := []string{prefix + "{"}
	for _, entry := range append([]string{ident}, b.entries...) {
		rebuilt = append(rebuilt, b.indent+defaultIndent+entry+",")
	}
	rebuilt = append(rebuilt, b.indent+"}"+suffix)

	out := make([]string, 0, len(f.lines)+len(rebuilt))
	out = append(out, f.lines[:b.start]...)
	out = append(out, rebuilt...)
	out = append(out, f.lines[b.end+1:]...)
	f.lines = out
	return true
}

func (f *File) appendBlock(ident string) {
	// Drop trailing blank lines, then add a separated block and a final newline.
	end := len(f.lines)
	for end > 0 && strings.TrimSpace(f.lines[end-1]) == "" {
		end--
	}
	f.lines = f.lines[:end]
	if end > 0 {
		f.lines = append(f.lines, "")
	}
	f.lines = append(f.lines, "export {", defaultIndent+ident+",", "}", "")
}

// Apply adds e to the file and reports whether the file changed.
func (f *File) Apply(e Entry) (bool, error) {
	switch e.Kind {
	case KindImport:
		return f.AddImport(e.Ident, e.Source), nil
	case KindExport:
		return f.AddExport(e.Ident), nil
	default:
		return false, fmt.Errorf("unknown barrel entry kind %q", e.Kind)
	}
}

func insertLines(lines []string, at int, add ...string) []string {
	out := make([]string, 0, len(lines)+len(add))
	out = append(out, lines[:at]...)
	out = append(out, add...)
	out = append(out, lines[at:]...)
	return out
}
