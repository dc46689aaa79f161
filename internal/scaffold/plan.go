package scaffold

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/schemagen/schemagen/internal/barrel"
	"github.com/schemagen/schemagen/internal/naming"
	"github.com/schemagen/schemagen/internal/workspace"
)

// DefaultFeaturesDir is the directory features live under.
const DefaultFeaturesDir = "features"

// PlanOptions tunes plan construction.
type PlanOptions struct {
	FeaturesDir string
	// Dedupe merges barrel entries structurally and guards other patches
	// with a marker so re-running a request changes nothing.
	Dedupe bool
}

// Plan is the ordered list of operations for one request.
type Plan struct {
	Request    Request
	// Type is the request type with anything other than singleton or
	// object folded into document. Templates are rendered from it.
	Type       SchemaType
	Options    PlanOptions
	Feature    naming.Names
	Name       naming.Names
	Operations []Operation
}

var (
	exportAnchor  = regexp.MustCompile(`export \{`)
	typesAnchor   = regexp.MustCompile(`\} from '@/sanity\.types'`)
	queriesAnchor = regexp.MustCompile(`\} from '\./queries'`)
)

// NewPlan builds the ordered operations for req.
func NewPlan(req Request, opts PlanOptions) (*Plan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if opts.FeaturesDir == "" {
		opts.FeaturesDir = DefaultFeaturesDir
	}

	p := &Plan{
		Request: req,
		Type:    normalizeType(req.Type),
		Options: opts,
		Feature: naming.New(req.Feature),
		Name:    naming.New(req.Name),
	}
	b := &builder{plan: p, dir: path.Join(opts.FeaturesDir, p.Feature.Kebab)}
	b.declare()

	ops, err := Order(b.ops)
	if err != nil {
		return nil, err
	}
	p.Operations = ops
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Paths returns the distinct target paths in plan order.
func (p *Plan) Paths() []string {
	seen := make(map[string]bool)
	var out []string
	for _, op := range p.Operations {
		if !seen[op.Path] {
			seen[op.Path] = true
			out = append(out, op.Path)
		}
	}
	return out
}

// Validate checks that every After reference exists, the ordering has no
// cycle and follows every edge, and every patch is followed by a
// skip-if-exists create of the same path.
func (p *Plan) Validate() error {
	index := make(map[string]int, len(p.Operations))
	for i, op := range p.Operations {
		if op.ID == "" {
			return fmt.Errorf("operation %d has no id", i)
		}
		if _, dup := index[op.ID]; dup {
			return fmt.Errorf("duplicate operation id %q", op.ID)
		}
		index[op.ID] = i
	}

	var errs []error
	for i, op := range p.Operations {
		for _, dep := range op.After {
			j, ok := index[dep]
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("%s: unknown dependency %q", op.ID, dep))
			case j >= i:
				errs = append(errs, fmt.Errorf("%s: runs before its dependency %q", op.ID, dep))
			}
		}
		if op.Kind == KindPatch && !createdLater(p.Operations[i+1:], op.Path) {
			errs = append(errs, fmt.Errorf("%s: no later skip-if-exists create for %s", op.ID, op.Path))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	if _, err := Order(p.Operations); err != nil {
		return err
	}
	return nil
}

func createdLater(ops []Operation, target string) bool {
	for _, op := range ops {
		if op.Kind == KindCreate && op.Exists == SkipIfExists && op.Path == target {
			return true
		}
	}
	return false
}

// Order sorts ops so that each follows everything in its After list. Among
// the operations that are ready, the one declared first runs first.
func Order(ops []Operation) ([]Operation, error) {
	index := make(map[string]int, len(ops))
	for i, op := range ops {
		index[op.ID] = i
	}

	pending := make([]int, len(ops))
	dependents := make([][]int, len(ops))
	for i, op := range ops {
		for _, dep := range op.After {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("%s: unknown dependency %q", op.ID, dep)
			}
			pending[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	placed := make([]bool, len(ops))
	out := make([]Operation, 0, len(ops))
	for len(out) < len(ops) {
		next := -1
		for i := range ops {
			if !placed[i] && pending[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			var stuck []string
			for i, op := range ops {
				if !placed[i] {
					stuck = append(stuck, op.ID)
				}
			}
			return nil, fmt.Errorf("dependency cycle among %s", strings.Join(stuck, ", "))
		}
		placed[next] = true
		out = append(out, ops[next])
		for _, d := range dependents[next] {
			pending[d]--
		}
	}
	return out, nil
}

type builder struct {
	plan *Plan
	dir  string
	ops  []Operation
	// sinks of the previous group; the next group starts after them.
	prev []string
	// docs marks the operations declared next as DocumentsOnly.
	docs bool
}

// group appends ops as one ordering step. Patches of the same path are
// chained in declaration order, a skip-if-exists create follows every patch
// of its path, and operations with no dependency inside the group follow
// the previous group.
func (b *builder) group(ops ...Operation) {
	lastPatch := make(map[string]string)
	patches := make(map[string][]string)
	for i := range ops {
		op := &ops[i]
		switch {
		case op.Kind == KindPatch:
			if prev, ok := lastPatch[op.Path]; ok {
				op.After = append(op.After, prev)
			}
			lastPatch[op.Path] = op.ID
			patches[op.Path] = append(patches[op.Path], op.ID)
		case op.Exists == SkipIfExists:
			op.After = append(op.After, patches[op.Path]...)
		}
	}

	used := make(map[string]bool)
	for i := range ops {
		op := &ops[i]
		for _, dep := range op.After {
			used[dep] = true
		}
		if len(op.After) == 0 {
			op.After = append(op.After, b.prev...)
		}
	}

	b.prev = nil
	for _, op := range ops {
		if !used[op.ID] {
			b.prev = append(b.prev, op.ID)
		}
	}
	b.ops = append(b.ops, ops...)
}

func normalizeType(t SchemaType) SchemaType {
	if t != Singleton && t != Object {
		return Document
	}
	return t
}

func (b *builder) path(parts ...string) string {
	return path.Join(append([]string{b.dir}, parts...)...)
}

func (b *builder) declare() {
	name := b.plan.Name
	schemaType := b.plan.Type

	b.group(Operation{
		ID:          "schema",
		Kind:        KindCreate,
		Path:        b.path("_data", "schemas", name.Kebab+".ts"),
		Template:    "_data/schemas/" + string(schemaType) + "-schema.ts",
		Exists:      Overwrite,
		Description: "schema definition",
	})

	b.group(b.barrel("schema-index", b.path("_data", "schemas", "index.ts"), "_data/schemas/index.ts",
		name.Camel, "./"+name.Kebab)...)

	b.docs = true
	loadPath := b.path("_data", "load.ts")
	b.group(
		b.importType("load.result-type", loadPath),
		b.importQuery("load.query", loadPath),
		b.appendBlock("load.loader", loadPath, "_data/load-partial.ts",
			`\bfunction load`+regexp.QuoteMeta(name.Pascal)+`\b`, "loader function"),
		b.create("load", loadPath, "_data/load.ts", SkipIfExists, "data-loading module"),
	)

	queriesPath := b.path("_data", "queries.ts")
	b.group(
		b.appendBlock("queries.query", queriesPath, "_data/queries-partial.ts",
			`\bconst `+regexp.QuoteMeta(name.Camel)+`Query\b`, "query"),
		b.create("queries", queriesPath, "_data/queries.ts", SkipIfExists, "queries module"),
	)

	hooksPath := b.path("_data", "hooks.ts")
	b.group(
		b.importType("hooks.result-type", hooksPath),
		b.importQuery("hooks.query", hooksPath),
		b.appendBlock("hooks.hook", hooksPath, "_data/hooks-partial.ts",
			`\bfunction use`+regexp.QuoteMeta(name.Pascal)+`Query\b`, "query hook"),
		b.create("hooks", hooksPath, "_data/hooks.ts", SkipIfExists, "query hooks module"),
	)

	hook := b.create("use-hook", b.path("hooks", "use-"+name.Kebab+".ts"), "hooks/use-hook.ts", SkipIfExists, "context hook")
	b.group(append([]Operation{hook},
		b.barrel("hooks-index", b.path("hooks", "index.ts"), "hooks/index.ts",
			"use"+name.Pascal, "./use-"+name.Kebab)...)...)

	ctx := name.Kebab + "-context"
	b.group(append([]Operation{
		b.create("context", b.path("contexts", ctx, "context.ts"), "contexts/context.ts", Overwrite, "context definition"),
		b.create("provider-index", b.path("contexts", ctx, "provider", "index.tsx"), "contexts/providers/index.tsx", Overwrite, "provider entry point"),
		b.create("preview-provider", b.path("contexts", ctx, "provider", "preview-provider.tsx"), "contexts/providers/preview-provider.tsx", Overwrite, "preview provider"),
		b.create("provider", b.path("contexts", ctx, "provider", "provider.tsx"), "contexts/providers/provider.tsx", Overwrite, "provider"),
	}, b.barrel("contexts-index", b.path("contexts", "index.ts"), "contexts/index.ts",
		name.Pascal+"Provider", "./"+ctx+"/provider")...)...)
}

func (b *builder) create(id, target, tmpl string, exists ExistsPolicy, desc string) Operation {
	return Operation{
		ID:            id,
		Kind:          KindCreate,
		Path:          target,
		Template:      tmpl,
		Exists:        exists,
		DocumentsOnly: b.docs,
		Description:   desc,
	}
}

// barrel returns the import patch, the export patch and the create of one
// barrel file.
func (b *builder) barrel(id, target, tmpl, ident, source string) []Operation {
	imp := Operation{
		ID:            id + ".import",
		Kind:          KindPatch,
		Path:          target,
		Text:          fmt.Sprintf("import %s from '%s'\n", ident, source),
		Placement:     workspace.Prepend,
		DocumentsOnly: b.docs,
		Description:   "import " + ident,
	}
	exp := Operation{
		ID:            id + ".export",
		Kind:          KindPatch,
		Path:          target,
		Text:          fmt.Sprintf("\n  %s,", ident),
		Placement:     workspace.After,
		Anchor:        exportAnchor,
		DocumentsOnly: b.docs,
		Description:   "export " + ident,
	}
	if b.plan.Options.Dedupe {
		imp.Barrel = &barrel.Entry{Kind: barrel.KindImport, Ident: ident, Source: source}
		exp.Barrel = &barrel.Entry{Kind: barrel.KindExport, Ident: ident}
	}

	return []Operation{imp, exp, b.create(id, target, tmpl, SkipIfExists, "barrel")}
}

func (b *builder) importType(id, target string) Operation {
	ident := b.plan.Name.Pascal + "QueryResult"
	return b.insertImport(id, target, ident, typesAnchor)
}

func (b *builder) importQuery(id, target string) Operation {
	ident := b.plan.Name.Camel + "Query"
	return b.insertImport(id, target, ident, queriesAnchor)
}

func (b *builder) insertImport(id, target, ident string, anchor *regexp.Regexp) Operation {
	op := Operation{
		ID:            id,
		Kind:          KindPatch,
		Path:          target,
		Text:          "  " + ident + ",\n",
		Placement:     workspace.Before,
		Anchor:        anchor,
		DocumentsOnly: b.docs,
		Description:   "import " + ident,
	}
	if b.plan.Options.Dedupe {
		op.Marker = regexp.MustCompile(`\b` + regexp.QuoteMeta(ident) + `,`)
	}
	return op
}

func (b *builder) appendBlock(id, target, tmpl, marker, desc string) Operation {
	op := Operation{
		ID:            id,
		Kind:          KindPatch,
		Path:          target,
		Template:      tmpl,
		Placement:     workspace.Append,
		DocumentsOnly: b.docs,
		Description:   desc,
	}
	if b.plan.Options.Dedupe {
		op.Marker = regexp.MustCompile(marker)
	}
	return op
}
