package templates

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planned = []string{
	"_data/schemas/document-schema.ts",
	"_data/schemas/singleton-schema.ts",
	"_data/schemas/object-schema.ts",
	"_data/schemas/index.ts",
	"_data/load.ts",
	"_data/load-partial.ts",
	"_data/queries.ts",
	"_data/queries-partial.ts",
	"_data/hooks.ts",
	"_data/hooks-partial.ts",
	"hooks/use-hook.ts",
	"hooks/index.ts",
	"contexts/context.ts",
	"contexts/providers/index.tsx",
	"contexts/providers/preview-provider.tsx",
	"contexts/providers/provider.tsx",
	"contexts/index.ts",
}

func TestNamesCoversEveryPlannedTemplate(t *testing.T) {
	assert.ElementsMatch(t, planned, Names())
}

func TestEveryTemplateRenders(t *testing.T) {
	s := New(nil)
	for _, typ := range []string{"document", "singleton", "object"} {
		data := NewData("Blog", "blog post", typ)
		for _, name := range Names() {
			out, err := s.Render(name, data)
			require.NoError(t, err, "%s (%s)", name, typ)
			assert.NotContains(t, out, "<no value>", "%s (%s)", name, typ)
			assert.NotEmpty(t, out)
		}
	}
}

func TestRenderSchema(t *testing.T) {
	s := New(nil)

	out, err := s.Render("_data/schemas/document-schema.ts", NewData("blog", "blog-post", "document"))
	require.NoError(t, err)
	assert.Contains(t, out, "name: 'blogPost'")
	assert.Contains(t, out, "title: 'Blog Post'")
	assert.Contains(t, out, "type: 'document'")

	out, err = s.Render("_data/schemas/object-schema.ts", NewData("blog", "tag", "object"))
	require.NoError(t, err)
	assert.Contains(t, out, "type: 'object'")
}

func TestIndexTemplatesContainFirstEntity(t *testing.T) {
	s := New(nil)
	data := NewData("blog", "author", "document")

	tests := []struct {
		name string
		want []string
	}{
		{"_data/schemas/index.ts", []string{"import author from './author'", "  author,"}},
		{"hooks/index.ts", []string{"import useAuthor from './use-author'", "  useAuthor,"}},
		{"contexts/index.ts", []string{"import AuthorProvider from './author-context/provider'", "  AuthorProvider,"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.Render(tt.name, data)
			require.NoError(t, err)
			assert.Contains(t, out, "export {\n")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestModuleTemplatesKeepPatchAnchors(t *testing.T) {
	s := New(nil)
	data := NewData("blog", "author", "singleton")

	for _, name := range []string{"_data/load.ts", "_data/hooks.ts"} {
		out, err := s.Render(name, data)
		require.NoError(t, err)
		assert.Contains(t, out, "} from '@/sanity.types'", name)
		assert.Contains(t, out, "} from './queries'", name)
		assert.Contains(t, out, "  AuthorQueryResult,\n", name)
		assert.Contains(t, out, "  authorQuery,\n", name)
	}
}

func TestRenderSingletonLoaderHasNoParams(t *testing.T) {
	s := New(nil)

	out, err := s.Render("_data/load-partial.ts", NewData("site", "settings", "singleton"))
	require.NoError(t, err)
	assert.Contains(t, out, "export function loadSettings() {")
	assert.Contains(t, out, "{},")

	out, err = s.Render("_data/load-partial.ts", NewData("blog", "post", "document"))
	require.NoError(t, err)
	assert.Contains(t, out, "export function loadPost(slug: string) {")
	assert.Contains(t, out, "{ slug },")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := New(nil).Render("nope.ts", NewData("a", "b", "document"))
	require.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestOverrideWins(t *testing.T) {
	override := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(override, "hooks/use-hook.ts.tmpl", []byte("// {{ .Name.Pascal }} {{ kebab .Feature.Raw }}\n"), 0644))

	s := New(override)
	out, err := s.Render("hooks/use-hook.ts", NewData("Blog Posts", "author", "document"))
	require.NoError(t, err)
	assert.Equal(t, "// Author blog-posts\n", out)

	src, err := s.Source("hooks/use-hook.ts")
	require.NoError(t, err)
	assert.Equal(t, "override", src)

	src, err = s.Source("hooks/index.ts")
	require.NoError(t, err)
	assert.Equal(t, "embedded", src)

	_, err = s.Source("missing.ts")
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestOverrideParseError(t *testing.T) {
	override := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(override, "hooks/index.ts.tmpl", []byte("{{ .Name"), 0644))

	_, err := New(override).Render("hooks/index.ts", NewData("a", "b", "document"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing template hooks/index.ts")
}

func TestEject(t *testing.T) {
	dst := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(dst, "hooks/index.ts.tmpl", []byte("custom"), 0644))

	res, err := Eject(dst, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"hooks/index.ts.tmpl"}, res.Skipped)
	assert.Len(t, res.Written, len(planned)-1)

	data, err := afero.ReadFile(dst, "hooks/index.ts.tmpl")
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))

	ok, err := afero.Exists(dst, "contexts/providers/provider.tsx.tmpl")
	require.NoError(t, err)
	assert.True(t, ok)

	res, err = Eject(dst, true)
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	assert.Len(t, res.Written, len(planned))

	data, err = afero.ReadFile(dst, "hooks/index.ts.tmpl")
	require.NoError(t, err)
	assert.Contains(t, string(data), "export {")
}

func TestEjectedTreeRendersLikeEmbedded(t *testing.T) {
	dst := afero.NewMemMapFs()
	_, err := Eject(dst, false)
	require.NoError(t, err)

	data := NewData("blog", "author", "document")
	for _, name := range Names() {
		want, err := New(nil).Render(name, data)
		require.NoError(t, err)
		got, err := New(dst).Render(name, data)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}
