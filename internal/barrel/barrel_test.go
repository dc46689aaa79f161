package barrel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemasIndex = `import author from './author'

export {
  author,
}
`

func TestParseImportsAndExports(t *testing.T) {
	f := Parse(`import author from './author'
import type tag from "./tag";
import { helper } from './helper'

export {
  author,
  tag as label,
}
`)

	assert.Equal(t, map[string]string{"author": "./author", "tag": "./tag"}, f.Imports())
	assert.Equal(t, []string{"author", "tag as label"}, f.Exports())
	assert.True(t, f.HasExport("label"))
	assert.True(t, f.HasExport("tag"))
	assert.False(t, f.HasImport("helper"))
}

func TestAddImportPrependsBeforeFirstImport(t *testing.T) {
	f := Parse(schemasIndex)

	require.True(t, f.AddImport("post", "./post"))
	assert.Equal(t, `import post from './post'
import author from './author'

export {
  author,
}
`, f.String())
}

func TestAddImportOnFileWithoutImports(t *testing.T) {
	f := Parse("export {}\n")

	require.True(t, f.AddImport("post", "./post"))
	assert.Equal(t, "import post from './post'\nexport {}\n", f.String())
}

func TestAddImportIsIdempotent(t *testing.T) {
	f := Parse(schemasIndex)

	assert.False(t, f.AddImport("author", "./author"))
	assert.Equal(t, schemasIndex, f.String())
}

func TestAddImportKeysOnIdentifierNotSource(t *testing.T) {
	f := Parse(`import authorSchema from './author'

export {
  authorSchema,
}
`)

	require.True(t, f.AddImport("author", "./author"))
	require.True(t, f.AddExport("author"))
	assert.Equal(t, `import author from './author'
import authorSchema from './author'

export {
  author,
  authorSchema,
}
`, f.String())
	for _, name := range f.Exports() {
		assert.True(t, f.HasImport(name), name)
	}
}

func TestAddExportInsertsFirstEntry(t *testing.T) {
	f := Parse(schemasIndex)

	require.True(t, f.AddExport("post"))
	assert.Equal(t, `import author from './author'

export {
  post,
  author,
}
`, f.String())
}

func TestAddExportKeepsExistingIndent(t *testing.T) {
	f := Parse("export {\n    author,\n}\n")

	require.True(t, f.AddExport("post"))
	assert.Equal(t, "export {\n    post,\n    author,\n}\n", f.String())
}

func TestAddExportIntoEmptyBlock(t *testing.T) {
	f := Parse("export {\n}\n")

	require.True(t, f.AddExport("post"))
	assert.Equal(t, "export {\n  post,\n}\n", f.String())
}

func TestAddExportNormalizesSingleLineBlock(t *testing.T) {
	f := Parse("import a from './a'\nimport b from './b'\n\nexport { a, b }\n")

	require.True(t, f.AddExport("c"))
	assert.Equal(t, "import a from './a'\nimport b from './b'\n\nexport {\n  c,\n  a,\n  b,\n}\n", f.String())
}

func TestAddExportCreatesBlockWhenMissing(t *testing.T) {
	f := Parse("import a from './a'\n\n\n")

	require.True(t, f.AddExport("a"))
	assert.Equal(t, "import a from './a'\n\nexport {\n  a,\n}\n", f.String())
}

func TestAddExportIsIdempotent(t *testing.T) {
	f := Parse(schemasIndex)

	assert.False(t, f.AddExport("author"))
	assert.Equal(t, schemasIndex, f.String())
}

func TestExportDefaultIsNotAnExportBlock(t *testing.T) {
	f := Parse("export default {\n  name: 'x',\n}\n")

	assert.Empty(t, f.Exports())
	require.True(t, f.AddExport("a"))
	assert.Contains(t, f.String(), "export {\n  a,\n}\n")
}

func TestApply(t *testing.T) {
	f := Parse(schemasIndex)

	changed, err := f.Apply(Entry{Kind: KindImport, Ident: "post", Source: "./post"})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.Apply(Entry{Kind: KindExport, Ident: "post"})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.Apply(Entry{Kind: KindExport, Ident: "post"})
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = f.Apply(Entry{Kind: "bogus", Ident: "x"})
	assert.Error(t, err)
}
