package workspace

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEdit(t *testing.T) {
	sanityTypes := regexp.MustCompile(`} from '@/sanity\.types'`)
	exportOpen := regexp.MustCompile(`export \{`)

	tests := []struct {
		name    string
		content string
		edit    Edit
		want    string
	}{
		{
			name:    "prepend",
			content: "export {\n  author,\n}\n",
			edit:    Edit{Placement: Prepend, Text: "import post from './post'\n"},
			want:    "import post from './post'\nexport {\n  author,\n}\n",
		},
		{
			name:    "before anchor",
			content: "import type {\n  AuthorQueryResult,\n} from '@/sanity.types'\n",
			edit:    Edit{Placement: Before, Anchor: sanityTypes, Text: "  PostQueryResult,\n"},
			want:    "import type {\n  AuthorQueryResult,\n  PostQueryResult,\n} from '@/sanity.types'\n",
		},
		{
			name:    "after anchor",
			content: "export {\n  author,\n}\n",
			edit:    Edit{Placement: After, Anchor: exportOpen, Text: "\n  post,"},
			want:    "export {\n  post,\n  author,\n}\n",
		},
		{
			name:    "after first match only",
			content: "export {\n  a,\n}\nexport {\n  b,\n}\n",
			edit:    Edit{Placement: After, Anchor: exportOpen, Text: "\n  c,"},
			want:    "export {\n  c,\n  a,\n}\nexport {\n  b,\n}\n",
		},
		{
			name:    "append replaces trailing whitespace",
			content: "const a = 1\n\n\n",
			edit:    Edit{Placement: Append, Text: "\nconst b = 2\n"},
			want:    "const a = 1\n\nconst b = 2\n",
		},
		{
			name:    "append to empty file",
			content: "",
			edit:    Edit{Placement: Append, Text: "const b = 2"},
			want:    "const b = 2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyEdit(tt.content, tt.edit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEditAnchorNotFound(t *testing.T) {
	_, err := ApplyEdit("nothing here", Edit{
		Placement: Before,
		Anchor:    regexp.MustCompile(`} from './queries'`),
		Text:      "x",
	})
	assert.ErrorIs(t, err, ErrAnchorNotFound)
}

func TestApplyEditRejectsMissingAnchorAndUnknownPlacement(t *testing.T) {
	_, err := ApplyEdit("x", Edit{Placement: After})
	assert.Error(t, err)

	_, err = ApplyEdit("x", Edit{Placement: "sideways"})
	assert.Error(t, err)
}

func TestEditSatisfied(t *testing.T) {
	e := Edit{Marker: regexp.MustCompile(`\bPostQueryResult,`)}
	assert.True(t, e.Satisfied("  PostQueryResult,\n"))
	assert.False(t, e.Satisfied("  BlogPostQueryResult,\n"))
	assert.False(t, Edit{}.Satisfied("anything"))
}
