package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		valid   bool
		path    string
		keyword string
	}{
		{"empty", "", true, "", ""},
		{"full", "features_dir: src/features\ntemplates_dir: tpl\ndedupe: true\nno_color: false\nrequires: '>= 0.1.0'\nlog:\n  level: info\n  file: gen.log\n", true, "", ""},
		{"unknown key", "colour: red\n", false, "", "additionalProperties"},
		{"wrong type", "dedupe: yes please\n", false, "/dedupe", "type"},
		{"bad level", "log:\n  level: verbose\n", false, "/log/level", "enum"},
		{"empty features dir", "features_dir: ''\n", false, "/features_dir", "minLength"},
		{"unknown log key", "log:\n  rotate: true\n", false, "/log", "additionalProperties"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if tt.valid {
				assert.Empty(t, result.Issues)
				return
			}
			require.NotEmpty(t, result.Issues)
			assert.Equal(t, tt.path, result.Issues[0].Path)
			assert.Equal(t, tt.keyword, result.Issues[0].Keyword)
			assert.NotEmpty(t, result.Issues[0].Message)
		})
	}
}

func TestValidateInvalidYAML(t *testing.T) {
	_, err := Validate([]byte("features_dir: [unclosed\n"))
	assert.Error(t, err)
}

func TestValidateFileNotFound(t *testing.T) {
	_, err := ValidateFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidationIssueString(t *testing.T) {
	assert.Equal(t, "/dedupe: bad", ValidationIssue{Path: "/dedupe", Message: "bad"}.String())
	assert.Equal(t, "bad", ValidationIssue{Message: "bad"}.String())
}
