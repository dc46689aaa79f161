package scaffold

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaType selects which artifacts a request produces.
type SchemaType string

const (
	Document  SchemaType = "document"
	Singleton SchemaType = "singleton"
	Object    SchemaType = "object"
)

// SchemaTypes lists the accepted types in prompt order.
var SchemaTypes = []SchemaType{Document, Singleton, Object}

var (
	ErrEmptyFeature      = errors.New("feature name is required")
	ErrEmptyName         = errors.New("schema name is required")
	ErrUnknownSchemaType = errors.New("unknown schema type")
)

// ParseSchemaType validates s against the accepted types.
func ParseSchemaType(s string) (SchemaType, error) {
	t := SchemaType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SchemaTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w %q (want document, singleton or object)", ErrUnknownSchemaType, s)
}

// Request is one (feature, name, type) triple.
type Request struct {
	Feature string     `json:"feature" yaml:"feature"`
	Name    string     `json:"name" yaml:"name"`
	Type    SchemaType `json:"type" yaml:"type"`
}

// Validate checks that feature and name are present. Type is not checked:
// anything other than object takes the document branch.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Feature) == "" {
		return ErrEmptyFeature
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// IsObject reports whether the request only produces the schema files.
func (r Request) IsObject() bool { return r.Type == Object }
