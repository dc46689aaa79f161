// Package prompt asks for the parts of a scaffold request that were not given
// on the command line.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"

	"github.com/schemagen/schemagen/internal/naming"
	"github.com/schemagen/schemagen/internal/scaffold"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// AskFunc has the signature of survey.Ask.
type AskFunc func(qs []*survey.Question, response interface{}, opts ...survey.AskOpt) error

// Prompter collects missing request fields.
type Prompter struct {
	ask  AskFunc
	opts []survey.AskOpt
}

// New returns a prompter reading from in and drawing on out.
func New(in terminal.FileReader, out terminal.FileWriter, errOut io.Writer) *Prompter {
	return &Prompter{ask: survey.Ask, opts: []survey.AskOpt{survey.WithStdio(in, out, errOut)}}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type answers struct {
	Feature string `survey:"feature"`
	Name    string `survey:"name"`
	Type    string `survey:"type"`
}

// Questions returns the prompts for the fields req is missing.
func Questions(req scaffold.Request) []*survey.Question {
	var qs []*survey.Question
	if strings.TrimSpace(req.Feature) == "" {
		qs = append(qs, &survey.Question{
			Name:     "feature",
			Prompt:   &survey.Input{Message: "Feature name:", Help: "Directory under the features folder, e.g. blog"},
			Validate: survey.ComposeValidators(survey.Required, identifier),
		})
	}
	if strings.TrimSpace(req.Name) == "" {
		qs = append(qs, &survey.Question{
			Name:     "name",
			Prompt:   &survey.Input{Message: "Schema name:", Help: "Entity name, e.g. author or blog post"},
			Validate: survey.ComposeValidators(survey.Required, identifier),
		})
	}
	if req.Type == "" {
		options := make([]string, len(scaffold.SchemaTypes))
		for i, t := range scaffold.SchemaTypes {
			options[i] = string(t)
		}
		qs = append(qs, &survey.Question{
			Name: "type",
			Prompt: &survey.Select{
				Message: "Schema type:",
				Options: options,
				Default: string(scaffold.Document),
				Description: func(value string, _ int) string {
					if value == string(scaffold.Object) {
						return "schema file only"
					}
					return "schema, loader, queries, hooks and context"
				},
			},
		})
	}
	return qs
}

// identifier rejects input with no letters or digits, which would produce an
// empty path segment.
func identifier(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return nil
	}
	if naming.Kebab(s) == "" {
		return fmt.Errorf("%q has no letters or digits", s)
	}
	return nil
}

// Complete fills the empty fields of req by prompting for them.
func (p *Prompter) Complete(req scaffold.Request) (scaffold.Request, error) {
	qs := Questions(req)
	if len(qs) == 0 {
		return req, nil
	}

	var a answers
	if err := p.ask(qs, &a, p.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return req, ErrAborted
		}
		return req, fmt.Errorf("prompting: %w", err)
	}

	if a.Feature != "" {
		req.Feature = a.Feature
	}
	if a.Name != "" {
		req.Name = a.Name
	}
	if a.Type != "" {
		t, err := scaffold.ParseSchemaType(a.Type)
		if err != nil {
			return req, err
		}
		req.Type = t
	}
	return req, nil
}
