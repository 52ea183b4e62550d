package codegen

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"log/slog"
	"strconv"
	"text/template"

	"github.com/Manu343726/isagen/pkg/isa"
)

//go:embed templates
var Templates embed.FS

// Renders the source artifacts of an instruction table for a given target
type Generator struct {
	options  Options
	template *template.Template
}

func NewGenerator(options Options) (*Generator, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	funcs := template.FuncMap{
		"Quote": strconv.Quote,
	}

	t, err := template.New(string(options.Target)).Funcs(funcs).
		ParseFS(Templates, fmt.Sprintf("templates/%v/*.tmpl", options.Target))

	if err != nil {
		return nil, err
	}

	return &Generator{
		options:  options,
		template: t,
	}, nil
}

func (g *Generator) Options() Options {
	return g.options
}

// Renders all the artifacts of the table, always in the same order.
// The table is assumed to be valid, so errors returned here come from broken templates only
func (g *Generator) Emit(table *isa.Table) ([]Artifact, error) {
	names := targetArtifacts[g.options.Target]
	artifacts := make([]Artifact, 0, len(names))

	for _, name := range names {
		content, err := g.render(name, table)
		if err != nil {
			return nil, fmt.Errorf("rendering %v: %w", name, err)
		}

		slog.Debug("rendered artifact", "artifact", name, "bytes", len(content))

		artifacts = append(artifacts, Artifact{
			Name:     name,
			Language: targetLanguages[g.options.Target],
			Content:  content,
		})
	}

	return artifacts, nil
}

func (g *Generator) render(name string, table *isa.Table) ([]byte, error) {
	var buffer bytes.Buffer

	if err := g.template.ExecuteTemplate(&buffer, name+".tmpl", newTemplateData(name, table, g.options)); err != nil {
		return nil, err
	}

	if g.options.Target == Target_Go {
		return format.Source(buffer.Bytes())
	}

	return buffer.Bytes(), nil
}
