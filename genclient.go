package routype

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"
)

// GenConfig configures static client generation.
type GenConfig struct {
	// PackageName of the generated file.
	PackageName string

	// ClientType is the name of the generated wrapper type.
	// Defaults to "Client".
	ClientType string

	// OutFile, when set, receives the generated source.
	OutFile string
}

const clientTemplateText = `// Code generated by routype. DO NOT EDIT.

package {{.PackageName}}

import (
	"context"

	"github.com/jbingen/routype"
)

// {{.ClientType}} wraps a routype client with one method per operation.
type {{.ClientType}} struct {
	c *routype.Client
}

func New{{.ClientType}}(c *routype.Client) *{{.ClientType}} {
	return &{{.ClientType}}{c: c}
}

{{range .Methods}}
// {{.GoName}} calls the {{printf "%q" .Name}} operation ({{.Method}} {{.Path}}).
func (c *{{$.ClientType}}) {{.GoName}}(ctx context.Context, out interface{}, args routype.Args) error {
	return c.c.Op({{printf "%q" .Name}}).Call(ctx, out, args)
}
{{end}}`

var clientTemplate = template.Must(template.New("static_client").Parse(clientTemplateText))

// GenerateClient emits Go source with one typed method per operation of
// the contract, formatted with goimports. The source is returned and,
// if GenConfig.OutFile is set, also written there.
func GenerateClient(contract *Contract, config *GenConfig) ([]byte, error) {
	if config == nil || config.PackageName == "" {
		return nil, fmt.Errorf("GenerateClient requires a package name")
	}
	clientType := config.ClientType
	if clientType == "" {
		clientType = "Client"
	}

	type methodDef struct {
		Name   string
		GoName string
		Method string
		Path   string
	}
	data := struct {
		PackageName string
		ClientType  string
		Methods     []methodDef
	}{
		PackageName: config.PackageName,
		ClientType:  clientType,
	}
	seen := map[string]string{}
	for _, name := range contract.Names() {
		route, _ := contract.Route(name)
		goName := exportedName(name)
		if prev, has := seen[goName]; has {
			return nil, fmt.Errorf("operations %q and %q map to the same method name %s", prev, name, goName)
		}
		seen[goName] = name
		data.Methods = append(data.Methods, methodDef{
			Name:   name,
			GoName: goName,
			Method: route.Method,
			Path:   route.Path,
		})
	}

	var buf bytes.Buffer
	if err := clientTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render client template: %w", err)
	}
	src, err := imports.Process(config.PackageName+".go", buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to format generated client: %w", err)
	}
	if config.OutFile != "" {
		if err := os.WriteFile(config.OutFile, src, 0o644); err != nil {
			return nil, err
		}
	}
	return src, nil
}

// exportedName converts an operation name to an exported Go identifier:
// "getNote" -> "GetNote", "list-notes" -> "ListNotes".
func exportedName(name string) string {
	var b strings.Builder
	upperNext := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			r = unicode.ToUpper(r)
			upperNext = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Op"
	}
	return b.String()
}
