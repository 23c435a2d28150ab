package routype

import (
	"fmt"
	"reflect"
	"strings"

	spec "github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// OpenAPIInfo describes the generated document.
type OpenAPIInfo struct {
	Title   string
	Version string
}

// GenerateOpenAPI builds an OpenAPI 3 document from a contract.
//
// Path masks become OpenAPI templates ("/notes/:id" -> "/notes/{id}")
// with one required string parameter per placeholder. Declared query
// struct fields become query parameters, declared bodies become JSON
// request bodies and declared outputs become the 200 response schema;
// a route without an output documents a 204 response instead.
func GenerateOpenAPI(contract *Contract, info OpenAPIInfo) (*spec.T, error) {
	schemas := make(spec.Schemas)
	swag := &spec.T{
		OpenAPI: "3.0.0",
		Info: &spec.Info{
			Title:   info.Title,
			Version: info.Version,
		},
		Paths: spec.Paths{},
		Components: &spec.Components{
			Schemas: schemas,
		},
	}

	for _, name := range contract.Names() {
		route, _ := contract.Route(name)
		op := spec.NewOperation()
		op.OperationID = name

		for _, param := range pathParams(route.Path) {
			op.AddParameter(spec.NewPathParameter(param).WithSchema(spec.NewStringSchema()))
		}
		if route.Query.Declared() {
			if err := addQueryParameters(op, route.Query.Type(), schemas); err != nil {
				return nil, fmt.Errorf("route %q: %w", name, err)
			}
		}
		if route.Body.Declared() {
			ref, err := schemaForType(route.Body.Type(), schemas)
			if err != nil {
				return nil, fmt.Errorf("route %q: %w", name, err)
			}
			op.RequestBody = &spec.RequestBodyRef{
				Value: spec.NewRequestBody().WithContent(spec.NewContentWithJSONSchemaRef(ref)),
			}
		}

		if op.Responses == nil {
			op.Responses = spec.NewResponses()
		}
		if route.Output.Declared() {
			ref, err := schemaForType(route.Output.Type(), schemas)
			if err != nil {
				return nil, fmt.Errorf("route %q: %w", name, err)
			}
			response := spec.NewResponse()
			description := "success"
			response.Description = &description
			response.Content = spec.NewContentWithJSONSchemaRef(ref)
			op.AddResponse(200, response)
		} else {
			response := spec.NewResponse()
			description := "no content"
			response.Description = &description
			op.AddResponse(204, response)
		}

		maskPath := openAPIPath(route.Path)
		item := swag.Paths.Find(maskPath)
		if item == nil {
			item = &spec.PathItem{}
			swag.Paths[maskPath] = item
		}
		item.SetOperation(route.Method, op)
	}
	return swag, nil
}

// openAPIPath converts ":id" placeholders to OpenAPI "{id}" templates.
func openAPIPath(mask string) string {
	return paramPattern.ReplaceAllString(mask, "{$1}")
}

func schemaForType(t reflect.Type, schemas spec.Schemas) (*spec.SchemaRef, error) {
	value := reflect.New(t).Elem().Interface()
	ref, err := openapi3gen.NewSchemaRefForValue(value, schemas)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema for %s: %w", t, err)
	}
	return ref, nil
}

// addQueryParameters documents each field of a query struct shape as
// one query parameter. Non-struct query shapes (maps, url.Values) have
// no fixed keys and are skipped.
func addQueryParameters(op *spec.Operation, t reflect.Type, schemas spec.Schemas) error {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		name := field.Tag.Get("query")
		if name == "-" {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		ref, err := schemaForType(field.Type, schemas)
		if err != nil {
			return err
		}
		param := spec.NewQueryParameter(name)
		param.Schema = ref
		op.AddParameter(param)
	}
	return nil
}
