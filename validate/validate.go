// Package validate is the adapter between routype contracts and
// go-playground/validator. It pairs each route with runtime-checkable
// schemas kept under a side channel that the client never reads;
// server-side consumers of the same contract use the schemas to check
// payloads against their validation tags.
package validate

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/jbingen/routype"
)

var check = validator.New()

// Schemas holds zero-value instances of the validated types of one
// route. A nil slot means the slot has no schema.
type Schemas struct {
	Params interface{}
	Query  interface{}
	Body   interface{}
	Output interface{}
}

// CheckedRoute is a route plus its schemas. Route is indistinguishable
// from one declared directly; Schemas is the side channel.
type CheckedRoute struct {
	Route   routype.Route
	Schemas Schemas
}

// Checked derives a route from schema instances. Shapes of the route
// are taken from the dynamic types of the non-nil schema slots, so the
// declaration and its validation schema cannot drift apart.
func Checked(method, path string, schemas Schemas) CheckedRoute {
	return CheckedRoute{
		Route: routype.Route{
			Method: method,
			Path:   path,
			Params: shapeOfValue(schemas.Params),
			Query:  shapeOfValue(schemas.Query),
			Body:   shapeOfValue(schemas.Body),
			Output: shapeOfValue(schemas.Output),
		},
		Schemas: schemas,
	}
}

func shapeOfValue(v interface{}) routype.Shape {
	if v == nil {
		return routype.Shape{}
	}
	return routype.ShapeOfType(reflect.TypeOf(v))
}

// Routes strips the schemas, producing the plain route map for
// routype.NewContract.
func Routes(checked map[string]CheckedRoute) map[string]routype.Route {
	routes := make(map[string]routype.Route, len(checked))
	for name, c := range checked {
		routes[name] = c.Route
	}
	return routes
}

// CheckQuery validates a query value against its schema's tags.
func (s Schemas) CheckQuery(v interface{}) error {
	return checkValue("query", s.Query, v)
}

// CheckBody validates a body value against its schema's tags.
func (s Schemas) CheckBody(v interface{}) error {
	return checkValue("body", s.Body, v)
}

// CheckOutput validates an output value against its schema's tags.
func (s Schemas) CheckOutput(v interface{}) error {
	return checkValue("output", s.Output, v)
}

func checkValue(slot string, schema, v interface{}) error {
	if schema == nil {
		return fmt.Errorf("no %s schema declared", slot)
	}
	if v == nil {
		return fmt.Errorf("%s value is nil", slot)
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Struct:
		if err := check.Struct(rv.Interface()); err != nil {
			return fmt.Errorf("%s validation failed: %w", slot, err)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i)
			for elem.Kind() == reflect.Ptr {
				elem = elem.Elem()
			}
			if elem.Kind() != reflect.Struct {
				break
			}
			if err := check.Struct(elem.Interface()); err != nil {
				return fmt.Errorf("%s validation failed at index %d: %w", slot, i, err)
			}
		}
	}
	return nil
}
