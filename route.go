package routype

import (
	"fmt"
	"net/http"
	"reflect"
)

// Route describes one endpoint of the API: its HTTP method, path mask
// and the shapes of the data it consumes and produces.
//
// A Route is a pure declaration. It carries no handler and no runtime
// values; the same Route is shared between the client built from it
// and any tooling (OpenAPI generation, client generation) consuming
// the contract.
type Route struct {
	// HTTP method, one of the http.Method* constants.
	Method string

	// HTTP path mask. Parameters are ":name" segments,
	// e.g. "/users/:id/posts". The same path can be used multiple
	// times with different methods.
	Path string

	// Shapes of the four data slots. A zero Shape means the slot is
	// not declared and must not be supplied at call time.
	Params Shape
	Query  Shape
	Body   Shape
	Output Shape
}

// Shape declares the structural type expected in one slot of a route.
//
// The zero value means the slot is not declared. Call-site rules follow
// the declaration directly: a shape of an empty struct is still
// declared and its slot may be supplied. Shapes carry a type, never a
// value.
type Shape struct {
	typ reflect.Type
}

// ShapeOf declares a shape for type T.
func ShapeOf[T any]() Shape {
	return Shape{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// ShapeOfType declares a shape for a reflect.Type, for callers that
// derive shapes dynamically rather than from a type parameter.
func ShapeOfType(t reflect.Type) Shape {
	return Shape{typ: t}
}

// Declared reports whether the slot was declared.
func (s Shape) Declared() bool {
	return s.typ != nil
}

// Type returns the declared type, or nil for an undeclared shape.
func (s Shape) Type() reflect.Type {
	return s.typ
}

func (s Shape) String() string {
	if s.typ == nil {
		return "<none>"
	}
	return s.typ.String()
}

// accepts reports whether a supplied value is compatible with the
// declared type. Values may be supplied directly or behind a pointer.
func (s Shape) accepts(v interface{}) bool {
	if s.typ == nil || s.typ.Kind() == reflect.Interface {
		return true
	}
	t := reflect.TypeOf(v)
	if t == nil {
		return true
	}
	return t.AssignableTo(s.typ) || t == reflect.PtrTo(s.typ)
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// validateRoute panics if the declaration is invalid. Declarations are
// fixed at program start, so a bad one is a programmer error, not a
// runtime condition.
func validateRoute(name string, route Route) {
	if !knownMethods[route.Method] {
		panic(fmt.Sprintf("route %q: unknown HTTP method %q", name, route.Method))
	}
	if route.Path == "" || route.Path[0] != '/' {
		panic(fmt.Sprintf("route %q: path must start with /, got %q", name, route.Path))
	}
	if route.Body.Declared() && (route.Method == http.MethodGet || route.Method == http.MethodHead) {
		panic(fmt.Sprintf("route %q: %s routes must not declare a body", name, route.Method))
	}
}
