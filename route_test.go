package routype

import (
	"net/http"
	"reflect"
	"testing"
)

func TestValidateRoute(t *testing.T) {
	cases := []struct {
		name      string
		route     Route
		wantPanic bool
	}{
		{
			name:  "plain get",
			route: Route{Method: http.MethodGet, Path: "/notes"},
		},
		{
			name: "post with body",
			route: Route{
				Method: http.MethodPost,
				Path:   "/notes",
				Body:   ShapeOf[struct{ Text string }](),
			},
		},
		{
			name: "get with body",
			route: Route{
				Method: http.MethodGet,
				Path:   "/notes",
				Body:   ShapeOf[struct{ Text string }](),
			},
			wantPanic: true,
		},
		{
			name: "head with body",
			route: Route{
				Method: http.MethodHead,
				Path:   "/notes",
				Body:   ShapeOf[struct{ Text string }](),
			},
			wantPanic: true,
		},
		{
			name:      "unknown method",
			route:     Route{Method: "FETCH", Path: "/notes"},
			wantPanic: true,
		},
		{
			name:      "relative path",
			route:     Route{Method: http.MethodGet, Path: "notes"},
			wantPanic: true,
		},
		{
			name:      "empty path",
			route:     Route{Method: http.MethodGet, Path: ""},
			wantPanic: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if tc.wantPanic && r == nil {
					t.Errorf("want panic, not got")
				} else if !tc.wantPanic && r != nil {
					t.Errorf("unexpected panic: %v", r)
				}
			}()
			validateRoute(tc.name, tc.route)
		})
	}
}

func TestShape(t *testing.T) {
	var none Shape
	if none.Declared() {
		t.Errorf("zero Shape must not be declared")
	}
	if none.Type() != nil {
		t.Errorf("zero Shape must have nil type")
	}
	if none.String() != "<none>" {
		t.Errorf("zero Shape String: got %q", none.String())
	}

	s := ShapeOf[map[string]int]()
	if !s.Declared() {
		t.Errorf("ShapeOf result must be declared")
	}
	want := reflect.TypeOf(map[string]int{})
	if s.Type() != want {
		t.Errorf("want type %v, got %v", want, s.Type())
	}

	// An empty struct shape is still a declared shape.
	empty := ShapeOf[struct{}]()
	if !empty.Declared() {
		t.Errorf("empty struct shape must be declared")
	}

	dynamic := ShapeOfType(reflect.TypeOf(0))
	if dynamic.Type().Kind() != reflect.Int {
		t.Errorf("ShapeOfType: got %v", dynamic.Type())
	}
}

func TestShapeAccepts(t *testing.T) {
	type body struct {
		Text string
	}
	s := ShapeOf[body]()
	if !s.accepts(body{Text: "x"}) {
		t.Errorf("value of declared type must be accepted")
	}
	if !s.accepts(&body{Text: "x"}) {
		t.Errorf("pointer to declared type must be accepted")
	}
	if s.accepts("nope") {
		t.Errorf("unrelated type must be rejected")
	}
	loose := ShapeOf[interface{}]()
	if !loose.accepts(42) || !loose.accepts(body{}) {
		t.Errorf("interface shape must accept anything")
	}
}
