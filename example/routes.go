// Package example declares a small notes API contract and is used by
// the example client binary and the tests of the generators.
package example

import (
	"net/http"

	"github.com/jbingen/routype"
	"github.com/jbingen/routype/validate"
)

// CheckedRoutes pairs every route with its validation schemas. The
// client only sees the routes; a server implementation checks payloads
// through the schemas.
var CheckedRoutes = map[string]validate.CheckedRoute{
	"listNotes": validate.Checked(http.MethodGet, "/notes", validate.Schemas{
		Query:  ListQuery{},
		Output: []Note{},
	}),
	"getNote": validate.Checked(http.MethodGet, "/notes/:id", validate.Schemas{
		Params: map[string]interface{}{},
		Output: Note{},
	}),
	"createNote": validate.Checked(http.MethodPost, "/notes", validate.Schemas{
		Body:   NoteIn{},
		Output: Note{},
	}),
	"deleteNote": validate.Checked(http.MethodDelete, "/notes/:id", validate.Schemas{
		Params: map[string]interface{}{},
	}),
}

// Notes is the contract shared by client and server.
var Notes = routype.NewContract(validate.Routes(CheckedRoutes))
