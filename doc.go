/*
Package routype builds typed HTTP clients from declarative route
contracts.

An API is described once as a contract: a named set of routes, each
carrying an HTTP method, a path mask and the shapes of the data it
consumes and produces. The client derived from a contract exposes one
callable operation per route; calling it serializes the arguments into
an HTTP request, performs exactly one exchange through an injected
transport and decodes the response.

Let's declare a small notes API:

	type Note struct {
		ID   int    `json:"id"`
		Text string `json:"text"`
	}

	type NoteIn struct {
		Text string `json:"text"`
	}

	type ListQuery struct {
		Tags  []string `query:"tags"`
		Limit int      `query:"limit"`
	}

	var Notes = routype.NewContract(map[string]routype.Route{
		"listNotes": {
			Method: http.MethodGet,
			Path:   "/notes",
			Query:  routype.ShapeOf[ListQuery](),
			Output: routype.ShapeOf[[]Note](),
		},
		"getNote": {
			Method: http.MethodGet,
			Path:   "/notes/:id",
			Params: routype.ShapeOf[map[string]interface{}](),
			Output: routype.ShapeOf[Note](),
		},
		"createNote": {
			Method: http.MethodPost,
			Path:   "/notes",
			Body:   routype.ShapeOf[NoteIn](),
			Output: routype.ShapeOf[Note](),
		},
	})

Shapes carry types, never values. A route without a declared slot
rejects input for that slot at call time, and GET/HEAD routes must not
declare a body at all (NewContract panics on such a declaration).

Now build a client. The transport is a required dependency; any type
with Do and CloseIdleConnections works, *http.Client in the common
case:

	client := routype.NewClient(Notes, "https://api.example.com",
		&http.Client{},
		routype.Authorization("Bearer "+token),
	)

	note, err := routype.Call[Note](ctx, client, "getNote", routype.Args{
		Params: map[string]interface{}{"id": 42},
	})

The untyped form decodes into a caller-supplied pointer:

	var notes []Note
	err := client.Op("listNotes").Call(ctx, &notes, routype.Args{
		Query: ListQuery{Tags: []string{"go", "http"}, Limit: 5},
	})

Path parameters are percent-encoded. Query values may be a tagged
struct, a map[string]interface{} (nil entries are dropped, slices
repeat the key) or url.Values. A JSON-serializable body is sent as
application/json; []byte and io.Reader bodies pass through raw;
proto.Message bodies are sent in protobuf binary form. A Content-Type
set through the header options is never overwritten.

Responses with a JSON Content-Type are decoded into the output pointer,
204 and missing Content-Type decode to nothing, other Content-Types are
returned as raw text. A status outside the 2xx range yields an
*HTTPError carrying the status and the best-effort decoded body;
failures of the transport itself are returned unwrapped.

The same contract drives tooling: GenerateOpenAPI produces an OpenAPI 3
document and GenerateClient emits a Go source file with one typed
method per operation. See also the validate, debugclient and
closingclient subpackages.
*/
package routype
