package routype

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateClient(t *testing.T) {
	contract := NewContract(map[string]Route{
		"listNotes": {
			Method: http.MethodGet,
			Path:   "/notes",
			Output: ShapeOf[[]string](),
		},
		"getNote": {
			Method: http.MethodGet,
			Path:   "/notes/:id",
			Params: ShapeOf[map[string]interface{}](),
			Output: ShapeOf[string](),
		},
		"deleteNote": {
			Method: http.MethodDelete,
			Path:   "/notes/:id",
			Params: ShapeOf[map[string]interface{}](),
		},
	})

	outFile := filepath.Join(t.TempDir(), "notes_client.go")
	src, err := GenerateClient(contract, &GenConfig{
		PackageName: "notesapi",
		ClientType:  "NotesClient",
		OutFile:     outFile,
	})
	require.NoError(t, err)

	code := string(src)
	require.Contains(t, code, "// Code generated by routype. DO NOT EDIT.")
	require.Contains(t, code, "package notesapi")
	require.Contains(t, code, "type NotesClient struct")
	require.Contains(t, code, "func NewNotesClient(c *routype.Client) *NotesClient")
	require.Contains(t, code, "func (c *NotesClient) ListNotes(ctx context.Context,")
	require.Contains(t, code, "func (c *NotesClient) GetNote(ctx context.Context,")
	require.Contains(t, code, "func (c *NotesClient) DeleteNote(ctx context.Context,")
	require.Contains(t, code, `c.c.Op("getNote").Call(ctx, out, args)`)

	written, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.Equal(t, src, written)
}

func TestGenerateClientNameClash(t *testing.T) {
	contract := NewContract(map[string]Route{
		"get-note": {Method: http.MethodGet, Path: "/a"},
		"getNote":  {Method: http.MethodGet, Path: "/b"},
	})
	_, err := GenerateClient(contract, &GenConfig{PackageName: "x"})
	require.ErrorContains(t, err, "same method name")
}

func TestGenerateClientRequiresPackage(t *testing.T) {
	contract := NewContract(map[string]Route{})
	_, err := GenerateClient(contract, nil)
	require.Error(t, err)
	_, err = GenerateClient(contract, &GenConfig{})
	require.Error(t, err)
}

func TestExportedName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "getNote", want: "GetNote"},
		{in: "list-notes", want: "ListNotes"},
		{in: "v2_list", want: "V2List"},
		{in: "ping", want: "Ping"},
		{in: "---", want: "Op"},
	}
	for _, tc := range cases {
		if got := exportedName(tc.in); got != tc.want {
			t.Errorf("exportedName(%q): want %q, got %q", tc.in, tc.want, got)
		}
	}
	if strings.ContainsAny(exportedName("weird$name"), "$") {
		t.Errorf("exportedName must strip non-identifier characters")
	}
}
