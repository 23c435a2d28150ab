// Command client calls a notes server using the example contract.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/jbingen/routype"
	"github.com/jbingen/routype/debugclient"
	"github.com/jbingen/routype/example"
)

func main() {
	baseURL := flag.String("base-url", "http://127.0.0.1:8080", "server address")
	debug := flag.Bool("debug", false, "log every exchange as a curl command")
	flag.Parse()

	var transport routype.HttpClient = &http.Client{}
	if *debug {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel)
		transport = debugclient.New(transport, logger)
	}

	client := routype.NewClient(example.Notes, *baseURL, transport)
	defer client.Close()
	ctx := context.Background()

	created, err := routype.Call[example.Note](ctx, client, "createNote", routype.Args{
		Body: example.NoteIn{Text: "try routype", Tags: []string{"demo"}},
	})
	if err != nil {
		log.Fatalf("createNote: %v", err)
	}
	log.Printf("created note %d", created.ID)

	notes, err := routype.Call[[]example.Note](ctx, client, "listNotes", routype.Args{
		Query: example.ListQuery{Tags: []string{"demo"}, Limit: 10},
	})
	if err != nil {
		log.Fatalf("listNotes: %v", err)
	}
	for _, note := range notes {
		log.Printf("note %d: %s", note.ID, note.Text)
	}
}
