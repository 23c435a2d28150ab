package example

// Note is one stored note.
type Note struct {
	ID   int      `json:"id"`
	Text string   `json:"text"`
	Tags []string `json:"tags,omitempty"`
}

// NoteIn is the payload for creating a note.
type NoteIn struct {
	Text string   `json:"text" validate:"required,min=1"`
	Tags []string `json:"tags,omitempty" validate:"max=8"`
}

// ListQuery filters and pages the note list.
type ListQuery struct {
	Tags  []string `query:"tags"`
	Limit int      `query:"limit" validate:"gte=0,lte=100"`
}
